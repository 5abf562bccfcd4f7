// Package proc runs the external decoder and hands its output over line by
// line. stdout and stderr are each read on their own goroutine so that
// neither pipe can fill up and stall the process.
package proc

import (
	"bufio"
	"context"
	"io"
	"os"
	"os/exec"
	"strings"
	"sync"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// DefaultCmd runs rtl_433 with UTC timestamps and JSON output.
const DefaultCmd = "rtl_433 -M utc -F json"

const (
	lineBuffer   = 256
	stderrLimit  = 100
	maxLineBytes = 1 << 20
)

type Config struct {
	Cmd string

	// Path is prepended to PATH, LDLibraryPath replaces LD_LIBRARY_PATH.
	Path          string
	LDLibraryPath string
}

// Process is a running decoder.
type Process struct {
	name string
	cmd  *exec.Cmd

	lines chan string
	done  chan struct{}
	err   error

	mu     sync.Mutex
	stderr []string
}

// Start launches the command. The process is killed when ctx is cancelled.
func Start(ctx context.Context, cfg Config) (*Process, error) {
	if cfg.Cmd == "" {
		cfg.Cmd = DefaultCmd
	}

	args := strings.Fields(cfg.Cmd)
	if len(args) == 0 {
		return nil, errors.Errorf("empty command %q", cfg.Cmd)
	}
	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	cmd.Env = Environ(os.Environ(), cfg.Path, cfg.LDLibraryPath)

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, errors.Wrap(err, "stdout pipe")
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return nil, errors.Wrap(err, "stderr pipe")
	}

	log.Infof("startup process %q", cfg.Cmd)
	if err := cmd.Start(); err != nil {
		return nil, errors.Wrapf(err, "start %q", cfg.Cmd)
	}

	p := &Process{
		name:  cfg.Cmd,
		cmd:   cmd,
		lines: make(chan string, lineBuffer),
		done:  make(chan struct{}),
	}

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		ReadLines(stdout, func(line string) { p.lines <- line })
	}()
	go func() {
		defer wg.Done()
		ReadLines(stderr, p.addStderr)
	}()

	// Wait must not be called before both pipes are drained.
	go func() {
		wg.Wait()
		p.err = cmd.Wait()
		close(p.done)
		close(p.lines)
		log.Infof("process %q stopped: %v", p.name, p.err)
	}()

	return p, nil
}

// Lines delivers stdout one line at a time. It is closed after the process
// has exited.
func (p *Process) Lines() <-chan string {
	return p.lines
}

func (p *Process) Running() bool {
	select {
	case <-p.done:
		return false
	default:
		return true
	}
}

// Done is closed when the process has exited.
func (p *Process) Done() <-chan struct{} {
	return p.done
}

// Err returns the exit error once the process has stopped.
func (p *Process) Err() error {
	select {
	case <-p.done:
		return p.err
	default:
		return nil
	}
}

// Stderr returns and forgets the stderr lines read so far.
func (p *Process) Stderr() []string {
	p.mu.Lock()
	defer p.mu.Unlock()

	lines := p.stderr
	p.stderr = nil
	return lines
}

func (p *Process) addStderr(line string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if len(p.stderr) == stderrLimit {
		copy(p.stderr, p.stderr[1:])
		p.stderr = p.stderr[:stderrLimit-1]
	}
	p.stderr = append(p.stderr, line)
}

// Stop kills the process and waits for the readers to finish.
func (p *Process) Stop() error {
	log.Infof("shutdown process %q", p.name)
	if p.Running() && p.cmd.Process != nil {
		if err := p.cmd.Process.Kill(); err != nil {
			log.Debugf("kill %q: %s", p.name, err)
		}
	}

	// Drain anything still buffered so the stdout reader can exit.
	for range p.lines {
	}
	<-p.done

	return p.err
}

// ReadLines calls fn with each line read from r, without the trailing
// newline, until r is exhausted.
func ReadLines(r io.Reader, fn func(string)) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	for scanner.Scan() {
		fn(strings.TrimRight(scanner.Text(), "\r"))
	}
	if err := scanner.Err(); err != nil {
		log.Debugf("read lines: %s", err)
		io.Copy(io.Discard, r)
	}
}

// Environ returns env with path prepended to PATH and LD_LIBRARY_PATH set
// to ldLibraryPath. Empty arguments leave the variables untouched.
func Environ(env []string, path, ldLibraryPath string) []string {
	out := make([]string, 0, len(env)+2)
	havePath := false

	for _, kv := range env {
		switch {
		case strings.HasPrefix(kv, "PATH=") && path != "":
			kv = "PATH=" + path + ":" + strings.TrimPrefix(kv, "PATH=")
			havePath = true
		case strings.HasPrefix(kv, "LD_LIBRARY_PATH=") && ldLibraryPath != "":
			continue
		}
		out = append(out, kv)
	}

	if path != "" && !havePath {
		out = append(out, "PATH="+path)
	}
	if ldLibraryPath != "" {
		out = append(out, "LD_LIBRARY_PATH="+ldLibraryPath)
	}

	return out
}
