// Package segment groups the raw lines printed by rtl_433 into messages.
//
// A line starting with a timestamp begins a new message, every other line is
// appended to the message in progress. JSON output is one object per line,
// each object is a message of its own.
package segment

import (
	"context"
	"io"
	"regexp"
	"strings"
	"time"
)

// DefaultTimeout is how long Next waits for a line before flushing.
const DefaultTimeout = 3 * time.Second

var headerPattern = regexp.MustCompile(`^\d{4}-\d\d-\d\d \d\d:\d\d:\d\d\s+`)

// IsHeader reports whether line begins a delimited text message.
func IsHeader(line string) bool {
	return headerPattern.MatchString(line)
}

// IsJSON reports whether line is a self-delimited JSON message.
func IsJSON(line string) bool {
	return strings.HasPrefix(strings.TrimSpace(line), "{")
}

// Segmenter reads lines from a channel and returns them one message at a
// time. It is not safe for concurrent use.
type Segmenter struct {
	lines   <-chan string
	timeout time.Duration

	acc   []string
	ready []string
	timer *time.Timer
	done  bool
}

// New returns a segmenter reading from lines. The producer closes lines at
// end of stream.
func New(lines <-chan string, timeout time.Duration) *Segmenter {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Segmenter{lines: lines, timeout: timeout}
}

// Next returns the next group of lines. A group is flushed when a new header
// or a JSON line arrives, when no line arrives within the timeout, or at end
// of stream. A JSON line is always a group by itself. Groups flushed by the
// timeout may be empty. After the last group Next returns io.EOF.
func (s *Segmenter) Next(ctx context.Context) ([]string, error) {
	if s.ready != nil {
		group := s.ready
		s.ready = nil
		return group, nil
	}
	if s.done {
		return nil, io.EOF
	}

	for {
		s.resetTimer()

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-s.timer.C:
			return s.flush(nil), nil
		case line, ok := <-s.lines:
			if !ok {
				s.done = true
				s.stopTimer()
				if len(s.acc) == 0 {
					return nil, io.EOF
				}
				return s.flush(nil), nil
			}

			if IsJSON(line) {
				s.stopTimer()
				if len(s.acc) == 0 {
					return []string{line}, nil
				}
				s.ready = []string{line}
				return s.flush(nil), nil
			}

			if IsHeader(line) && len(s.acc) > 0 {
				return s.flush([]string{line}), nil
			}
			s.acc = append(s.acc, line)
		}
	}
}

// flush returns the accumulated group and starts a new one with next.
func (s *Segmenter) flush(next []string) []string {
	group := s.acc
	s.acc = next
	if group == nil {
		group = []string{}
	}
	return group
}

func (s *Segmenter) resetTimer() {
	if s.timer == nil {
		s.timer = time.NewTimer(s.timeout)
		return
	}
	s.stopTimer()
	s.timer.Reset(s.timeout)
}

func (s *Segmenter) stopTimer() {
	if s.timer != nil && !s.timer.Stop() {
		select {
		case <-s.timer.C:
		default:
		}
	}
}
