// RTLWX - A weather station driver for sensors decoded by rtl_433.
// Copyright (C) 2016 Douglas Hall
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published
// by the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"

	"github.com/bemasher/rtlwx/config"
	"github.com/bemasher/rtlwx/driver"
	"github.com/bemasher/rtlwx/metric"
	"github.com/bemasher/rtlwx/parse"
	"github.com/bemasher/rtlwx/proc"
	"github.com/bemasher/rtlwx/segment"
	"github.com/bemasher/rtlwx/sink"
	"github.com/bemasher/rtlwx/status"

	_ "github.com/bemasher/rtlwx/sensors"
)

func init() {
	log.SetFormatter(&log.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006/01/02 15:04:05.000000",
		CallerPrettyfier: func(f *runtime.Frame) (string, string) {
			return "", fmt.Sprintf("%s:%d", filepath.Base(f.File), f.Line)
		},
	})
	log.SetReportCaller(true)
}

var (
	buildTag   = "dev"     // v#.#.#
	buildDate  = "unknown" // date -u '+%Y-%m-%d'
	commitHash = "unknown" // git rev-parse HEAD
)

// NewSinks opens every output the configuration enables.
func NewSinks(ctx context.Context, cfg *config.Config, m *metric.Metrics) (*sink.Multi, error) {
	s := sink.NewMulti(m)

	w, err := sink.NewWriter(os.Stdout, cfg.Output.Format)
	if err != nil {
		return nil, err
	}
	s.Add("stdout", w)

	if cfg.NATS.URL != "" {
		n, err := sink.DialNATS(cfg.NATS.URL, cfg.NATS.Subject)
		if err != nil {
			s.Close()
			return nil, err
		}
		s.Add("nats", n)
	}

	if cfg.Postgres.ConnString != "" {
		p, err := sink.ConnectPostgres(ctx, cfg.Postgres.ConnString, cfg.Postgres.Table)
		if err != nil {
			s.Close()
			return nil, err
		}
		s.Add("postgres", p)
	}

	return s, nil
}

func main() {
	RegisterFlags()
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Warnf("load .env: %s", err)
	}
	EnvOverride()
	flag.Parse()

	if *version {
		fmt.Println("Build Tag: ", buildTag)
		fmt.Println("Build Date:", buildDate)
		fmt.Println("Commit:    ", commitHash)
		os.Exit(0)
	}

	if *debug {
		log.SetLevel(log.DebugLevel)
	}

	cfg, err := HandleFlags()
	if err != nil {
		log.Fatal(err)
	}

	if *action == "list-supported" {
		ListSupported(os.Stdout, parse.DefaultRegistry)
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if *timeLimit != 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, *timeLimit)
		defer cancel()
	}

	reg := prometheus.NewRegistry()
	m := metric.New(reg)

	p, err := proc.Start(ctx, proc.Config{
		Cmd:           cfg.Cmd,
		Path:          cfg.Path,
		LDLibraryPath: cfg.LDLibraryPath,
	})
	if err != nil {
		log.Fatal(err)
	}

	d := driver.New(segment.New(p.Lines(), cfg.Timeout), parse.NewFactory(parse.DefaultRegistry), driver.Config{
		SensorMap:   cfg.SensorMap,
		Deltas:      cfg.Deltas,
		LogUnknown:  cfg.LogUnknown,
		LogUnmapped: cfg.LogUnmapped,
	}, m)
	d.Stderr = p.Stderr

	if cfg.HTTP.Addr != "" {
		srv := status.New(cfg.HTTP.Addr, d, parse.DefaultRegistry, reg)
		go func() {
			if err := srv.Run(ctx); err != nil {
				log.Error(err)
			}
		}()
	}

	start := time.Now()

	switch *action {
	case "run":
		var s *sink.Multi
		if s, err = NewSinks(ctx, cfg, m); err != nil {
			p.Stop()
			log.Fatal(err)
		}
		err = Run(ctx, d, s, *single)
		if cerr := s.Close(); cerr != nil {
			log.Warnf("close sinks: %s", cerr)
		}
	case "show-packets":
		err = ShowPackets(ctx, d, os.Stdout, hide, *single)
	case "show-detected":
		err = ShowDetected(ctx, d, os.Stdout)
	}

	p.Stop()

	// The process is killed with the context, the stream may end first.
	if err != nil && ctx.Err() != nil {
		err = ctx.Err()
	}

	switch errors.Cause(err) {
	case nil:
	case context.DeadlineExceeded:
		log.Infof("Time Limit Reached: %s", time.Since(start))
	case context.Canceled:
		log.Info("interrupted")
	default:
		log.Fatal(err)
	}
}
