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
	"flag"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/bemasher/rtlwx/config"
	"github.com/bemasher/rtlwx/proc"
	"github.com/bemasher/rtlwx/sink"
)

// EnvPrefix is prepended to a flag's name to find its environment override.
const EnvPrefix = "SDR_"

var configFile = flag.String("config", "", "yaml configuration file, flags given explicitly override it")

var cmdLine = flag.String("cmd", proc.DefaultCmd, "command producing rtl_433 output")
var binPath = flag.String("path", "", "directory prepended to PATH when starting the command")
var ldLibraryPath = flag.String("ld_library_path", "", "LD_LIBRARY_PATH for the command")

var action = flag.String("action", "run", "what to do: run, show-packets, show-detected or list-supported")
var hide = make(HideSet)

var format = flag.String("format", "plain", "packet output format: plain, json or csv")

var timeLimit = flag.Duration("duration", 0, "time to run for, 0 for infinite, ex. 1h5m10s")
var single = flag.Bool("single", false, "one shot execution, exit after the first packet")

var logUnknown = flag.Bool("log-unknown", false, "log messages no decoder recognized")
var logUnmapped = flag.Bool("log-unmapped", false, "log packets the sensor map selects nothing from")

var httpAddr = flag.String("http", "", "address for the status server, empty to disable")
var natsURL = flag.String("nats", "", "publish packets to this NATS server")
var natsSubject = flag.String("nats-subject", sink.DefaultSubject, "subject packets are published on")
var postgresConn = flag.String("postgres", "", "archive packets to this PostgreSQL database")

var debug = flag.Bool("debug", false, "log per-message diagnostics")
var version = flag.Bool("version", false, "display build date and commit hash")

var actions = map[string]bool{
	"run":            true,
	"show-packets":   true,
	"show-detected":  true,
	"list-supported": true,
}

func RegisterFlags() {
	flag.Var(hide, "filter", "comma-separated message kinds show-packets hides: "+strings.Join(HideKinds, ", "))

	outputFlags := map[string]bool{
		"format":       true,
		"http":         true,
		"nats":         true,
		"nats-subject": true,
		"postgres":     true,
	}

	printDefaults := func(validFlags map[string]bool, inclusion bool) {
		flag.CommandLine.VisitAll(func(f *flag.Flag) {
			if validFlags[f.Name] != inclusion {
				return
			}

			format := "  -%s=%s: %s\n"
			fmt.Fprintf(os.Stderr, format, f.Name, f.Value, f.Usage)
		})
	}

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage of %s:\n", os.Args[0])
		printDefaults(outputFlags, false)

		fmt.Fprintln(os.Stderr)
		fmt.Fprintln(os.Stderr, "outputs:")
		printDefaults(outputFlags, true)
	}
}

// EnvName is the environment variable overriding the named flag.
func EnvName(flagName string) string {
	return EnvPrefix + strings.ToUpper(strings.Replace(flagName, "-", "_", -1))
}

func EnvOverride() {
	flag.VisitAll(func(f *flag.Flag) {
		envName := EnvName(f.Name)
		flagValue := os.Getenv(envName)
		if flagValue != "" {
			if err := flag.Set(f.Name, flagValue); err != nil {
				log.Warnf(
					"Environment variable %q failed to override flag %q with value %q: %q",
					envName, f.Name, flagValue, err,
				)
			} else {
				log.Infof("Environment variable %q overrides flag %q with %q", envName, f.Name, flagValue)
			}
		}
	})
}

// HandleFlags loads the configuration file, if any, and applies the flags
// that were set explicitly on top of it.
func HandleFlags() (*config.Config, error) {
	if !actions[*action] {
		return nil, errors.Errorf("unknown action %q", *action)
	}

	cfg := config.Default()
	if *configFile != "" {
		var err error
		if cfg, err = config.Load(*configFile); err != nil {
			return nil, err
		}
	}

	OverrideConfig(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// OverrideConfig copies explicitly set flags into cfg.
func OverrideConfig(cfg *config.Config) {
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "cmd":
			cfg.Cmd = *cmdLine
		case "path":
			cfg.Path = *binPath
		case "ld_library_path":
			cfg.LDLibraryPath = *ldLibraryPath
		case "format":
			cfg.Output.Format = strings.ToLower(*format)
		case "log-unknown":
			cfg.LogUnknown = *logUnknown
		case "log-unmapped":
			cfg.LogUnmapped = *logUnmapped
		case "http":
			cfg.HTTP.Addr = *httpAddr
		case "nats":
			cfg.NATS.URL = *natsURL
		case "nats-subject":
			cfg.NATS.Subject = *natsSubject
		case "postgres":
			cfg.Postgres.ConnString = *postgresConn
		}
	})
}

// HideKinds are the kinds of show-packets output that can be hidden.
var HideKinds = []string{"out", "parsed", "unparsed", "empty"}

// HideSet is the set of show-packets output kinds to suppress.
type HideSet map[string]bool

func (h HideSet) String() string {
	var kinds []string
	for k := range h {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	return strings.Join(kinds, ",")
}

func (h HideSet) Set(value string) error {
	for _, kind := range strings.Split(value, ",") {
		kind = strings.ToLower(strings.TrimSpace(kind))
		if kind == "" {
			continue
		}

		known := false
		for _, k := range HideKinds {
			known = known || k == kind
		}
		if !known {
			return errors.Errorf("unknown message kind %q", kind)
		}

		h[kind] = true
	}
	return nil
}
