// Package config loads the driver configuration from a YAML file.
package config

import (
	"os"
	"sort"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/bemasher/rtlwx/delta"
	"github.com/bemasher/rtlwx/mapper"
	"github.com/bemasher/rtlwx/proc"
	"github.com/bemasher/rtlwx/segment"
	"github.com/bemasher/rtlwx/sink"
)

type Config struct {
	Cmd           string        `yaml:"cmd"`
	Path          string        `yaml:"path"`
	LDLibraryPath string        `yaml:"ld_library_path"`
	Timeout       time.Duration `yaml:"timeout"`

	LogUnknown  bool `yaml:"log_unknown_sensors"`
	LogUnmapped bool `yaml:"log_unmapped_sensors"`

	SensorMap mapper.SensorMap `yaml:"sensor_map"`

	// Deltas defaults when the key is absent, an empty mapping disables
	// delta fields.
	Deltas delta.Spec `yaml:"deltas"`

	Output   OutputConfig   `yaml:"output"`
	NATS     NATSConfig     `yaml:"nats"`
	Postgres PostgresConfig `yaml:"postgres"`
	HTTP     HTTPConfig     `yaml:"http"`
}

type OutputConfig struct {
	Format string `yaml:"format"`
}

// NATSConfig enables the NATS sink when URL is set.
type NATSConfig struct {
	URL     string `yaml:"url"`
	Subject string `yaml:"subject"`
}

// PostgresConfig enables the PostgreSQL sink when ConnString is set.
type PostgresConfig struct {
	ConnString string `yaml:"conn_string"`
	Table      string `yaml:"table"`
}

// HTTPConfig enables the status server when Addr is set.
type HTTPConfig struct {
	Addr string `yaml:"addr"`
}

// Default returns the configuration used without a file.
func Default() *Config {
	cfg := new(Config)
	cfg.ApplyDefaults()
	return cfg
}

func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read config")
	}

	cfg, err := Parse(raw)
	if err != nil {
		return nil, errors.Wrap(err, path)
	}
	return cfg, nil
}

// Parse decodes, completes and validates a YAML document.
func Parse(raw []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return nil, errors.Wrap(err, "decode yaml")
	}

	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) ApplyDefaults() {
	if c.Cmd == "" {
		c.Cmd = proc.DefaultCmd
	}
	if c.Timeout == 0 {
		c.Timeout = segment.DefaultTimeout
	}
	if c.Deltas == nil {
		c.Deltas = delta.DefaultSpec()
	}
	if c.SensorMap == nil {
		c.SensorMap = make(mapper.SensorMap)
	}
	if c.Output.Format == "" {
		c.Output.Format = "plain"
	}
	if c.NATS.Subject == "" {
		c.NATS.Subject = sink.DefaultSubject
	}
	if c.Postgres.Table == "" {
		c.Postgres.Table = sink.DefaultTable
	}
}

func (c *Config) Validate() error {
	if c.Timeout < 0 {
		return errors.Errorf("timeout must not be negative: %s", c.Timeout)
	}

	if err := c.SensorMap.Validate(); err != nil {
		return err
	}

	outputs := make([]string, 0, len(c.Deltas))
	for output := range c.Deltas {
		outputs = append(outputs, output)
	}
	sort.Strings(outputs)
	for _, output := range outputs {
		if output == "" || c.Deltas[output] == "" {
			return errors.Errorf("deltas: %q -> %q needs an output and a source", output, c.Deltas[output])
		}
	}

	if _, err := sink.NewEncoder(os.Stdout, c.Output.Format); err != nil {
		return errors.Wrap(err, "output")
	}

	return nil
}
