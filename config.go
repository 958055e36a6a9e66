package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// Config is the file form of the command line settings.
type Config struct {
	InputInterval time.Duration `yaml:"input_interval"`
	EvalInterval  time.Duration `yaml:"eval_interval"`
	PrintInterval time.Duration `yaml:"print_interval"`
	LogLevel      string        `yaml:"log_level"`
	MetricsAddr   string        `yaml:"metrics_addr"`
}

// DefaultConfig matches DefaultIntervals, logging warnings and worse.
func DefaultConfig() Config {
	return Config{
		InputInterval: DefaultIntervals.Input,
		EvalInterval:  DefaultIntervals.Eval,
		PrintInterval: DefaultIntervals.Print,
		LogLevel:      logrus.WarnLevel.String(),
	}
}

// LoadConfig reads a YAML file over DefaultConfig.
func LoadConfig(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, err
	}
	defer f.Close()
	return ReadConfig(f)
}

// ReadConfig decodes YAML over DefaultConfig; unknown keys are an error, and
// an empty document leaves the defaults alone.
func ReadConfig(r io.Reader) (Config, error) {
	cfg := DefaultConfig()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, cfg.Validate()
}

// Validate checks that intervals are not negative and the log level parses.
func (cfg Config) Validate() error {
	for _, iv := range []struct {
		name string
		d    time.Duration
	}{
		{"input_interval", cfg.InputInterval},
		{"eval_interval", cfg.EvalInterval},
		{"print_interval", cfg.PrintInterval},
	} {
		if iv.d < 0 {
			return fmt.Errorf("invalid config: negative %v %v", iv.name, iv.d)
		}
	}
	if _, err := logrus.ParseLevel(cfg.LogLevel); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// Intervals returns the configured actor intervals.
func (cfg Config) Intervals() Intervals {
	return Intervals{
		Input: cfg.InputInterval,
		Eval:  cfg.EvalInterval,
		Print: cfg.PrintInterval,
	}
}

func (cfg Config) String() string {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return fmt.Sprintf("<config encode error: %v>", err)
	}
	enc.Close()
	return buf.String()
}
