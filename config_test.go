package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_ReadConfig(t *testing.T) {
	for _, tc := range []struct {
		name   string
		in     string
		expect func(cfg *Config)
		err    string
	}{
		{
			name:   "empty keeps defaults",
			in:     "",
			expect: func(cfg *Config) {},
		},
		{
			name: "durations",
			in: strings.Join([]string{
				"input_interval: 250ms",
				"eval_interval: 2s",
				"print_interval: 1m",
			}, "\n"),
			expect: func(cfg *Config) {
				cfg.InputInterval = 250 * time.Millisecond
				cfg.EvalInterval = 2 * time.Second
				cfg.PrintInterval = time.Minute
			},
		},
		{
			name: "logging and metrics",
			in:   "log_level: debug\nmetrics_addr: localhost:9090\n",
			expect: func(cfg *Config) {
				cfg.LogLevel = "debug"
				cfg.MetricsAddr = "localhost:9090"
			},
		},
		{
			name: "unknown key",
			in:   "output_interval: 1s\n",
			err:  "field output_interval not found",
		},
		{
			name: "negative interval",
			in:   "eval_interval: -1s\n",
			err:  "invalid config: negative eval_interval -1s",
		},
		{
			name: "bad level",
			in:   "log_level: loud\n",
			err:  `invalid config: not a valid logrus Level: "loud"`,
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			cfg, err := ReadConfig(strings.NewReader(tc.in))
			if tc.err != "" {
				assert.ErrorContains(t, err, tc.err)
				return
			}
			require.NoError(t, err)
			expect := DefaultConfig()
			tc.expect(&expect)
			assert.Equal(t, expect, cfg)
		})
	}
}

func Test_Config_String(t *testing.T) {
	cfg := DefaultConfig()
	cfg.PrintInterval = 500 * time.Millisecond
	cfg.MetricsAddr = ":2112"

	back, err := ReadConfig(strings.NewReader(cfg.String()))
	require.NoError(t, err)
	assert.Equal(t, cfg, back)
	assert.Equal(t, DefaultIntervals, DefaultConfig().Intervals())
}

func Test_LoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rpncalc.yaml")
	require.NoError(t, os.WriteFile(path, []byte("print_interval: 3s\n"), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 3*time.Second, cfg.PrintInterval)
	assert.Equal(t, DefaultIntervals.Input, cfg.InputInterval)

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.True(t, os.IsNotExist(err), "expected a not exist error, got %v", err)
}
