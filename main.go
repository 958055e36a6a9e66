package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/jcorbin/rpncalc/internal/lineinput"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %+v\n", err)
		os.Exit(1)
	}
}

type cliFlags struct {
	configPath string
	dumpConfig bool
	timeout    time.Duration
	trace      bool
	tee        string
	cfg        Config
}

func newRootCmd() *cobra.Command {
	var fl cliFlags
	fl.cfg = DefaultConfig()

	cmd := &cobra.Command{
		Use:   "rpncalc [flags] [FILE...]",
		Short: "A concurrent reverse polish notation calculator",
		Long: `rpncalc reads lines like "5 1 2 + 4 * + 3 -" and prints results.

Lines are read from each FILE in turn, then from standard input; "-" names
standard input explicitly. Enter q or Q to quit.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return fl.run(cmd, args)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&fl.configPath, "config", "", "read settings from a YAML file; flags take precedence")
	flags.BoolVar(&fl.dumpConfig, "dump-config", false, "print the effective settings as YAML and exit")
	flags.DurationVar(&fl.timeout, "timeout", 0, "specify a time limit")
	flags.BoolVar(&fl.trace, "trace", false, "enable trace logging")
	flags.StringVar(&fl.tee, "tee", "", "also append every displayed value to a file")
	flags.DurationVar(&fl.cfg.InputInterval, "input-interval", fl.cfg.InputInterval, "pause after enqueuing each input line")
	flags.DurationVar(&fl.cfg.EvalInterval, "eval-interval", fl.cfg.EvalInterval, "pause after each queue drain")
	flags.DurationVar(&fl.cfg.PrintInterval, "print-interval", fl.cfg.PrintInterval, "pause after each stack drain")
	flags.StringVar(&fl.cfg.LogLevel, "log-level", fl.cfg.LogLevel, "log level: trace, debug, info, warn, error")
	flags.StringVar(&fl.cfg.MetricsAddr, "metrics-addr", "", "serve prometheus metrics on this address")
	return cmd
}

// settings merges any config file under the flags that were explicitly set.
func (fl *cliFlags) settings(cmd *cobra.Command) (Config, error) {
	if fl.configPath == "" {
		return fl.cfg, fl.cfg.Validate()
	}
	cfg, err := LoadConfig(fl.configPath)
	if err != nil {
		return Config{}, err
	}
	flags := cmd.Flags()
	if flags.Changed("input-interval") {
		cfg.InputInterval = fl.cfg.InputInterval
	}
	if flags.Changed("eval-interval") {
		cfg.EvalInterval = fl.cfg.EvalInterval
	}
	if flags.Changed("print-interval") {
		cfg.PrintInterval = fl.cfg.PrintInterval
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = fl.cfg.LogLevel
	}
	if flags.Changed("metrics-addr") {
		cfg.MetricsAddr = fl.cfg.MetricsAddr
	}
	return cfg, cfg.Validate()
}

func (fl *cliFlags) run(cmd *cobra.Command, args []string) error {
	cfg, err := fl.settings(cmd)
	if err != nil {
		return err
	}
	if fl.dumpConfig {
		_, err := io.WriteString(cmd.OutOrStdout(), cfg.String())
		return err
	}

	log := newLogger(os.Stderr, cfg.LogLevel, fl.trace)

	inputs, err := openInputs(args)
	if err != nil {
		return err
	}

	opts := []Option{
		WithInput(inputs...),
		WithOutput(os.Stdout),
		WithIntervals(cfg.Intervals()),
		WithLogger(log),
		WithRegisterer(prometheus.DefaultRegisterer),
	}
	if fl.tee != "" {
		f, err := os.OpenFile(fl.tee, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return err
		}
		defer f.Close()
		opts = append(opts, WithTee(f))
	}
	calc := New(opts...)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if fl.timeout != 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, fl.timeout)
		defer cancel()
	}

	if cfg.MetricsAddr != "" {
		defer serveMetrics(cfg.MetricsAddr, log)()
	}

	// faults end single actors, not the process
	if err := calc.Run(ctx); err != nil {
		log.WithError(err).Debug("calculator stopped")
	}
	return nil
}

func newLogger(out *os.File, level string, trace bool) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(out)
	log.SetFormatter(&logrus.TextFormatter{
		DisableColors: !isatty.IsTerminal(out.Fd()) && !isatty.IsCygwinTerminal(out.Fd()),
		FullTimestamp: true,
	})
	if lvl, err := logrus.ParseLevel(level); err == nil {
		log.SetLevel(lvl)
	}
	if trace {
		log.SetLevel(logrus.TraceLevel)
	}
	return log
}

func openInputs(args []string) ([]io.Reader, error) {
	if len(args) == 0 {
		return []io.Reader{lineinput.Named("stdin", os.Stdin)}, nil
	}
	var rs []io.Reader
	for _, arg := range args {
		if arg == "-" {
			rs = append(rs, lineinput.Named("stdin", io.NopCloser(os.Stdin)))
			continue
		}
		f, err := os.Open(arg)
		if err != nil {
			for _, r := range rs {
				if cl, ok := r.(io.Closer); ok {
					cl.Close()
				}
			}
			return nil, err
		}
		rs = append(rs, f)
	}
	if last := args[len(args)-1]; last != "-" {
		rs = append(rs, lineinput.Named("stdin", os.Stdin))
	}
	return rs, nil
}

func serveMetrics(addr string, log *logrus.Logger) (shutdown func()) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{Addr: addr, Handler: mux}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Warn("metrics server failed")
		}
	}()
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		srv.Shutdown(ctx)
	}
}
