package main

import (
	"context"
	"io"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"

	"github.com/jcorbin/rpncalc/internal/evalstate"
)

// New creates a calculator; it does nothing until Run.
func New(opts ...Option) *Calc {
	calc := Calc{
		shared:  evalstate.New(),
		session: newSession(),
	}
	defaultOptions.apply(&calc)
	Options(opts...).apply(&calc)
	if calc.reg == nil {
		calc.reg = prometheus.NewRegistry()
	}
	calc.metrics = newMetrics(calc.reg)
	return &calc
}

// Run runs the input, worker and display actors until ctx is done, a quit
// command is executed, or every actor has ended. Actor faults do not stop the
// other actors; the first one is returned as an *ActorError once all have
// ended. Output is flushed before returning; input streams are closed by
// the line reader once it sees the stop, which may be after Run returns if
// a read is still blocked.
func (calc *Calc) Run(ctx context.Context) (err error) {
	defer func() {
		if cerr := calc.close(); err == nil {
			err = cerr
		}
	}()
	return calc.run(ctx)
}

// Session returns the identifier that tags this calculator's log entries.
func (calc *Calc) Session() string { return calc.session }

// WithInput sets the input streams, read in order; lines keep being read from
// the last one even after it reports end of file.
func WithInput(rs ...io.Reader) Option { return inputOption(rs) }

// WithOutput sets where displayed values are written.
func WithOutput(w io.Writer) Option { return outputOption{w} }

// WithTee additionally writes displayed values to w, alongside the output
// set so far. A later WithOutput replaces the combined writer, dropping w;
// pass WithTee after WithOutput.
func WithTee(w io.Writer) Option { return teeOption{w} }

// WithIntervals sets all actor pause intervals.
func WithIntervals(iv Intervals) Option { return intervalsOption(iv) }

func WithInputInterval(d time.Duration) Option { return inputIntervalOption(d) }
func WithEvalInterval(d time.Duration) Option  { return evalIntervalOption(d) }
func WithPrintInterval(d time.Duration) Option { return printIntervalOption(d) }

// WithLogger sets the logger; nil discards all logging.
func WithLogger(log *logrus.Logger) Option { return loggerOption{log} }

// WithRegisterer registers the calculator's metrics with reg, rather than
// with a private registry.
func WithRegisterer(reg prometheus.Registerer) Option { return registererOption{reg} }

// WithExit replaces os.Exit as the quit command's way of ending the process.
// If exit returns, Run stops all actors and returns nil instead.
func WithExit(exit func(code int)) Option { return exitOption(exit) }
