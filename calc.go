package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dlsniper/debugger"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/jcorbin/rpncalc/internal/evalstate"
	"github.com/jcorbin/rpncalc/internal/flushio"
	"github.com/jcorbin/rpncalc/internal/lineinput"
	"github.com/jcorbin/rpncalc/internal/panicerr"
)

// Intervals are the pauses each actor takes after every cycle.
type Intervals struct {
	Input time.Duration
	Eval  time.Duration
	Print time.Duration
}

// DefaultIntervals pause input and evaluation for one second, and display
// for two.
var DefaultIntervals = Intervals{
	Input: time.Second,
	Eval:  time.Second,
	Print: 2 * time.Second,
}

// Calc is a calculator: three actors around one shared evaluation state.
type Calc struct {
	shared *evalstate.Shared

	in        lineinput.Input
	out       flushio.WriteFlusher
	intervals Intervals

	session string
	log     *logrus.Entry
	reg     prometheus.Registerer
	metrics *metrics

	exit func(code int)
	stop context.CancelFunc
}

// ActorError reports the abnormal end of one actor.
type ActorError struct {
	Actor string
	Err   error
}

func (err *ActorError) Error() string { return fmt.Sprintf("%v actor: %v", err.Actor, err.Err) }
func (err *ActorError) Unwrap() error { return err.Err }

type actor struct {
	name string
	run  func(ctx context.Context, log *logrus.Entry) error
}

func (calc *Calc) actors() []actor {
	return []actor{
		{"input", calc.input},
		{"worker", calc.work},
		{"display", calc.display},
	}
}

func (calc *Calc) run(ctx context.Context) error {
	ctx, calc.stop = context.WithCancel(ctx)
	defer calc.stop()

	calc.log.WithFields(logrus.Fields{
		"input_interval": calc.intervals.Input,
		"eval_interval":  calc.intervals.Eval,
		"print_interval": calc.intervals.Print,
	}).Debug("starting")

	// no group context: one actor ending must not stop the others
	var g errgroup.Group
	for _, a := range calc.actors() {
		a := a
		g.Go(func() error { return calc.supervise(ctx, a) })
	}
	return g.Wait()
}

func (calc *Calc) supervise(ctx context.Context, a actor) error {
	log := calc.log.WithField("actor", a.name)
	err := panicerr.Recover(a.name, func() error {
		debugger.SetLabels(func() []string {
			return []string{"actor", a.name, "session", calc.session}
		})
		return a.run(ctx, log)
	})
	if err == nil {
		log.Debug("stopped")
		return nil
	}

	calc.metrics.faults.WithLabelValues(a.name).Inc()
	log.WithError(err).Debug("faulted")
	if stack := panicerr.PanicStack(err); stack != "" {
		log.Tracef("panic stack: %s", stack)
	}
	return &ActorError{Actor: a.name, Err: err}
}

// locked runs f under the shared lock; a poisoned lock skips the cycle.
func (calc *Calc) locked(log *logrus.Entry, name string, f func(st *evalstate.State) error) error {
	err := calc.shared.Do(func(st *evalstate.State) error {
		defer calc.metrics.observe(st)
		return f(st)
	})
	if errors.Is(err, evalstate.ErrPoisoned) {
		calc.metrics.skips.WithLabelValues(name).Inc()
		log.Trace("shared state poisoned, skipping cycle")
		return nil
	}
	return err
}

// pause waits for d, returning false if ctx is done first.
func pause(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}

func (calc *Calc) terminate() {
	calc.log.Debug("terminate")
	calc.exit(0)
	// only reached when exit has been replaced, e.g. under test
	calc.stop()
}

func (calc *Calc) close() error {
	return calc.out.Flush()
}

var defaultOptions = Options(
	WithInput(),
	WithOutput(io.Discard),
	WithIntervals(DefaultIntervals),
	WithLogger(nil),
	WithExit(os.Exit),
)

func newSession() string { return uuid.NewString() }
