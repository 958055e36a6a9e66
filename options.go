package main

import (
	"io"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"

	"github.com/jcorbin/rpncalc/internal/flushio"
	"github.com/jcorbin/rpncalc/internal/lineinput"
)

// Option configures a Calc under construction.
type Option interface{ apply(calc *Calc) }

type options []Option

// Options combines any number of options into one, applied in order.
func Options(opts ...Option) Option {
	var all options
	for _, opt := range opts {
		switch impl := opt.(type) {
		case nil:
		case options:
			all = append(all, impl...)
		default:
			all = append(all, opt)
		}
	}
	return all
}

func (opts options) apply(calc *Calc) {
	for _, opt := range opts {
		opt.apply(calc)
	}
}

type inputOption []io.Reader
type outputOption struct{ io.Writer }
type teeOption struct{ io.Writer }
type intervalsOption Intervals
type loggerOption struct{ *logrus.Logger }
type registererOption struct{ prometheus.Registerer }
type exitOption func(code int)

func (in inputOption) apply(calc *Calc) {
	calc.in.Close()
	calc.in = lineinput.Input{Queue: append([]io.Reader(nil), in...)}
}

func (o outputOption) apply(calc *Calc) {
	if calc.out != nil {
		calc.out.Flush()
	}
	calc.out = flushio.New(o.Writer)
}

func (o teeOption) apply(calc *Calc) {
	calc.out = flushio.Tee(calc.out, flushio.New(o.Writer))
}

func (iv intervalsOption) apply(calc *Calc) {
	calc.intervals = Intervals(iv)
}

func (o loggerOption) apply(calc *Calc) {
	log := o.Logger
	if log == nil {
		log = logrus.New()
		log.SetOutput(io.Discard)
	}
	calc.log = log.WithField("session", calc.session)
}

func (o registererOption) apply(calc *Calc) {
	calc.reg = o.Registerer
}

func (exit exitOption) apply(calc *Calc) {
	calc.exit = exit
}

type inputIntervalOption time.Duration
type evalIntervalOption time.Duration
type printIntervalOption time.Duration

func (d inputIntervalOption) apply(calc *Calc) { calc.intervals.Input = time.Duration(d) }
func (d evalIntervalOption) apply(calc *Calc)  { calc.intervals.Eval = time.Duration(d) }
func (d printIntervalOption) apply(calc *Calc) { calc.intervals.Print = time.Duration(d) }
