package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/jcorbin/rpncalc/internal/evalstate"
	"github.com/jcorbin/rpncalc/internal/lineinput"
	"github.com/jcorbin/rpncalc/internal/rpn"
)

type lineRead struct {
	line lineinput.Line
	err  error
}

// readLines feeds input lines to the input actor, so that it can stop
// while a read is still blocked. It alone touches calc.in, closing it once
// ctx is done; a read blocked at that point delays the close until it returns.
func (calc *Calc) readLines(ctx context.Context, reads chan<- lineRead) {
	defer func() {
		if err := calc.in.Close(); err != nil {
			calc.log.WithError(err).Debug("closing input failed")
		}
	}()
	for {
		line, err := calc.in.ReadLine()
		select {
		case reads <- lineRead{line, err}:
		case <-ctx.Done():
			return
		}
	}
}

func (calc *Calc) input(ctx context.Context, log *logrus.Entry) error {
	reads := make(chan lineRead)
	go calc.readLines(ctx, reads)

	for {
		var rd lineRead
		select {
		case <-ctx.Done():
			return nil
		case rd = <-reads:
		}

		// end of input reads as an empty line; other failures retry at once
		if rd.err != nil && rd.err != io.EOF {
			calc.metrics.readErrors.Inc()
			log.WithError(rd.err).Trace("read failed")
			continue
		}
		if rd.err == nil {
			calc.metrics.lines.Inc()
			log.Tracef("read %v", rd.line)
		}

		cmds, err := rpn.Tokenize(rd.line.Text)
		if err != nil {
			return fmt.Errorf("%v: %w", rd.line.Location, err)
		}

		if err := calc.locked(log, "input", func(st *evalstate.State) error {
			st.Enqueue(cmds...)
			calc.metrics.enqueued.Add(float64(len(cmds)))
			return nil
		}); err != nil {
			return err
		}

		if !pause(ctx, calc.intervals.Input) {
			return nil
		}
	}
}

func (calc *Calc) work(ctx context.Context, log *logrus.Entry) error {
	for {
		n := 0
		err := calc.locked(log, "worker", func(st *evalstate.State) error {
			defer func() { calc.metrics.executed.Add(float64(n)) }()
			for {
				cmd, ok := st.Dequeue()
				if !ok {
					return nil
				}
				log.Tracef("exec %v -- %v", cmd, st.Stack)
				err := cmd.Execute(&st.Stack)
				n++
				if errors.Is(err, rpn.ErrTerminate) {
					calc.terminate()
				}
				if err != nil {
					return err
				}
			}
		})
		if errors.Is(err, rpn.ErrTerminate) {
			return nil
		} else if err != nil {
			return err
		}

		if !pause(ctx, calc.intervals.Eval) {
			return nil
		}
	}
}

func (calc *Calc) display(ctx context.Context, log *logrus.Entry) error {
	var buf []byte
	for {
		n := 0
		err := calc.locked(log, "display", func(st *evalstate.State) error {
			defer func() { calc.metrics.displayed.Add(float64(n)) }()
			for {
				val, ok := st.Stack.Pop()
				if !ok {
					return nil
				}
				buf = strconv.AppendInt(buf[:0], val, 10)
				buf = append(buf, '\n')
				if _, err := calc.out.Write(buf); err != nil {
					return err
				}
				n++
			}
		})
		if err == nil && n > 0 {
			err = calc.out.Flush()
		}
		if err != nil {
			return err
		}

		if !pause(ctx, calc.intervals.Print) {
			return nil
		}
	}
}
