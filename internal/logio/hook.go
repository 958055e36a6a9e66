// Package logio routes logrus entries to printf-style sinks, like
// testing.T.Logf.
package logio

import (
	"bytes"
	"io"
	"sync"

	"github.com/sirupsen/logrus"
)

// Hook passes every fired entry through Logf, one call per formatted line.
type Hook struct {
	Logf      func(string, ...interface{})
	Formatter logrus.Formatter

	mu sync.Mutex
}

// Levels returns every level; filtering is left to the logger.
func (h *Hook) Levels() []logrus.Level { return logrus.AllLevels }

// Fire formats entry, holding a lock so that hooks fired from many
// goroutines neither interleave lines nor share formatter state.
func (h *Hook) Fire(entry *logrus.Entry) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.Formatter == nil {
		h.Formatter = textFormatter()
	}
	b, err := h.Formatter.Format(entry)
	if err != nil {
		return err
	}
	for len(b) > 0 {
		line := b
		if i := bytes.IndexByte(b, '\n'); i >= 0 {
			line, b = b[:i], b[i+1:]
		} else {
			b = nil
		}
		h.Logf("%s", line)
	}
	return nil
}

// NewLogger returns a logrus logger whose entries at level or above are
// emitted through logf as untimestamped text lines.
func NewLogger(logf func(string, ...interface{}), level logrus.Level) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	log.SetLevel(level)
	log.AddHook(&Hook{Logf: logf, Formatter: textFormatter()})
	return log
}

func textFormatter() logrus.Formatter {
	return &logrus.TextFormatter{
		DisableColors:    true,
		DisableTimestamp: true,
	}
}
