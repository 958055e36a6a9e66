package main

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/jcorbin/rpncalc/internal/evalstate"
)

type metrics struct {
	lines      prometheus.Counter
	readErrors prometheus.Counter
	enqueued   prometheus.Counter
	executed   prometheus.Counter
	displayed  prometheus.Counter

	// Labels: actor (input, worker, display)
	skips  *prometheus.CounterVec
	faults *prometheus.CounterVec

	queueDepth prometheus.Gauge
	stackDepth prometheus.Gauge
}

func newMetrics(reg prometheus.Registerer) *metrics {
	factory := promauto.With(reg)
	counter := func(name, help string) prometheus.Counter {
		return factory.NewCounter(prometheus.CounterOpts{
			Namespace: "rpncalc",
			Name:      name,
			Help:      help,
		})
	}
	return &metrics{
		lines:      counter("lines_read_total", "Input lines read."),
		readErrors: counter("read_errors_total", "Input reads that failed and were retried."),
		enqueued:   counter("commands_enqueued_total", "Commands appended to the queue."),
		executed:   counter("commands_executed_total", "Commands taken off the queue and executed."),
		displayed:  counter("values_displayed_total", "Values popped off the stack and printed."),

		skips: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "rpncalc",
			Name:      "poisoned_skips_total",
			Help:      "Actor cycles skipped because the shared state was poisoned.",
		}, []string{"actor"}),
		faults: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "rpncalc",
			Name:      "actor_faults_total",
			Help:      "Actors that ended abnormally.",
		}, []string{"actor"}),

		queueDepth: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "rpncalc",
			Name:      "queue_depth",
			Help:      "Commands waiting in the queue, as of the last critical section.",
		}),
		stackDepth: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "rpncalc",
			Name:      "stack_depth",
			Help:      "Values on the stack, as of the last critical section.",
		}),
	}
}

func (m *metrics) observe(st *evalstate.State) {
	m.queueDepth.Set(float64(st.QueueLen()))
	m.stackDepth.Set(float64(st.Stack.Len()))
}
