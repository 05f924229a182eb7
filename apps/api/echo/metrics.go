package echoapi

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type metrics struct {
	requests  *prometheus.CounterVec
	upserts   *prometheus.CounterVec
	generated prometheus.Counter
	updates   prometheus.Counter
}

func newMetrics(registry *prometheus.Registry) *metrics {
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(registry)
	return &metrics{
		requests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "classbook",
			Name:      "http_requests_total",
			Help:      "HTTP requests by route and status.",
		}, []string{"method", "route", "status"}),
		upserts: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "classbook",
			Name:      "relationship_upserts_total",
			Help:      "Relationship upserts by outcome.",
		}, []string{"outcome"}),
		generated: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "classbook",
			Name:      "students_generated_total",
			Help:      "Students created by bulk generation.",
		}),
		updates: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "classbook",
			Name:      "student_updates_total",
			Help:      "Student records edited.",
		}),
	}
}
