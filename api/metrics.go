package api

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

const metricPrefix = "calendar_"

const (
	resultSuccess = "success"
	resultError   = "error"
)

var (
	registerOnce sync.Once

	providerQueries *prometheus.CounterVec
	eventsServed    prometheus.Counter
	eventsStored    prometheus.Counter
)

// initMetrics registers API metrics with the default registry. Safe to call
// from every handler constructor.
func initMetrics() {
	registerOnce.Do(func() {
		providerQueries = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "provider_queries_total",
				Help: "Total provider fan-out queries by result",
			},
			[]string{"result"},
		)
		eventsServed = prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: metricPrefix + "events_served_total",
				Help: "Total events returned to clients",
			},
		)
		eventsStored = prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: metricPrefix + "events_stored_total",
				Help: "Total events written to the store",
			},
		)

		prometheus.MustRegister(providerQueries, eventsServed, eventsStored)
	})
}
