package services

// Prometheus instrumentation for the service, exposed at /metrics.

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// counts requests per endpoint
	requestsServed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fairifier_requests_total",
		Help: "The number of requests served, by endpoint.",
	}, []string{"endpoint"})

	// counts enrichment runs created
	runsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "fairifier_runs_created_total",
		Help: "The number of enrichment runs created.",
	})

	// counts records validated via the synchronous endpoint
	recordsValidated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "fairifier_records_validated_total",
		Help: "The number of records validated on request.",
	})
)
