package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Participation outcomes.
const (
	ResultOK        = "ok"
	ResultDuplicate = "duplicate"
	ResultNotFound  = "not_found"
	ResultError     = "error"
)

var (
	Participation = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "campus_events_participation_total",
			Help: "Registration and bookmark attempts by outcome",
		},
		[]string{"kind", "result"},
	)

	RegistrationsCompleted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "campus_events_registrations_completed_total",
			Help: "Registrations moved to Completed after their event passed",
		},
	)

	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "campus_events_http_request_duration_seconds",
			Help:    "HTTP request duration by route pattern",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)

	RateLimited = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "campus_events_rate_limited_total",
			Help: "Requests rejected by the participation rate limiter",
		},
	)
)
