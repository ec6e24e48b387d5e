package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "booking_admin_http_requests_total",
		Help: "Dashboard HTTP requests",
	}, []string{"method", "route", "status"})

	UpstreamRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "booking_admin_upstream_requests_total",
		Help: "Requests sent to the bookings API by endpoint and outcome",
	}, []string{"endpoint", "outcome"})

	UpstreamRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "booking_admin_upstream_request_duration_seconds",
		Help:    "Bookings API round-trip time",
		Buckets: prometheus.DefBuckets,
	}, []string{"endpoint"})

	MutationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "booking_admin_mutations_total",
		Help: "Operator mutations by action and outcome",
	}, []string{"action", "outcome"})

	ActiveSessions = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "booking_admin_active_sessions",
		Help: "Operator sessions currently held in memory",
	})
)
