// Package metrics holds the prometheus collectors shared across the gateway.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ProviderRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name: "oncall_provider_request_duration_seconds",
		Help: "Duration of outbound requests to the roster/contact provider",
	}, []string{"action"})
	ProviderRequestErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "oncall_provider_request_errors_total",
		Help: "Total count of failed outbound requests to the roster/contact provider",
	}, []string{"action"})

	ResolutionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "oncall_resolutions_total",
		Help: "Total count of on-call resolutions by outcome status code",
	}, []string{"code"})

	AlertsTriggeredTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "oncall_alerts_triggered_total",
		Help: "Total count of alert requests handed to the alert sender",
	})
)
