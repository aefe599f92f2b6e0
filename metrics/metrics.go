// Package metrics exposes conversion counters on a private prometheus
// registry.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	registry = prometheus.NewRegistry()

	conversionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fileconv_conversions_total",
			Help: "Number of completed conversions.",
		},
		[]string{"input", "output"},
	)

	conversionErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fileconv_conversion_errors_total",
			Help: "Number of failed conversions.",
		},
		[]string{"reason"},
	)
)

func init() {
	registry.MustRegister(
		conversionsTotal,
		conversionErrors,
		collectors.NewBuildInfoCollector(),
	)
}

// Handler serves the exposition endpoint.
func Handler() http.Handler {
	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
}

// ConversionProcessed counts one finished conversion.
func ConversionProcessed(input, output string) {
	conversionsTotal.WithLabelValues(input, output).Inc()
}

// ConversionFailed counts one failed conversion by error kind.
func ConversionFailed(reason string) {
	conversionErrors.WithLabelValues(reason).Inc()
}
