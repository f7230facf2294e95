package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// QuotesCreated counts successfully created quotes.
	QuotesCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "quotes_created_total",
		Help: "Number of quotes successfully created.",
	})

	// QuoteFailures counts failed quote requests by error kind.
	QuoteFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "quote_failures_total",
		Help: "Number of failed quote requests by error kind.",
	}, []string{"kind"})

	// AdminAPIDuration observes the duration of Admin API GraphQL calls.
	AdminAPIDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "shopify_admin_api_request_duration_seconds",
		Help:    "Duration of Shopify Admin API GraphQL requests.",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation"})
)

// Handler exposes the default Prometheus registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
