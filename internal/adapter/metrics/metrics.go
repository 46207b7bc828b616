// Package metrics defines the Prometheus instruments and the /metrics
// handler.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// PostsCreated counts successfully persisted posts.
	PostsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ripple_posts_created_total",
		Help: "Total posts created",
	})

	// SentimentAssigned counts classifications by resulting label, for posts
	// and comments alike.
	SentimentAssigned = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ripple_sentiment_assigned_total",
		Help: "Total sentiment classifications by label",
	}, []string{"label"})

	// InteractionsRecorded counts ledger writes by interaction type.
	InteractionsRecorded = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ripple_interactions_recorded_total",
		Help: "Total like/comment interactions recorded",
	}, []string{"type"})

	// CounterReconciliations counts ledger counter repairs after a failed
	// increment.
	CounterReconciliations = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ripple_counter_reconciliations_total",
		Help: "Total post counter reconciliations from interaction records",
	})
)

// Handler serves the default Prometheus registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
