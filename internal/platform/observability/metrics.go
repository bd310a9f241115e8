package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Label values for RequestsTotal.
const (
	StatusOK          = "ok"
	StatusBadRequest  = "bad_request"
	StatusRateLimited = "rate_limited"
	StatusNotAllowed  = "method_not_allowed"
)

var (
	RequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tweet_entities_requests_total",
		Help: "The total number of API requests by outcome",
	}, []string{"status"})

	EntitiesExtracted = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tweet_entities_extracted_total",
		Help: "The total number of extracted entities by kind",
	}, []string{"kind"})

	ExtractDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "tweet_entities_extract_duration_seconds",
		Help:    "Duration of a single extraction call",
		Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
	})

	PatternsCompiled = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "tweet_entities_patterns_compiled",
		Help: "Number of compiled patterns in the active pattern set",
	})
)
