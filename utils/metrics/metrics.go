// Package metrics provides Prometheus metrics for feedcard.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "feedcard"

// Image resolution outcomes.
const (
	ImageResolved    = "resolved"
	ImageCacheHit    = "cache_hit"
	ImageFetchError  = "fetch_error"
	ImageUnpadError  = "unpad_error"
	ImageDecodeError = "decode_error"
	ImageDropped     = "dropped"
)

var (
	// CardsBuiltTotal counts layout builds by card type and outcome.
	CardsBuiltTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cards_built_total",
			Help:      "Total number of card layouts built",
		},
		[]string{"card_type", "status"},
	)

	// CardBuildDuration measures synchronous card build time.
	CardBuildDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "card_build_duration_seconds",
			Help:      "Duration of card layout builds in seconds",
			Buckets:   []float64{.00005, .0001, .00025, .0005, .001, .0025, .005, .01},
		},
		[]string{"card_type"},
	)

	// ImageResolveTotal counts image resolutions by outcome.
	ImageResolveTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "image_resolve_total",
			Help:      "Total number of image resolutions by result",
		},
		[]string{"result"},
	)

	// ImageFetchDuration measures provider fetch time.
	ImageFetchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "image_fetch_duration_seconds",
			Help:      "Duration of image fetches in seconds",
			Buckets:   prometheus.DefBuckets,
		},
	)

	// ImagesInFlight tracks resolutions that have not finished.
	ImagesInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "images_in_flight",
			Help:      "Number of image resolutions in progress",
		},
	)

	// ClicksTotal counts cell clicks by classification.
	ClicksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "clicks_total",
			Help:      "Total number of cell clicks",
		},
		[]string{"classification"},
	)

	// MilestonesTotal counts session visit milestones reported.
	MilestonesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "visit_milestones_total",
			Help:      "Total number of session visit milestones reported",
		},
	)

	// ErrorsTotal counts errors by type.
	ErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "errors_total",
			Help:      "Total number of errors",
		},
		[]string{"operation", "error_type"},
	)
)

// RecordCardBuild records one layout build.
func RecordCardBuild(cardType, status string, duration time.Duration) {
	CardsBuiltTotal.WithLabelValues(cardType, status).Inc()
	CardBuildDuration.WithLabelValues(cardType).Observe(duration.Seconds())
}

// RecordImage records an image resolution outcome.
func RecordImage(result string) {
	ImageResolveTotal.WithLabelValues(result).Inc()
}

func RecordImageFetch(duration time.Duration) {
	ImageFetchDuration.Observe(duration.Seconds())
}

func RecordClick(classification string) {
	ClicksTotal.WithLabelValues(classification).Inc()
}

func RecordMilestone() {
	MilestonesTotal.Inc()
}

// RecordError records an error.
func RecordError(operation, errorType string) {
	ErrorsTotal.WithLabelValues(operation, errorType).Inc()
}
