// Package metrics provides internal metrics collection for the plugin.
// This package is internal and should not be imported by external projects.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome labels for generation counters.
const (
	OutcomeSuccess = "success"
	OutcomeError   = "error"
)

// Collector tracks generation activity per capability kind (image, video).
type Collector struct {
	generationsTotal   *prometheus.CounterVec
	generationDuration *prometheus.HistogramVec
	videoPollsTotal    prometheus.Counter
	downloadFallbacks  prometheus.Counter
}

// NewCollector creates a Collector registered on the given registerer.
func NewCollector(namespace string, reg prometheus.Registerer) *Collector {
	factory := promauto.With(reg)

	return &Collector{
		generationsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "generations_total",
				Help:      "Total number of generation requests by kind and outcome",
			},
			[]string{"kind", "outcome"},
		),
		generationDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "generation_duration_seconds",
				Help:      "End-to-end generation duration in seconds by kind",
				Buckets:   prometheus.ExponentialBuckets(0.5, 2, 10),
			},
			[]string{"kind"},
		),
		videoPollsTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "video_polls_total",
				Help:      "Total number of video status polls issued",
			},
		),
		downloadFallbacks: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "download_fallbacks_total",
				Help:      "Video downloads that fell back to the remote URL",
			},
		),
	}
}

// ObserveGeneration records one finished generation request.
func (c *Collector) ObserveGeneration(kind string, err error, duration time.Duration) {
	outcome := OutcomeSuccess
	if err != nil {
		outcome = OutcomeError
	}
	c.generationsTotal.WithLabelValues(kind, outcome).Inc()
	c.generationDuration.WithLabelValues(kind).Observe(duration.Seconds())
}

// IncVideoPoll counts one video status poll.
func (c *Collector) IncVideoPoll() {
	c.videoPollsTotal.Inc()
}

// IncDownloadFallback counts one download-failure fallback to a remote URL.
func (c *Collector) IncDownloadFallback() {
	c.downloadFallbacks.Inc()
}
