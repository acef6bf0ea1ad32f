package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics exposes counters and histograms tracking pass activity across a
// Snapshot's lifetime: how many merges each pass performs, how long each
// pass takes, and the final group/repeat-class counts.
type Metrics struct {
	passDuration   *prometheus.HistogramVec
	mergesTotal    *prometheus.CounterVec
	groupCount     prometheus.Gauge
	repeatClasses  prometheus.Gauge
}

// NewMetrics registers a fresh Metrics set against reg. Pass
// prometheus.NewRegistry() in tests to avoid colliding with the global
// default registry across repeated runs.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		passDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "partition_pass_duration_seconds",
				Help:    "Wall-clock duration of each partitioning pass.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"pass"},
		),
		mergesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "partition_merges_total",
				Help: "Total Group merges performed, by pass.",
			},
			[]string{"pass"},
		),
		groupCount: factory.NewGauge(prometheus.GaugeOpts{
			Name: "partition_group_count",
			Help: "Number of Groups remaining after the pipeline finished.",
		}),
		repeatClasses: factory.NewGauge(prometheus.GaugeOpts{
			Name: "partition_repeat_classes",
			Help: "Number of repeat classes kept after cleanup.",
		}),
	}
}

// ObservePassDuration records one pass's wall-clock duration in seconds.
func (m *Metrics) ObservePassDuration(pass string, seconds float64) {
	m.passDuration.WithLabelValues(pass).Observe(seconds)
}

// AddMerges increments the merge counter for pass by n.
func (m *Metrics) AddMerges(pass string, n int) {
	if n <= 0 {
		return
	}
	m.mergesTotal.WithLabelValues(pass).Add(float64(n))
}

// SetFinalCounts records the final Group and repeat-class counts.
func (m *Metrics) SetFinalCounts(groups, repeats int) {
	m.groupCount.Set(float64(groups))
	m.repeatClasses.Set(float64(repeats))
}
