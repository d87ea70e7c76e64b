package monitor

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// samplesTotal counts monitor points sampled. Labels: monitor
	samplesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "cartprobe",
		Subsystem: "monitor",
		Name:      "samples_total",
		Help:      "Total monitor point samples taken",
	}, []string{"monitor"})

	// sampleErrors counts failed group samples. Labels: monitor
	sampleErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "cartprobe",
		Subsystem: "monitor",
		Name:      "sample_errors_total",
		Help:      "Total monitor group samples that returned an error",
	}, []string{"monitor"})

	// pointStatus counts monitor points by material status at construction.
	// Labels: status (ok, unexpected_solid, unexpected_fluid)
	pointStatus = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "cartprobe",
		Subsystem: "monitor",
		Name:      "point_status_total",
		Help:      "Monitor points by material status of the containing cell",
	}, []string{"status"})

	sampleDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "cartprobe",
		Subsystem: "monitor",
		Name:      "sample_duration_seconds",
		Help:      "Time to sample every monitor group for one step",
		Buckets:   prometheus.ExponentialBuckets(1e-5, 4, 10),
	})
)
