package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	// OutcomeSuccess labels artifacts written in full.
	OutcomeSuccess = "success"
	// OutcomeError labels artifacts that failed to render or write.
	OutcomeError = "error"
)

var (
	artifactsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "mirador_fixtures",
			Name:      "artifacts_total",
			Help:      "Total number of fixture artifacts generated, partitioned by artifact and outcome.",
		},
		[]string{"artifact", "outcome"},
	)

	recordsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "mirador_fixtures",
			Name:      "records_total",
			Help:      "Modelled records emitted per artifact (stack trace lines excluded).",
		},
		[]string{"artifact"},
	)

	bytesWrittenTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "mirador_fixtures",
			Name:      "bytes_written_total",
			Help:      "Bytes written to disk per artifact.",
		},
		[]string{"artifact"},
	)

	artifactDurationSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "mirador_fixtures",
			Name:      "artifact_seconds",
			Help:      "Time spent rendering and writing one artifact.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"artifact"},
	)
)

// Register attaches fixture collectors to the supplied Prometheus registerer.
func Register(reg prometheus.Registerer) error {
	collectors := []prometheus.Collector{
		artifactsTotal,
		recordsTotal,
		bytesWrittenTotal,
		artifactDurationSeconds,
	}

	for _, collector := range collectors {
		if err := reg.Register(collector); err != nil {
			if _, ok := err.(prometheus.AlreadyRegisteredError); ok {
				continue
			}
			return err
		}
	}
	return nil
}

// ObserveArtifact records the outcome of one artifact. Records and bytes are
// only counted on success.
func ObserveArtifact(artifact string, records, bytes int, duration time.Duration, outcome string) {
	label := outcome
	if label != OutcomeError {
		label = OutcomeSuccess
	}
	artifactsTotal.WithLabelValues(artifact, label).Inc()
	if label == OutcomeSuccess {
		recordsTotal.WithLabelValues(artifact).Add(float64(records))
		bytesWrittenTotal.WithLabelValues(artifact).Add(float64(bytes))
	}
	if duration < 0 {
		duration = 0
	}
	artifactDurationSeconds.WithLabelValues(artifact).Observe(duration.Seconds())
}

// WriteTextfile dumps the gatherer in node-exporter textfile format.
func WriteTextfile(path string, g prometheus.Gatherer) error {
	return prometheus.WriteToTextfile(path, g)
}
