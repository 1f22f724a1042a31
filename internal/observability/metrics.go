package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	sessionsRecordedCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "tracker",
		Subsystem: "sessions",
		Name:      "recorded_total",
		Help:      "Number of workout sessions computed and persisted, by kind.",
	}, []string{"kind"})

	invalidPackagesCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "tracker",
		Subsystem: "sessions",
		Name:      "invalid_packages_total",
		Help:      "Number of sensor packages rejected by the dispatcher, by source.",
	}, []string{"source"})

	lastSessionGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "tracker",
		Subsystem: "sessions",
		Name:      "last_persisted_timestamp_seconds",
		Help:      "Unix timestamp of the most recent session persisted to Postgres.",
	})
)

func init() {
	prometheus.MustRegister(sessionsRecordedCounter, invalidPackagesCounter, lastSessionGauge)
}

// RecordSessionPersisted updates the per-kind counter and the persistence
// watermark gauge.
func RecordSessionPersisted(kind string, ts time.Time) {
	sessionsRecordedCounter.WithLabelValues(kind).Inc()
	if ts.IsZero() {
		return
	}
	lastSessionGauge.Set(float64(ts.Unix()))
}

// RecordInvalidPackage counts a sensor package the dispatcher rejected.
func RecordInvalidPackage(source string) {
	invalidPackagesCounter.WithLabelValues(source).Inc()
}
