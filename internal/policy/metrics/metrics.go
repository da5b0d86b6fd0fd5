package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the policy module. Tracks snapshot
// ingest volume and the latency of the derivation paths the UI blocks on.
type Metrics struct {
	SnapshotsIngested    *prometheus.CounterVec
	BrickRoadErrors      prometheus.Counter
	BrickRoadMapDuration prometheus.Histogram
	InviteListDuration   prometheus.Histogram
}

// New creates a new Metrics instance with all policy module metrics registered.
func New() *Metrics {
	return &Metrics{
		SnapshotsIngested: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "policyhub_snapshots_ingested_total",
			Help: "Total number of snapshots ingested, by kind",
		}, []string{"kind"}),
		BrickRoadErrors: promauto.NewCounter(prometheus.CounterOpts{
			Name: "policyhub_brick_road_errors_total",
			Help: "Total number of policies that derived an error status",
		}),
		BrickRoadMapDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "policyhub_brick_road_map_duration_seconds",
			Help:    "Duration of full brick-road map derivations",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
		InviteListDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "policyhub_invite_candidates_duration_seconds",
			Help:    "Duration of invite-candidate derivations",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
	}
}

// IncrementSnapshotsIngested records an accepted snapshot by kind
// (policy, members, details, tags).
func (m *Metrics) IncrementSnapshotsIngested(kind string) {
	m.SnapshotsIngested.WithLabelValues(kind).Inc()
}

// IncrementBrickRoadErrors records policies that derived an error status.
func (m *Metrics) IncrementBrickRoadErrors(count int) {
	m.BrickRoadErrors.Add(float64(count))
}

// ObserveBrickRoadMap records the duration of a brick-road map derivation.
// Call with time.Now() at the start of the operation.
func (m *Metrics) ObserveBrickRoadMap(start time.Time) {
	m.BrickRoadMapDuration.Observe(time.Since(start).Seconds())
}

// ObserveInviteList records the duration of an invite-candidate derivation.
// Call with time.Now() at the start of the operation.
func (m *Metrics) ObserveInviteList(start time.Time) {
	m.InviteListDuration.Observe(time.Since(start).Seconds())
}
