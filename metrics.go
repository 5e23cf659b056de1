package traversal

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/theoremus-urban-solutions/multimodal-traversal/gbfs"
)

// Metrics collects operational counters for the traversal service.
type Metrics struct {
	reg *prometheus.Registry

	Evaluations *prometheus.CounterVec // kind label
	Infeasible  *prometheus.CounterVec // kind label

	SnapshotAge      prometheus.Gauge
	SnapshotStations prometheus.Gauge
	Refreshes        prometheus.Counter
}

func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		reg: reg,
		Evaluations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "traversal_evaluations_total",
			Help: "Total edge evaluations by edge kind.",
		}, []string{"kind"}),
		Infeasible: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "traversal_infeasible_total",
			Help: "Total infeasible verdicts by edge kind.",
		}, []string{"kind"}),
		SnapshotAge: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "traversal_gbfs_snapshot_age_seconds",
			Help: "Age of the published availability snapshot at last refresh.",
		}),
		SnapshotStations: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "traversal_gbfs_snapshot_stations",
			Help: "Stations in the published availability snapshot.",
		}),
		Refreshes: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "traversal_gbfs_refreshes_total",
			Help: "Total availability snapshot publications.",
		}),
	}
	reg.MustRegister(m.Evaluations, m.Infeasible, m.SnapshotAge, m.SnapshotStations, m.Refreshes)
	return m
}

// Handler serves the collected metrics.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{})
}

func (m *Metrics) observe(e Edge, out Outcome) {
	kind := e.Kind.String()
	m.Evaluations.WithLabelValues(kind).Inc()
	if !out.Feasible {
		m.Infeasible.WithLabelValues(kind).Inc()
	}
}

// ObservePublish records one snapshot publication; wire it to the
// refresher's OnPublish hook.
func (m *Metrics) ObservePublish(s *gbfs.Snapshot) {
	m.Refreshes.Inc()
	m.SnapshotStations.Set(float64(s.Stations()))
	m.SnapshotAge.Set(s.Age(time.Now()).Seconds())
}
