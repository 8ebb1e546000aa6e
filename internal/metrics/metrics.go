package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const labelDirection = "direction"

type Metrics struct {
	WheelsCreated  prometheus.Counter
	WheelsLive     prometheus.Gauge
	SpinsStarted   *prometheus.CounterVec
	SpinsSettled   prometheus.Counter
	SpinsActive    prometheus.Gauge
	LandMismatches prometheus.Counter
	SpinSeconds    prometheus.Histogram
	Watchers       prometheus.Gauge
}

// New registers the wheel metrics on reg. Pass prometheus.DefaultRegisterer
// in production and a fresh registry in tests.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		WheelsCreated: f.NewCounter(prometheus.CounterOpts{
			Name: "wheel_created_total",
			Help: "Wheels created",
		}),
		WheelsLive: f.NewGauge(prometheus.GaugeOpts{
			Name: "wheel_live",
			Help: "Wheels loaded in memory",
		}),
		SpinsStarted: f.NewCounterVec(prometheus.CounterOpts{
			Name: "wheel_spins_started_total",
			Help: "Spins started",
		}, []string{labelDirection}),
		SpinsSettled: f.NewCounter(prometheus.CounterOpts{
			Name: "wheel_spins_settled_total",
			Help: "Spins that reached their target",
		}),
		SpinsActive: f.NewGauge(prometheus.GaugeOpts{
			Name: "wheel_spins_active",
			Help: "Spins currently animating",
		}),
		LandMismatches: f.NewCounter(prometheus.CounterOpts{
			Name: "wheel_land_mismatch_total",
			Help: "Spins whose landed segment differs from the armed winner",
		}),
		SpinSeconds: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "wheel_spin_seconds",
			Help:    "Wall time from arm to settle",
			Buckets: []float64{0.5, 1, 2, 3, 5, 8, 10, 15, 20, 30},
		}),
		Watchers: f.NewGauge(prometheus.GaugeOpts{
			Name: "wheel_watchers",
			Help: "Open event streams",
		}),
	}
}

func (m *Metrics) SpinStarted(direction string) {
	m.SpinsStarted.WithLabelValues(direction).Inc()
	m.SpinsActive.Inc()
}

func (m *Metrics) SpinSettled(seconds float64, mismatch bool) {
	m.SpinsSettled.Inc()
	m.SpinsActive.Dec()
	m.SpinSeconds.Observe(seconds)
	if mismatch {
		m.LandMismatches.Inc()
	}
}
