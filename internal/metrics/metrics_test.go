package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestSpinCounters(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.SpinStarted("clockwise")
	m.SpinStarted("counterclockwise")
	m.SpinSettled(1.2, false)

	if got := testutil.ToFloat64(m.SpinsStarted.WithLabelValues("clockwise")); got != 1 {
		t.Errorf("clockwise spins = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.SpinsActive); got != 1 {
		t.Errorf("active spins = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.SpinsSettled); got != 1 {
		t.Errorf("settled spins = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.LandMismatches); got != 0 {
		t.Errorf("mismatches = %v, want 0", got)
	}

	m.SpinSettled(3, true)
	if got := testutil.ToFloat64(m.LandMismatches); got != 1 {
		t.Errorf("mismatches = %v, want 1", got)
	}
}

func TestNewOnSeparateRegistries(t *testing.T) {
	New(prometheus.NewRegistry())
	New(prometheus.NewRegistry())
}
