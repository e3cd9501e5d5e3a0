package telemetry

import (
	"math"
	"testing"
)

func TestZoomCollectorSummary(t *testing.T) {
	c := NewZoomCollector()
	c.RecordFit("converged", 40)
	c.RecordFit("converged", 60)
	c.RecordFit("stalled", 200)

	s := c.Summarize()
	if s.Fits != 3 || s.Converged != 2 || s.Stalled != 1 || s.Capped != 0 {
		t.Errorf("counts = %+v", s)
	}
	if math.Abs(s.MeanIters-100) > 1e-9 {
		t.Errorf("MeanIters = %v, want 100", s.MeanIters)
	}
	if s.MaxIterations != 200 {
		t.Errorf("MaxIterations = %v, want 200", s.MaxIterations)
	}
}

func TestZoomCollectorNilAndEmpty(t *testing.T) {
	var c *ZoomCollector
	c.RecordFit("converged", 10)
	if c.Fits() != 0 {
		t.Error("nil collector should drop records")
	}
	if s := c.Summarize(); s.Fits != 0 {
		t.Errorf("nil summary = %+v", s)
	}

	empty := NewZoomCollector()
	if s := empty.Summarize(); s.Fits != 0 || s.MeanIters != 0 {
		t.Errorf("empty summary = %+v", s)
	}
}

func TestSingleFitHasZeroDeviation(t *testing.T) {
	c := NewZoomCollector()
	c.RecordFit("max-iterations", 200)
	s := c.Summarize()
	if s.Capped != 1 {
		t.Errorf("Capped = %d, want 1", s.Capped)
	}
	if s.StdDevIters != 0 {
		t.Errorf("StdDevIters = %v, want 0 for a single run", s.StdDevIters)
	}
}
