package telemetry

import (
	"log/slog"

	"gonum.org/v1/gonum/stat"
)

// ZoomCollector accumulates zoom-to-fit runs and summarizes convergence
// behavior across a session.
type ZoomCollector struct {
	fits       int
	iterations []float64
	converged  int
	stalled    int
	capped     int
}

// NewZoomCollector returns an empty collector.
func NewZoomCollector() *ZoomCollector {
	return &ZoomCollector{}
}

// Fits returns how many runs have been recorded.
func (c *ZoomCollector) Fits() int {
	if c == nil {
		return 0
	}
	return c.fits
}

// RecordFit adds one finished solver run.
func (c *ZoomCollector) RecordFit(status string, iterations int) {
	if c == nil {
		return
	}
	c.fits++
	c.iterations = append(c.iterations, float64(iterations))
	switch status {
	case "converged":
		c.converged++
	case "stalled":
		c.stalled++
	case "max-iterations":
		c.capped++
	}
}

// Summary holds aggregate convergence statistics.
type Summary struct {
	Fits          int
	Converged     int
	Stalled       int
	Capped        int
	MeanIters     float64
	StdDevIters   float64
	MaxIterations float64
}

// Summarize computes aggregate statistics over the recorded runs.
func (c *ZoomCollector) Summarize() Summary {
	if c == nil || c.fits == 0 {
		return Summary{}
	}
	mean, std := stat.MeanStdDev(c.iterations, nil)
	if len(c.iterations) < 2 {
		std = 0
	}
	max := c.iterations[0]
	for _, v := range c.iterations[1:] {
		if v > max {
			max = v
		}
	}
	return Summary{
		Fits:          c.fits,
		Converged:     c.converged,
		Stalled:       c.stalled,
		Capped:        c.capped,
		MeanIters:     mean,
		StdDevIters:   std,
		MaxIterations: max,
	}
}

// LogSummary writes the session summary to the structured log.
func (c *ZoomCollector) LogSummary() {
	s := c.Summarize()
	if s.Fits == 0 {
		return
	}
	slog.Info("zoom-to-fit session summary",
		"fits", s.Fits,
		"converged", s.Converged,
		"stalled", s.Stalled,
		"capped", s.Capped,
		"mean_iterations", s.MeanIters,
		"stddev_iterations", s.StdDevIters,
		"max_iterations", s.MaxIterations,
	)
}
