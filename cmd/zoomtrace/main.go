// Command zoomtrace runs the zoom-to-fit solver headless from randomized
// camera poses and writes the per-step trace plus a convergence summary.
// Useful for tuning solver rates without launching the game.
package main

import (
	"flag"
	"log/slog"
	"math"
	"math/rand"
	"os"
	"time"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/pthm-cable/voidbox/camera"
	"github.com/pthm-cable/voidbox/config"
	"github.com/pthm-cable/voidbox/playfield"
	"github.com/pthm-cable/voidbox/telemetry"
)

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	outputDir := flag.String("output-dir", "zoomtrace-out", "Output directory for the CSV trace")
	runs := flag.Int("runs", 100, "Number of randomized fits to run")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")

	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(rngSeed))

	output, err := telemetry.NewOutputManager(*outputDir)
	if err != nil {
		slog.Error("failed to create output directory", "error", err)
		os.Exit(1)
	}
	defer output.Close()
	if err := output.WriteConfig(cfg); err != nil {
		slog.Warn("failed to snapshot config", "error", err)
	}

	boundary := playfield.New(
		mgl32.Vec3{},
		mgl32.Vec3{cfg.Derived.ExtentX, cfg.Derived.ExtentY, cfg.Derived.ExtentZ},
	)
	solver := camera.NewZoomToFit(camera.FitParams{
		Margin:           float32(cfg.Zoom.Margin),
		MarginTolerance:  float32(cfg.Zoom.MarginTolerance),
		BalanceTolerance: float32(cfg.Zoom.BalanceTolerance),
		FittingRate:      float32(cfg.Zoom.FittingRate),
		BalancingRate:    float32(cfg.Zoom.BalancingRate),
		MaxIterations:    cfg.Zoom.MaxIterations,
		StallEpsilon:     float32(cfg.Zoom.StallEpsilon),
	})
	stats := telemetry.NewZoomCollector()

	diagonal := boundary.LongestDiagonal()
	for fit := 1; fit <= *runs; fit++ {
		orbit := randomPose(rng, boundary, diagonal)
		solver.Start(orbit)

		for solver.Active() {
			status := solver.Step(orbit, boundary.Corners(), cfg.Derived.FOVRadians, cfg.Derived.Aspect)
			writeStep(output, solver, orbit, fit, status)
			orbit.Update()
		}
		stats.RecordFit(solver.Status().String(), solver.Iterations())
	}

	stats.LogSummary()
	slog.Info("trace written", "dir", output.Dir(), "runs", *runs, "seed", rngSeed)
}

// randomPose places the camera at an arbitrary orientation and a radius
// between a tenth of the boundary diagonal and three diagonals, with the
// focus jittered off center.
func randomPose(rng *rand.Rand, b *playfield.Boundary, diagonal float32) *camera.Orbit {
	focus := b.Center.Add(mgl32.Vec3{
		(rng.Float32()*2 - 1) * diagonal / 4,
		(rng.Float32()*2 - 1) * diagonal / 4,
		(rng.Float32()*2 - 1) * diagonal / 4,
	})
	radius := diagonal/10 + rng.Float32()*diagonal*3
	yaw := rng.Float32() * 2 * math.Pi
	pitch := (rng.Float32()*2 - 1) * 1.3
	return camera.NewOrbit(focus, radius, yaw, pitch)
}

func writeStep(output *telemetry.OutputManager, solver *camera.ZoomToFit, orbit *camera.Orbit, fit int, status camera.Status) {
	rec := telemetry.ZoomStepRecord{
		Fit:       fit,
		Iteration: solver.Iterations(),
		Status:    status.String(),
		Radius:    orbit.TargetRadius,
		FocusX:    orbit.TargetFocus[0],
		FocusY:    orbit.TargetFocus[1],
		FocusZ:    orbit.TargetFocus[2],
	}
	if err := output.WriteZoomStep(rec); err != nil {
		slog.Warn("failed to write zoom record", "error", err)
	}
}
