// Package game wires the ECS world, systems, camera, and render loop.
package game

import (
	"log/slog"
	"math/rand"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/voidbox/camera"
	"github.com/pthm-cable/voidbox/components"
	"github.com/pthm-cable/voidbox/config"
	"github.com/pthm-cable/voidbox/inspector"
	"github.com/pthm-cable/voidbox/playfield"
	"github.com/pthm-cable/voidbox/renderer"
	"github.com/pthm-cable/voidbox/systems"
	"github.com/pthm-cable/voidbox/telemetry"
)

// Options configures a game instance.
type Options struct {
	Seed      int64
	OutputDir string
}

// Game owns the world, systems, and camera for one session.
type Game struct {
	cfg   *config.Config
	world *ecs.World
	rng   *rand.Rand

	shipMapper *ecs.Map6[
		components.Position,
		components.Velocity,
		components.Aabb,
		components.Teleporter,
		components.ActorPortals,
		components.Ship,
	]
	rockMapper *ecs.Map6[
		components.Position,
		components.Velocity,
		components.Aabb,
		components.Teleporter,
		components.ActorPortals,
		components.Asteroid,
	]
	wreckMapper *ecs.Map6[
		components.Position,
		components.Velocity,
		components.Aabb,
		components.Teleporter,
		components.ActorPortals,
		components.Derelict,
	]
	actorFilter ecs.Filter3[components.Position, components.Aabb, components.ActorPortals]
	shipMap     *ecs.Map1[components.Ship]
	derelictMap *ecs.Map1[components.Derelict]

	boundary *playfield.Boundary
	cells    [3]int

	movement *systems.MovementSystem
	teleport *systems.TeleportSystem
	portals  *systems.PortalSystem

	orbit *camera.Orbit
	zoom  *camera.ZoomToFit

	portalDraw *renderer.PortalRenderer
	panel      *inspector.Panel
	tuning     inspector.Tuning

	output    *telemetry.OutputManager
	zoomStats *telemetry.ZoomCollector
	fitRun    int

	tick        int64
	elapsed     float64
	showOverlay bool
}

// NewGame creates a game from the global config.
func NewGame(opts Options) (*Game, error) {
	cfg := config.Cfg()

	output, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, err
	}
	if err := output.WriteConfig(cfg); err != nil {
		slog.Warn("failed to snapshot config", "error", err)
	}

	world := ecs.NewWorld()
	boundary := playfield.New(
		mgl32.Vec3{},
		mgl32.Vec3{cfg.Derived.ExtentX, cfg.Derived.ExtentY, cfg.Derived.ExtentZ},
	)

	g := &Game{
		cfg:   cfg,
		world: world,
		rng:   rand.New(rand.NewSource(opts.Seed)),
		shipMapper: ecs.NewMap6[
			components.Position,
			components.Velocity,
			components.Aabb,
			components.Teleporter,
			components.ActorPortals,
			components.Ship,
		](world),
		rockMapper: ecs.NewMap6[
			components.Position,
			components.Velocity,
			components.Aabb,
			components.Teleporter,
			components.ActorPortals,
			components.Asteroid,
		](world),
		wreckMapper: ecs.NewMap6[
			components.Position,
			components.Velocity,
			components.Aabb,
			components.Teleporter,
			components.ActorPortals,
			components.Derelict,
		](world),
		actorFilter: *ecs.NewFilter3[components.Position, components.Aabb, components.ActorPortals](world),
		shipMap:     ecs.NewMap1[components.Ship](world),
		derelictMap: ecs.NewMap1[components.Derelict](world),

		boundary: boundary,
		cells:    [3]int{cfg.Boundary.CellCountX, cfg.Boundary.CellCountY, cfg.Boundary.CellCountZ},

		movement: systems.NewMovementSystem(world, cfg.Derived.DT32, float32(cfg.Physics.MaxSpeed)),
		teleport: systems.NewTeleportSystem(world, boundary),
		portals: systems.NewPortalSystem(world, boundary, systems.PortalParams{
			Scalar:           float32(cfg.Portal.Scalar),
			Smallest:         float32(cfg.Portal.Smallest),
			MinimumRadius:    float32(cfg.Portal.MinimumRadius),
			DistanceApproach: float32(cfg.Portal.DistanceApproach),
			DistanceShrink:   float32(cfg.Portal.DistanceShrink),
			FadeoutDuration:  cfg.Portal.FadeoutDuration,
			SmoothingFactor:  float32(cfg.Portal.MovementSmoothing),
			DirectionChange:  float32(cfg.Portal.DirectionChangeFactor),
		}),

		zoom: camera.NewZoomToFit(camera.FitParams{
			Margin:           float32(cfg.Zoom.Margin),
			MarginTolerance:  float32(cfg.Zoom.MarginTolerance),
			BalanceTolerance: float32(cfg.Zoom.BalanceTolerance),
			FittingRate:      float32(cfg.Zoom.FittingRate),
			BalancingRate:    float32(cfg.Zoom.BalancingRate),
			MaxIterations:    cfg.Zoom.MaxIterations,
			StallEpsilon:     float32(cfg.Zoom.StallEpsilon),
		}),

		portalDraw: renderer.NewPortalRenderer(cfg.Portal.Resolution),
		panel:      inspector.NewPanel(int32(cfg.Screen.Width), int32(cfg.Screen.Height)),

		output:    output,
		zoomStats: telemetry.NewZoomCollector(),
	}

	g.tuning = inspector.Tuning{
		PortalScalar:     float32(cfg.Portal.Scalar),
		FadeoutDuration:  float32(cfg.Portal.FadeoutDuration),
		ApproachFraction: float32(cfg.Portal.DistanceApproach),
		ShrinkFraction:   float32(cfg.Portal.DistanceShrink),
		ZoomMargin:       float32(cfg.Zoom.Margin),
		FittingRate:      float32(cfg.Zoom.FittingRate),
	}

	g.orbit = camera.NewOrbit(
		boundary.Center,
		camera.HomeRadius(boundary.Extents, cfg.Derived.FOVRadians, cfg.Derived.Aspect, 1+float32(cfg.Zoom.Margin)),
		float32(cfg.Camera.StartYaw),
		float32(cfg.Camera.StartPitch),
	)
	g.orbit.PanSmoothness = float32(cfg.Camera.PanSmoothness)
	g.orbit.ZoomSmoothness = float32(cfg.Camera.ZoomSmoothness)

	g.spawnShip()
	for i := 0; i < cfg.Spawn.Asteroids; i++ {
		g.spawnAsteroid()
	}

	slog.Info("game initialized",
		"seed", opts.Seed,
		"boundary_extents", boundary.Extents,
		"asteroids", cfg.Spawn.Asteroids,
	)
	return g, nil
}

// Update advances the simulation by one fixed tick.
func (g *Game) Update() {
	g.handleInput()

	g.movement.Update(g.world)
	g.teleport.Update(g.world)

	for _, entity := range g.teleport.Removals() {
		g.wreckMapper.Remove(entity)
		slog.Debug("derelict burned up at the boundary")
	}
	for _, ev := range g.teleport.Events() {
		rec := telemetry.TeleportRecord{
			Tick:    g.tick,
			FromX:   ev.From[0],
			FromY:   ev.From[1],
			FromZ:   ev.From[2],
			ToX:     ev.To[0],
			ToY:     ev.To[1],
			ToZ:     ev.To[2],
			NormalX: ev.Normal[0],
			NormalY: ev.Normal[1],
			NormalZ: ev.Normal[2],
		}
		if err := g.output.WriteTeleport(rec); err != nil {
			slog.Warn("failed to write teleport record", "error", err)
		}
	}

	g.portals.Update(g.world, g.elapsed)
	g.stepZoom()
	g.orbit.Update()

	g.tick++
	g.elapsed += float64(g.cfg.Derived.DT32)
}

// stepZoom advances an active zoom-to-fit run by one iteration and
// records the trace.
func (g *Game) stepZoom() {
	if !g.zoom.Active() {
		return
	}
	status := g.zoom.Step(g.orbit, g.boundary.Corners(), g.cfg.Derived.FOVRadians, g.cfg.Derived.Aspect)

	rec := telemetry.ZoomStepRecord{
		Fit:       g.fitRun,
		Iteration: g.zoom.Iterations(),
		Status:    status.String(),
		Radius:    g.orbit.TargetRadius,
		FocusX:    g.orbit.TargetFocus[0],
		FocusY:    g.orbit.TargetFocus[1],
		FocusZ:    g.orbit.TargetFocus[2],
	}
	if bounds, ok := g.projectTargetBounds(); ok {
		rec.MinMarginX = bounds.MinMarginX()
		rec.MinMarginY = bounds.MinMarginY()
		rec.SpanX, rec.SpanY = bounds.Span()
	}
	if err := g.output.WriteZoomStep(rec); err != nil {
		slog.Warn("failed to write zoom record", "error", err)
	}

	if status != camera.Active {
		g.zoomStats.RecordFit(status.String(), g.zoom.Iterations())
		slog.Info("zoom-to-fit finished",
			"status", status.String(),
			"iterations", g.zoom.Iterations(),
			"radius", g.orbit.TargetRadius,
		)
	}
}

// projectTargetBounds projects the boundary through the camera's target
// state, which the solver operates on.
func (g *Game) projectTargetBounds() (camera.ScreenBounds, bool) {
	probe := camera.NewOrbit(g.orbit.TargetFocus, g.orbit.TargetRadius, g.orbit.TargetYaw, g.orbit.TargetPitch)
	right, up, forward := probe.Basis()
	return camera.ProjectBounds(
		g.boundary.Corners(), probe.Position(), right, up, forward,
		g.cfg.Derived.FOVRadians, g.cfg.Derived.Aspect,
		1+g.tuning.ZoomMargin,
	)
}

// applyTuning pushes inspector edits into the live systems.
func (g *Game) applyTuning() {
	params := g.portals.Params()
	params.Scalar = g.tuning.PortalScalar
	params.FadeoutDuration = float64(g.tuning.FadeoutDuration)
	params.DistanceApproach = g.tuning.ApproachFraction
	params.DistanceShrink = g.tuning.ShrinkFraction
	g.portals.SetParams(params)

	fit := g.zoom.Params()
	fit.Margin = g.tuning.ZoomMargin
	fit.FittingRate = g.tuning.FittingRate
	g.zoom.SetParams(fit)
}

// Tick returns the current simulation tick.
func (g *Game) Tick() int64 {
	return g.tick
}

// Unload finishes the session: summary to the log, output files closed.
func (g *Game) Unload() {
	g.zoomStats.LogSummary()
	if err := g.output.Close(); err != nil {
		slog.Warn("failed to close output", "error", err)
	}
}
