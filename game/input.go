package game

import (
	"log/slog"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/voidbox/camera"
)

const (
	orbitSensitivity = 0.005 // radians per pixel of right-button drag
	wheelZoomFactor  = 0.9   // radius multiplier per wheel notch
	pitchLimit       = float32(math.Pi/2) - 0.05
	minOrbitRadius   = 1.0
)

func (g *Game) handleInput() {
	if rl.IsKeyPressed(rl.KeyZ) {
		g.fitRun++
		g.zoom.Start(g.orbit)
		slog.Info("zoom-to-fit started", "fit", g.fitRun)
	}
	if rl.IsKeyPressed(rl.KeyH) {
		g.goHome()
	}
	if rl.IsKeyPressed(rl.KeyB) {
		g.showOverlay = !g.showOverlay
	}
	if rl.IsKeyPressed(rl.KeyTab) {
		g.panel.Toggle()
	}

	g.handleOrbitInput()
}

// handleOrbitInput applies manual camera control. Any manual input while a
// fit is running cancels the fit; the user wins.
func (g *Game) handleOrbitInput() {
	manual := false

	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		factor := float32(wheelZoomFactor)
		if wheel < 0 {
			factor = 1 / wheelZoomFactor
		}
		for i := float32(0); i < absInput(wheel); i++ {
			g.orbit.TargetRadius *= factor
		}
		if g.orbit.TargetRadius < minOrbitRadius {
			g.orbit.TargetRadius = minOrbitRadius
		}
		manual = true
	}

	if rl.IsMouseButtonDown(rl.MouseButtonRight) {
		delta := rl.GetMouseDelta()
		if delta.X != 0 || delta.Y != 0 {
			g.orbit.TargetYaw -= delta.X * orbitSensitivity
			g.orbit.TargetPitch += delta.Y * orbitSensitivity
			if g.orbit.TargetPitch > pitchLimit {
				g.orbit.TargetPitch = pitchLimit
			}
			if g.orbit.TargetPitch < -pitchLimit {
				g.orbit.TargetPitch = -pitchLimit
			}
			manual = true
		}
	}

	if manual && g.zoom.Active() {
		g.zoom.Cancel(g.orbit)
		slog.Debug("zoom-to-fit cancelled by manual input")
	}
}

// goHome cancels any fit and parks the camera at the framing default.
func (g *Game) goHome() {
	g.zoom.Cancel(g.orbit)
	g.orbit.TargetFocus = g.boundary.Center
	g.orbit.TargetRadius = camera.HomeRadius(
		g.boundary.Extents,
		g.cfg.Derived.FOVRadians, g.cfg.Derived.Aspect,
		1+g.tuning.ZoomMargin,
	)
	g.orbit.TargetYaw = float32(g.cfg.Camera.StartYaw)
	g.orbit.TargetPitch = float32(g.cfg.Camera.StartPitch)
}

func absInput(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
