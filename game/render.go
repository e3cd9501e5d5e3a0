package game

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/pthm-cable/voidbox/camera"
	"github.com/pthm-cable/voidbox/renderer"
)

func toRlVec(v mgl32.Vec3) rl.Vector3 {
	return rl.NewVector3(v[0], v[1], v[2])
}

// Draw renders one frame.
func (g *Game) Draw() {
	rl.BeginDrawing()
	defer rl.EndDrawing()
	rl.ClearBackground(rl.NewColor(8, 10, 18, 255))

	cam := rl.Camera3D{
		Position:   toRlVec(g.orbit.Position()),
		Target:     toRlVec(g.orbit.Focus),
		Up:         rl.NewVector3(0, 1, 0),
		Fovy:       float32(g.cfg.Camera.FOVDegrees),
		Projection: rl.CameraPerspective,
	}

	rl.BeginMode3D(cam)
	renderer.DrawBoundaryGrid(g.boundary, g.cells, rl.Fade(rl.Gray, 0.3), rl.Gray)
	g.drawActors()
	rl.EndMode3D()

	if g.showOverlay {
		g.drawMarginOverlay()
	}
	if g.panel.Draw(&g.tuning) {
		g.applyTuning()
	}
	g.drawHUD()
}

func (g *Game) drawActors() {
	query := g.actorFilter.Query()
	for query.Next() {
		pos, aabb, portals := query.Get()
		entity := query.Entity()
		center := toRlVec(pos.Vec())

		switch {
		case g.shipMap.HasAll(entity):
			rl.DrawCubeWiresV(center, rl.NewVector3(aabb.Width, aabb.Height, aabb.Depth), rl.SkyBlue)
		case g.derelictMap.HasAll(entity):
			rl.DrawSphereWires(center, aabb.MaxDimension()/2, 6, 8, rl.Red)
		default:
			rl.DrawSphereWires(center, aabb.MaxDimension()/2, 6, 8, rl.LightGray)
		}

		approachColor, emergeColor := rl.SkyBlue, rl.Gold
		if g.derelictMap.HasAll(entity) {
			approachColor, emergeColor = rl.Red, rl.Red
		}
		if portals.Approaching != nil {
			g.portalDraw.Draw(g.boundary.BuildPortalDraw(portals.Approaching), approachColor)
		}
		if portals.Emerging != nil {
			g.portalDraw.Draw(g.boundary.BuildPortalDraw(portals.Emerging), emergeColor)
		}
	}
}

// drawMarginOverlay outlines the projected boundary footprint and its
// target frame in screen space.
func (g *Game) drawMarginOverlay() {
	right, up, forward := g.orbit.Basis()
	bounds, ok := camera.ProjectBounds(
		g.boundary.Corners(), g.orbit.Position(), right, up, forward,
		g.cfg.Derived.FOVRadians, g.cfg.Derived.Aspect,
		1+g.tuning.ZoomMargin,
	)
	if !ok {
		rl.DrawText("boundary behind camera", 10, 40, 16, rl.Red)
		return
	}

	sw, sh := g.cfg.Derived.ScreenW32, g.cfg.Derived.ScreenH32
	toScreen := func(nx, ny float32) (int32, int32) {
		x := (nx/bounds.HalfTanH*0.5 + 0.5) * sw
		y := (0.5 - ny/bounds.HalfTanV*0.5) * sh
		return int32(x), int32(y)
	}

	color := rl.Orange
	if bounds.IsFitted(float32(g.cfg.Zoom.MarginTolerance)) {
		color = rl.Green
	}

	x0, y0 := toScreen(bounds.MinX, bounds.MaxY)
	x1, y1 := toScreen(bounds.MaxX, bounds.MinY)
	rl.DrawRectangleLines(x0, y0, x1-x0, y1-y0, color)

	// Target frame at the configured margin.
	tx0, ty0 := toScreen(-(bounds.HalfTanH - bounds.TargetMarginX), bounds.HalfTanV-bounds.TargetMarginY)
	tx1, ty1 := toScreen(bounds.HalfTanH-bounds.TargetMarginX, -(bounds.HalfTanV - bounds.TargetMarginY))
	rl.DrawRectangleLines(tx0, ty0, tx1-tx0, ty1-ty0, rl.Fade(rl.White, 0.4))

	left, rightM, top, bottom := bounds.Margins()
	rl.DrawText(fmt.Sprintf("margins L %.3f R %.3f T %.3f B %.3f", left, rightM, top, bottom),
		10, 40, 14, color)
}

func (g *Game) drawHUD() {
	rl.DrawFPS(10, 10)

	status := g.zoom.Status()
	text := fmt.Sprintf("tick %d  zoom %s", g.tick, status)
	if status == camera.Active {
		text = fmt.Sprintf("%s (%d)", text, g.zoom.Iterations())
	}
	rl.DrawText(text, 10, int32(g.cfg.Derived.ScreenH32)-24, 14, rl.RayWhite)
}
