// Package renderer draws the play volume and portal markers with raylib.
// It consumes renderer-agnostic draw commands from the playfield package
// and samples them into 3D line segments.
package renderer

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/pthm-cable/voidbox/playfield"
)

func toRl(v mgl32.Vec3) rl.Vector3 {
	return rl.NewVector3(v[0], v[1], v[2])
}

// PortalRenderer samples portal draw commands into line segments.
type PortalRenderer struct {
	resolution int // segments per full circle
}

// NewPortalRenderer creates a renderer with the given circle resolution.
func NewPortalRenderer(resolution int) *PortalRenderer {
	if resolution < 8 {
		resolution = 8
	}
	return &PortalRenderer{resolution: resolution}
}

// Draw renders every command of one portal in the given color.
func (r *PortalRenderer) Draw(cmds []playfield.DrawCommand, color rl.Color) {
	for _, cmd := range cmds {
		switch cmd.Op {
		case playfield.OpCircle:
			r.drawCircle(cmd, color)
		case playfield.OpArc:
			r.drawArc(cmd, color)
		case playfield.OpShortArc:
			r.drawShortArc(cmd, color)
		}
	}
}

func (r *PortalRenderer) drawCircle(cmd playfield.DrawCommand, color rl.Color) {
	u, v := planeBasis(cmd.Normal)
	prev := cmd.Center.Add(u.Mul(cmd.Radius))
	for i := 1; i <= r.resolution; i++ {
		angle := 2 * math.Pi * float64(i) / float64(r.resolution)
		point := cmd.Center.
			Add(u.Mul(cmd.Radius * float32(math.Cos(angle)))).
			Add(v.Mul(cmd.Radius * float32(math.Sin(angle))))
		rl.DrawLine3D(toRl(prev), toRl(point), color)
		prev = point
	}
}

func (r *PortalRenderer) drawArc(cmd playfield.DrawCommand, color rl.Color) {
	steps := r.arcSteps(cmd.Angle)
	prev := cmd.Center.Add(cmd.Start.Mul(cmd.Radius))
	for i := 1; i <= steps; i++ {
		angle := cmd.Angle * float32(i) / float32(steps)
		rotated := mgl32.QuatRotate(angle, cmd.Normal).Rotate(cmd.Start)
		point := cmd.Center.Add(rotated.Mul(cmd.Radius))
		rl.DrawLine3D(toRl(prev), toRl(point), color)
		prev = point
	}
}

func (r *PortalRenderer) drawShortArc(cmd playfield.DrawCommand, color rl.Color) {
	from := cmd.From.Sub(cmd.Center)
	to := cmd.To.Sub(cmd.Center)
	axis := from.Cross(to)
	if axis.Len() < 1e-6 {
		// Endpoints are collinear with the center; a line is the whole arc.
		rl.DrawLine3D(toRl(cmd.From), toRl(cmd.To), color)
		return
	}
	axis = axis.Normalize()
	angle := angleBetween(from.Normalize(), to.Normalize())

	steps := r.arcSteps(angle)
	prev := cmd.From
	for i := 1; i <= steps; i++ {
		rotated := mgl32.QuatRotate(angle*float32(i)/float32(steps), axis).Rotate(from)
		point := cmd.Center.Add(rotated)
		rl.DrawLine3D(toRl(prev), toRl(point), color)
		prev = point
	}
}

// arcSteps scales the circle resolution down to the sweep fraction.
func (r *PortalRenderer) arcSteps(angle float32) int {
	steps := int(float64(r.resolution) * float64(angle) / (2 * math.Pi))
	if steps < 2 {
		steps = 2
	}
	return steps
}

// planeBasis returns two unit vectors spanning the plane perpendicular to
// an axis-aligned normal.
func planeBasis(normal mgl32.Vec3) (mgl32.Vec3, mgl32.Vec3) {
	ref := mgl32.Vec3{0, 1, 0}
	if absf(normal[1]) > 0.9 {
		ref = mgl32.Vec3{1, 0, 0}
	}
	u := normal.Cross(ref).Normalize()
	v := normal.Cross(u)
	return u, v
}

func angleBetween(a, b mgl32.Vec3) float32 {
	dot := mgl32.Clamp(a.Dot(b), -1, 1)
	return float32(math.Acos(float64(dot)))
}

func absf(v float32) float32 {
	return float32(math.Abs(float64(v)))
}
