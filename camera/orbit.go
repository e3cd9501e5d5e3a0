// Package camera provides the orbit camera rig, the screen-space
// projection of the play volume, and the zoom-to-fit solver that frames
// it. Everything here is plain math; the render layer converts to its own
// camera type at draw time.
package camera

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

var worldUp = mgl32.Vec3{0, 1, 0}

// Orbit is a focus-plus-radius orbit camera. Input and the zoom solver
// write the Target fields; Update moves the live values toward them using
// the smoothness factors (0 = snap instantly, values near 1 trail far
// behind).
type Orbit struct {
	Focus  mgl32.Vec3
	Radius float32
	Yaw    float32 // radians about the vertical axis
	Pitch  float32 // radians above the horizon

	TargetFocus  mgl32.Vec3
	TargetRadius float32
	TargetYaw    float32
	TargetPitch  float32

	PanSmoothness  float32
	ZoomSmoothness float32
}

// NewOrbit returns an orbit camera with live and target state aligned.
func NewOrbit(focus mgl32.Vec3, radius, yaw, pitch float32) *Orbit {
	return &Orbit{
		Focus: focus, Radius: radius, Yaw: yaw, Pitch: pitch,
		TargetFocus: focus, TargetRadius: radius, TargetYaw: yaw, TargetPitch: pitch,
	}
}

// Update advances the live camera toward its targets by one frame.
func (o *Orbit) Update() {
	o.Focus = o.Focus.Add(o.TargetFocus.Sub(o.Focus).Mul(1 - o.PanSmoothness))
	o.Radius += (o.TargetRadius - o.Radius) * (1 - o.ZoomSmoothness)
	o.Yaw += (o.TargetYaw - o.Yaw) * (1 - o.PanSmoothness)
	o.Pitch += (o.TargetPitch - o.Pitch) * (1 - o.PanSmoothness)
}

// Position returns the camera's world position.
func (o *Orbit) Position() mgl32.Vec3 {
	return orbitPosition(o.Focus, o.Radius, o.Yaw, o.Pitch)
}

// Basis returns the camera's right, up, and forward vectors.
func (o *Orbit) Basis() (right, up, forward mgl32.Vec3) {
	return orbitBasis(o.Focus, o.Position())
}

func orbitPosition(focus mgl32.Vec3, radius, yaw, pitch float32) mgl32.Vec3 {
	cp := cosf(pitch)
	offset := mgl32.Vec3{cp * sinf(yaw), sinf(pitch), cp * cosf(yaw)}
	return focus.Add(offset.Mul(radius))
}

func orbitBasis(focus, position mgl32.Vec3) (right, up, forward mgl32.Vec3) {
	forward = focus.Sub(position).Normalize()
	right = forward.Cross(worldUp)
	if right.Len() < 1e-6 {
		// Looking straight up or down the vertical axis.
		right = mgl32.Vec3{1, 0, 0}
	} else {
		right = right.Normalize()
	}
	up = right.Cross(forward)
	return right, up, forward
}

// HomeRadius returns the orbit radius that frames a cuboid of the given
// full extents for a camera looking at its center: the larger of the
// width/height standoffs plus half the depth so the near face clears the
// view.
func HomeRadius(extents mgl32.Vec3, fov, aspect, marginMultiplier float32) float32 {
	halfTanV := tanf(fov / 2)
	halfTanH := halfTanV * aspect
	standoffW := extents.X() / 2 / halfTanH * marginMultiplier
	standoffH := extents.Y() / 2 / halfTanV * marginMultiplier
	standoff := standoffW
	if standoffH > standoff {
		standoff = standoffH
	}
	return standoff + extents.Z()/2
}

func sinf(v float32) float32 { return float32(math.Sin(float64(v))) }

func cosf(v float32) float32 { return float32(math.Cos(float64(v))) }

func tanf(v float32) float32 { return float32(math.Tan(float64(v))) }

func absf(v float32) float32 { return float32(math.Abs(float64(v))) }

func maxf(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}

func minf(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}
