package camera

import "github.com/go-gl/mathgl/mgl32"

// minCornerDepth is the smallest camera-space depth a projected corner may
// have. At or below it the projection divides by (near) zero and the
// bounds are meaningless.
const minCornerDepth = 0.1

// ScreenBounds is the projected footprint of the boundary cuboid in
// camera-relative normalized coordinates. The screen spans
// [-HalfTanH, HalfTanH] x [-HalfTanV, HalfTanV]; the footprint is the
// normalized min/max over the eight projected corners.
type ScreenBounds struct {
	MinX, MaxX float32
	MinY, MaxY float32

	// AvgDepth is the mean camera-space depth of the corners, used to
	// convert normalized offsets back into world units.
	AvgDepth float32

	HalfTanH, HalfTanV float32

	// TargetMarginX and TargetMarginY are the margins the fit aims for,
	// derived from the margin multiplier.
	TargetMarginX, TargetMarginY float32
}

// ProjectBounds projects the eight boundary corners through the camera
// basis. ok is false when any corner sits at or behind the camera plane.
func ProjectBounds(corners [8]mgl32.Vec3, position, right, up, forward mgl32.Vec3, fov, aspect, marginMultiplier float32) (ScreenBounds, bool) {
	halfTanV := tanf(fov / 2)
	halfTanH := halfTanV * aspect

	b := ScreenBounds{
		HalfTanH:      halfTanH,
		HalfTanV:      halfTanV,
		TargetMarginX: halfTanH - halfTanH/marginMultiplier,
		TargetMarginY: halfTanV - halfTanV/marginMultiplier,
	}

	var depthSum float32
	for i, corner := range corners {
		rel := corner.Sub(position)
		depth := rel.Dot(forward)
		if depth <= minCornerDepth {
			return ScreenBounds{}, false
		}
		x := rel.Dot(right) / depth
		y := rel.Dot(up) / depth
		if i == 0 {
			b.MinX, b.MaxX = x, x
			b.MinY, b.MaxY = y, y
		} else {
			b.MinX = minf(b.MinX, x)
			b.MaxX = maxf(b.MaxX, x)
			b.MinY = minf(b.MinY, y)
			b.MaxY = maxf(b.MaxY, y)
		}
		depthSum += depth
	}
	b.AvgDepth = depthSum / 8
	return b, true
}

// Margins returns the distance from the footprint to each screen edge in
// normalized units. Negative values mean the footprint spills off screen.
func (b ScreenBounds) Margins() (left, right, top, bottom float32) {
	left = b.MinX + b.HalfTanH
	right = b.HalfTanH - b.MaxX
	top = b.HalfTanV - b.MaxY
	bottom = b.MinY + b.HalfTanV
	return left, right, top, bottom
}

// MinMarginX returns the smaller of the two horizontal margins.
func (b ScreenBounds) MinMarginX() float32 {
	left, right, _, _ := b.Margins()
	return minf(left, right)
}

// MinMarginY returns the smaller of the two vertical margins.
func (b ScreenBounds) MinMarginY() float32 {
	_, _, top, bottom := b.Margins()
	return minf(top, bottom)
}

// IsHorizontallyBalanced reports whether the left and right margins match
// within tolerance.
func (b ScreenBounds) IsHorizontallyBalanced(tolerance float32) bool {
	left, right, _, _ := b.Margins()
	return absf(left-right) <= tolerance
}

// IsVerticallyBalanced reports whether the top and bottom margins match
// within tolerance.
func (b ScreenBounds) IsVerticallyBalanced(tolerance float32) bool {
	_, _, top, bottom := b.Margins()
	return absf(top-bottom) <= tolerance
}

// IsBalanced reports whether the footprint is centered on both axes.
func (b ScreenBounds) IsBalanced(tolerance float32) bool {
	return b.IsHorizontallyBalanced(tolerance) && b.IsVerticallyBalanced(tolerance)
}

// IsFitted reports whether either axis has its tightest margin at the
// target. One axis constrains the fit; the other carries slack.
func (b ScreenBounds) IsFitted(tolerance float32) bool {
	return absf(b.MinMarginX()-b.TargetMarginX) <= tolerance ||
		absf(b.MinMarginY()-b.TargetMarginY) <= tolerance
}

// Center returns the footprint center in normalized coordinates.
func (b ScreenBounds) Center() (x, y float32) {
	return (b.MinX + b.MaxX) / 2, (b.MinY + b.MaxY) / 2
}

// Span returns the footprint extent in normalized coordinates.
func (b ScreenBounds) Span() (x, y float32) {
	return b.MaxX - b.MinX, b.MaxY - b.MinY
}

// constrainingAxis returns 0 when the horizontal margin is proportionally
// tighter than the vertical one, 1 otherwise.
func (b ScreenBounds) constrainingAxis() int {
	hRatio := b.MinMarginX() / b.TargetMarginX
	vRatio := b.MinMarginY() / b.TargetMarginY
	if hRatio < vRatio {
		return 0
	}
	return 1
}
