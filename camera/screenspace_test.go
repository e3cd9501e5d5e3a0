package camera

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func boxCorners(center, extents mgl32.Vec3) [8]mgl32.Vec3 {
	min := center.Sub(extents.Mul(0.5))
	max := center.Add(extents.Mul(0.5))
	return [8]mgl32.Vec3{
		{min[0], min[1], min[2]},
		{max[0], min[1], min[2]},
		{min[0], max[1], min[2]},
		{max[0], max[1], min[2]},
		{min[0], min[1], max[2]},
		{max[0], min[1], max[2]},
		{min[0], max[1], max[2]},
		{max[0], max[1], max[2]},
	}
}

func TestProjectBounds(t *testing.T) {
	corners := boxCorners(mgl32.Vec3{}, mgl32.Vec3{100, 100, 100})

	// Camera on the +Z axis looking at the origin, 90 degree square view:
	// the half-tangents are exactly 1.
	position := mgl32.Vec3{0, 0, 200}
	right := mgl32.Vec3{1, 0, 0}
	up := mgl32.Vec3{0, 1, 0}
	forward := mgl32.Vec3{0, 0, -1}
	fov := float32(math.Pi / 2)

	bounds, ok := ProjectBounds(corners, position, right, up, forward, fov, 1, 1.1)
	if !ok {
		t.Fatal("projection failed for a box fully in front of the camera")
	}

	// The near face (z=50, depth 150) dominates the footprint: 50/150.
	wantExtent := float32(50.0 / 150.0)
	if math.Abs(float64(bounds.MaxX-wantExtent)) > 1e-4 {
		t.Errorf("MaxX = %v, want %v", bounds.MaxX, wantExtent)
	}
	if math.Abs(float64(bounds.MinX+wantExtent)) > 1e-4 {
		t.Errorf("MinX = %v, want %v", bounds.MinX, -wantExtent)
	}
	if math.Abs(float64(bounds.AvgDepth-200)) > 1e-3 {
		t.Errorf("AvgDepth = %v, want 200", bounds.AvgDepth)
	}

	t.Run("head-on view is balanced", func(t *testing.T) {
		if !bounds.IsBalanced(1e-4) {
			t.Errorf("expected balanced margins, got %+v", bounds)
		}
		cx, cy := bounds.Center()
		if absf(cx) > 1e-4 || absf(cy) > 1e-4 {
			t.Errorf("Center = (%v, %v), want origin", cx, cy)
		}
	})

	t.Run("span matches the footprint", func(t *testing.T) {
		sx, sy := bounds.Span()
		if math.Abs(float64(sx-2*wantExtent)) > 1e-4 {
			t.Errorf("Span x = %v, want %v", sx, 2*wantExtent)
		}
		if math.Abs(float64(sy-2*wantExtent)) > 1e-4 {
			t.Errorf("Span y = %v, want %v", sy, 2*wantExtent)
		}
	})

	t.Run("target margins derive from the multiplier", func(t *testing.T) {
		want := float32(1 - 1/1.1)
		if math.Abs(float64(bounds.TargetMarginX-want)) > 1e-4 {
			t.Errorf("TargetMarginX = %v, want %v", bounds.TargetMarginX, want)
		}
	})
}

func TestProjectBoundsBehindCamera(t *testing.T) {
	corners := boxCorners(mgl32.Vec3{}, mgl32.Vec3{100, 100, 100})

	// Camera inside the box: the near corners are behind it.
	position := mgl32.Vec3{0, 0, 30}
	if _, ok := ProjectBounds(corners, position,
		mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 1, 0}, mgl32.Vec3{0, 0, -1},
		float32(math.Pi/2), 1, 1.1); ok {
		t.Error("expected projection failure with corners behind the camera")
	}
}

func TestScreenBoundsPredicates(t *testing.T) {
	base := ScreenBounds{
		HalfTanH: 1, HalfTanV: 1,
		TargetMarginX: 0.1, TargetMarginY: 0.1,
	}

	t.Run("off-center footprint is unbalanced", func(t *testing.T) {
		b := base
		b.MinX, b.MaxX = -0.5, 0.3
		b.MinY, b.MaxY = -0.4, 0.4
		if b.IsHorizontallyBalanced(0.01) {
			t.Error("expected horizontal imbalance")
		}
		if !b.IsVerticallyBalanced(0.01) {
			t.Error("expected vertical balance")
		}
		if b.IsBalanced(0.01) {
			t.Error("expected overall imbalance")
		}
	})

	t.Run("fitted when one axis hits its target margin", func(t *testing.T) {
		b := base
		b.MinX, b.MaxX = -0.9, 0.9 // margins 0.1 on both sides
		b.MinY, b.MaxY = -0.5, 0.5 // slack axis
		if !b.IsFitted(0.001) {
			t.Error("expected fitted")
		}
		if b.constrainingAxis() != 0 {
			t.Errorf("constrainingAxis = %d, want 0", b.constrainingAxis())
		}
	})

	t.Run("not fitted when both axes carry slack", func(t *testing.T) {
		b := base
		b.MinX, b.MaxX = -0.5, 0.5
		b.MinY, b.MaxY = -0.5, 0.5
		if b.IsFitted(0.001) {
			t.Error("expected not fitted")
		}
	})

	t.Run("negative margins when spilling off screen", func(t *testing.T) {
		b := base
		b.MinX, b.MaxX = -1.2, 0.5
		left, _, _, _ := b.Margins()
		if left >= 0 {
			t.Errorf("left margin = %v, want negative", left)
		}
	})
}

func TestHomeRadiusFramesBoundary(t *testing.T) {
	extents := mgl32.Vec3{330, 220, 110}
	corners := boxCorners(mgl32.Vec3{}, extents)
	fov := float32(45 * math.Pi / 180)
	aspect := float32(16.0 / 9.0)

	radius := HomeRadius(extents, fov, aspect, 1.1)
	o := NewOrbit(mgl32.Vec3{}, radius, 0, 0)
	right, up, forward := o.Basis()

	bounds, ok := ProjectBounds(corners, o.Position(), right, up, forward, fov, aspect, 1.1)
	if !ok {
		t.Fatal("home camera has the boundary behind it")
	}
	if bounds.MinMarginX() < 0 || bounds.MinMarginY() < 0 {
		t.Errorf("home camera clips the boundary: margins %v, %v",
			bounds.MinMarginX(), bounds.MinMarginY())
	}
}
