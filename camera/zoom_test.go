package camera

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func testFitParams() FitParams {
	return FitParams{
		Margin:           0.1,
		MarginTolerance:  0.001,
		BalanceTolerance: 0.0005,
		FittingRate:      0.18,
		BalancingRate:    0.06,
		MaxIterations:    200,
		StallEpsilon:     0.00001,
	}
}

func runFit(t *testing.T, z *ZoomToFit, o *Orbit, corners [8]mgl32.Vec3, fov, aspect float32) Status {
	t.Helper()
	z.Start(o)
	for i := 0; z.Active(); i++ {
		if i > z.Params().MaxIterations+1 {
			t.Fatalf("solver still active after %d steps", i)
		}
		z.Step(o, corners, fov, aspect)
	}
	return z.Status()
}

func TestZoomToFitTerminates(t *testing.T) {
	corners := boxCorners(mgl32.Vec3{}, mgl32.Vec3{330, 220, 110})
	fov := float32(45 * math.Pi / 180)
	aspect := float32(16.0 / 9.0)

	o := NewOrbit(mgl32.Vec3{40, 10, -20}, 900, 0.6, 0.4)
	o.PanSmoothness = 0.02
	o.ZoomSmoothness = 0.10

	z := NewZoomToFit(testFitParams())
	status := runFit(t, z, o, corners, fov, aspect)

	switch status {
	case Converged, Stalled, MaxIterations:
	default:
		t.Errorf("terminal status = %v", status)
	}
	if z.Iterations() > testFitParams().MaxIterations {
		t.Errorf("iterations = %d, above the cap", z.Iterations())
	}

	t.Run("smoothness restored", func(t *testing.T) {
		if o.PanSmoothness != 0.02 || o.ZoomSmoothness != 0.10 {
			t.Errorf("smoothness = (%v, %v), want (0.02, 0.10)",
				o.PanSmoothness, o.ZoomSmoothness)
		}
	})

	t.Run("orientation locked", func(t *testing.T) {
		if o.TargetYaw != 0.6 || o.TargetPitch != 0.4 {
			t.Errorf("orientation = (%v, %v), want (0.6, 0.4)",
				o.TargetYaw, o.TargetPitch)
		}
	})
}

func TestZoomToFitConvergesHeadOn(t *testing.T) {
	corners := boxCorners(mgl32.Vec3{}, mgl32.Vec3{300, 200, 100})
	fov := float32(math.Pi / 2)
	aspect := float32(1)

	params := testFitParams()
	params.MarginTolerance = 0.01
	params.BalanceTolerance = 0.01

	o := NewOrbit(mgl32.Vec3{}, 800, 0, 0)
	z := NewZoomToFit(params)
	status := runFit(t, z, o, corners, fov, aspect)

	if status != Converged {
		t.Fatalf("status = %v after %d iterations, want converged", status, z.Iterations())
	}

	bounds, ok := z.project(o.TargetFocus, o.TargetRadius, corners, fov, aspect)
	if !ok {
		t.Fatal("final camera has the boundary behind it")
	}
	if !bounds.IsFitted(params.MarginTolerance) {
		t.Errorf("final bounds not fitted: min margins (%v, %v), targets (%v, %v)",
			bounds.MinMarginX(), bounds.MinMarginY(),
			bounds.TargetMarginX, bounds.TargetMarginY)
	}
	if !bounds.IsBalanced(params.BalanceTolerance) {
		t.Errorf("final bounds not balanced: %+v", bounds)
	}
}

func TestZoomToFitRecoversFromInsideBoundary(t *testing.T) {
	corners := boxCorners(mgl32.Vec3{}, mgl32.Vec3{300, 200, 100})
	fov := float32(math.Pi / 2)

	// Camera starts inside the box, so the first projections fail.
	o := NewOrbit(mgl32.Vec3{20, 5, 0}, 1, 0.3, 0.2)
	z := NewZoomToFit(testFitParams())
	status := runFit(t, z, o, corners, fov, 1)

	switch status {
	case Converged, Stalled, MaxIterations:
	default:
		t.Fatalf("terminal status = %v", status)
	}
	if o.TargetRadius <= 1 {
		t.Errorf("radius = %v, expected the solver to back the camera off", o.TargetRadius)
	}
	if _, ok := z.project(o.TargetFocus, o.TargetRadius, corners, fov, 1); !ok {
		t.Error("boundary still behind the camera after recovery")
	}
}

func TestZoomToFitCancelRestoresSmoothness(t *testing.T) {
	o := NewOrbit(mgl32.Vec3{}, 500, 0, 0)
	o.PanSmoothness = 0.02
	o.ZoomSmoothness = 0.10

	z := NewZoomToFit(testFitParams())
	z.Start(o)
	if o.PanSmoothness != 0 || o.ZoomSmoothness != 0 {
		t.Fatal("expected smoothing zeroed while active")
	}
	z.Cancel(o)
	if z.Active() {
		t.Error("still active after cancel")
	}
	if o.PanSmoothness != 0.02 || o.ZoomSmoothness != 0.10 {
		t.Errorf("smoothness = (%v, %v), want (0.02, 0.10)",
			o.PanSmoothness, o.ZoomSmoothness)
	}

	t.Run("cancel when idle is a no-op", func(t *testing.T) {
		z.Cancel(o)
		if o.PanSmoothness != 0.02 {
			t.Errorf("PanSmoothness = %v after idle cancel", o.PanSmoothness)
		}
	})
}

func TestZoomToFitRestartKeepsSavedSmoothness(t *testing.T) {
	o := NewOrbit(mgl32.Vec3{}, 500, 0, 0)
	o.PanSmoothness = 0.02
	o.ZoomSmoothness = 0.10

	z := NewZoomToFit(testFitParams())
	z.Start(o)
	// Restarting mid-fit must not capture the zeroed factors.
	z.Start(o)
	z.Cancel(o)
	if o.PanSmoothness != 0.02 || o.ZoomSmoothness != 0.10 {
		t.Errorf("smoothness = (%v, %v) after restart, want (0.02, 0.10)",
			o.PanSmoothness, o.ZoomSmoothness)
	}
}

func TestOrbitUpdate(t *testing.T) {
	o := NewOrbit(mgl32.Vec3{}, 100, 0, 0)
	o.TargetFocus = mgl32.Vec3{10, 0, 0}
	o.TargetRadius = 200

	t.Run("zero smoothness snaps", func(t *testing.T) {
		o.PanSmoothness = 0
		o.ZoomSmoothness = 0
		o.Update()
		if o.Focus != o.TargetFocus || o.Radius != o.TargetRadius {
			t.Errorf("camera did not snap: focus %v radius %v", o.Focus, o.Radius)
		}
	})

	t.Run("smoothing trails the target", func(t *testing.T) {
		o2 := NewOrbit(mgl32.Vec3{}, 100, 0, 0)
		o2.PanSmoothness = 0.5
		o2.ZoomSmoothness = 0.5
		o2.TargetRadius = 200
		o2.Update()
		if math.Abs(float64(o2.Radius-150)) > 1e-4 {
			t.Errorf("Radius = %v, want 150", o2.Radius)
		}
	})
}
