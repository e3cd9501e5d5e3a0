package camera

import (
	"log/slog"

	"github.com/go-gl/mathgl/mgl32"
)

// Status reports where the zoom-to-fit solver is in its lifecycle.
type Status uint8

const (
	Idle Status = iota
	Active
	Converged
	Stalled
	MaxIterations
)

func (s Status) String() string {
	switch s {
	case Idle:
		return "idle"
	case Active:
		return "active"
	case Converged:
		return "converged"
	case Stalled:
		return "stalled"
	case MaxIterations:
		return "max-iterations"
	}
	return "unknown"
}

const (
	// behindCameraBackoff scales the radius up when the boundary is not
	// fully in front of the camera.
	behindCameraBackoff = 1.5

	// flipDamp shrinks an adjustment whose simulated application would
	// hand the constraint to the other axis.
	flipDamp = 0.5

	// nearTargetFactor widens the margin tolerance for the flip check: a
	// constraint trade this close to target is convergence, not an error.
	nearTargetFactor = 10

	// recenterFraction of the radius is how far the focus may sit from
	// the boundary center before phase one hands over to screen-space
	// recentering.
	recenterFraction = 0.5
)

// FitParams tunes zoom-to-fit convergence.
type FitParams struct {
	Margin           float32 // fraction of the screen kept clear around the footprint
	MarginTolerance  float32 // at-target tolerance for the fit check
	BalanceTolerance float32 // tighter tolerance for opposite-margin balance
	FittingRate      float32 // adjustment rate while off target
	BalancingRate    float32 // gentler rate once fitted, to settle balance
	MaxIterations    int
	StallEpsilon     float32 // bounds changing less than this means the camera stopped moving
}

// MarginMultiplier converts the margin fraction into the scale the
// projection target uses.
func (p FitParams) MarginMultiplier() float32 {
	return 1 + p.Margin
}

// ZoomToFit iteratively adjusts an orbit camera's target focus and radius
// until the projected boundary fills the screen to the configured margin.
// Yaw and pitch stay locked at their values when the fit started.
type ZoomToFit struct {
	params FitParams

	status     Status
	iterations int

	lockedYaw   float32
	lockedPitch float32

	savedPan  float32
	savedZoom float32

	prev      ScreenBounds
	prevValid bool
}

// NewZoomToFit returns an idle solver.
func NewZoomToFit(params FitParams) *ZoomToFit {
	return &ZoomToFit{params: params}
}

// Start arms the solver. Camera smoothing is zeroed so the solver's
// adjustments apply immediately; the saved factors come back on every
// exit path.
func (z *ZoomToFit) Start(o *Orbit) {
	if z.status != Active {
		z.savedPan = o.PanSmoothness
		z.savedZoom = o.ZoomSmoothness
	}
	o.PanSmoothness = 0
	o.ZoomSmoothness = 0
	z.lockedYaw = o.TargetYaw
	z.lockedPitch = o.TargetPitch
	z.iterations = 0
	z.prevValid = false
	z.status = Active
}

// Cancel stops a fit mid-flight, restoring camera smoothing.
func (z *ZoomToFit) Cancel(o *Orbit) {
	if z.status != Active {
		return
	}
	z.finish(o, Idle)
}

// Active reports whether a fit is in progress.
func (z *ZoomToFit) Active() bool {
	return z.status == Active
}

// Status returns the solver state; terminal states persist until the next
// Start.
func (z *ZoomToFit) Status() Status {
	return z.status
}

// Iterations returns how many steps the current or last fit has taken.
func (z *ZoomToFit) Iterations() int {
	return z.iterations
}

// Params returns the solver tuning.
func (z *ZoomToFit) Params() FitParams {
	return z.params
}

// SetParams replaces the solver tuning; it applies from the next step.
func (z *ZoomToFit) SetParams(params FitParams) {
	z.params = params
}

// Step runs one solver iteration against the orbit camera's target state
// and returns the resulting status.
func (z *ZoomToFit) Step(o *Orbit, corners [8]mgl32.Vec3, fov, aspect float32) Status {
	if z.status != Active {
		return z.status
	}

	bounds, ok := z.project(o.TargetFocus, o.TargetRadius, corners, fov, aspect)
	if !ok {
		// Part of the boundary is behind the camera; recenter, back off,
		// and try again next step.
		o.TargetFocus = centroid(corners)
		o.TargetRadius *= behindCameraBackoff
		o.TargetYaw, o.TargetPitch = z.lockedYaw, z.lockedPitch
		return z.countIteration(o)
	}

	fitted := bounds.IsFitted(z.params.MarginTolerance)
	if fitted && bounds.IsBalanced(z.params.BalanceTolerance) {
		slog.Debug("zoom-to-fit converged", "iterations", z.iterations)
		z.finish(o, Converged)
		return z.status
	}

	if z.prevValid && boundsStable(bounds, z.prev, z.params.StallEpsilon) {
		slog.Debug("zoom-to-fit stalled", "iterations", z.iterations)
		z.finish(o, Stalled)
		return z.status
	}
	z.prev = bounds
	z.prevValid = true

	rate := z.params.FittingRate
	if fitted {
		rate = z.params.BalancingRate
	}
	focusAdj, radiusAdj := z.proposeAdjustment(o, bounds, corners, rate)

	// Simulate the adjusted camera before committing.
	if next, ok := z.project(o.TargetFocus.Add(focusAdj), o.TargetRadius+radiusAdj, corners, fov, aspect); ok {
		if next.constrainingAxis() != bounds.constrainingAxis() {
			if z.nearTarget(bounds) {
				// The constraint is trading sides this close to target;
				// pushing further only oscillates.
				slog.Debug("zoom-to-fit converged on constraint flip", "iterations", z.iterations)
				z.finish(o, Converged)
				return z.status
			}
			focusAdj = focusAdj.Mul(flipDamp)
			radiusAdj *= flipDamp
		} else if scale, overshoot := overshootRescale(bounds, next); overshoot {
			focusAdj = focusAdj.Mul(scale)
			radiusAdj *= scale
		}
	}

	o.TargetFocus = o.TargetFocus.Add(focusAdj)
	o.TargetRadius += radiusAdj
	o.TargetYaw, o.TargetPitch = z.lockedYaw, z.lockedPitch
	return z.countIteration(o)
}

// project evaluates the screen bounds for a hypothetical focus/radius at
// the locked orientation.
func (z *ZoomToFit) project(focus mgl32.Vec3, radius float32, corners [8]mgl32.Vec3, fov, aspect float32) (ScreenBounds, bool) {
	position := orbitPosition(focus, radius, z.lockedYaw, z.lockedPitch)
	right, up, forward := orbitBasis(focus, position)
	return ProjectBounds(corners, position, right, up, forward, fov, aspect, z.params.MarginMultiplier())
}

// proposeAdjustment computes this step's focus and radius deltas. The
// footprint span scales inversely with distance, so the radius that hits
// the target span is the current radius times the span ratio; the larger
// of the two axis ratios keeps both dimensions on screen.
func (z *ZoomToFit) proposeAdjustment(o *Orbit, bounds ScreenBounds, corners [8]mgl32.Vec3, rate float32) (mgl32.Vec3, float32) {
	spanX, spanY := bounds.Span()
	targetSpanX := 2 * bounds.HalfTanH / z.params.MarginMultiplier()
	targetSpanY := 2 * bounds.HalfTanV / z.params.MarginMultiplier()
	ratio := maxf(spanX/targetSpanX, spanY/targetSpanY)

	focusAdj := z.targetFocus(o, bounds, centroid(corners)).Sub(o.TargetFocus).Mul(rate)
	radiusAdj := (o.TargetRadius*ratio - o.TargetRadius) * rate
	return focusAdj, radiusAdj
}

// targetFocus picks the focus the camera should head toward. Far from the
// boundary it aims straight at the boundary center; once close, the
// projected footprint offset is converted back to world units along the
// camera's right/up axes to recenter in screen space.
func (z *ZoomToFit) targetFocus(o *Orbit, bounds ScreenBounds, center mgl32.Vec3) mgl32.Vec3 {
	if o.TargetFocus.Sub(center).Len() > o.TargetRadius*recenterFraction {
		return center
	}
	cx, cy := bounds.Center()
	position := orbitPosition(o.TargetFocus, o.TargetRadius, z.lockedYaw, z.lockedPitch)
	right, up, _ := orbitBasis(o.TargetFocus, position)
	correction := right.Mul(cx * bounds.AvgDepth).Add(up.Mul(cy * bounds.AvgDepth))
	return o.TargetFocus.Add(correction)
}

// nearTarget reports whether both axes sit within a widened band of their
// target margins.
func (z *ZoomToFit) nearTarget(bounds ScreenBounds) bool {
	band := z.params.MarginTolerance * nearTargetFactor
	return absf(bounds.MinMarginX()-bounds.TargetMarginX) <= band &&
		absf(bounds.MinMarginY()-bounds.TargetMarginY) <= band
}

func (z *ZoomToFit) countIteration(o *Orbit) Status {
	z.iterations++
	if z.iterations >= z.params.MaxIterations {
		slog.Warn("zoom-to-fit hit the iteration cap")
		z.finish(o, MaxIterations)
	}
	return z.status
}

func (z *ZoomToFit) finish(o *Orbit, s Status) {
	o.PanSmoothness = z.savedPan
	o.ZoomSmoothness = z.savedZoom
	z.status = s
}

// overshootRescale detects the constraining margin crossing its target in
// the simulated frame and rescales the adjustment to land on the target
// instead of swinging past it.
func overshootRescale(current, next ScreenBounds) (float32, bool) {
	var before, after, target float32
	if current.constrainingAxis() == 0 {
		before, after, target = current.MinMarginX(), next.MinMarginX(), current.TargetMarginX
	} else {
		before, after, target = current.MinMarginY(), next.MinMarginY(), current.TargetMarginY
	}
	errBefore := before - target
	errAfter := after - target
	if errBefore == 0 || errBefore*errAfter >= 0 {
		return 1, false
	}
	return errBefore / (errBefore - errAfter), true
}

// boundsStable reports whether two successive projections are close enough
// that further steps cannot make progress.
func boundsStable(a, b ScreenBounds, epsilon float32) bool {
	return absf(a.MinX-b.MinX) < epsilon &&
		absf(a.MaxX-b.MaxX) < epsilon &&
		absf(a.MinY-b.MinY) < epsilon &&
		absf(a.MaxY-b.MaxY) < epsilon
}

func centroid(corners [8]mgl32.Vec3) mgl32.Vec3 {
	var sum mgl32.Vec3
	for _, c := range corners {
		sum = sum.Add(c)
	}
	return sum.Mul(1.0 / 8.0)
}
