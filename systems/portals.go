package systems

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/voidbox/components"
	"github.com/pthm-cable/voidbox/playfield"
)

// PortalParams holds the tunables for portal visuals.
type PortalParams struct {
	Scalar           float32 // portal radius = actor AABB max dimension x this
	Smallest         float32 // floor for the pre-scalar radius
	MinimumRadius    float32 // markers below this are removed
	DistanceApproach float32 // approach threshold as a fraction of the smallest boundary dimension
	DistanceShrink   float32 // shrink threshold, same basis
	FadeoutDuration  float64 // seconds from fade start to gone
	SmoothingFactor  float32 // per-frame lerp toward the tracked exit point
	DirectionChange  float32 // normal dot-product below which smoothing is skipped
}

// PortalSystem maintains the approaching/emerging marker pair for every
// actor near the boundary. It runs after teleport resolution so the
// emerging side sees fresh flags.
type PortalSystem struct {
	filter   ecs.Filter5[components.Position, components.Velocity, components.Aabb, components.Teleporter, components.ActorPortals]
	boundary *playfield.Boundary
	params   PortalParams
}

// NewPortalSystem creates a portal system for the boundary.
func NewPortalSystem(w *ecs.World, boundary *playfield.Boundary, params PortalParams) *PortalSystem {
	return &PortalSystem{
		filter:   *ecs.NewFilter5[components.Position, components.Velocity, components.Aabb, components.Teleporter, components.ActorPortals](w),
		boundary: boundary,
		params:   params,
	}
}

// Params returns the current tuning.
func (s *PortalSystem) Params() PortalParams {
	return s.params
}

// SetParams replaces the tuning for subsequent updates.
func (s *PortalSystem) SetParams(params PortalParams) {
	s.params = params
}

// Update refreshes portal positions, radii, and lifetimes. now is the
// game clock in seconds.
func (s *PortalSystem) Update(w *ecs.World, now float64) {
	smallestSide := s.boundary.MinDimension()
	approach := smallestSide * s.params.DistanceApproach
	shrink := smallestSide * s.params.DistanceShrink

	query := s.filter.Query()
	for query.Next() {
		pos, vel, aabb, tp, portals := query.Get()

		radius := maxf(aabb.MaxDimension(), s.params.Smallest) * s.params.Scalar
		base := playfield.Portal{
			Position:         pos.Vec(),
			Direction:        normalizeOrZero(vel.Vec()),
			Radius:           radius,
			ApproachDistance: approach,
			ShrinkDistance:   shrink,
			FaceCount:        1,
		}

		s.updateApproaching(portals, base, now)
		s.updateEmerging(portals, base, tp, now)
		s.decayApproaching(portals, now)
		s.decayEmerging(portals, now)
	}
}

// updateApproaching tracks the exit point of the actor's travel ray and
// keeps the approaching marker pinned to the face it will cross.
func (s *PortalSystem) updateApproaching(portals *components.ActorPortals, base playfield.Portal, now float64) {
	if collision, ok := s.boundary.FindEdgePoint(base.Position, base.Direction); ok {
		distance := collision.Sub(base.Position).Len()
		if distance <= base.ApproachDistance {
			if s.placeApproaching(portals, base, collision, distance) {
				return
			}
		}
	}

	// No longer approaching: burst anomalies vanish on the spot, normal
	// departures fade out.
	if portals.Approaching == nil {
		return
	}
	if s.boundary.IsPhysicsBurst(base.Position) {
		portals.Approaching = nil
	} else if portals.Approaching.FadeOutStarted == nil {
		start := now
		portals.Approaching.FadeOutStarted = &start
	}
}

// placeApproaching positions the marker for this frame. It reports false
// when snapping lands the marker somewhere without a valid face, in which
// case the marker is treated as not approaching.
func (s *PortalSystem) placeApproaching(portals *components.ActorPortals, base playfield.Portal, collision mgl32.Vec3, distance float32) bool {
	normal := s.boundary.NormalForPosition(collision)
	face, ok := playfield.FaceFromNormal(normal)
	if !ok {
		return false
	}

	// Face count is evaluated at the raw collision point, before any
	// smoothing, so a topology change is seen the frame it happens.
	probe := base
	probe.Position = collision
	probe.Face = face
	faceCount := s.boundary.PortalFaceCount(&probe)

	prevCount := 1
	if portals.Approaching != nil {
		prevCount = portals.Approaching.FaceCount
	}

	position := collision
	if faceCount == prevCount {
		position = s.smoothPosition(portals.Approaching, collision, normal)
	}

	snapped := s.boundary.SnapToFace(position, normal)
	snappedFace, ok := playfield.FaceFromNormal(s.boundary.NormalForPosition(snapped))
	if !ok {
		return false
	}

	next := base
	next.Position = snapped
	next.Face = snappedFace
	next.DistanceToFace = distance
	next.FaceCount = faceCount
	portals.Approaching = &next
	return true
}

// smoothPosition lerps the marker toward the new exit point while it
// stays on the same wall; when the target wall changes the marker jumps
// instead of sliding across the box.
func (s *PortalSystem) smoothPosition(prev *playfield.Portal, collision, normal mgl32.Vec3) mgl32.Vec3 {
	if prev == nil {
		return collision
	}
	if prev.Normal().Dot(normal) > s.params.DirectionChange {
		return prev.Position.Add(collision.Sub(prev.Position).Mul(s.params.SmoothingFactor))
	}
	return collision
}

// updateEmerging spawns the destination marker on the teleport frame,
// already fading.
func (s *PortalSystem) updateEmerging(portals *components.ActorPortals, base playfield.Portal, tp *components.Teleporter, now float64) {
	if !tp.JustTeleported {
		if portals.Emerging != nil && portals.Emerging.Radius <= s.params.MinimumRadius {
			portals.Emerging = nil
		}
		return
	}
	if tp.LastPosition == nil || tp.LastNormal == nil {
		return
	}
	if s.boundary.IsPhysicsBurst(*tp.LastPosition) {
		portals.Emerging = nil
		return
	}

	snapped := s.boundary.SnapToFace(*tp.LastPosition, *tp.LastNormal)
	face, ok := playfield.FaceFromNormal(s.boundary.NormalForPosition(snapped))
	if !ok {
		return
	}

	start := now
	next := base
	next.Position = snapped
	next.Face = face
	next.DistanceToFace = 0
	next.FadeOutStarted = &start
	portals.Emerging = &next
}

// decayApproaching applies the distance-based shrink, or the fade-out
// once the marker has been abandoned.
func (s *PortalSystem) decayApproaching(portals *components.ActorPortals, now float64) {
	a := portals.Approaching
	if a == nil {
		return
	}
	if a.FadeOutStarted == nil {
		a.Radius = a.ApproachRadius()
		return
	}
	elapsed := now - *a.FadeOutStarted
	if elapsed >= s.params.FadeoutDuration || a.Radius < s.params.MinimumRadius {
		portals.Approaching = nil
		return
	}
	factor := 1 - float32(elapsed/s.params.FadeoutDuration)
	a.Radius *= mgl32.Clamp(factor, 0, 1)
}

// decayEmerging shrinks the destination marker linearly to nothing.
func (s *PortalSystem) decayEmerging(portals *components.ActorPortals, now float64) {
	e := portals.Emerging
	if e == nil || e.FadeOutStarted == nil {
		return
	}
	elapsed := now - *e.FadeOutStarted
	if elapsed >= s.params.FadeoutDuration {
		portals.Emerging = nil
		return
	}
	progress := mgl32.Clamp(float32(elapsed/s.params.FadeoutDuration), 0, 1)
	if shrunk := e.Radius * (1 - progress); shrunk > 0 {
		e.Radius = shrunk
	}
}

func normalizeOrZero(v mgl32.Vec3) mgl32.Vec3 {
	if v.Len() < 1e-8 {
		return mgl32.Vec3{}
	}
	return v.Normalize()
}

func maxf(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}
