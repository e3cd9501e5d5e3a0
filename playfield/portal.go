package playfield

import "github.com/go-gl/mathgl/mgl32"

// minRadiusFraction is the portal size at the wall relative to full size.
// Half keeps the actor's silhouette covered as it passes through.
const minRadiusFraction = 0.5

// Portal is a circular marker pinned to a boundary face, tracking one
// actor. An actor carries up to two: one approaching the face it is headed
// toward, and one emerging at its teleport destination.
type Portal struct {
	Position mgl32.Vec3
	Radius   float32
	Face     Face

	// Direction is the actor's normalized travel direction.
	Direction mgl32.Vec3

	// DistanceToFace is how far the actor is from the tracked exit point.
	DistanceToFace float32

	// ApproachDistance and ShrinkDistance are the activation and shrink
	// thresholds, in world units, derived from the boundary size.
	ApproachDistance float32
	ShrinkDistance   float32

	// FaceCount is how many faces the circle currently spans.
	FaceCount int

	// FadeOutStarted is the game time the marker began disappearing,
	// nil while it is not fading.
	FadeOutStarted *float64
}

// Normal returns the outward normal of the portal's face.
func (p *Portal) Normal() mgl32.Vec3 {
	return p.Face.Normal()
}

// ApproachRadius returns the drawn radius for an approaching portal: full
// size outside the shrink zone, scaling linearly down to half size at the
// wall.
func (p *Portal) ApproachRadius() float32 {
	if p.DistanceToFace > p.ShrinkDistance {
		return p.Radius
	}
	floor := p.Radius * minRadiusFraction
	if p.ShrinkDistance <= 0 {
		return floor
	}
	scale := mgl32.Clamp(p.DistanceToFace/p.ShrinkDistance, 0, 1)
	return floor + (p.Radius-floor)*scale
}
