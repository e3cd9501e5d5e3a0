package playfield

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	// SnapEpsilon is how far inside a face plane snapped positions land.
	// A position exactly on the plane sits on multiple faces near corners
	// and flips its nearest-face normal frame to frame.
	SnapEpsilon = 0.01

	// OverextendEpsilon pads the overextension checks so a portal snapped
	// SnapEpsilon inside its face does not read as crossing that face.
	OverextendEpsilon = SnapEpsilon * 2

	// NormalEpsilon is the tolerance for nearest-face ties and for matching
	// a vector against the six axis normals.
	NormalEpsilon = 0.001

	// BurstMultiplier scales the half-diagonal for physics burst detection.
	BurstMultiplier = 2.0
)

// Boundary is the axis-aligned cuboid that actors wrap around.
// Extents are full side lengths and must stay positive.
type Boundary struct {
	Center  mgl32.Vec3
	Extents mgl32.Vec3
}

// New returns a boundary centered at center with full extents.
func New(center, extents mgl32.Vec3) *Boundary {
	return &Boundary{Center: center, Extents: extents}
}

// Min returns the corner with the smallest coordinate on every axis.
func (b *Boundary) Min() mgl32.Vec3 {
	return b.Center.Sub(b.Extents.Mul(0.5))
}

// Max returns the corner with the largest coordinate on every axis.
func (b *Boundary) Max() mgl32.Vec3 {
	return b.Center.Add(b.Extents.Mul(0.5))
}

// Corners returns the eight corners of the cuboid.
func (b *Boundary) Corners() [8]mgl32.Vec3 {
	min, max := b.Min(), b.Max()
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

// LongestDiagonal returns the corner-to-corner diagonal length.
func (b *Boundary) LongestDiagonal() float32 {
	return b.Extents.Len()
}

// MaxDimension returns the largest extent.
func (b *Boundary) MaxDimension() float32 {
	return maxf(b.Extents[0], maxf(b.Extents[1], b.Extents[2]))
}

// MinDimension returns the smallest extent.
func (b *Boundary) MinDimension() float32 {
	return minf(b.Extents[0], minf(b.Extents[1], b.Extents[2]))
}

// WrapPosition maps a position at or past any face onto the mirrored
// position entering from the opposite face. Axes wrap independently, so an
// edge or corner crossing wraps every affected axis in one call. Each axis
// wraps at most once; a single-frame displacement larger than a full
// dimension still lands outside the boundary.
func (b *Boundary) WrapPosition(position mgl32.Vec3) mgl32.Vec3 {
	min, max := b.Min(), b.Max()
	wrapped := position
	for i := 0; i < 3; i++ {
		switch {
		case position[i] >= max[i]:
			wrapped[i] = min[i] + (position[i] - max[i])
		case position[i] <= min[i]:
			wrapped[i] = max[i] - (min[i] - position[i])
		}
	}
	return wrapped
}

// NormalForPosition returns the outward normal of the face whose plane is
// nearest to the position. Ties within NormalEpsilon resolve in the fixed
// order -X, +X, -Y, +Y, -Z, +Z so results are stable at edges and corners.
func (b *Boundary) NormalForPosition(position mgl32.Vec3) mgl32.Vec3 {
	min, max := b.Min(), b.Max()
	distances := [6]float32{
		absf(position[0] - min[0]), // Left
		absf(position[0] - max[0]), // Right
		absf(position[1] - min[1]), // Bottom
		absf(position[1] - max[1]), // Top
		absf(position[2] - min[2]), // Back
		absf(position[2] - max[2]), // Front
	}
	normals := [6]mgl32.Vec3{
		Left.Normal(),
		Right.Normal(),
		Bottom.Normal(),
		Top.Normal(),
		Back.Normal(),
		Front.Normal(),
	}
	nearest := distances[0]
	for _, d := range distances[1:] {
		nearest = minf(nearest, d)
	}
	for i, d := range distances {
		if d <= nearest+NormalEpsilon {
			return normals[i]
		}
	}
	return Top.Normal()
}

// FindEdgePoint casts a ray from origin along direction and returns the
// point where it exits the cuboid. Only forward hits count, and a hit on
// one axis plane must land within the face rectangle on the other two
// axes. ok is false for a zero direction or when no face is hit.
func (b *Boundary) FindEdgePoint(origin, direction mgl32.Vec3) (mgl32.Vec3, bool) {
	min, max := b.Min(), b.Max()
	nearest := float32(math.MaxFloat32)
	found := false
	for axis := 0; axis < 3; axis++ {
		if direction[axis] == 0 {
			continue
		}
		for _, plane := range [2]float32{max[axis], min[axis]} {
			t := (plane - origin[axis]) / direction[axis]
			if t <= 0 || t >= nearest {
				continue
			}
			if withinFaceRect(origin.Add(direction.Mul(t)), axis, min, max) {
				nearest = t
				found = true
			}
		}
	}
	if !found {
		return mgl32.Vec3{}, false
	}
	return origin.Add(direction.Mul(nearest)), true
}

// withinFaceRect checks the two coordinates other than axis against the box.
func withinFaceRect(point mgl32.Vec3, axis int, min, max mgl32.Vec3) bool {
	for i := 0; i < 3; i++ {
		if i == axis {
			continue
		}
		if point[i] < min[i] || point[i] > max[i] {
			return false
		}
	}
	return true
}

// SnapToFace pins a position SnapEpsilon inside the face the normal names
// and clamps the other two axes into the boundary. Positions with a
// non-axis normal are returned unchanged.
func (b *Boundary) SnapToFace(position, normal mgl32.Vec3) mgl32.Vec3 {
	face, ok := FaceFromNormal(normal)
	if !ok {
		return position
	}
	min, max := b.Min(), b.Max()
	snapped := position
	axis := face.axis()
	if face.positive() {
		snapped[axis] = max[axis] - SnapEpsilon
	} else {
		snapped[axis] = min[axis] + SnapEpsilon
	}
	for i := 0; i < 3; i++ {
		if i != axis {
			snapped[i] = mgl32.Clamp(snapped[i], min[i], max[i])
		}
	}
	return snapped
}

// IsPhysicsBurst reports whether a position is so far outside the boundary
// that it can only be a physics anomaly, not normal travel.
func (b *Boundary) IsPhysicsBurst(position mgl32.Vec3) bool {
	halfDiagonal := b.LongestDiagonal() / 2
	return position.Sub(b.Center).Len() > halfDiagonal*BurstMultiplier
}

// facePlane returns the face's fixed coordinate on its axis.
func (b *Boundary) facePlane(f Face) float32 {
	if f.positive() {
		return b.Max()[f.axis()]
	}
	return b.Min()[f.axis()]
}

func absf(v float32) float32 {
	return float32(math.Abs(float64(v)))
}

func minf(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

func maxf(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}
