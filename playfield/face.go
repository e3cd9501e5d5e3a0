// Package playfield implements the toroidal play volume: the boundary
// cuboid actors wrap around, teleport position remapping, and the portal
// circle geometry drawn where actors cross its faces.
package playfield

import "github.com/go-gl/mathgl/mgl32"

// Face identifies one of the six axis-aligned faces of the boundary cuboid.
type Face uint8

const (
	Left Face = iota
	Right
	Top
	Bottom
	Front
	Back
)

// Faces lists all six faces in classification order.
var Faces = [6]Face{Left, Right, Top, Bottom, Front, Back}

func (f Face) String() string {
	switch f {
	case Left:
		return "left"
	case Right:
		return "right"
	case Top:
		return "top"
	case Bottom:
		return "bottom"
	case Front:
		return "front"
	case Back:
		return "back"
	}
	return "unknown"
}

// Normal returns the outward unit normal of the face.
func (f Face) Normal() mgl32.Vec3 {
	switch f {
	case Left:
		return mgl32.Vec3{-1, 0, 0}
	case Right:
		return mgl32.Vec3{1, 0, 0}
	case Top:
		return mgl32.Vec3{0, 1, 0}
	case Bottom:
		return mgl32.Vec3{0, -1, 0}
	case Front:
		return mgl32.Vec3{0, 0, 1}
	default:
		return mgl32.Vec3{0, 0, -1}
	}
}

// FaceFromNormal maps an axis-aligned unit normal back to its face.
// Only the six axis-aligned unit vectors correspond to a face; any other
// vector returns ok=false.
func FaceFromNormal(normal mgl32.Vec3) (Face, bool) {
	for _, f := range Faces {
		if normal.ApproxEqualThreshold(f.Normal(), NormalEpsilon) {
			return f, true
		}
	}
	return Right, false
}

// Points returns the four corners of the face rectangle, ordered so that
// consecutive points share an edge.
func (f Face) Points(min, max mgl32.Vec3) [4]mgl32.Vec3 {
	switch f {
	case Left:
		return [4]mgl32.Vec3{
			{min[0], min[1], min[2]},
			{min[0], max[1], min[2]},
			{min[0], max[1], max[2]},
			{min[0], min[1], max[2]},
		}
	case Right:
		return [4]mgl32.Vec3{
			{max[0], min[1], min[2]},
			{max[0], max[1], min[2]},
			{max[0], max[1], max[2]},
			{max[0], min[1], max[2]},
		}
	case Bottom:
		return [4]mgl32.Vec3{
			{min[0], min[1], min[2]},
			{max[0], min[1], min[2]},
			{max[0], min[1], max[2]},
			{min[0], min[1], max[2]},
		}
	case Top:
		return [4]mgl32.Vec3{
			{min[0], max[1], min[2]},
			{max[0], max[1], min[2]},
			{max[0], max[1], max[2]},
			{min[0], max[1], max[2]},
		}
	case Back:
		return [4]mgl32.Vec3{
			{min[0], min[1], min[2]},
			{max[0], min[1], min[2]},
			{max[0], max[1], min[2]},
			{min[0], max[1], min[2]},
		}
	default: // Front
		return [4]mgl32.Vec3{
			{min[0], min[1], max[2]},
			{max[0], min[1], max[2]},
			{max[0], max[1], max[2]},
			{min[0], max[1], max[2]},
		}
	}
}

// axis returns the coordinate axis the face is perpendicular to.
func (f Face) axis() int {
	switch f {
	case Left, Right:
		return 0
	case Top, Bottom:
		return 1
	default:
		return 2
	}
}

// positive reports whether the face sits on the max side of its axis.
func (f Face) positive() bool {
	switch f {
	case Right, Top, Front:
		return true
	}
	return false
}

// sharesAxis reports whether two faces are perpendicular to the same axis.
// A point on one face has that coordinate fixed, so the opposite face on
// the same axis can never constrain it.
func (f Face) sharesAxis(other Face) bool {
	return f.axis() == other.axis()
}
