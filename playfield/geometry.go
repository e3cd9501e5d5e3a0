package playfield

import (
	"log/slog"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// minPointsForArc is the fewest constrained intersection points a face
// needs before it contributes a visible arc.
const minPointsForArc = 2

// maxIntersectionsPerFace bounds the circle/rectangle intersection count.
// A circle crosses a convex quadrilateral's boundary at most four times.
const maxIntersectionsPerFace = 4

// rootDedupeEpsilon treats quadratic roots closer than this as a single
// tangent touch.
const rootDedupeEpsilon = 1e-6

// GeometryKind classifies how a portal circle sits on the boundary faces.
type GeometryKind uint8

const (
	SingleFace GeometryKind = iota // fully within one face
	EdgeSpan                       // spills over one edge into a neighbor
	CornerSpan                     // spills into a corner, two or more neighbors
)

func (k GeometryKind) String() string {
	switch k {
	case SingleFace:
		return "single-face"
	case EdgeSpan:
		return "edge"
	default:
		return "corner"
	}
}

// Geometry is the classification of a portal against the boundary faces.
type Geometry struct {
	Kind    GeometryKind
	Primary Face

	// Overextended lists the neighboring faces the circle spills past,
	// empty for SingleFace.
	Overextended []Face
}

// allFaces returns the primary face followed by the overextended ones.
func (g Geometry) allFaces() []Face {
	return append([]Face{g.Primary}, g.Overextended...)
}

// ClassifyPortal determines whether the portal circle stays on its own
// face or spills over an edge or corner.
func (b *Boundary) ClassifyPortal(p *Portal) Geometry {
	over := b.overextendedFaces(p)
	switch len(over) {
	case 0:
		return Geometry{Kind: SingleFace, Primary: p.Face}
	case 1:
		return Geometry{Kind: EdgeSpan, Primary: p.Face, Overextended: over}
	default:
		return Geometry{Kind: CornerSpan, Primary: p.Face, Overextended: over}
	}
}

// overextendedFaces returns the faces, other than the portal's own, whose
// planes the circle extends past. The epsilon pad keeps a portal snapped
// just inside its face from flagging that face every frame.
func (b *Boundary) overextendedFaces(p *Portal) []Face {
	min, max := b.Min(), b.Max()
	r := p.Radius
	var candidates []Face
	if p.Position[0]-r < min[0]-OverextendEpsilon {
		candidates = append(candidates, Left)
	}
	if p.Position[0]+r > max[0]+OverextendEpsilon {
		candidates = append(candidates, Right)
	}
	if p.Position[1]-r < min[1]-OverextendEpsilon {
		candidates = append(candidates, Bottom)
	}
	if p.Position[1]+r > max[1]+OverextendEpsilon {
		candidates = append(candidates, Top)
	}
	if p.Position[2]-r < min[2]-OverextendEpsilon {
		candidates = append(candidates, Back)
	}
	if p.Position[2]+r > max[2]+OverextendEpsilon {
		candidates = append(candidates, Front)
	}
	faces := candidates[:0]
	for _, f := range candidates {
		if f != p.Face {
			faces = append(faces, f)
		}
	}
	return faces
}

// PortalFaceCount returns how many faces the portal circle actually spans.
// Overextension alone over-counts: the circle can poke past a face's plane
// without crossing the face rectangle itself, so each candidate face must
// produce a valid arc before it counts.
func (b *Boundary) PortalFaceCount(p *Portal) int {
	geom := b.ClassifyPortal(p)
	if geom.Kind == SingleFace {
		return 1
	}
	min, max := b.Min(), b.Max()
	faces := geom.allFaces()
	count := 0
	for _, face := range faces {
		points := IntersectCircleRectangle(p.Position, p.Radius, face.Points(min, max))
		points = constrainToFaces(points, face, faces, min, max)
		if len(points) >= minPointsForArc {
			count++
		}
	}
	return count
}

// IntersectCircleRectangle intersects a circle against the four edges of a
// face rectangle and returns the hit points. More than four points means
// broken geometry upstream; the excess is logged and dropped rather than
// drawn.
func IntersectCircleRectangle(center mgl32.Vec3, radius float32, rect [4]mgl32.Vec3) []mgl32.Vec3 {
	var points []mgl32.Vec3
	for i := 0; i < 4; i++ {
		points = append(points, intersectCircleSegment(center, radius, rect[i], rect[(i+1)%4])...)
	}
	if len(points) > maxIntersectionsPerFace {
		slog.Error("circle-rectangle intersection produced more than four points",
			"count", len(points), "center", center, "radius", radius)
		points = points[:maxIntersectionsPerFace]
	}
	return points
}

// intersectCircleSegment solves the quadratic for a circle against one
// segment, keeping roots within the segment.
func intersectCircleSegment(center mgl32.Vec3, radius float32, start, end mgl32.Vec3) []mgl32.Vec3 {
	edge := end.Sub(start)
	toStart := start.Sub(center)

	a := edge.Dot(edge)
	bq := 2 * toStart.Dot(edge)
	c := toStart.Dot(toStart) - radius*radius

	if a == 0 {
		return nil
	}
	disc := bq*bq - 4*a*c
	if disc < 0 {
		return nil
	}
	sqrtDisc := float32(math.Sqrt(float64(disc)))
	t1 := (-bq + sqrtDisc) / (2 * a)
	t2 := (-bq - sqrtDisc) / (2 * a)

	var points []mgl32.Vec3
	if t1 >= 0 && t1 <= 1 {
		points = append(points, start.Add(edge.Mul(t1)))
	}
	// A tangent touch yields two near-identical roots; count it once.
	if t2 >= 0 && t2 <= 1 && absf(t1-t2) > rootDedupeEpsilon {
		points = append(points, start.Add(edge.Mul(t2)))
	}
	return points
}

// constrainToFaces drops intersection points that extend beyond any other
// face in the active set. At corners this keeps each face's arc from
// spilling into its neighbors.
func constrainToFaces(points []mgl32.Vec3, current Face, all []Face, min, max mgl32.Vec3) []mgl32.Vec3 {
	kept := points[:0]
	for _, point := range points {
		if withinOtherFaces(point, current, all, min, max) {
			kept = append(kept, point)
		}
	}
	return kept
}

func withinOtherFaces(point mgl32.Vec3, current Face, all []Face, min, max mgl32.Vec3) bool {
	for _, other := range all {
		if other == current || other.sharesAxis(current) {
			continue
		}
		axis := other.axis()
		if other.positive() {
			if point[axis] > max[axis] {
				return false
			}
		} else if point[axis] < min[axis] {
			return false
		}
	}
	return true
}
