package playfield

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// DrawOp selects the primitive a DrawCommand renders with.
type DrawOp uint8

const (
	OpCircle   DrawOp = iota // full circle in the face plane
	OpArc                    // explicit sweep about the face normal
	OpShortArc               // shortest arc between two endpoints
)

// DrawCommand is one renderer-agnostic portal primitive. The renderer
// decides color, line width, and sampling resolution.
type DrawCommand struct {
	Op     DrawOp
	Face   Face
	Center mgl32.Vec3
	Radius float32
	Normal mgl32.Vec3

	// Start and Angle describe an OpArc: unit start vector from Center
	// and the sweep, right-hand rule about Normal.
	Start mgl32.Vec3
	Angle float32

	// From and To are the OpShortArc endpoints.
	From, To mgl32.Vec3
}

// BuildPortalDraw classifies the portal and produces its draw commands.
func (b *Boundary) BuildPortalDraw(p *Portal) []DrawCommand {
	geom := b.ClassifyPortal(p)
	if geom.Kind == SingleFace {
		return []DrawCommand{{
			Op:     OpCircle,
			Face:   p.Face,
			Center: p.Position,
			Radius: p.Radius,
			Normal: p.Normal(),
		}}
	}
	return b.buildMultiFace(p, geom)
}

func (b *Boundary) buildMultiFace(p *Portal, geom Geometry) []DrawCommand {
	min, max := b.Min(), b.Max()
	faces := geom.allFaces()
	var cmds []DrawCommand
	for _, face := range faces {
		points := IntersectCircleRectangle(p.Position, p.Radius, face.Points(min, max))
		points = constrainToFaces(points, face, faces, min, max)
		if len(points) < minPointsForArc {
			// Clipped down to a single touch point, nothing to draw here.
			continue
		}
		switch {
		case geom.Kind == EdgeSpan && face == geom.Primary:
			cmds = append(cmds, buildPrimaryArc(p, face, points[0], points[1]))
		case geom.Kind == EdgeSpan:
			// The neighbor's arc is drawn about a virtual center so it
			// reads as the same circle folded over the edge.
			center := b.rotateCenterToFace(p.Position, p.Normal(), face)
			cmds = append(cmds, DrawCommand{
				Op:     OpShortArc,
				Face:   face,
				Center: center,
				Normal: face.Normal(),
				From:   points[0],
				To:     points[1],
			})
		default:
			// Corner spans use the true center; the constrained points
			// already bound each face's share of the circle.
			cmds = append(cmds, DrawCommand{
				Op:     OpShortArc,
				Face:   face,
				Center: p.Position,
				Normal: face.Normal(),
				From:   points[0],
				To:     points[1],
			})
		}
	}
	return cmds
}

// buildPrimaryArc produces the visible major arc on the portal's own face.
// The short arc between the two intersection points is the part hanging
// past the edge, so the drawn sweep is its complement. The start vector is
// the endpoint from which a right-hand rotation about the face normal by
// the sweep lands on the other endpoint.
func buildPrimaryArc(p *Portal, face Face, from, to mgl32.Vec3) DrawCommand {
	normal := face.Normal()
	vecFrom := from.Sub(p.Position).Normalize()
	vecTo := to.Sub(p.Position).Normalize()

	angle := angleBetween(vecFrom, vecTo)
	sweep := float32(2*math.Pi) - angle
	start := vecTo
	if vecFrom.Cross(vecTo).Dot(normal) < 0 {
		start = vecFrom
	}
	return DrawCommand{
		Op:     OpArc,
		Face:   face,
		Center: p.Position,
		Radius: p.Radius,
		Normal: normal,
		Start:  start,
		Angle:  sweep,
	}
}

// rotateCenterToFace folds the portal center 90 degrees over the shared
// edge onto the neighboring face's plane, pivoting around the closest
// point on that edge.
func (b *Boundary) rotateCenterToFace(position, normal mgl32.Vec3, target Face) mgl32.Vec3 {
	targetNormal := target.Normal()
	axis := normal.Cross(targetNormal)
	if axis.Len() < NormalEpsilon {
		return position
	}
	axis = axis.Normalize()
	pivot := b.closestPointOnEdge(position, normal, targetNormal)
	rotated := mgl32.QuatRotate(float32(math.Pi/2), axis).Rotate(position.Sub(pivot))
	result := pivot.Add(rotated)
	// Rotation drifts slightly off-plane in float32; pin it.
	result[target.axis()] = b.facePlane(target)
	return result
}

// closestPointOnEdge returns the point nearest to position on the edge
// shared by the faces the two normals name. The edge runs along the axis
// neither normal points down; the other two coordinates sit on the
// boundary planes.
func (b *Boundary) closestPointOnEdge(position, n1, n2 mgl32.Vec3) mgl32.Vec3 {
	min, max := b.Min(), b.Max()
	var point mgl32.Vec3
	for i := 0; i < 3; i++ {
		switch {
		case n1[i] > 0 || n2[i] > 0:
			point[i] = max[i]
		case n1[i] < 0 || n2[i] < 0:
			point[i] = min[i]
		default:
			point[i] = mgl32.Clamp(position[i], min[i], max[i])
		}
	}
	return point
}

// angleBetween returns the unsigned angle between two unit vectors.
func angleBetween(a, c mgl32.Vec3) float32 {
	dot := mgl32.Clamp(a.Dot(c), -1, 1)
	return float32(math.Acos(float64(dot)))
}
