package playfield

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestFaceNormalRoundTrip(t *testing.T) {
	for _, face := range Faces {
		t.Run(face.String(), func(t *testing.T) {
			got, ok := FaceFromNormal(face.Normal())
			if !ok {
				t.Fatalf("FaceFromNormal rejected %v", face.Normal())
			}
			if got != face {
				t.Errorf("round trip gave %v, want %v", got, face)
			}
		})
	}
}

func TestFaceFromNormalRejectsNonAxisVectors(t *testing.T) {
	vectors := []mgl32.Vec3{
		{0, 0, 0},
		{0.5, 0.5, 0},
		mgl32.Vec3{1, 1, 1}.Normalize(),
		{0.9, 0, 0},
		{2, 0, 0},
	}
	for _, v := range vectors {
		if _, ok := FaceFromNormal(v); ok {
			t.Errorf("FaceFromNormal accepted %v", v)
		}
	}
}

func TestFacePoints(t *testing.T) {
	b := New(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{100, 100, 100})
	min, max := b.Min(), b.Max()

	for _, face := range Faces {
		t.Run(face.String(), func(t *testing.T) {
			points := face.Points(min, max)
			axis := face.axis()
			plane := b.facePlane(face)
			for i, p := range points {
				if p[axis] != plane {
					t.Errorf("corner %d not on face plane: %v", i, p)
				}
			}
			// Consecutive corners must share an edge: exactly one of the
			// in-plane coordinates changes between them.
			for i := range points {
				a, c := points[i], points[(i+1)%4]
				changed := 0
				for axis := 0; axis < 3; axis++ {
					if a[axis] != c[axis] {
						changed++
					}
				}
				if changed != 1 {
					t.Errorf("corners %d and %d do not share an edge: %v -> %v", i, (i+1)%4, a, c)
				}
			}
		})
	}
}

func TestFaceAxisRelations(t *testing.T) {
	pairs := []struct {
		a, b Face
		want bool
	}{
		{Left, Right, true},
		{Top, Bottom, true},
		{Front, Back, true},
		{Left, Top, false},
		{Right, Front, false},
		{Bottom, Back, false},
	}
	for _, p := range pairs {
		if got := p.a.sharesAxis(p.b); got != p.want {
			t.Errorf("sharesAxis(%v, %v) = %v, want %v", p.a, p.b, got, p.want)
		}
	}
}
