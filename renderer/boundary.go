package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/pthm-cable/voidbox/playfield"
)

// DrawBoundaryGrid draws the outer box of the play volume plus the cell
// lattice on its surface.
func DrawBoundaryGrid(b *playfield.Boundary, cells [3]int, gridColor, boxColor rl.Color) {
	min, max := b.Min(), b.Max()

	for axis := 0; axis < 3; axis++ {
		n := cells[axis]
		if n < 1 {
			continue
		}
		step := (max[axis] - min[axis]) / float32(n)
		for i := 0; i <= n; i++ {
			color := gridColor
			if i == 0 || i == n {
				color = boxColor
			}
			drawSliceRect(min, max, axis, min[axis]+step*float32(i), color)
		}
	}
}

// drawSliceRect outlines the cross-section rectangle of the box at a
// fixed coordinate on one axis.
func drawSliceRect(min, max mgl32.Vec3, axis int, value float32, color rl.Color) {
	u := (axis + 1) % 3
	v := (axis + 2) % 3

	corner := func(uVal, vVal float32) rl.Vector3 {
		var p mgl32.Vec3
		p[axis] = value
		p[u] = uVal
		p[v] = vVal
		return toRl(p)
	}

	a := corner(min[u], min[v])
	b := corner(max[u], min[v])
	c := corner(max[u], max[v])
	d := corner(min[u], max[v])

	rl.DrawLine3D(a, b, color)
	rl.DrawLine3D(b, c, color)
	rl.DrawLine3D(c, d, color)
	rl.DrawLine3D(d, a, color)
}
