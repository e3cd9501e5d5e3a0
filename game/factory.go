package game

import (
	"log/slog"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/pthm-cable/voidbox/components"
)

// spawnMarginFraction keeps spawn points away from the boundary faces so
// nothing starts mid-teleport.
const spawnMarginFraction = 0.9

func (g *Game) spawnShip() {
	pos := components.Position{}
	vel := g.randomVelocity()
	aabb := components.Aabb{Width: 6, Height: 3, Depth: 9}
	g.shipMapper.NewEntity(&pos, &vel, &aabb,
		&components.Teleporter{}, &components.ActorPortals{}, &components.Ship{})
}

func (g *Game) spawnAsteroid() {
	pos := g.randomPosition()
	vel := g.randomVelocity()
	size := g.randomRange(g.cfg.Spawn.MinSize, g.cfg.Spawn.MaxSize)
	aabb := components.Aabb{Width: size, Height: size, Depth: size}

	if g.rng.Float64() < g.cfg.Spawn.DerelictChance {
		g.wreckMapper.NewEntity(&pos, &vel, &aabb,
			&components.Teleporter{}, &components.ActorPortals{}, &components.Derelict{})
		slog.Debug("spawned derelict", "position", pos.Vec(), "size", size)
		return
	}
	g.rockMapper.NewEntity(&pos, &vel, &aabb,
		&components.Teleporter{}, &components.ActorPortals{}, &components.Asteroid{})
}

func (g *Game) randomPosition() components.Position {
	half := g.boundary.Extents.Mul(0.5 * spawnMarginFraction)
	var pos components.Position
	pos.Set(g.boundary.Center.Add(mgl32.Vec3{
		(g.rng.Float32()*2 - 1) * half[0],
		(g.rng.Float32()*2 - 1) * half[1],
		(g.rng.Float32()*2 - 1) * half[2],
	}))
	return pos
}

func (g *Game) randomVelocity() components.Velocity {
	dir := g.randomDirection()
	speed := g.randomRange(g.cfg.Spawn.MinSpeed, g.cfg.Spawn.MaxSpeed)
	v := dir.Mul(speed)
	return components.Velocity{X: v[0], Y: v[1], Z: v[2]}
}

// randomDirection returns a uniformly distributed unit vector.
func (g *Game) randomDirection() mgl32.Vec3 {
	for {
		v := mgl32.Vec3{
			float32(g.rng.NormFloat64()),
			float32(g.rng.NormFloat64()),
			float32(g.rng.NormFloat64()),
		}
		if v.Len() > 1e-6 {
			return v.Normalize()
		}
	}
}

func (g *Game) randomRange(min, max float64) float32 {
	return float32(min + g.rng.Float64()*(max-min))
}
