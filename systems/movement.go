// Package systems contains the ECS systems for the game loop.
package systems

import (
	"math"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/voidbox/components"
)

// MovementSystem integrates straight-line actor motion. Actors drift at
// constant velocity, optionally capped, and wrapping at the boundary is
// the teleport system's job.
type MovementSystem struct {
	filter   ecs.Filter2[components.Position, components.Velocity]
	dt       float32
	maxSpeed float32
}

// NewMovementSystem creates a movement system stepping by dt seconds.
func NewMovementSystem(w *ecs.World, dt, maxSpeed float32) *MovementSystem {
	return &MovementSystem{
		filter:   *ecs.NewFilter2[components.Position, components.Velocity](w),
		dt:       dt,
		maxSpeed: maxSpeed,
	}
}

// Update advances every moving entity by one tick.
func (s *MovementSystem) Update(w *ecs.World) {
	query := s.filter.Query()
	for query.Next() {
		pos, vel := query.Get()

		if s.maxSpeed > 0 {
			speed := float32(math.Sqrt(float64(vel.X*vel.X + vel.Y*vel.Y + vel.Z*vel.Z)))
			if speed > s.maxSpeed {
				scale := s.maxSpeed / speed
				vel.X *= scale
				vel.Y *= scale
				vel.Z *= scale
			}
		}

		pos.X += vel.X * s.dt
		pos.Y += vel.Y * s.dt
		pos.Z += vel.Z * s.dt
	}
}
