// Package components defines the ECS components shared by the game systems.
package components

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/pthm-cable/voidbox/playfield"
)

// Position is an entity's world position.
type Position struct {
	X, Y, Z float32
}

// Vec returns the position as a vector.
func (p *Position) Vec() mgl32.Vec3 {
	return mgl32.Vec3{p.X, p.Y, p.Z}
}

// Set overwrites the position from a vector.
func (p *Position) Set(v mgl32.Vec3) {
	p.X, p.Y, p.Z = v[0], v[1], v[2]
}

// Velocity is an entity's linear velocity in world units per second.
type Velocity struct {
	X, Y, Z float32
}

// Vec returns the velocity as a vector.
func (v *Velocity) Vec() mgl32.Vec3 {
	return mgl32.Vec3{v.X, v.Y, v.Z}
}

// Aabb is an actor's bounding box as full extents.
type Aabb struct {
	Width, Height, Depth float32
}

// MaxDimension returns the largest extent, which sizes the actor's portals.
func (a *Aabb) MaxDimension() float32 {
	m := a.Width
	if a.Height > m {
		m = a.Height
	}
	if a.Depth > m {
		m = a.Depth
	}
	return m
}

// Teleporter records the outcome of boundary wrapping for one actor.
// LastPosition and LastNormal are set only on the frame JustTeleported is
// true; the normal names the face the actor arrived through.
type Teleporter struct {
	JustTeleported bool
	LastPosition   *mgl32.Vec3
	LastNormal     *mgl32.Vec3
}

// ActorPortals holds the portal pair for one actor. Either entry is nil
// while no marker is active.
type ActorPortals struct {
	Approaching *playfield.Portal
	Emerging    *playfield.Portal
}

// Ship tags the player's ship.
type Ship struct{}

// Asteroid tags a drifting rock.
type Asteroid struct{}

// Derelict tags a dying wreck: it despawns at the boundary instead of
// wrapping, and its portals render in the warning color.
type Derelict struct{}
