package systems

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/voidbox/components"
	"github.com/pthm-cable/voidbox/playfield"
)

func testBoundary() *playfield.Boundary {
	return playfield.New(mgl32.Vec3{}, mgl32.Vec3{100, 100, 100})
}

type testWorld struct {
	world   *ecs.World
	actors  *ecs.Map5[components.Position, components.Velocity, components.Aabb, components.Teleporter, components.ActorPortals]
	wrecks  *ecs.Map6[components.Position, components.Velocity, components.Aabb, components.Teleporter, components.ActorPortals, components.Derelict]
	posMap  *ecs.Map1[components.Position]
	velMap  *ecs.Map1[components.Velocity]
	portMap *ecs.Map1[components.ActorPortals]
	teleMap *ecs.Map1[components.Teleporter]
}

func newTestWorld() *testWorld {
	world := ecs.NewWorld()
	return &testWorld{
		world: world,
		actors: ecs.NewMap5[
			components.Position,
			components.Velocity,
			components.Aabb,
			components.Teleporter,
			components.ActorPortals,
		](world),
		wrecks: ecs.NewMap6[
			components.Position,
			components.Velocity,
			components.Aabb,
			components.Teleporter,
			components.ActorPortals,
			components.Derelict,
		](world),
		posMap:  ecs.NewMap1[components.Position](world),
		velMap:  ecs.NewMap1[components.Velocity](world),
		portMap: ecs.NewMap1[components.ActorPortals](world),
		teleMap: ecs.NewMap1[components.Teleporter](world),
	}
}

func (tw *testWorld) spawnActor(pos components.Position, vel components.Velocity) ecs.Entity {
	aabb := components.Aabb{Width: 4, Height: 4, Depth: 4}
	return tw.actors.NewEntity(&pos, &vel, &aabb, &components.Teleporter{}, &components.ActorPortals{})
}

func (tw *testWorld) spawnDerelict(pos components.Position, vel components.Velocity) ecs.Entity {
	aabb := components.Aabb{Width: 4, Height: 4, Depth: 4}
	return tw.wrecks.NewEntity(&pos, &vel, &aabb, &components.Teleporter{}, &components.ActorPortals{}, &components.Derelict{})
}

func TestTeleportSystemWrapsActors(t *testing.T) {
	tw := newTestWorld()
	s := NewTeleportSystem(tw.world, testBoundary())

	entity := tw.spawnActor(components.Position{X: 55}, components.Velocity{X: 10})
	s.Update(tw.world)

	pos := tw.posMap.Get(entity)
	if pos.X != -45 || pos.Y != 0 || pos.Z != 0 {
		t.Errorf("position = (%v, %v, %v), want (-45, 0, 0)", pos.X, pos.Y, pos.Z)
	}

	tp := tw.teleMap.Get(entity)
	if !tp.JustTeleported {
		t.Error("JustTeleported not set on the wrap frame")
	}
	if tp.LastPosition == nil || tp.LastNormal == nil {
		t.Fatal("teleport details missing")
	}
	// Arriving through the left face.
	if *tp.LastNormal != (mgl32.Vec3{-1, 0, 0}) {
		t.Errorf("LastNormal = %v, want (-1, 0, 0)", *tp.LastNormal)
	}

	if len(s.Events()) != 1 {
		t.Fatalf("events = %d, want 1", len(s.Events()))
	}
	if s.Events()[0].From != (mgl32.Vec3{55, 0, 0}) {
		t.Errorf("event From = %v", s.Events()[0].From)
	}

	t.Run("flags clear on the next interior frame", func(t *testing.T) {
		s.Update(tw.world)
		tp := tw.teleMap.Get(entity)
		if tp.JustTeleported || tp.LastPosition != nil || tp.LastNormal != nil {
			t.Errorf("teleport flags not cleared: %+v", tp)
		}
		if len(s.Events()) != 0 {
			t.Errorf("stale events: %d", len(s.Events()))
		}
	})
}

func TestTeleportSystemLeavesInteriorAlone(t *testing.T) {
	tw := newTestWorld()
	s := NewTeleportSystem(tw.world, testBoundary())

	entity := tw.spawnActor(components.Position{X: 10, Y: -20, Z: 30}, components.Velocity{})
	s.Update(tw.world)

	pos := tw.posMap.Get(entity)
	if pos.X != 10 || pos.Y != -20 || pos.Z != 30 {
		t.Errorf("interior position moved: (%v, %v, %v)", pos.X, pos.Y, pos.Z)
	}
	if len(s.Removals()) != 0 {
		t.Errorf("unexpected removals: %d", len(s.Removals()))
	}
}

func TestTeleportSystemCollectsDerelicts(t *testing.T) {
	tw := newTestWorld()
	s := NewTeleportSystem(tw.world, testBoundary())

	wreck := tw.spawnDerelict(components.Position{X: 55}, components.Velocity{X: 10})
	survivor := tw.spawnActor(components.Position{X: 55}, components.Velocity{X: 10})
	s.Update(tw.world)

	if len(s.Removals()) != 1 || s.Removals()[0] != wreck {
		t.Fatalf("removals = %v, want the wreck", s.Removals())
	}

	// The wreck stays where it crossed; the survivor wrapped.
	if pos := tw.posMap.Get(wreck); pos.X != 55 {
		t.Errorf("wreck position = %v, want 55", pos.X)
	}
	if pos := tw.posMap.Get(survivor); pos.X != -45 {
		t.Errorf("survivor position = %v, want -45", pos.X)
	}
	if len(s.Events()) != 1 {
		t.Errorf("events = %d, want only the survivor's", len(s.Events()))
	}
}
