package systems

import (
	"math"
	"testing"

	"github.com/pthm-cable/voidbox/components"
	"github.com/pthm-cable/voidbox/playfield"
)

func testPortalParams() PortalParams {
	return PortalParams{
		Scalar:           2,
		Smallest:         5,
		MinimumRadius:    0.1,
		DistanceApproach: 0.5,
		DistanceShrink:   0.25,
		FadeoutDuration:  14,
		SmoothingFactor:  0.08,
		DirectionChange:  0.75,
	}
}

func TestPortalSystemApproachingScenario(t *testing.T) {
	tw := newTestWorld()
	boundary := testBoundary()
	s := NewPortalSystem(tw.world, boundary, testPortalParams())

	// Heading straight for the right face from just inside the approach
	// threshold (50 units for this boundary).
	entity := tw.spawnActor(components.Position{X: 5}, components.Velocity{X: 10})

	now := 0.0
	s.Update(tw.world, now)

	portals := tw.portMap.Get(entity)
	if portals.Approaching == nil {
		t.Fatal("no approaching portal inside the threshold")
	}
	a := portals.Approaching
	if a.Face != playfield.Right {
		t.Errorf("Face = %v, want right", a.Face)
	}
	if portals.Emerging != nil {
		t.Errorf("unexpected emerging portal: %+v", portals.Emerging)
	}

	// AABB max 4 is floored at Smallest 5, times Scalar 2.
	maxRadius := float32(10)
	if a.Radius != maxRadius {
		t.Errorf("Radius = %v, want %v outside the shrink zone", a.Radius, maxRadius)
	}

	t.Run("radius shrinks monotonically inside the shrink zone", func(t *testing.T) {
		pos := tw.posMap.Get(entity)
		prev := float32(math.Inf(1))
		for x := float32(26); x < 50; x += 2 {
			pos.X = x
			s.Update(tw.world, now)
			portals := tw.portMap.Get(entity)
			if portals.Approaching == nil {
				t.Fatalf("portal vanished at x=%v", x)
			}
			r := portals.Approaching.Radius
			if r > prev+1e-4 {
				t.Fatalf("radius grew from %v to %v at x=%v", prev, r, x)
			}
			prev = r
		}
	})

	t.Run("half max radius at the wall", func(t *testing.T) {
		pos := tw.posMap.Get(entity)
		pos.X = 50 - playfield.SnapEpsilon
		s.Update(tw.world, now)
		portals := tw.portMap.Get(entity)
		if portals.Approaching == nil {
			t.Fatal("portal vanished at the wall")
		}
		got := portals.Approaching.Radius
		if math.Abs(float64(got-maxRadius/2)) > 0.01 {
			t.Errorf("Radius = %v, want %v", got, maxRadius/2)
		}
	})
}

func TestPortalSystemFadeOutWhenNotApproaching(t *testing.T) {
	tw := newTestWorld()
	s := NewPortalSystem(tw.world, testBoundary(), testPortalParams())

	entity := tw.spawnActor(components.Position{X: 30}, components.Velocity{X: 10})
	s.Update(tw.world, 0)
	if tw.portMap.Get(entity).Approaching == nil {
		t.Fatal("expected an approaching portal")
	}

	// Turn away from the wall: the exit point moves out of range.
	*tw.velMap.Get(entity) = components.Velocity{X: -10}
	s.Update(tw.world, 1)

	portals := tw.portMap.Get(entity)
	if portals.Approaching == nil {
		t.Fatal("portal should linger and fade, not vanish")
	}
	if portals.Approaching.FadeOutStarted == nil {
		t.Fatal("fade not started after abandoning the approach")
	}

	t.Run("removed once the fade duration elapses", func(t *testing.T) {
		s.Update(tw.world, 1+testPortalParams().FadeoutDuration+0.1)
		if tw.portMap.Get(entity).Approaching != nil {
			t.Error("portal survived past the fade duration")
		}
	})
}

func TestPortalSystemPhysicsBurstRemovesMarker(t *testing.T) {
	tw := newTestWorld()
	boundary := testBoundary()
	s := NewPortalSystem(tw.world, boundary, testPortalParams())

	entity := tw.spawnActor(components.Position{X: 30}, components.Velocity{X: 10})
	s.Update(tw.world, 0)
	if tw.portMap.Get(entity).Approaching == nil {
		t.Fatal("expected an approaching portal")
	}

	// Fling the actor far outside the volume.
	pos := tw.posMap.Get(entity)
	pos.X = boundary.LongestDiagonal() * 3
	s.Update(tw.world, 1)

	if tw.portMap.Get(entity).Approaching != nil {
		t.Error("portal survived a physics burst")
	}
}

func TestPortalSystemEmergingLifecycle(t *testing.T) {
	tw := newTestWorld()
	boundary := testBoundary()
	teleport := NewTeleportSystem(tw.world, boundary)
	s := NewPortalSystem(tw.world, boundary, testPortalParams())

	entity := tw.spawnActor(components.Position{X: 55}, components.Velocity{X: 10})

	teleport.Update(tw.world)
	s.Update(tw.world, 0)

	portals := tw.portMap.Get(entity)
	if portals.Emerging == nil {
		t.Fatal("no emerging portal on the teleport frame")
	}
	e := portals.Emerging
	if e.Face != playfield.Left {
		t.Errorf("Face = %v, want left", e.Face)
	}
	if e.FadeOutStarted == nil {
		t.Error("emerging portal must fade from the start")
	}
	spawnRadius := e.Radius

	t.Run("radius decays over the fade duration", func(t *testing.T) {
		teleport.Update(tw.world)
		s.Update(tw.world, 7)
		portals := tw.portMap.Get(entity)
		if portals.Emerging == nil {
			t.Fatal("portal gone before the fade elapsed")
		}
		if portals.Emerging.Radius >= spawnRadius {
			t.Errorf("radius did not decay: %v", portals.Emerging.Radius)
		}
	})

	t.Run("removed at fade expiry", func(t *testing.T) {
		teleport.Update(tw.world)
		s.Update(tw.world, 15)
		if tw.portMap.Get(entity).Emerging != nil {
			t.Error("emerging portal survived the fade duration")
		}
	})
}
