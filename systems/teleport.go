package systems

import (
	"log/slog"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/voidbox/components"
	"github.com/pthm-cable/voidbox/playfield"
)

// TeleportEvent records one boundary wrap for telemetry.
type TeleportEvent struct {
	From   mgl32.Vec3
	To     mgl32.Vec3
	Normal mgl32.Vec3
}

// TeleportSystem wraps actors that leave the play volume onto the
// opposite face. It must run before the portal system each tick so
// emerging portals see the current frame's teleport flags. Derelicts are
// collected for despawn instead of wrapped.
type TeleportSystem struct {
	filter      ecs.Filter2[components.Position, components.Teleporter]
	derelictMap *ecs.Map1[components.Derelict]
	boundary    *playfield.Boundary

	events   []TeleportEvent
	removals []ecs.Entity
}

// NewTeleportSystem creates a teleport system for the boundary.
func NewTeleportSystem(w *ecs.World, boundary *playfield.Boundary) *TeleportSystem {
	return &TeleportSystem{
		filter:      *ecs.NewFilter2[components.Position, components.Teleporter](w),
		derelictMap: ecs.NewMap1[components.Derelict](w),
		boundary:    boundary,
	}
}

// Update wraps positions and refreshes teleport flags.
func (s *TeleportSystem) Update(w *ecs.World) {
	s.events = s.events[:0]
	s.removals = s.removals[:0]

	query := s.filter.Query()
	for query.Next() {
		pos, tp := query.Get()

		original := pos.Vec()
		wrapped := s.boundary.WrapPosition(original)
		if wrapped == original {
			tp.JustTeleported = false
			tp.LastPosition = nil
			tp.LastNormal = nil
			continue
		}

		// Derelicts die at the edge instead of coming back around.
		if s.derelictMap.HasAll(query.Entity()) {
			s.removals = append(s.removals, query.Entity())
			continue
		}

		pos.Set(wrapped)
		normal := s.boundary.NormalForPosition(wrapped)
		tp.JustTeleported = true
		to := wrapped
		tp.LastPosition = &to
		n := normal
		tp.LastNormal = &n

		s.events = append(s.events, TeleportEvent{From: original, To: wrapped, Normal: normal})
		slog.Debug("actor teleported", "from", original, "to", wrapped, "normal", normal)
	}
}

// Events returns this tick's teleports. The slice is reused next tick.
func (s *TeleportSystem) Events() []TeleportEvent {
	return s.events
}

// Removals returns the derelicts that hit the boundary this tick. Entity
// removal cannot happen during query iteration, so the caller despawns
// them after the system has run.
func (s *TeleportSystem) Removals() []ecs.Entity {
	return s.removals
}
