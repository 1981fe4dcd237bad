package system

import (
	"time"

	"github.com/l1jgo/skirmish/internal/core/event"
	coresys "github.com/l1jgo/skirmish/internal/core/system"
)

// EventsSystem delivers the events emitted during the previous tick.
// Phase 1 (Events).
type EventsSystem struct {
	bus *event.Bus
}

func NewEventsSystem(bus *event.Bus) *EventsSystem {
	return &EventsSystem{bus: bus}
}

func (s *EventsSystem) Phase() coresys.Phase { return coresys.PhaseEvents }

func (s *EventsSystem) Update(_ time.Duration) {
	s.bus.SwapBuffers()
	s.bus.DispatchAll()
}
