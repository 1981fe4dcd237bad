package system

import (
	"time"

	coresys "github.com/l1jgo/skirmish/internal/core/system"
	"github.com/l1jgo/skirmish/internal/movement"
	"github.com/l1jgo/skirmish/internal/world"
)

// MovementSystem moves the player from held keys and steers enemies toward
// the player, recording who is engaged for the AI phase. Phase 3 (Movement).
type MovementSystem struct {
	world *world.State
	integ *movement.Integrator
}

func NewMovementSystem(ws *world.State, integ *movement.Integrator) *MovementSystem {
	return &MovementSystem{world: ws, integ: integ}
}

func (s *MovementSystem) Phase() coresys.Phase { return coresys.PhaseMovement }

func (s *MovementSystem) Update(dt time.Duration) {
	player := s.world.Player()
	if player != nil {
		s.integ.Player(player, s.world.Input, dt)
	}
	s.world.Enemies(func(c *world.Character) {
		engaged := s.integ.Enemy(c, player, dt)
		if b, ok := s.world.Brains.Get(c.ID); ok {
			b.Engaged = engaged
		}
	})
}
