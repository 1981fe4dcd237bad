package system

import (
	"time"

	coresys "github.com/l1jgo/skirmish/internal/core/system"
	"github.com/l1jgo/skirmish/internal/world"
)

// AnimationSystem advances every character's animator. Phase 2 (Animation).
type AnimationSystem struct {
	world *world.State
}

func NewAnimationSystem(ws *world.State) *AnimationSystem {
	return &AnimationSystem{world: ws}
}

func (s *AnimationSystem) Phase() coresys.Phase { return coresys.PhaseAnimation }

func (s *AnimationSystem) Update(dt time.Duration) {
	s.world.Characters(func(c *world.Character) {
		if c.Anim != nil {
			c.Anim.Advance(dt)
		}
	})
}
