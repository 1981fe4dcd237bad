package system

import (
	"time"

	"github.com/l1jgo/skirmish/internal/ability"
	"github.com/l1jgo/skirmish/internal/ai"
	coresys "github.com/l1jgo/skirmish/internal/core/system"
	"github.com/l1jgo/skirmish/internal/world"
)

// AISystem runs each enemy's decision timer and queues what it draws.
// Phase 4 (AI).
type AISystem struct {
	world    *world.State
	decider  *ai.Decider
	commands *ability.Queue
}

func NewAISystem(ws *world.State, decider *ai.Decider, commands *ability.Queue) *AISystem {
	return &AISystem{world: ws, decider: decider, commands: commands}
}

func (s *AISystem) Phase() coresys.Phase { return coresys.PhaseAI }

func (s *AISystem) Update(dt time.Duration) {
	player := s.world.Player()
	s.world.Enemies(func(c *world.Character) {
		b, ok := s.world.Brains.Get(c.ID)
		if !ok {
			return
		}
		if k, fire := s.decider.Tick(c, b, player, dt); fire {
			s.commands.Push(ability.Command{Actor: c.ID, Ability: k})
		}
	})
}
