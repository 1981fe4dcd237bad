package system

import (
	"time"

	"go.uber.org/zap"

	"github.com/l1jgo/skirmish/internal/ability"
	coresys "github.com/l1jgo/skirmish/internal/core/system"
	"github.com/l1jgo/skirmish/internal/input"
	"github.com/l1jgo/skirmish/internal/world"
)

// InputSystem drains host events into the held movement flags and queues the
// player's ability triggers. Phase 0 (Input).
type InputSystem struct {
	world      *world.State
	queue      *input.Queue
	keys       *input.KeyMap
	commands   *ability.Queue
	maxPerTick int
	log        *zap.Logger
}

func NewInputSystem(ws *world.State, queue *input.Queue, keys *input.KeyMap, commands *ability.Queue, maxPerTick int, log *zap.Logger) *InputSystem {
	return &InputSystem{
		world:      ws,
		queue:      queue,
		keys:       keys,
		commands:   commands,
		maxPerTick: maxPerTick,
		log:        log,
	}
}

func (s *InputSystem) Phase() coresys.Phase { return coresys.PhaseInput }

func (s *InputSystem) Update(_ time.Duration) {
	s.queue.Drain(s.maxPerTick, func(ev input.Event) {
		k, trigger := s.keys.Apply(ev, &s.world.Input)
		if !trigger {
			return
		}
		// Triggers before the player has loaded are dropped.
		p := s.world.Player()
		if p == nil {
			s.log.Debug("ability trigger without player", zap.Stringer("ability", k))
			return
		}
		s.commands.Push(ability.Command{Actor: p.ID, Ability: k})
	})
}
