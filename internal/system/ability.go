package system

import (
	"time"

	"github.com/l1jgo/skirmish/internal/ability"
	coresys "github.com/l1jgo/skirmish/internal/core/system"
)

// AbilitySystem executes the commands queued by input and AI this tick.
// Phase 5 (Ability).
type AbilitySystem struct {
	commands *ability.Queue
	exec     *ability.Executor
}

func NewAbilitySystem(commands *ability.Queue, exec *ability.Executor) *AbilitySystem {
	return &AbilitySystem{commands: commands, exec: exec}
}

func (s *AbilitySystem) Phase() coresys.Phase { return coresys.PhaseAbility }

func (s *AbilitySystem) Update(_ time.Duration) {
	s.commands.Drain(func(cmd ability.Command) {
		s.exec.Execute(cmd)
	})
}
