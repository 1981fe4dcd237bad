package anim

import "fmt"

// Action is a character's animation/behaviour state.
type Action int

const (
	Idle Action = iota
	Run
	Strike
	Block
	Dodge
	Cast
	Teleport
	Shield
)

var actionNames = [...]string{"Idle", "Run", "Strike", "Block", "Dodge", "Cast", "Teleport", "Shield"}

// Actions lists every action in declaration order.
func Actions() []Action {
	return []Action{Idle, Run, Strike, Block, Dodge, Cast, Teleport, Shield}
}

func (a Action) String() string {
	if a.Valid() {
		return actionNames[a]
	}
	return fmt.Sprintf("Action(%d)", int(a))
}

func (a Action) Valid() bool {
	return a >= Idle && int(a) < len(actionNames)
}

// Persistent reports whether a is a looping state (Idle, Run).
func (a Action) Persistent() bool {
	return a == Idle || a == Run
}

// ParseAction maps a canonical name back to its Action.
func ParseAction(s string) (Action, error) {
	for i, n := range actionNames {
		if n == s {
			return Action(i), nil
		}
	}
	return 0, fmt.Errorf("unknown action %q", s)
}
