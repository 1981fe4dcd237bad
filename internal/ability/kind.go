package ability

import (
	"fmt"
	"strings"

	"github.com/l1jgo/skirmish/internal/anim"
)

// Kind is a triggerable ability.
type Kind int

const (
	Strike Kind = iota
	Block
	Dodge
	Fireball
	Teleport
	Shield
)

var kindNames = [...]string{"strike", "block", "dodge", "fireball", "teleport", "shield"}

// Kinds lists every ability in declaration order.
func Kinds() []Kind {
	return []Kind{Strike, Block, Dodge, Fireball, Teleport, Shield}
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ParseKind accepts the lowercase ability name, ignoring surrounding space and case.
func ParseKind(s string) (Kind, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, n := range kindNames {
		if n == s {
			return Kind(i), nil
		}
	}
	return 0, fmt.Errorf("unknown ability %q", s)
}

// Action is the one-shot the ability plays.
func (k Kind) Action() anim.Action {
	switch k {
	case Strike:
		return anim.Strike
	case Block:
		return anim.Block
	case Dodge:
		return anim.Dodge
	case Fireball:
		return anim.Cast
	case Teleport:
		return anim.Teleport
	case Shield:
		return anim.Shield
	}
	return anim.Idle
}
