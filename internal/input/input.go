// Package input turns host key and pointer events into held movement flags
// and ability triggers.
package input

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/cases"

	"github.com/l1jgo/skirmish/internal/ability"
	"github.com/l1jgo/skirmish/internal/world"
)

type Kind int

const (
	KeyDown Kind = iota
	KeyUp
	Pointer
)

// Event is one raw host event. Key is empty for pointer events.
type Event struct {
	Kind Kind
	Key  string
}

// PointerKey is the binding name used for pointer clicks.
const PointerKey = "Pointer"

// Movement flags a key may be bound to.
const (
	MoveForward  = "forward"
	MoveBackward = "backward"
	MoveLeft     = "left"
	MoveRight    = "right"
)

type binding struct {
	move    string
	ability ability.Kind
}

// KeyMap resolves key names, compared case-insensitively, to a movement flag
// or an ability.
type KeyMap struct {
	keys map[string]binding
	fold cases.Caser
}

func NewKeyMap(bindings map[string]string) (*KeyMap, error) {
	m := &KeyMap{keys: make(map[string]binding, len(bindings)), fold: cases.Fold()}
	for key, target := range bindings {
		var b binding
		switch t := strings.ToLower(strings.TrimSpace(target)); t {
		case MoveForward, MoveBackward, MoveLeft, MoveRight:
			b.move = t
		default:
			k, err := ability.ParseKind(t)
			if err != nil {
				return nil, fmt.Errorf("binding %s: %w", key, err)
			}
			b.ability = k
		}
		m.keys[m.normalize(key)] = b
	}
	return m, nil
}

// Apply folds ev into the held flags and reports the ability it triggers,
// if any. Unbound keys are ignored. Pointer events strike unless rebound.
func (m *KeyMap) Apply(ev Event, held *world.InputState) (ability.Kind, bool) {
	key := ev.Key
	if ev.Kind == Pointer {
		key = PointerKey
	}
	b, ok := m.keys[m.normalize(key)]
	if !ok {
		if ev.Kind == Pointer {
			return ability.Strike, true
		}
		return 0, false
	}
	if b.move != "" {
		down := ev.Kind == KeyDown
		switch b.move {
		case MoveForward:
			held.Forward = down
		case MoveBackward:
			held.Backward = down
		case MoveLeft:
			held.Left = down
		case MoveRight:
			held.Right = down
		}
		return 0, false
	}
	if ev.Kind == KeyUp {
		return 0, false
	}
	return b.ability, true
}

func (m *KeyMap) normalize(key string) string {
	return m.fold.String(strings.TrimSpace(key))
}

// ErrQuit is returned by ParseLine for the quit command.
var ErrQuit = errors.New("input: quit")

// ParseLine reads one line of the text host protocol:
//
//	down <Key>
//	up <Key>
//	click
//	quit
func ParseLine(line string) (Event, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return Event{}, fmt.Errorf("input: empty line")
	}
	switch strings.ToLower(fields[0]) {
	case "down", "up":
		if len(fields) != 2 {
			return Event{}, fmt.Errorf("input: %s needs one key", fields[0])
		}
		kind := KeyDown
		if strings.EqualFold(fields[0], "up") {
			kind = KeyUp
		}
		return Event{Kind: kind, Key: fields[1]}, nil
	case "click":
		return Event{Kind: Pointer}, nil
	case "quit", "exit":
		return Event{}, ErrQuit
	}
	return Event{}, fmt.Errorf("input: unknown command %q", fields[0])
}
