package world

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/l1jgo/skirmish/internal/core/ecs"
)

// ErrPlayerExists is returned when a second player is added to a session.
var ErrPlayerExists = errors.New("world: session already has a player")

// InputState is the player's held movement keys.
type InputState struct {
	Forward  bool
	Backward bool
	Left     bool
	Right    bool
}

// Camera is the derived third-person camera transform.
type Camera struct {
	Position mgl64.Vec3
	Target   mgl64.Vec3
	Placed   bool // false until the first follow update
}

// Forward is the camera's view direction, zero before placement.
func (c Camera) Forward() mgl64.Vec3 {
	d := c.Target.Sub(c.Position)
	if !c.Placed || d.LenSqr() == 0 {
		return mgl64.Vec3{}
	}
	return d.Normalize()
}

// Brain is the AI component carried by every enemy.
type Brain struct {
	Countdown time.Duration // until the next decision
	Engaged   bool          // within engage range this frame
}

// State is the per-session world: characters, projectiles, input and camera.
// Single-goroutine access only (tick loop).
type State struct {
	ecs *ecs.World

	player      *Character
	characters  []*Character // spawn order, player included
	byID        map[ecs.EntityID]*Character
	projectiles []*Projectile
	spawned     uint64

	Brains *ecs.PtrComponentStore[Brain]

	Input  InputState
	Camera Camera
}

func NewState() *State {
	w := ecs.NewWorld()
	brains := ecs.NewPtrComponentStore[Brain]()
	w.Registry().Register(brains)
	return &State{
		ecs:    w,
		byID:   make(map[ecs.EntityID]*Character),
		Brains: brains,
	}
}

func (s *State) ECS() *ecs.World { return s.ecs }

// NewEntity reserves an id for a character that is about to be added.
func (s *State) NewEntity() ecs.EntityID {
	return s.ecs.CreateEntity()
}

// Alive reports whether id names a character or projectile that has not been
// removed. Characters count as dead as soon as RemoveCharacter is called.
func (s *State) Alive(id ecs.EntityID) bool {
	if !s.ecs.Alive(id) {
		return false
	}
	if c, ok := s.byID[id]; ok {
		return !c.removed
	}
	return true
}

// AddCharacter registers c, whose ID must come from NewEntity.
func (s *State) AddCharacter(c *Character) error {
	if c == nil || !s.ecs.Alive(c.ID) {
		return fmt.Errorf("world: add character: invalid entity")
	}
	if _, dup := s.byID[c.ID]; dup {
		return fmt.Errorf("world: add character %d: already added", c.ID)
	}
	if c.Player {
		if s.player != nil {
			return ErrPlayerExists
		}
		s.player = c
	}
	s.spawned++
	c.seq = s.spawned
	s.characters = append(s.characters, c)
	s.byID[c.ID] = c
	return nil
}

// Player returns the player, or nil before the player's model has loaded.
func (s *State) Player() *Character {
	if s.player == nil || s.player.removed {
		return nil
	}
	return s.player
}

// Character looks up a live character.
func (s *State) Character(id ecs.EntityID) *Character {
	c := s.byID[id]
	if c == nil || c.removed {
		return nil
	}
	return c
}

// Characters iterates live characters in spawn order.
func (s *State) Characters(fn func(*Character)) {
	for _, c := range s.characters {
		if !c.removed {
			fn(c)
		}
	}
}

// Enemies iterates live non-player characters in spawn order.
func (s *State) Enemies(fn func(*Character)) {
	for _, c := range s.characters {
		if !c.removed && !c.Player {
			fn(c)
		}
	}
}

// CharacterCount counts live characters.
func (s *State) CharacterCount() int {
	n := 0
	s.Characters(func(*Character) { n++ })
	return n
}

// RemoveCharacter takes c out of play now and frees its entity at the end of
// the tick. Callers own detaching scene nodes and cancelling timers.
func (s *State) RemoveCharacter(id ecs.EntityID) *Character {
	c := s.Character(id)
	if c == nil {
		return nil
	}
	c.removed = true
	if s.player == c {
		s.player = nil
	}
	s.ecs.MarkForDestruction(id)
	return c
}

// Flush frees entities queued for destruction and forgets removed characters.
// Called by the cleanup phase.
func (s *State) Flush() []ecs.EntityID {
	destroyed := s.ecs.FlushDestroyQueue()
	if len(destroyed) == 0 {
		return nil
	}
	kept := s.characters[:0]
	for _, c := range s.characters {
		if c.removed {
			delete(s.byID, c.ID)
			continue
		}
		kept = append(kept, c)
	}
	for i := len(kept); i < len(s.characters); i++ {
		s.characters[i] = nil
	}
	s.characters = kept
	return destroyed
}

// --- Projectiles ---

// AddProjectile assigns p an id and appends it to the live list.
func (s *State) AddProjectile(p *Projectile) ecs.EntityID {
	p.ID = s.ecs.CreateEntity()
	s.projectiles = append(s.projectiles, p)
	return p.ID
}

// Projectiles returns the live projectiles in spawn order. The slice is only
// valid until the next AddProjectile or CompactProjectiles.
func (s *State) Projectiles() []*Projectile {
	return s.projectiles
}

// RemoveProjectile removes p immediately. Returns false if it was already removed.
func (s *State) RemoveProjectile(p *Projectile) bool {
	if p.removed {
		return false
	}
	p.removed = true
	s.ecs.DestroyNow(p.ID)
	return true
}

// CompactProjectiles drops removed projectiles from the live list, keeping order.
func (s *State) CompactProjectiles() {
	kept := s.projectiles[:0]
	for _, p := range s.projectiles {
		if !p.removed {
			kept = append(kept, p)
		}
	}
	for i := len(kept); i < len(s.projectiles); i++ {
		s.projectiles[i] = nil
	}
	s.projectiles = kept
}

// ProjectileCount counts projectiles not yet removed.
func (s *State) ProjectileCount() int {
	n := 0
	for _, p := range s.projectiles {
		if !p.removed {
			n++
		}
	}
	return n
}
