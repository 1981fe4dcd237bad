package world

import (
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/l1jgo/skirmish/internal/core/ecs"
	"github.com/l1jgo/skirmish/internal/engine"
)

// Projectile is a live fireball. Lifetime only ever decreases.
type Projectile struct {
	ID        ecs.EntityID
	Owner     ecs.EntityID // never collides with its owner
	Position  mgl64.Vec3
	Direction mgl64.Vec3 // unit length
	Speed     float64
	Lifetime  time.Duration
	Radius    float64
	Node      engine.Node

	removed bool
}

func (p *Projectile) Removed() bool { return p.removed }
