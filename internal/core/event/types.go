package event

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/l1jgo/skirmish/internal/core/ecs"
)

// AbilityUsed fires for every ability that got past the actor check.
type AbilityUsed struct {
	Actor   ecs.EntityID
	Ability string
}

type ProjectileSpawned struct {
	Projectile ecs.EntityID
	Owner      ecs.EntityID
	Position   mgl64.Vec3
	Direction  mgl64.Vec3
}

// ProjectileHit is the abstract damage hook: no health model consumes it yet.
type ProjectileHit struct {
	Projectile ecs.EntityID
	Owner      ecs.EntityID
	Target     ecs.EntityID
	Shielded   bool
	Position   mgl64.Vec3
}

type ProjectileExpired struct {
	Projectile ecs.EntityID
	Owner      ecs.EntityID
	OutOfRange bool
}

type ShieldRaised struct {
	Actor ecs.EntityID
}

type ShieldExpired struct {
	Actor ecs.EntityID
}

type StrikeLanded struct {
	Attacker ecs.EntityID
	Target   ecs.EntityID
}

type Teleported struct {
	Actor    ecs.EntityID
	From, To mgl64.Vec3
}
