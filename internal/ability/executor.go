package ability

import (
	"math"
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"

	"github.com/l1jgo/skirmish/internal/config"
	"github.com/l1jgo/skirmish/internal/core/ecs"
	"github.com/l1jgo/skirmish/internal/core/event"
	"github.com/l1jgo/skirmish/internal/core/schedule"
	"github.com/l1jgo/skirmish/internal/engine"
	"github.com/l1jgo/skirmish/internal/scripting"
	"github.com/l1jgo/skirmish/internal/world"
)

// StrikeHook decides which targets a strike connects with. Implemented by the
// Lua engine's on_strike; without one a strike is animation only.
type StrikeHook interface {
	OnStrike(ctx scripting.StrikeContext) []int
}

// Deps holds what the executor reads and mutates.
type Deps struct {
	Config           config.AbilitiesConfig
	ProjectileRadius float64
	World            *world.State
	Scene            engine.Scene
	Ground           engine.Ground
	Sched            *schedule.Scheduler
	Bus              *event.Bus
	Rand             *rand.Rand
	Strike           StrikeHook // optional
	Log              *zap.Logger
}

// Executor turns ability commands into a one-shot animation plus the
// ability's effect on the world. Every operation is a silent no-op for an
// absent actor.
type Executor struct {
	deps Deps
}

func NewExecutor(deps Deps) *Executor {
	if deps.Log == nil {
		deps.Log = zap.NewNop()
	}
	return &Executor{deps: deps}
}

// actor returns the live, animated character behind id.
func (e *Executor) actor(id ecs.EntityID) *world.Character {
	c := e.deps.World.Character(id)
	if !e.valid(c) {
		return nil
	}
	return c
}

func (e *Executor) valid(c *world.Character) bool {
	return c != nil && !c.Removed() && e.deps.World.Alive(c.ID) && c.Anim != nil
}

// Execute runs cmd, resolving any targeting the command leaves open.
// Returns false when nothing happened.
func (e *Executor) Execute(cmd Command) bool {
	c := e.actor(cmd.Actor)
	if c == nil {
		return false
	}
	switch cmd.Ability {
	case Strike:
		return e.Strike(c)
	case Block:
		return e.Block(c)
	case Dodge:
		return e.Dodge(c, e.dodgeSide(c))
	case Fireball:
		dir := cmd.Direction
		if dir.LenSqr() == 0 {
			dir = e.aim(c)
		}
		return e.Fireball(c, dir)
	case Teleport:
		point, ok := cmd.Point, cmd.HasPoint
		if !ok {
			point, ok = e.teleportTarget(c)
		}
		if !ok {
			e.deps.Log.Debug("teleport: no target", zap.Uint64("actor", uint64(c.ID)))
			return false
		}
		return e.Teleport(c, point)
	case Shield:
		return e.Shield(c)
	}
	return false
}

// begin plays the ability's one-shot. A missing clip does not cancel the
// gameplay effect.
func (e *Executor) begin(c *world.Character, k Kind) {
	if !c.Anim.PlayTransient(k.Action(), nil) {
		e.deps.Log.Debug("ability clip missing",
			zap.Uint64("actor", uint64(c.ID)), zap.Stringer("ability", k))
	}
	event.Emit(e.deps.Bus, event.AbilityUsed{Actor: c.ID, Ability: k.String()})
}

// Strike plays the strike and, with a hook installed, reports each target
// it connects with.
func (e *Executor) Strike(c *world.Character) bool {
	if !e.valid(c) {
		return false
	}
	e.begin(c, Strike)
	if e.deps.Strike == nil {
		return true
	}

	var targets []*world.Character
	ctx := scripting.StrikeContext{Attacker: e.scriptActor(c)}
	e.deps.World.Characters(func(o *world.Character) {
		if o.ID == c.ID {
			return
		}
		targets = append(targets, o)
		ctx.Targets = append(ctx.Targets, e.scriptActor(o))
	})
	for _, i := range e.deps.Strike.OnStrike(ctx) {
		event.Emit(e.deps.Bus, event.StrikeLanded{Attacker: c.ID, Target: targets[i].ID})
	}
	return true
}

func (e *Executor) scriptActor(c *world.Character) scripting.Actor {
	return scripting.Actor{
		ID:       uint64(c.ID),
		X:        c.Position[0],
		Y:        c.Position[1],
		Z:        c.Position[2],
		Yaw:      c.Yaw,
		Player:   c.Player,
		Shielded: c.Shield != nil,
	}
}

func (e *Executor) Block(c *world.Character) bool {
	if !e.valid(c) {
		return false
	}
	e.begin(c, Block)
	return true
}

// Dodge side-steps DodgeDistance along the actor's right axis; side is +1
// for right and -1 for left.
func (e *Executor) Dodge(c *world.Character, side float64) bool {
	if !e.valid(c) {
		return false
	}
	e.begin(c, Dodge)
	if side == 0 {
		side = 1
	}
	step := c.Right().Mul(math.Copysign(e.deps.Config.DodgeDistance, side))
	c.Position = c.Position.Add(step)
	return true
}

// dodgeSide picks the player's side from the configured pattern and a coin
// flip for enemies.
func (e *Executor) dodgeSide(c *world.Character) float64 {
	if !c.Player {
		if e.deps.Rand.IntN(2) == 0 {
			return -1
		}
		return 1
	}
	if e.deps.Config.PlayerDodge == config.DodgeRight {
		return 1
	}
	side := 1.0
	if c.DodgeParity {
		side = -1
	}
	c.DodgeParity = !c.DodgeParity
	return side
}

// Fireball launches a projectile from SpawnHeight above the actor along dir.
// A zero direction launches nothing.
func (e *Executor) Fireball(c *world.Character, dir mgl64.Vec3) bool {
	if !e.valid(c) || dir.LenSqr() == 0 {
		return false
	}
	e.begin(c, Fireball)

	dir = dir.Normalize()
	spawn := c.Position.Add(mgl64.Vec3{0, e.deps.Config.SpawnHeight, 0})
	node := e.deps.Scene.NewMesh(engine.MeshSpec{
		Kind:   engine.MeshFireball,
		Name:   "fireball",
		Radius: e.deps.ProjectileRadius,
	})
	node.SetTransform(spawn, 0)
	e.deps.Scene.Add(node)

	p := &world.Projectile{
		Owner:     c.ID,
		Position:  spawn,
		Direction: dir,
		Speed:     e.deps.Config.FireballSpeed,
		Lifetime:  e.deps.Config.FireballLifetime,
		Radius:    e.deps.ProjectileRadius,
		Node:      node,
	}
	id := e.deps.World.AddProjectile(p)
	event.Emit(e.deps.Bus, event.ProjectileSpawned{
		Projectile: id,
		Owner:      c.ID,
		Position:   spawn,
		Direction:  dir,
	})
	return true
}

// aim is the player's facing or camera view on the ground plane, or the
// direction from an enemy to the player.
func (e *Executor) aim(c *world.Character) mgl64.Vec3 {
	if !c.Player {
		p := e.deps.World.Player()
		if p == nil {
			return mgl64.Vec3{}
		}
		return p.Position.Sub(c.Position)
	}
	if e.deps.Config.Aim == config.AimCamera {
		if v := world.Flat(e.deps.World.Camera.Forward()); v.LenSqr() > 0 {
			return v
		}
	}
	return c.Forward()
}

// Teleport moves the actor to point without any path check.
func (e *Executor) Teleport(c *world.Character, point mgl64.Vec3) bool {
	if !e.valid(c) {
		return false
	}
	e.begin(c, Teleport)
	from := c.Position
	c.Position = point
	event.Emit(e.deps.Bus, event.Teleported{Actor: c.ID, From: from, To: point})
	return true
}

// teleportTarget casts from the camera at the ground TeleportRadius ahead of
// the player, or picks a random point within TeleportRadius of the player for
// an enemy.
func (e *Executor) teleportTarget(c *world.Character) (mgl64.Vec3, bool) {
	r := e.deps.Config.TeleportRadius
	if !c.Player {
		p := e.deps.World.Player()
		if p == nil {
			return mgl64.Vec3{}, false
		}
		dist := r * math.Sqrt(e.deps.Rand.Float64())
		theta := 2 * math.Pi * e.deps.Rand.Float64()
		return p.Position.Add(mgl64.Vec3{dist * math.Cos(theta), 0, dist * math.Sin(theta)}), true
	}
	if e.deps.Ground == nil {
		return mgl64.Vec3{}, false
	}
	cam := e.deps.World.Camera
	origin := cam.Position
	if !cam.Placed {
		origin = c.Position.Add(mgl64.Vec3{0, 3, 0})
	}
	aim := c.Position.Add(c.Forward().Mul(r))
	dir := aim.Sub(origin)
	if dir.LenSqr() == 0 {
		return mgl64.Vec3{}, false
	}
	return e.deps.Ground.Raycast(origin, dir.Normalize())
}

// Shield replaces any active shield with a fresh one that expires after
// ShieldDuration.
func (e *Executor) Shield(c *world.Character) bool {
	if !e.valid(c) {
		return false
	}
	e.begin(c, Shield)
	e.RemoveShield(c)

	cfg := e.deps.Config
	node := e.deps.Scene.NewMesh(engine.MeshSpec{
		Kind:   engine.MeshShield,
		Name:   "shield",
		Radius: cfg.ShieldRadius,
	})
	node.SetTransform(mgl64.Vec3{0, cfg.ShieldHeight, 0}, 0)
	if c.Node != nil {
		c.Node.Attach(node)
	}
	s := &world.Shield{Node: node, Radius: cfg.ShieldRadius, Height: cfg.ShieldHeight}
	id := c.ID
	s.Expiry = e.deps.Sched.After(id, cfg.ShieldDuration, func() { e.expire(id, s) })
	c.Shield = s
	event.Emit(e.deps.Bus, event.ShieldRaised{Actor: id})
	return true
}

// expire clears s if it is still the owner's active shield.
func (e *Executor) expire(id ecs.EntityID, s *world.Shield) {
	c := e.deps.World.Character(id)
	if c == nil || c.Shield != s {
		return
	}
	s.Expiry = schedule.Handle{}
	e.RemoveShield(c)
	event.Emit(e.deps.Bus, event.ShieldExpired{Actor: id})
}

// RemoveShield detaches c's shield and cancels its expiry. Reports whether
// there was one.
func (e *Executor) RemoveShield(c *world.Character) bool {
	s := c.Shield
	if s == nil {
		return false
	}
	if s.Expiry.Valid() {
		e.deps.Sched.Cancel(s.Expiry)
	}
	if c.Node != nil {
		c.Node.Detach(s.Node)
	}
	c.Shield = nil
	return true
}
