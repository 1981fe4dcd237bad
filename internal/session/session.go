// Package session wires one skirmish: the world state, the phase systems and
// the timers and events between them. A Session is driven by a single
// goroutine calling Step once per frame.
package session

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/l1jgo/skirmish/internal/ability"
	"github.com/l1jgo/skirmish/internal/ai"
	"github.com/l1jgo/skirmish/internal/anim"
	"github.com/l1jgo/skirmish/internal/camera"
	"github.com/l1jgo/skirmish/internal/config"
	"github.com/l1jgo/skirmish/internal/core/ecs"
	"github.com/l1jgo/skirmish/internal/core/event"
	"github.com/l1jgo/skirmish/internal/core/schedule"
	coresys "github.com/l1jgo/skirmish/internal/core/system"
	"github.com/l1jgo/skirmish/internal/data"
	"github.com/l1jgo/skirmish/internal/engine"
	"github.com/l1jgo/skirmish/internal/input"
	"github.com/l1jgo/skirmish/internal/movement"
	"github.com/l1jgo/skirmish/internal/projectile"
	"github.com/l1jgo/skirmish/internal/scripting"
	"github.com/l1jgo/skirmish/internal/system"
	"github.com/l1jgo/skirmish/internal/world"
)

// Deps are the engine collaborators and loaded tables a session runs on.
type Deps struct {
	Scene    engine.Scene
	Ground   engine.Ground
	Loader   engine.Loader
	Models   *data.ModelTable
	Profiles *data.AIProfileTable
	Scripts  *scripting.Engine // optional
	Rand     *rand.Rand        // optional, seeded from config when nil
}

type Session struct {
	ID uuid.UUID

	State    *world.State
	Sched    *schedule.Scheduler
	Bus      *event.Bus
	Commands *ability.Queue
	Input    *input.Queue
	Executor *ability.Executor
	Decider  *ai.Decider

	cfg    *config.Config
	deps   Deps
	runner *coresys.Runner
	log    *zap.Logger

	ticks   uint64
	elapsed time.Duration
}

func New(cfg *config.Config, deps Deps, log *zap.Logger) (*Session, error) {
	if deps.Scene == nil || deps.Loader == nil || deps.Models == nil || deps.Profiles == nil {
		return nil, fmt.Errorf("session: scene, loader, models and profiles are required")
	}
	if log == nil {
		log = zap.NewNop()
	}
	id := uuid.New()
	log = log.With(zap.String("session", id.String()))

	rng := deps.Rand
	if rng == nil {
		seed := uint64(cfg.Session.Seed)
		if seed == 0 {
			seed = uint64(time.Now().UnixNano())
		}
		rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	}

	profile := deps.Profiles.Get(cfg.AI.Profile)
	if profile == nil {
		return nil, fmt.Errorf("session: ai profile %q not found", cfg.AI.Profile)
	}
	decider, err := ai.NewDecider(profile, rng, log)
	if err != nil {
		return nil, err
	}
	decider.RequireEngagement = cfg.AI.RequireEngagement

	keys, err := input.NewKeyMap(cfg.Input.Bindings)
	if err != nil {
		return nil, fmt.Errorf("session: %w", err)
	}

	state := world.NewState()
	s := &Session{
		ID:       id,
		State:    state,
		Sched:    schedule.New(state.Alive),
		Bus:      event.NewBus(),
		Commands: ability.NewQueue(),
		Input:    input.NewQueue(cfg.Input.QueueSize),
		Decider:  decider,
		cfg:      cfg,
		deps:     deps,
		runner:   coresys.NewRunner(),
		log:      log,
	}

	execDeps := ability.Deps{
		Config:           cfg.Abilities,
		ProjectileRadius: cfg.Projectiles.ProjectileRadius,
		World:            state,
		Scene:            deps.Scene,
		Ground:           deps.Ground,
		Sched:            s.Sched,
		Bus:              s.Bus,
		Rand:             rng,
		Log:              log,
	}
	if sc := deps.Scripts; sc != nil {
		if sc.Has("on_strike") {
			execDeps.Strike = sc
		}
		if sc.Has("choose_ability") {
			decider.Chooser = sc
		}
	}
	s.Executor = ability.NewExecutor(execDeps)

	s.runner.Register(system.NewInputSystem(state, s.Input, keys, s.Commands, cfg.Input.MaxEventsPerTick, log))
	s.runner.Register(system.NewEventsSystem(s.Bus))
	s.runner.Register(system.NewAnimationSystem(state))
	s.runner.Register(system.NewMovementSystem(state, movement.NewIntegrator(cfg.Movement)))
	s.runner.Register(system.NewAISystem(state, decider, s.Commands))
	s.runner.Register(system.NewAbilitySystem(s.Commands, s.Executor))
	s.runner.Register(system.NewProjectileSystem(projectile.NewManager(cfg.Projectiles, state, deps.Scene, s.Bus, log)))
	s.runner.Register(system.NewCameraSystem(state, camera.NewFollow(cfg.Camera)))
	s.runner.Register(system.NewOutputSystem(state, deps.Scene))
	s.runner.Register(system.NewCleanupSystem(state, log))

	s.subscribe()
	return s, nil
}

// Step runs one frame: timers due by now fire first, then every phase in order.
func (s *Session) Step(dt time.Duration) {
	if dt <= 0 {
		return
	}
	s.elapsed += dt
	s.Sched.Advance(dt)
	s.runner.Tick(dt)
	s.ticks++
}

func (s *Session) Ticks() uint64          { return s.ticks }
func (s *Session) Elapsed() time.Duration { return s.elapsed }

// Spawn loads sp's model and adds the character once the engine delivers it.
// Load failures are logged and leave the session without that character.
func (s *Session) Spawn(sp data.Spawn) error {
	tpl := s.deps.Models.Get(sp.Model)
	if tpl == nil {
		return fmt.Errorf("spawn: unknown model %q", sp.Model)
	}
	if sp.Player && s.State.Player() != nil {
		return world.ErrPlayerExists
	}
	s.deps.Loader.Load(sp.Model, func(m *engine.Model, err error) {
		if err != nil {
			s.log.Warn("model load failed", zap.String("model", sp.Model), zap.Error(err))
			return
		}
		s.addCharacter(sp, tpl, m)
	})
	return nil
}

func (s *Session) addCharacter(sp data.Spawn, tpl *data.ModelTemplate, m *engine.Model) {
	id := s.State.NewEntity()
	clips := make(map[anim.Action]engine.Clip)
	for _, a := range anim.Actions() {
		b, ok := tpl.Binding(a)
		if !ok {
			continue
		}
		if clip, ok := m.Animator.Clip(b.Clip); ok {
			clips[a] = clip
		} else {
			s.log.Debug("clip missing from asset", zap.String("model", tpl.Name), zap.String("clip", b.Clip))
		}
	}

	c := &world.Character{
		ID:       id,
		Player:   sp.Player,
		Model:    tpl.Name,
		Position: mgl64.Vec3{sp.Position[0], sp.Position[1], sp.Position[2]},
		Yaw:      sp.Yaw,
		Node:     m.Root,
	}
	c.Anim = anim.NewMachine(id, m.Animator, clips, s.Sched, anim.Options{
		Blend:    s.cfg.Animation.Blend,
		Fallback: s.cfg.Animation.TransientFallback,
	})
	c.Anim.Moving = c.Moving

	if err := s.State.AddCharacter(c); err != nil {
		s.State.ECS().DestroyNow(id)
		s.log.Warn("character rejected", zap.String("model", tpl.Name), zap.Error(err))
		return
	}
	if !c.Player {
		b := &world.Brain{}
		s.Decider.Start(b)
		s.State.Brains.Set(id, b)
	}
	m.Root.SetTransform(c.Position, c.Yaw)
	s.deps.Scene.Add(m.Root)

	s.log.Info("character spawned",
		zap.Uint64("id", uint64(id)),
		zap.String("model", tpl.Name),
		zap.Bool("player", c.Player),
		zap.Int("clips", len(clips)))
}

// RemoveCharacter takes a character out of play: its shield and node leave
// the scene and its pending timers are cancelled.
func (s *Session) RemoveCharacter(id ecs.EntityID) bool {
	c := s.State.Character(id)
	if c == nil {
		return false
	}
	s.Executor.RemoveShield(c)
	s.State.RemoveCharacter(id)
	n := s.Sched.CancelOwner(id)
	if c.Node != nil {
		s.deps.Scene.Remove(c.Node)
	}
	s.log.Info("character removed", zap.Uint64("id", uint64(id)), zap.Int("timers_cancelled", n))
	return true
}

// subscribe hooks logging and the Lua hit hook onto gameplay events.
func (s *Session) subscribe() {
	event.Subscribe(s.Bus, func(ev event.AbilityUsed) {
		s.log.Debug("ability", zap.Uint64("actor", uint64(ev.Actor)), zap.String("ability", ev.Ability))
	})
	event.Subscribe(s.Bus, func(ev event.StrikeLanded) {
		s.log.Info("strike landed", zap.Uint64("attacker", uint64(ev.Attacker)), zap.Uint64("target", uint64(ev.Target)))
	})
	event.Subscribe(s.Bus, func(ev event.Teleported) {
		s.log.Debug("teleported", zap.Uint64("actor", uint64(ev.Actor)),
			zap.Float64s("to", ev.To[:]))
	})
	event.Subscribe(s.Bus, func(ev event.ProjectileHit) {
		s.log.Info("fireball hit",
			zap.Uint64("owner", uint64(ev.Owner)),
			zap.Uint64("target", uint64(ev.Target)),
			zap.Bool("shielded", ev.Shielded))
	})

	sc := s.deps.Scripts
	if sc == nil || !sc.Has("on_projectile_hit") {
		return
	}
	event.Subscribe(s.Bus, func(ev event.ProjectileHit) {
		sc.OnProjectileHit(scripting.HitContext{
			Projectile: uint64(ev.Projectile),
			Owner:      uint64(ev.Owner),
			Target:     uint64(ev.Target),
			Shielded:   ev.Shielded,
			X:          ev.Position[0],
			Y:          ev.Position[1],
			Z:          ev.Position[2],
		})
	})
}
