package ability

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/l1jgo/skirmish/internal/anim"
	"github.com/l1jgo/skirmish/internal/config"
	"github.com/l1jgo/skirmish/internal/core/event"
	"github.com/l1jgo/skirmish/internal/core/schedule"
	"github.com/l1jgo/skirmish/internal/engine"
	"github.com/l1jgo/skirmish/internal/engine/headless"
	"github.com/l1jgo/skirmish/internal/scripting"
	"github.com/l1jgo/skirmish/internal/world"
)

// shieldWatch records how many shields the watched node carried each time a
// shield mesh was built.
type shieldWatch struct {
	*headless.Scene
	watch   *headless.Node
	atBuild []int
}

func (s *shieldWatch) NewMesh(spec engine.MeshSpec) engine.Node {
	if spec.Kind == engine.MeshShield && s.watch != nil {
		s.atBuild = append(s.atBuild, s.watch.CountKind(engine.MeshShield))
	}
	return s.Scene.NewMesh(spec)
}

type fixedStrike []int

func (f fixedStrike) OnStrike(ctx scripting.StrikeContext) []int { return f }

type rig struct {
	cfg   config.AbilitiesConfig
	state *world.State
	scene *shieldWatch
	sched *schedule.Scheduler
	bus   *event.Bus
	exec  *Executor
}

func newRig(t *testing.T, mutate func(*Deps)) *rig {
	t.Helper()
	r := &rig{
		cfg:   config.Default().Abilities,
		state: world.NewState(),
		scene: &shieldWatch{Scene: headless.NewScene(nil)},
		bus:   event.NewBus(),
	}
	r.sched = schedule.New(r.state.Alive)
	deps := Deps{
		Config:           r.cfg,
		ProjectileRadius: 0.2,
		World:            r.state,
		Scene:            r.scene,
		Ground:           headless.Plane{},
		Sched:            r.sched,
		Bus:              r.bus,
		Rand:             rand.New(rand.NewPCG(7, 11)),
	}
	if mutate != nil {
		mutate(&deps)
	}
	r.exec = NewExecutor(deps)
	return r
}

// spawn adds a character with every action bound to a 500ms clip, or with
// no clips at all when bare is set.
func (r *rig) spawn(t *testing.T, player bool, pos mgl64.Vec3, bare bool) (*world.Character, *headless.Animator) {
	t.Helper()
	var hclips []*headless.Clip
	clips := make(map[anim.Action]engine.Clip)
	if !bare {
		for _, a := range anim.Actions() {
			c := headless.NewClip(a.String(), 500*time.Millisecond)
			hclips = append(hclips, c)
			clips[a] = c
		}
	}
	animator := headless.NewAnimator(hclips, true)
	id := r.state.NewEntity()
	node := headless.NewNode("character")
	c := &world.Character{
		ID:       id,
		Player:   player,
		Position: pos,
		Node:     node,
		Anim:     anim.NewMachine(id, animator, clips, r.sched, anim.Options{Blend: 200 * time.Millisecond}),
	}
	c.Anim.Moving = c.Moving
	require.NoError(t, r.state.AddCharacter(c))
	r.scene.Add(node)
	return c, animator
}

func collect[T any](bus *event.Bus) *[]T {
	var got []T
	event.Subscribe(bus, func(ev T) { got = append(got, ev) })
	return &got
}

func (r *rig) flush() {
	r.bus.SwapBuffers()
	r.bus.DispatchAll()
}

func TestAbsentActorIsNoOp(t *testing.T) {
	r := newRig(t, nil)
	used := collect[event.AbilityUsed](r.bus)

	for _, k := range Kinds() {
		assert.False(t, r.exec.Execute(Command{Actor: 999, Ability: k}), k.String())
	}

	c, animator := r.spawn(t, false, mgl64.Vec3{}, false)
	r.state.RemoveCharacter(c.ID)
	for _, k := range Kinds() {
		assert.False(t, r.exec.Execute(Command{Actor: c.ID, Ability: k}), k.String())
	}
	assert.False(t, r.exec.Shield(nil))
	assert.Empty(t, animator.Plays)
	r.flush()
	assert.Empty(t, *used)
}

func TestEveryAbilityPlaysItsOneShot(t *testing.T) {
	r := newRig(t, nil)
	_, _ = r.spawn(t, true, mgl64.Vec3{}, false)
	enemy, animator := r.spawn(t, false, mgl64.Vec3{0, 0, -6}, false)

	for _, k := range Kinds() {
		require.True(t, r.exec.Execute(Command{Actor: enemy.ID, Ability: k}), k.String())
		assert.Equal(t, k.Action(), enemy.Anim.Current(), k.String())
	}
	assert.Equal(t, []string{"Strike", "Block", "Dodge", "Cast", "Teleport", "Shield"}, animator.Plays)
}

func TestShieldTwiceKeepsOne(t *testing.T) {
	r := newRig(t, nil)
	c, _ := r.spawn(t, true, mgl64.Vec3{}, false)
	r.scene.watch = c.Node.(*headless.Node)

	require.True(t, r.exec.Shield(c))
	first := c.Shield
	require.True(t, r.exec.Shield(c))

	assert.Equal(t, []int{0, 0}, r.scene.atBuild, "old shield gone before the new one is built")
	assert.Equal(t, 1, r.scene.watch.CountKind(engine.MeshShield))
	assert.NotSame(t, first, c.Shield)
	assert.False(t, r.sched.Scheduled(first.Expiry), "old expiry cancelled")
}

func TestShieldExpiresAfterDuration(t *testing.T) {
	r := newRig(t, nil)
	c, _ := r.spawn(t, true, mgl64.Vec3{}, false)
	expired := collect[event.ShieldExpired](r.bus)

	require.True(t, r.exec.Shield(c))
	for i := 0; i < 29; i++ {
		r.sched.Advance(100 * time.Millisecond)
	}
	require.NotNil(t, c.Shield, "present at 2.9s")

	r.sched.Advance(100 * time.Millisecond)
	r.sched.Advance(100 * time.Millisecond)
	assert.Nil(t, c.Shield, "absent at 3.1s")
	assert.Equal(t, 0, c.Node.(*headless.Node).CountKind(engine.MeshShield))

	r.flush()
	assert.Equal(t, []event.ShieldExpired{{Actor: c.ID}}, *expired)
}

func TestShieldExpiryAfterOwnerRemoved(t *testing.T) {
	r := newRig(t, nil)
	c, _ := r.spawn(t, false, mgl64.Vec3{}, false)
	expired := collect[event.ShieldExpired](r.bus)

	require.True(t, r.exec.Shield(c))
	r.state.RemoveCharacter(c.ID)
	r.state.Flush()
	assert.NotPanics(t, func() { r.sched.Advance(5 * time.Second) })
	r.flush()
	assert.Empty(t, *expired)
}

func TestShieldWithoutClipStillProtects(t *testing.T) {
	r := newRig(t, nil)
	c, animator := r.spawn(t, false, mgl64.Vec3{}, true)

	require.True(t, r.exec.Execute(Command{Actor: c.ID, Ability: Shield}))
	assert.Empty(t, animator.Plays)
	assert.Equal(t, anim.Idle, c.Anim.Current())
	assert.NotNil(t, c.Shield)
}

func TestFireballSpawnsAboveActor(t *testing.T) {
	r := newRig(t, nil)
	c, _ := r.spawn(t, true, mgl64.Vec3{}, false)
	spawned := collect[event.ProjectileSpawned](r.bus)

	require.True(t, r.exec.Fireball(c, mgl64.Vec3{0, 0, -3}))
	ps := r.state.Projectiles()
	require.Len(t, ps, 1)
	p := ps[0]
	assert.Equal(t, c.ID, p.Owner)
	assert.Equal(t, mgl64.Vec3{0, 1, 0}, p.Position)
	assert.Equal(t, mgl64.Vec3{0, 0, -1}, p.Direction)
	assert.Equal(t, 20.0, p.Speed)
	assert.Equal(t, 5*time.Second, p.Lifetime)
	assert.True(t, r.scene.Contains(p.Node))

	assert.False(t, r.exec.Fireball(c, mgl64.Vec3{}), "zero direction")
	assert.Equal(t, 1, r.state.ProjectileCount())

	r.flush()
	require.Len(t, *spawned, 1)
	assert.Equal(t, p.ID, (*spawned)[0].Projectile)
}

func TestEnemyFireballAimsAtPlayer(t *testing.T) {
	r := newRig(t, nil)
	_, _ = r.spawn(t, true, mgl64.Vec3{0, 0, 0}, false)
	enemy, _ := r.spawn(t, false, mgl64.Vec3{3, 0, 4}, false)

	require.True(t, r.exec.Execute(Command{Actor: enemy.ID, Ability: Fireball}))
	p := r.state.Projectiles()[0]
	assert.InDelta(t, -0.6, p.Direction[0], 1e-9)
	assert.InDelta(t, -0.8, p.Direction[2], 1e-9)
}

func TestPlayerFireballFollowsFacing(t *testing.T) {
	r := newRig(t, nil)
	c, _ := r.spawn(t, true, mgl64.Vec3{}, false)
	c.FaceToward(mgl64.Vec3{1, 0, 0})

	require.True(t, r.exec.Execute(Command{Actor: c.ID, Ability: Fireball}))
	d := r.state.Projectiles()[0].Direction
	assert.InDelta(t, 1, d[0], 1e-9)
	assert.InDelta(t, 0, d[2], 1e-9)
}

func TestPlayerDodgeAlternates(t *testing.T) {
	r := newRig(t, nil)
	c, _ := r.spawn(t, true, mgl64.Vec3{}, false)

	require.True(t, r.exec.Execute(Command{Actor: c.ID, Ability: Dodge}))
	assert.InDelta(t, 2, c.Position[0], 1e-9)
	require.True(t, r.exec.Execute(Command{Actor: c.ID, Ability: Dodge}))
	assert.InDelta(t, 0, c.Position[0], 1e-9)
	assert.InDelta(t, 0, c.Position[2], 1e-9)
}

func TestPlayerDodgeRight(t *testing.T) {
	r := newRig(t, func(d *Deps) { d.Config.PlayerDodge = config.DodgeRight })
	c, _ := r.spawn(t, true, mgl64.Vec3{}, false)

	r.exec.Execute(Command{Actor: c.ID, Ability: Dodge})
	r.exec.Execute(Command{Actor: c.ID, Ability: Dodge})
	assert.InDelta(t, 4, c.Position[0], 1e-9)
}

func TestEnemyDodgeStaysOnItsSideAxis(t *testing.T) {
	r := newRig(t, nil)
	c, _ := r.spawn(t, false, mgl64.Vec3{}, false)
	for i := 0; i < 20; i++ {
		before := c.Position
		r.exec.Execute(Command{Actor: c.ID, Ability: Dodge})
		step := c.Position.Sub(before)
		assert.InDelta(t, 2, step.Len(), 1e-9)
		assert.InDelta(t, 0, step[2], 1e-9)
	}
}

func TestPlayerTeleportUsesGroundRaycast(t *testing.T) {
	r := newRig(t, nil)
	c, _ := r.spawn(t, true, mgl64.Vec3{}, false)
	moved := collect[event.Teleported](r.bus)

	require.True(t, r.exec.Execute(Command{Actor: c.ID, Ability: Teleport}))
	assert.InDelta(t, 0, c.Position[0], 1e-9)
	assert.InDelta(t, 0, c.Position[1], 1e-9)
	assert.InDelta(t, -5, c.Position[2], 1e-9)

	require.True(t, r.exec.Execute(Command{Actor: c.ID, Ability: Teleport, Point: mgl64.Vec3{7, 0, 7}, HasPoint: true}))
	assert.Equal(t, mgl64.Vec3{7, 0, 7}, c.Position)

	r.flush()
	assert.Len(t, *moved, 2)
}

type missGround struct{}

func (missGround) Raycast(mgl64.Vec3, mgl64.Vec3) (mgl64.Vec3, bool) { return mgl64.Vec3{}, false }

func TestTeleportMissLeavesActorInPlace(t *testing.T) {
	r := newRig(t, func(d *Deps) { d.Ground = missGround{} })
	c, animator := r.spawn(t, true, mgl64.Vec3{1, 0, 1}, false)

	assert.False(t, r.exec.Execute(Command{Actor: c.ID, Ability: Teleport}))
	assert.Equal(t, mgl64.Vec3{1, 0, 1}, c.Position)
	assert.Empty(t, animator.Plays)
}

func TestEnemyTeleportLandsNearPlayer(t *testing.T) {
	r := newRig(t, nil)
	player, _ := r.spawn(t, true, mgl64.Vec3{10, 0, 10}, false)
	enemy, _ := r.spawn(t, false, mgl64.Vec3{50, 0, 50}, false)

	for i := 0; i < 200; i++ {
		require.True(t, r.exec.Execute(Command{Actor: enemy.ID, Ability: Teleport}))
		assert.LessOrEqual(t, enemy.Position.Sub(player.Position).Len(), r.cfg.TeleportRadius+1e-9)
		assert.Equal(t, 0.0, enemy.Position[1])
	}
}

func TestEnemyTeleportWithoutPlayer(t *testing.T) {
	r := newRig(t, nil)
	enemy, _ := r.spawn(t, false, mgl64.Vec3{50, 0, 50}, false)
	assert.False(t, r.exec.Execute(Command{Actor: enemy.ID, Ability: Teleport}))
	assert.Equal(t, mgl64.Vec3{50, 0, 50}, enemy.Position)
}

func TestStrikeHookReportsHits(t *testing.T) {
	r := newRig(t, func(d *Deps) { d.Strike = fixedStrike{1} })
	player, _ := r.spawn(t, true, mgl64.Vec3{}, false)
	_, _ = r.spawn(t, false, mgl64.Vec3{0, 0, -10}, false)
	near, _ := r.spawn(t, false, mgl64.Vec3{0, 0, -1}, false)
	landed := collect[event.StrikeLanded](r.bus)

	require.True(t, r.exec.Strike(player))
	r.flush()
	assert.Equal(t, []event.StrikeLanded{{Attacker: player.ID, Target: near.ID}}, *landed)
}

func TestStrikeWithoutHookIsAnimationOnly(t *testing.T) {
	r := newRig(t, nil)
	player, _ := r.spawn(t, true, mgl64.Vec3{}, false)
	_, _ = r.spawn(t, false, mgl64.Vec3{0, 0, -1}, false)
	landed := collect[event.StrikeLanded](r.bus)

	require.True(t, r.exec.Strike(player))
	r.flush()
	assert.Empty(t, *landed)
	assert.Equal(t, anim.Strike, player.Anim.Current())
}
