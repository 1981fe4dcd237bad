package headless

import (
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/l1jgo/skirmish/internal/data"
	"github.com/l1jgo/skirmish/internal/engine"
)

func TestAnimatorFinishesOneShotOnce(t *testing.T) {
	punch := NewClip("Punch", 500*time.Millisecond)
	a := NewAnimator([]*Clip{punch}, true)

	calls := 0
	require.True(t, a.PlayOnce(punch, func() { calls++ }))
	a.Update(400 * time.Millisecond)
	assert.Equal(t, 0, calls)
	a.Update(100 * time.Millisecond)
	assert.Equal(t, 1, calls)
	a.Update(time.Second)
	assert.Equal(t, 1, calls)
	assert.Equal(t, "Punch", a.Playing(), "clamped on the last frame")
}

func TestAnimatorWithoutNotifications(t *testing.T) {
	punch := NewClip("Punch", 500*time.Millisecond)
	a := NewAnimator([]*Clip{punch}, false)
	called := false
	require.False(t, a.PlayOnce(punch, func() { called = true }))
	a.Update(time.Second)
	assert.False(t, called)
}

func TestCrossFadeCancelsOneShot(t *testing.T) {
	idle := NewClip("Idle", time.Second)
	punch := NewClip("Punch", 100*time.Millisecond)
	a := NewAnimator([]*Clip{idle, punch}, true)
	called := false
	a.PlayOnce(punch, func() { called = true })
	a.CrossFade(punch, idle, 200*time.Millisecond)
	a.Update(time.Second)
	assert.False(t, called)
	assert.Equal(t, "Idle", a.Playing())
	assert.Equal(t, []Fade{{Out: "Punch", In: "Idle", Blend: 200 * time.Millisecond}}, a.Fades)
}

func TestPlaneRaycast(t *testing.T) {
	p := Plane{}
	hit, ok := p.Raycast(mgl64.Vec3{0, 4, 0}, mgl64.Vec3{0, -1, -1}.Normalize())
	require.True(t, ok)
	assert.InDelta(t, 0, hit[1], 1e-9)
	assert.InDelta(t, -4, hit[2], 1e-9)

	_, ok = p.Raycast(mgl64.Vec3{0, 4, 0}, mgl64.Vec3{0, 0, -1})
	assert.False(t, ok, "parallel ray")
	_, ok = p.Raycast(mgl64.Vec3{0, 4, 0}, mgl64.Vec3{0, 1, 0})
	assert.False(t, ok, "pointing away")
}

func TestNodeAttachDetach(t *testing.T) {
	root := NewNode("root")
	hand := NewNode("hand")
	root.Attach(hand)
	s := NewScene(nil)
	shield := s.NewMesh(engine.MeshSpec{Kind: engine.MeshShield, Name: "shield"})
	hand.Attach(shield)

	found, ok := root.Find("shield")
	require.True(t, ok)
	assert.Same(t, shield, found)
	assert.Equal(t, 1, root.CountKind(engine.MeshShield))

	root.Detach(shield) // not a direct child
	assert.Equal(t, 1, root.CountKind(engine.MeshShield))
	hand.Detach(shield)
	assert.Equal(t, 0, root.CountKind(engine.MeshShield))
}

const models = `
models:
  - name: robot
    bones: [RightHand]
    clips:
      Idle:   {clip: Idle, length: 2s}
      Strike: {clip: Punch, length: 500ms}
    accessory: {name: sword, bone: RightHand}
  - name: knight
    notifies: false
    clips:
      Idle: {clip: Idle}
    accessory: {name: lantern, bone: Missing}
`

func TestLoaderBuildsModel(t *testing.T) {
	table, err := data.ParseModelTable([]byte(models))
	require.NoError(t, err)
	l := &Loader{Models: table, Scene: NewScene(nil)}

	var m *engine.Model
	l.Load("robot", func(got *engine.Model, err error) {
		require.NoError(t, err)
		m = got
	})
	require.NotNil(t, m)
	clip, ok := m.Animator.Clip("Punch")
	require.True(t, ok)
	assert.Equal(t, 500*time.Millisecond, clip.Duration())

	hand, ok := m.Root.Find("RightHand")
	require.True(t, ok)
	_, ok = hand.Find("sword")
	assert.True(t, ok, "accessory hangs on its bone")

	l.Load("knight", func(got *engine.Model, err error) {
		require.NoError(t, err)
		lantern, ok := got.Root.Find("lantern")
		require.True(t, ok)
		assert.Same(t, got.Root, lantern.(*Node).Parent(), "missing bone falls back to root")
		assert.False(t, got.Animator.PlayOnce(NewClip("Idle", 0), nil))
	})

	var loadErr error
	l.Load("ghost", func(_ *engine.Model, err error) { loadErr = err })
	assert.Error(t, loadErr)
}
