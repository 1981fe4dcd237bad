package anim

import (
	"time"

	"github.com/l1jgo/skirmish/internal/core/ecs"
	"github.com/l1jgo/skirmish/internal/core/schedule"
	"github.com/l1jgo/skirmish/internal/engine"
)

// Machine is one character's action state machine. It owns the current Action
// and drives the engine animator; the clips themselves belong to the animator.
//
// Completion of a one-shot is always delivered through the scheduler, so it
// runs between ticks and is dropped once the owner is destroyed.
type Machine struct {
	owner    ecs.EntityID
	animator engine.Animator
	clips    map[Action]engine.Clip
	sched    *schedule.Scheduler

	blend    time.Duration
	fallback time.Duration

	current   Action
	transient bool
	seq       uint64 // bumps on every one-shot, stale completions are ignored
	pending   schedule.Handle

	// Moving reports live directional intent; the default completion uses it
	// to pick Run over Idle.
	Moving func() bool

	crossFades int
}

type Options struct {
	Blend time.Duration
	// Fallback times a one-shot whose clip has no length and whose animator
	// cannot report completion.
	Fallback time.Duration
}

// NewMachine binds clips by action. Actions missing from clips stay unbound.
// The machine starts in Idle, fading Idle in when it is bound.
func NewMachine(owner ecs.EntityID, animator engine.Animator, clips map[Action]engine.Clip, sched *schedule.Scheduler, opts Options) *Machine {
	bound := make(map[Action]engine.Clip, len(clips))
	for a, c := range clips {
		if c != nil && a.Valid() {
			bound[a] = c
		}
	}
	m := &Machine{
		owner:    owner,
		animator: animator,
		clips:    bound,
		sched:    sched,
		blend:    opts.Blend,
		fallback: opts.Fallback,
		current:  Idle,
	}
	if idle, ok := m.Clip(Idle); ok && animator != nil {
		animator.CrossFade(nil, idle, m.blend)
		m.crossFades++
	}
	return m
}

func (m *Machine) Current() Action { return m.current }

// Transient reports whether a one-shot is still playing.
func (m *Machine) Transient() bool { return m.transient }

// CrossFades counts persistent transitions requested from the animator.
func (m *Machine) CrossFades() int { return m.crossFades }

// Advance moves the animator clock. One-shot completions it reports are
// queued on the scheduler.
func (m *Machine) Advance(dt time.Duration) {
	if m.animator != nil {
		m.animator.Update(dt)
	}
}

// Clip returns the clip bound to a, if any.
func (m *Machine) Clip(a Action) (engine.Clip, bool) {
	c, ok := m.clips[a]
	return c, ok
}

// SetPersistent enters a looping state. It is a no-op when a is already
// current, when no clip is bound, or while a one-shot is playing (the one-shot
// picks the looping state itself when it completes).
func (m *Machine) SetPersistent(a Action) bool {
	if m.transient || a == m.current {
		return false
	}
	next, ok := m.Clip(a)
	if !ok || m.animator == nil {
		return false
	}
	prev, _ := m.Clip(m.current)
	m.animator.CrossFade(prev, next, m.blend)
	m.crossFades++
	m.current = a
	return true
}

// PlayTransient plays a once and then calls onComplete, or ReturnToLoop when
// onComplete is nil. A second call while one is playing restarts playback
// with the new action; the earlier completion is discarded.
func (m *Machine) PlayTransient(a Action, onComplete func()) bool {
	clip, ok := m.Clip(a)
	if !ok || m.animator == nil {
		return false
	}
	if onComplete == nil {
		onComplete = m.ReturnToLoop
	}
	if m.pending.Valid() {
		m.sched.Cancel(m.pending)
		m.pending = schedule.Handle{}
	}

	m.seq++
	seq := m.seq
	m.current = a
	m.transient = true

	done := func() { m.complete(seq, onComplete) }
	notifies := m.animator.PlayOnce(clip, func() {
		// Hop onto the scheduler so completion runs between ticks.
		m.sched.After(m.owner, 0, done)
	})
	if !notifies {
		d := clip.Duration()
		if d <= 0 {
			d = m.fallback
		}
		m.pending = m.sched.After(m.owner, d, done)
	}
	return true
}

func (m *Machine) complete(seq uint64, onComplete func()) {
	if seq != m.seq || !m.transient {
		return
	}
	m.transient = false
	m.pending = schedule.Handle{}
	onComplete()
}

// ReturnToLoop goes back to Run when the character still has directional
// intent, otherwise to Idle.
func (m *Machine) ReturnToLoop() {
	if m.Moving != nil && m.Moving() && m.SetPersistent(Run) {
		return
	}
	m.SetPersistent(Idle)
}
