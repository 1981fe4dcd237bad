package headless

import (
	"time"

	"github.com/l1jgo/skirmish/internal/engine"
)

// Clip is a named clip with a known length.
type Clip struct {
	name     string
	duration time.Duration
}

func NewClip(name string, d time.Duration) *Clip { return &Clip{name: name, duration: d} }

func (c *Clip) Name() string            { return c.name }
func (c *Clip) Duration() time.Duration { return c.duration }

// Fade records one CrossFade request.
type Fade struct {
	Out, In string
	Blend   time.Duration
}

// Animator times one-shots against Update. With notifies false it behaves
// like a player without completion events.
type Animator struct {
	clips    map[string]*Clip
	notifies bool

	looping  string
	oneShot  *Clip
	elapsed  time.Duration
	finished func()

	Fades []Fade
	Plays []string
}

func NewAnimator(clips []*Clip, notifies bool) *Animator {
	a := &Animator{clips: make(map[string]*Clip, len(clips)), notifies: notifies}
	for _, c := range clips {
		a.clips[c.name] = c
	}
	return a
}

func (a *Animator) Clip(name string) (engine.Clip, bool) {
	c, ok := a.clips[name]
	if !ok {
		return nil, false
	}
	return c, true
}

func (a *Animator) CrossFade(out, in engine.Clip, blend time.Duration) {
	f := Fade{Blend: blend}
	if out != nil {
		f.Out = out.Name()
	}
	if in != nil {
		f.In = in.Name()
		a.looping = in.Name()
	}
	a.Fades = append(a.Fades, f)
	a.oneShot = nil
	a.finished = nil
}

func (a *Animator) PlayOnce(clip engine.Clip, finished func()) bool {
	c, ok := clip.(*Clip)
	if !ok {
		return false
	}
	a.Plays = append(a.Plays, c.name)
	a.oneShot = c
	a.elapsed = 0
	if !a.notifies {
		a.finished = nil
		return false
	}
	a.finished = finished
	return true
}

// Playing is the clip currently driving the pose.
func (a *Animator) Playing() string {
	if a.oneShot != nil {
		return a.oneShot.name
	}
	return a.looping
}

// Update advances the one-shot and fires its finished callback once the clip
// length has elapsed. The clip stays clamped on its last frame.
func (a *Animator) Update(dt time.Duration) {
	if a.oneShot == nil || a.finished == nil {
		return
	}
	a.elapsed += dt
	if a.elapsed < a.oneShot.duration {
		return
	}
	fn := a.finished
	a.finished = nil
	fn()
}
