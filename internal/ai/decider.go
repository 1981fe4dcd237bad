package ai

import (
	"fmt"
	"math/rand/v2"
	"time"

	"go.uber.org/zap"

	"github.com/l1jgo/skirmish/internal/ability"
	"github.com/l1jgo/skirmish/internal/data"
	"github.com/l1jgo/skirmish/internal/scripting"
	"github.com/l1jgo/skirmish/internal/world"
)

// Interval is the range a countdown is reset into.
type Interval struct {
	Min, Max time.Duration
}

// Next draws a countdown uniformly from [Min, Max]. Always positive.
func (iv Interval) Next(rng *rand.Rand) time.Duration {
	d := iv.Min
	if span := iv.Max - iv.Min; span > 0 {
		d += time.Duration(rng.Int64N(int64(span) + 1))
	}
	if d <= 0 {
		d = time.Millisecond
	}
	return d
}

// Chooser lets a script pick the ability instead of the weight table.
// Implemented by the Lua engine's choose_ability.
type Chooser interface {
	ChooseAbility(ctx scripting.AIContext) (string, bool)
}

type Decider struct {
	weights  *WeightTable
	interval Interval
	rng      *rand.Rand

	// RequireEngagement holds draws until the enemy is within engage range.
	// The countdown keeps running and resetting either way.
	RequireEngagement bool
	Chooser           Chooser // optional

	log *zap.Logger
}

func NewDecider(profile *data.AIProfile, rng *rand.Rand, log *zap.Logger) (*Decider, error) {
	if profile == nil {
		return nil, fmt.Errorf("ai: nil profile")
	}
	w, err := NewWeightTable(profile.Weights)
	if err != nil {
		return nil, fmt.Errorf("ai profile %q: %w", profile.Name, err)
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Decider{
		weights:  w,
		interval: Interval{Min: profile.MinInterval, Max: profile.MaxInterval},
		rng:      rng,
		log:      log,
	}, nil
}

func (d *Decider) Weights() *WeightTable { return d.weights }

// Start arms a fresh brain.
func (d *Decider) Start(b *world.Brain) {
	b.Countdown = d.interval.Next(d.rng)
}

// Tick counts b down by dt. When it runs out it is reset to a new positive
// interval and, unless held by engagement or a missing player, one ability is
// drawn for self.
func (d *Decider) Tick(self *world.Character, b *world.Brain, player *world.Character, dt time.Duration) (ability.Kind, bool) {
	b.Countdown -= dt
	if b.Countdown > 0 {
		return 0, false
	}
	b.Countdown = d.interval.Next(d.rng)

	if player == nil || (d.RequireEngagement && !b.Engaged) {
		return 0, false
	}
	return d.choose(self, b, player), true
}

func (d *Decider) choose(self *world.Character, b *world.Brain, player *world.Character) ability.Kind {
	if d.Chooser != nil {
		ctx := scripting.AIContext{
			Self:     actor(self),
			Target:   actor(player),
			Distance: world.Flat(player.Position.Sub(self.Position)).Len(),
			Engaged:  b.Engaged,
			Weights:  d.weights.Weights(),
		}
		if name, ok := d.Chooser.ChooseAbility(ctx); ok {
			k, err := ability.ParseKind(name)
			if err == nil {
				return k
			}
			d.log.Warn("script chose unknown ability", zap.String("ability", name))
		}
	}
	return d.weights.Pick(d.rng)
}

func actor(c *world.Character) scripting.Actor {
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
