// Package projectile advances live fireballs and resolves them against
// characters and shields.
package projectile

import (
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/l1jgo/skirmish/internal/config"
	"github.com/l1jgo/skirmish/internal/core/event"
	"github.com/l1jgo/skirmish/internal/engine"
	"github.com/l1jgo/skirmish/internal/world"
)

type Manager struct {
	cfg   config.ProjectilesConfig
	state *world.State
	scene engine.Scene
	bus   *event.Bus
	grid  *world.Grid
	log   *zap.Logger
}

func NewManager(cfg config.ProjectilesConfig, state *world.State, scene engine.Scene, bus *event.Bus, log *zap.Logger) *Manager {
	if log == nil {
		log = zap.NewNop()
	}
	return &Manager{cfg: cfg, state: state, scene: scene, bus: bus, grid: world.NewGrid(), log: log}
}

// Update moves every projectile, ages it by dt and removes it on its first
// hit, on running out of lifetime, or on leaving MaxRange of the origin.
func (m *Manager) Update(dt time.Duration) {
	secs := dt.Seconds()
	projectiles := m.state.Projectiles()
	if len(projectiles) > 0 {
		m.grid.Rebuild(m.state, m.reach())
	}
	for _, p := range projectiles {
		if p.Removed() {
			continue
		}
		p.Position = p.Position.Add(p.Direction.Mul(p.Speed * secs))
		p.Lifetime -= dt
		if p.Node != nil {
			p.Node.SetTransform(p.Position, 0)
		}

		if target, shielded := m.collide(p); target != nil {
			m.remove(p)
			m.log.Debug("projectile hit",
				zap.Uint64("projectile", uint64(p.ID)),
				zap.Uint64("target", uint64(target.ID)),
				zap.Bool("shielded", shielded))
			event.Emit(m.bus, event.ProjectileHit{
				Projectile: p.ID,
				Owner:      p.Owner,
				Target:     target.ID,
				Shielded:   shielded,
				Position:   p.Position,
			})
			continue
		}

		outOfRange := m.cfg.MaxRange > 0 && p.Position.Len() > m.cfg.MaxRange
		if p.Lifetime <= 0 || outOfRange {
			m.remove(p)
			event.Emit(m.bus, event.ProjectileExpired{
				Projectile: p.ID,
				Owner:      p.Owner,
				OutOfRange: outOfRange,
			})
		}
	}
	m.state.CompactProjectiles()
}

// reach is the widest horizontal distance at which any projectile can hit,
// used as the grid cell size.
func (m *Manager) reach() float64 {
	r := m.cfg.HitRadius
	widest := 0.0
	for _, p := range m.state.Projectiles() {
		widest = math.Max(widest, p.Radius)
	}
	m.state.Characters(func(c *world.Character) {
		if c.Shield != nil {
			r = math.Max(r, c.Shield.Radius+widest)
		}
	})
	return r
}

// collide returns the first character, in spawn order, that p hits. The
// owner is never a candidate.
func (m *Manager) collide(p *world.Projectile) (*world.Character, bool) {
	for _, c := range m.grid.Nearby(p.Position) {
		if c.ID == p.Owner || c.Removed() {
			continue
		}
		if p.Position.Sub(c.Torso(m.cfg.TorsoHeight)).Len() < m.cfg.HitRadius {
			return c, c.Shield != nil
		}
		if s := c.Shield; s != nil && p.Position.Sub(s.Center(c)).Len() < s.Radius+p.Radius {
			return c, true
		}
	}
	return nil, false
}

func (m *Manager) remove(p *world.Projectile) {
	if !m.state.RemoveProjectile(p) {
		return
	}
	if p.Node != nil {
		m.scene.Remove(p.Node)
	}
}
