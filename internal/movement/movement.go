// Package movement integrates player input and enemy steering into position
// and facing, and flips the persistent Run/Idle state to match.
package movement

import (
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/l1jgo/skirmish/internal/anim"
	"github.com/l1jgo/skirmish/internal/config"
	"github.com/l1jgo/skirmish/internal/world"
)

type Integrator struct {
	cfg config.MovementConfig
}

func NewIntegrator(cfg config.MovementConfig) *Integrator {
	return &Integrator{cfg: cfg}
}

// Player applies held keys for dt. In turn steering left/right rotate the
// yaw; in strafe steering they side-step.
func (m *Integrator) Player(c *world.Character, in world.InputState, dt time.Duration) {
	secs := dt.Seconds()
	var local mgl64.Vec3
	if in.Forward {
		local[2]--
	}
	if in.Backward {
		local[2]++
	}

	if m.cfg.Steering == config.SteeringStrafe {
		if in.Left {
			local[0]--
		}
		if in.Right {
			local[0]++
		}
	} else {
		turn := 0.0
		if in.Left {
			turn++
		}
		if in.Right {
			turn--
		}
		c.Yaw += turn * m.cfg.TurnSpeed * secs
	}

	if local.LenSqr() == 0 {
		m.stop(c)
		return
	}
	dir := world.RotateYaw(local.Normalize(), c.Yaw)
	m.move(c, dir, m.cfg.PlayerSpeed*secs)
}

// Enemy faces target and closes in until within engage range. It reports
// whether the enemy is engaged, i.e. close enough to stop and fight.
func (m *Integrator) Enemy(c, target *world.Character, dt time.Duration) bool {
	if target == nil {
		m.stop(c)
		return false
	}
	c.FaceToward(target.Position)
	d := world.Flat(target.Position.Sub(c.Position))
	dist := d.Len()
	if dist <= m.cfg.EngageRange {
		m.stop(c)
		return true
	}
	m.move(c, d.Mul(1/dist), m.cfg.EnemySpeed*dt.Seconds())
	return false
}

func (m *Integrator) move(c *world.Character, dir mgl64.Vec3, dist float64) {
	c.Intent = dir
	c.Position = c.Position.Add(dir.Mul(dist))
	if c.Anim != nil {
		c.Anim.SetPersistent(anim.Run)
	}
}

func (m *Integrator) stop(c *world.Character) {
	c.Intent = mgl64.Vec3{}
	if c.Anim != nil && c.Anim.Current() == anim.Run {
		c.Anim.SetPersistent(anim.Idle)
	}
}
