package system

import (
	"time"

	coresys "github.com/l1jgo/skirmish/internal/core/system"
	"github.com/l1jgo/skirmish/internal/engine"
	"github.com/l1jgo/skirmish/internal/world"
)

// OutputSystem copies character transforms onto their scene nodes and
// renders the frame. Phase 8 (Output).
type OutputSystem struct {
	world *world.State
	scene engine.Scene
}

func NewOutputSystem(ws *world.State, scene engine.Scene) *OutputSystem {
	return &OutputSystem{world: ws, scene: scene}
}

func (s *OutputSystem) Phase() coresys.Phase { return coresys.PhaseOutput }

func (s *OutputSystem) Update(_ time.Duration) {
	s.world.Characters(func(c *world.Character) {
		if c.Node != nil {
			c.Node.SetTransform(c.Position, c.Yaw)
		}
	})
	if cam := s.world.Camera; cam.Placed {
		s.scene.SetCamera(cam.Position, cam.Target)
	}
	s.scene.Render()
}
