package system

import (
	"time"

	"github.com/l1jgo/skirmish/internal/camera"
	coresys "github.com/l1jgo/skirmish/internal/core/system"
	"github.com/l1jgo/skirmish/internal/world"
)

// CameraSystem eases the camera after the player. Phase 7 (Camera).
type CameraSystem struct {
	world  *world.State
	follow *camera.Follow
}

func NewCameraSystem(ws *world.State, follow *camera.Follow) *CameraSystem {
	return &CameraSystem{world: ws, follow: follow}
}

func (s *CameraSystem) Phase() coresys.Phase { return coresys.PhaseCamera }

func (s *CameraSystem) Update(_ time.Duration) {
	s.follow.Update(&s.world.Camera, s.world.Player())
}
