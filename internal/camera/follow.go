// Package camera derives the third-person camera from the player transform.
package camera

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/l1jgo/skirmish/internal/config"
	"github.com/l1jgo/skirmish/internal/world"
)

// Follow eases the camera toward an offset behind the player. Smoothing is
// the fraction of the remaining gap closed each frame.
type Follow struct {
	offset    mgl64.Vec3
	smoothing float64
}

func NewFollow(cfg config.CameraConfig) *Follow {
	f := &Follow{smoothing: cfg.Smoothing}
	if len(cfg.Offset) == 3 {
		f.offset = mgl64.Vec3{cfg.Offset[0], cfg.Offset[1], cfg.Offset[2]}
	}
	if f.smoothing <= 0 || f.smoothing > 1 {
		f.smoothing = 1
	}
	return f
}

// Desired is the camera position the follow converges to.
func (f *Follow) Desired(player *world.Character) mgl64.Vec3 {
	return player.Position.Add(world.RotateYaw(f.offset, player.Yaw))
}

// Update moves cam one frame toward the player. The first update snaps.
func (f *Follow) Update(cam *world.Camera, player *world.Character) {
	if player == nil {
		return
	}
	want := f.Desired(player)
	if !cam.Placed {
		cam.Position = want
		cam.Placed = true
	} else {
		cam.Position = cam.Position.Add(want.Sub(cam.Position).Mul(f.smoothing))
	}
	cam.Target = player.Position
}
