package camera

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"

	"github.com/l1jgo/skirmish/internal/config"
	"github.com/l1jgo/skirmish/internal/world"
)

func TestFirstUpdateSnapsBehindPlayer(t *testing.T) {
	f := NewFollow(config.Default().Camera)
	var cam world.Camera
	player := &world.Character{Player: true, Position: mgl64.Vec3{1, 0, 1}}

	f.Update(&cam, player)
	assert.True(t, cam.Placed)
	assert.Equal(t, mgl64.Vec3{1, 3, 6}, cam.Position)
	assert.Equal(t, player.Position, cam.Target)
	fwd := cam.Forward()
	assert.Less(t, fwd[2], 0.0, "looks the way the player faces")
}

func TestSmoothingClosesGapGradually(t *testing.T) {
	f := NewFollow(config.Default().Camera)
	var cam world.Camera
	player := &world.Character{Player: true}
	f.Update(&cam, player)

	player.Position = mgl64.Vec3{0, 0, -10}
	f.Update(&cam, player)
	assert.InDelta(t, 5-1, cam.Position[2], 1e-9, "a tenth of the 10 unit gap")

	for i := 0; i < 200; i++ {
		f.Update(&cam, player)
	}
	assert.InDelta(t, -5, cam.Position[2], 1e-6)
}

func TestOffsetTurnsWithPlayer(t *testing.T) {
	f := NewFollow(config.Default().Camera)
	player := &world.Character{Player: true, Yaw: math.Pi / 2}
	want := f.Desired(player)
	assert.InDelta(t, 5, want[0], 1e-9)
	assert.InDelta(t, 3, want[1], 1e-9)
	assert.InDelta(t, 0, want[2], 1e-9)
}

func TestNoPlayerLeavesCamera(t *testing.T) {
	f := NewFollow(config.Default().Camera)
	cam := world.Camera{Position: mgl64.Vec3{1, 2, 3}}
	f.Update(&cam, nil)
	assert.Equal(t, mgl64.Vec3{1, 2, 3}, cam.Position)
	assert.False(t, cam.Placed)
}
