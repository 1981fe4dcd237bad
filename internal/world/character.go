package world

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/l1jgo/skirmish/internal/anim"
	"github.com/l1jgo/skirmish/internal/core/ecs"
	"github.com/l1jgo/skirmish/internal/core/schedule"
	"github.com/l1jgo/skirmish/internal/engine"
)

// Up is the world up axis.
var Up = mgl64.Vec3{0, 1, 0}

// Character is a loaded, in-world actor: the player or an enemy.
// Accessed only from the tick goroutine.
type Character struct {
	ID     ecs.EntityID
	Player bool
	Model  string

	// Position and Yaw are written only by movement and by abilities that
	// displace the actor (dodge, teleport).
	Position mgl64.Vec3
	Yaw      float64

	// Intent is this frame's normalised world-space steering direction, zero
	// when standing still.
	Intent mgl64.Vec3

	Anim *anim.Machine
	Node engine.Node

	// Shield is the single active shield, nil when none.
	Shield *Shield

	// DodgeParity flips after every alternating dodge: false = right next.
	DodgeParity bool

	seq     uint64 // spawn order
	removed bool
}

// Shield is a timed protective volume attached to its owner's node.
type Shield struct {
	Node   engine.Node
	Radius float64
	Height float64
	Expiry schedule.Handle
}

// Center returns the shield centre in world space for owner c.
func (s *Shield) Center(c *Character) mgl64.Vec3 {
	return c.Position.Add(mgl64.Vec3{0, s.Height, 0})
}

// Moving reports whether the character has directional intent this frame.
func (c *Character) Moving() bool {
	return c.Intent.LenSqr() > 0
}

// Removed reports whether RemoveCharacter has been called.
func (c *Character) Removed() bool { return c.removed }

// Forward is the facing direction: local -Z rotated by Yaw around Up.
func (c *Character) Forward() mgl64.Vec3 {
	return RotateYaw(mgl64.Vec3{0, 0, -1}, c.Yaw)
}

// Right is the facing direction's right-hand side on the ground plane.
func (c *Character) Right() mgl64.Vec3 {
	return c.Forward().Cross(Up)
}

// Torso is the collision anchor height above the base position.
func (c *Character) Torso(height float64) mgl64.Vec3 {
	return c.Position.Add(mgl64.Vec3{0, height, 0})
}

// FaceToward turns the character to look at target on the ground plane.
// Targets directly above or below leave the yaw unchanged.
func (c *Character) FaceToward(target mgl64.Vec3) {
	d := target.Sub(c.Position)
	if d[0] == 0 && d[2] == 0 {
		return
	}
	c.Yaw = math.Atan2(-d[0], -d[2])
}

// RotateYaw rotates v around the world up axis.
func RotateYaw(v mgl64.Vec3, yaw float64) mgl64.Vec3 {
	return mgl64.Rotate3DY(yaw).Mul3x1(v)
}

// Flat drops the vertical component.
func Flat(v mgl64.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{v[0], 0, v[2]}
}
