package headless

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Plane is an infinite horizontal ground at Height.
type Plane struct {
	Height float64
}

// Raycast intersects the ray with the plane. Rays parallel to it or pointing
// away miss.
func (p Plane) Raycast(origin, dir mgl64.Vec3) (mgl64.Vec3, bool) {
	if math.Abs(dir[1]) < 1e-9 {
		return mgl64.Vec3{}, false
	}
	t := (p.Height - origin[1]) / dir[1]
	if t < 0 {
		return mgl64.Vec3{}, false
	}
	return origin.Add(dir.Mul(t)), true
}
