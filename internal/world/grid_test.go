package world

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGridNearbyInSpawnOrder(t *testing.T) {
	s := NewState()
	add := func(pos mgl64.Vec3) *Character {
		c := &Character{ID: s.NewEntity(), Position: pos}
		require.NoError(t, s.AddCharacter(c))
		return c
	}
	far := add(mgl64.Vec3{50, 0, 50})
	b := add(mgl64.Vec3{1.9, 0, 0})
	a := add(mgl64.Vec3{-0.5, 0, -0.5})
	neg := add(mgl64.Vec3{-3.9, 0, 0})

	g := NewGrid()
	g.Rebuild(s, 2)

	near := g.Nearby(mgl64.Vec3{0, 1, 0})
	assert.Equal(t, []*Character{b, a}, near)
	assert.NotContains(t, near, far)
	assert.NotContains(t, near, neg, "two cells away")

	assert.Equal(t, []*Character{a, neg}, g.Nearby(mgl64.Vec3{-2.5, 0, 0}))
}

func TestGridSkipsRemovedAndEmpty(t *testing.T) {
	s := NewState()
	c := &Character{ID: s.NewEntity()}
	require.NoError(t, s.AddCharacter(c))

	g := NewGrid()
	assert.Nil(t, g.Nearby(mgl64.Vec3{}), "not built yet")

	s.RemoveCharacter(c.ID)
	g.Rebuild(s, 0)
	assert.Empty(t, g.Nearby(mgl64.Vec3{}))
}
