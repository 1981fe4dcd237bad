package world

import (
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl64"
)

// Grid is a cell index over the ground plane (X/Z). Cells are square with
// side CellSize, so a 3x3 neighbourhood covers every character within
// CellSize of a point horizontally.
// Accessed only from the game loop goroutine, no locks.
type Grid struct {
	cellSize float64
	cells    map[cellKey][]*Character
}

type cellKey struct {
	cx int32
	cz int32
}

func NewGrid() *Grid {
	return &Grid{cells: make(map[cellKey][]*Character)}
}

func (g *Grid) key(p mgl64.Vec3) cellKey {
	return cellKey{
		cx: int32(math.Floor(p[0] / g.cellSize)),
		cz: int32(math.Floor(p[2] / g.cellSize)),
	}
}

// Rebuild indexes every live character of s at its current position.
func (g *Grid) Rebuild(s *State, cellSize float64) {
	if cellSize <= 0 {
		cellSize = 1
	}
	g.cellSize = cellSize
	for k := range g.cells {
		delete(g.cells, k)
	}
	s.Characters(func(c *Character) {
		k := g.key(c.Position)
		g.cells[k] = append(g.cells[k], c)
	})
}

// Nearby returns the characters in the 3x3 cells around p in spawn order.
// Callers do the exact distance checks.
func (g *Grid) Nearby(p mgl64.Vec3) []*Character {
	if g.cellSize <= 0 {
		return nil
	}
	center := g.key(p)
	var result []*Character
	for dx := int32(-1); dx <= 1; dx++ {
		for dz := int32(-1); dz <= 1; dz++ {
			result = append(result, g.cells[cellKey{cx: center.cx + dx, cz: center.cz + dz}]...)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].seq < result[j].seq })
	return result
}
