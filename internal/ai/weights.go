// Package ai runs the enemy decision timer: a jittered countdown that draws
// an ability from a weighted table each time it runs out.
package ai

import (
	"fmt"
	"math/rand/v2"
	"sort"

	"github.com/l1jgo/skirmish/internal/ability"
)

type weighted struct {
	kind   ability.Kind
	weight float64
}

// WeightTable is a discrete distribution over abilities. Weights are
// normalised, so any positive total works.
type WeightTable struct {
	entries []weighted
	total   float64
}

// NewWeightTable builds a table from ability name to weight. Abilities left
// out of the map are never drawn.
func NewWeightTable(weights map[string]float64) (*WeightTable, error) {
	t := &WeightTable{}
	for name, w := range weights {
		k, err := ability.ParseKind(name)
		if err != nil {
			return nil, err
		}
		if w < 0 {
			return nil, fmt.Errorf("weight for %s is negative", k)
		}
		if w == 0 {
			continue
		}
		t.entries = append(t.entries, weighted{kind: k, weight: w})
		t.total += w
	}
	if t.total <= 0 {
		return nil, fmt.Errorf("no ability has a positive weight")
	}
	sort.Slice(t.entries, func(i, j int) bool { return t.entries[i].kind < t.entries[j].kind })
	return t, nil
}

// Pick draws one ability.
func (t *WeightTable) Pick(rng *rand.Rand) ability.Kind {
	x := rng.Float64() * t.total
	for _, e := range t.entries {
		if x < e.weight {
			return e.kind
		}
		x -= e.weight
	}
	return t.entries[len(t.entries)-1].kind
}

// Probability is k's share of the total weight.
func (t *WeightTable) Probability(k ability.Kind) float64 {
	for _, e := range t.entries {
		if e.kind == k {
			return e.weight / t.total
		}
	}
	return 0
}

// Weights returns the normalised weights keyed by ability name.
func (t *WeightTable) Weights() map[string]float64 {
	out := make(map[string]float64, len(t.entries))
	for _, e := range t.entries {
		out[e.kind.String()] = e.weight / t.total
	}
	return out
}
