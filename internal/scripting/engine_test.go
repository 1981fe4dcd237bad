package scripting

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestHooksAbsentKeepGoBehaviour(t *testing.T) {
	e, err := NewEngineFromSource("x = 1", zap.NewNop())
	require.NoError(t, err)
	defer e.Close()

	_, ok := e.ChooseAbility(AIContext{})
	require.False(t, ok)
	require.Nil(t, e.OnStrike(StrikeContext{Targets: []Actor{{ID: 1}}}))
	e.OnProjectileHit(HitContext{})
	require.False(t, e.Has("choose_ability"))
}

func TestChooseAbility(t *testing.T) {
	e, err := NewEngineFromSource(`
function choose_ability(ctx)
  if ctx.engaged and ctx.distance < 2 then return "strike" end
  if ctx.weights.fireball > 0 then return "fireball" end
  return nil
end`, zap.NewNop())
	require.NoError(t, err)
	defer e.Close()
	require.True(t, e.Has("choose_ability"))

	name, ok := e.ChooseAbility(AIContext{Engaged: true, Distance: 1, Weights: map[string]float64{"fireball": 0}})
	require.True(t, ok)
	require.Equal(t, "strike", name)

	name, ok = e.ChooseAbility(AIContext{Distance: 4, Weights: map[string]float64{"fireball": 0.2}})
	require.True(t, ok)
	require.Equal(t, "fireball", name)

	_, ok = e.ChooseAbility(AIContext{Distance: 4, Weights: map[string]float64{"fireball": 0}})
	require.False(t, ok)
}

func TestScriptErrorFallsBack(t *testing.T) {
	e, err := NewEngineFromSource(`function choose_ability(ctx) error("boom") end`, zap.NewNop())
	require.NoError(t, err)
	defer e.Close()
	_, ok := e.ChooseAbility(AIContext{})
	require.False(t, ok)
}

func TestOnStrikeFiltersIndices(t *testing.T) {
	e, err := NewEngineFromSource(`function on_strike(ctx) return {2, 2, 9, 0, "x", 1} end`, zap.NewNop())
	require.NoError(t, err)
	defer e.Close()
	hits := e.OnStrike(StrikeContext{Targets: []Actor{{ID: 10}, {ID: 11}}})
	require.Equal(t, []int{1, 0}, hits)
}

func TestShippedCombatScripts(t *testing.T) {
	dir := filepath.Join("..", "..", "scripts")
	if _, err := os.Stat(dir); err != nil {
		t.Skip("scripts directory not present")
	}
	e, err := NewEngine(dir, zap.NewNop())
	require.NoError(t, err)
	defer e.Close()

	// Attacker at origin facing -Z: in front within reach, behind, and too far.
	hits := e.OnStrike(StrikeContext{
		Attacker: Actor{ID: 1},
		Targets: []Actor{
			{ID: 2, Z: -1},
			{ID: 3, Z: 1},
			{ID: 4, Z: -5},
		},
	})
	require.Equal(t, []int{0}, hits)
	e.OnProjectileHit(HitContext{Projectile: 5, Target: 2, Shielded: true})
}

func TestLoadDirSkipsMissingAndNonLua(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "ai"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ai", "notes.txt"), []byte("not lua"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ai", "pick.lua"), []byte(`function choose_ability() return "block" end`), 0o644))

	e, err := NewEngine(dir, zap.NewNop())
	require.NoError(t, err)
	defer e.Close()
	name, ok := e.ChooseAbility(AIContext{})
	require.True(t, ok)
	require.Equal(t, "block", name)
}

func TestLoadDirReportsSyntaxErrors(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "combat"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "combat", "bad.lua"), []byte("function ("), 0o644))
	_, err := NewEngine(dir, zap.NewNop())
	require.Error(t, err)
}
