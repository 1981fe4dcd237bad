package scripting

import (
	"fmt"
	"os"
	"path/filepath"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// Engine wraps a single gopher-lua VM for gameplay hooks.
// Single-goroutine access only (tick loop). Every hook is optional: when the
// Lua global is missing the caller keeps its Go behaviour.
type Engine struct {
	vm  *lua.LState
	log *zap.Logger
}

// NewEngine creates a Lua engine and loads every script under scriptsDir/ai and
// scriptsDir/combat. Missing directories are skipped.
func NewEngine(scriptsDir string, log *zap.Logger) (*Engine, error) {
	e := newEngine(log)
	for _, sub := range []string{"ai", "combat"} {
		p := filepath.Join(scriptsDir, sub)
		if err := e.loadDir(p); err != nil {
			e.vm.Close()
			return nil, fmt.Errorf("load %s scripts: %w", sub, err)
		}
	}
	return e, nil
}

// NewEngineFromSource builds an engine from in-memory Lua source.
func NewEngineFromSource(src string, log *zap.Logger) (*Engine, error) {
	e := newEngine(log)
	if err := e.vm.DoString(src); err != nil {
		e.vm.Close()
		return nil, fmt.Errorf("load lua source: %w", err)
	}
	return e, nil
}

func newEngine(log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	vm := lua.NewState(lua.Options{SkipOpenLibs: false})
	vm.SetGlobal("API_VERSION", lua.LNumber(1))
	e := &Engine{vm: vm, log: log}
	vm.SetGlobal("log_debug", vm.NewFunction(e.luaLogDebug))
	return e
}

// luaLogDebug exposes log_debug(msg) to scripts.
func (e *Engine) luaLogDebug(L *lua.LState) int {
	e.log.Debug("lua", zap.String("msg", L.CheckString(1)))
	return 0
}

// loadDir loads all .lua files in a directory, in name order.
func (e *Engine) loadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".lua" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if err := e.vm.DoFile(path); err != nil {
			return fmt.Errorf("load %s: %w", path, err)
		}
		e.log.Debug("loaded lua script", zap.String("file", path))
	}
	return nil
}

// Has reports whether a global function is defined.
func (e *Engine) Has(name string) bool {
	_, ok := e.vm.GetGlobal(name).(*lua.LFunction)
	return ok
}

// Actor is the read-only view of a character handed to scripts.
type Actor struct {
	ID       uint64
	X, Y, Z  float64
	Yaw      float64
	Player   bool
	Shielded bool
}

func (e *Engine) actorTable(a Actor) *lua.LTable {
	t := e.vm.NewTable()
	t.RawSetString("id", lua.LNumber(a.ID))
	t.RawSetString("x", lua.LNumber(a.X))
	t.RawSetString("y", lua.LNumber(a.Y))
	t.RawSetString("z", lua.LNumber(a.Z))
	t.RawSetString("yaw", lua.LNumber(a.Yaw))
	t.RawSetString("player", lua.LBool(a.Player))
	t.RawSetString("shielded", lua.LBool(a.Shielded))
	return t
}

// --- AI ---

// AIContext is passed to Lua choose_ability(ctx).
type AIContext struct {
	Self     Actor
	Target   Actor
	Distance float64
	Engaged  bool
	Weights  map[string]float64
}

// ChooseAbility calls Lua choose_ability(ctx). ok is false when the hook is
// absent, fails, or returns nothing.
func (e *Engine) ChooseAbility(ctx AIContext) (name string, ok bool) {
	fn := e.vm.GetGlobal("choose_ability")
	if fn == lua.LNil {
		return "", false
	}

	t := e.vm.NewTable()
	t.RawSetString("self", e.actorTable(ctx.Self))
	t.RawSetString("target", e.actorTable(ctx.Target))
	t.RawSetString("distance", lua.LNumber(ctx.Distance))
	t.RawSetString("engaged", lua.LBool(ctx.Engaged))
	w := e.vm.NewTable()
	for k, v := range ctx.Weights {
		w.RawSetString(k, lua.LNumber(v))
	}
	t.RawSetString("weights", w)

	if err := e.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, t); err != nil {
		e.log.Error("lua choose_ability error", zap.Error(err), zap.Uint64("actor", ctx.Self.ID))
		return "", false
	}
	result := e.vm.Get(-1)
	e.vm.Pop(1)

	s, isStr := result.(lua.LString)
	if !isStr || s == "" {
		return "", false
	}
	return string(s), true
}

// --- Combat hooks ---

// StrikeContext is passed to Lua on_strike(ctx).
type StrikeContext struct {
	Attacker Actor
	Targets  []Actor
}

// OnStrike calls Lua on_strike(ctx) and returns the indices into ctx.Targets
// the script reports as hit. Out-of-range or repeated indices are dropped.
func (e *Engine) OnStrike(ctx StrikeContext) []int {
	fn := e.vm.GetGlobal("on_strike")
	if fn == lua.LNil || len(ctx.Targets) == 0 {
		return nil
	}

	t := e.vm.NewTable()
	t.RawSetString("attacker", e.actorTable(ctx.Attacker))
	targets := e.vm.NewTable()
	for i, a := range ctx.Targets {
		targets.RawSetInt(i+1, e.actorTable(a))
	}
	t.RawSetString("targets", targets)

	if err := e.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, t); err != nil {
		e.log.Error("lua on_strike error", zap.Error(err))
		return nil
	}
	result := e.vm.Get(-1)
	e.vm.Pop(1)

	rt, ok := result.(*lua.LTable)
	if !ok {
		return nil
	}
	var hits []int
	seen := make(map[int]bool)
	rt.ForEach(func(_, v lua.LValue) {
		n, isNum := v.(lua.LNumber)
		if !isNum {
			return
		}
		idx := int(n) - 1
		if idx < 0 || idx >= len(ctx.Targets) || seen[idx] {
			return
		}
		seen[idx] = true
		hits = append(hits, idx)
	})
	return hits
}

// HitContext is passed to Lua on_projectile_hit(ctx).
type HitContext struct {
	Projectile uint64
	Owner      uint64
	Target     uint64
	Shielded   bool
	X, Y, Z    float64
}

// OnProjectileHit calls Lua on_projectile_hit(ctx) if defined.
func (e *Engine) OnProjectileHit(ctx HitContext) {
	fn := e.vm.GetGlobal("on_projectile_hit")
	if fn == lua.LNil {
		return
	}
	t := e.vm.NewTable()
	t.RawSetString("projectile", lua.LNumber(ctx.Projectile))
	t.RawSetString("owner", lua.LNumber(ctx.Owner))
	t.RawSetString("target", lua.LNumber(ctx.Target))
	t.RawSetString("shielded", lua.LBool(ctx.Shielded))
	t.RawSetString("x", lua.LNumber(ctx.X))
	t.RawSetString("y", lua.LNumber(ctx.Y))
	t.RawSetString("z", lua.LNumber(ctx.Z))

	if err := e.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    0,
		Protect: true,
	}, t); err != nil {
		e.log.Error("lua on_projectile_hit error", zap.Error(err))
	}
}

// Close shuts down the Lua VM.
func (e *Engine) Close() {
	e.vm.Close()
}
