// LuaEvaluator adapts the teacher's embedded-Lua evaluator from
// compile-time constant folding to a runtime expression evaluator over
// one recorded cycle: each call binds that cycle's pc/next_pc/mp/
// next_mp/mv/next_mv/clk as Lua globals, so the REPL's eval command can
// test an expression like "mp == 30 and mv == 0" without a bespoke
// grammar. Debugger does not use it; its breakpoints match pc only.
package debug

import (
	"fmt"

	lua "github.com/yuin/gopher-lua"

	"github.com/oisee/bf-zkvm/pkg/events"
)

type LuaEvaluator struct {
	L *lua.LState
}

func NewLuaEvaluator() *LuaEvaluator {
	return &LuaEvaluator{L: lua.NewState()}
}

func (e *LuaEvaluator) Close() { e.L.Close() }

// bindEvent exposes one cycle's state as Lua globals.
func (e *LuaEvaluator) bindEvent(ev events.CpuEvent) {
	e.L.SetGlobal("pc", lua.LNumber(ev.Pc))
	e.L.SetGlobal("next_pc", lua.LNumber(ev.NextPc))
	e.L.SetGlobal("mp", lua.LNumber(ev.Mp))
	e.L.SetGlobal("next_mp", lua.LNumber(ev.NextMp))
	e.L.SetGlobal("mv", lua.LNumber(ev.Mv))
	e.L.SetGlobal("next_mv", lua.LNumber(ev.NextMv))
	e.L.SetGlobal("clk", lua.LNumber(ev.Clk))
}

// EvaluateCondition binds ev's state and evaluates a Lua expression
// against it, returning the result's Lua truthiness.
func (e *LuaEvaluator) EvaluateCondition(expr string, ev events.CpuEvent) (bool, error) {
	e.bindEvent(ev)
	code := fmt.Sprintf("return (%s)", expr)
	if err := e.L.DoString(code); err != nil {
		return false, fmt.Errorf("debug: evaluating %q: %w", expr, err)
	}
	result := e.L.Get(-1)
	e.L.Pop(1)
	return lua.LVAsBool(result), nil
}
