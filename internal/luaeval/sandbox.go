// Package luaeval evaluates operator-entered Lua snippets in a restricted
// interpreter with the session variables in scope.
package luaeval

import (
	"context"
	"errors"
	"fmt"
	"time"

	lua "github.com/yuin/gopher-lua"
)

// DefaultTimeout bounds a single evaluation.
const DefaultTimeout = 5 * time.Second

// VarsTable is the global table holding every session variable by name,
// including names that are not valid Lua identifiers.
const VarsTable = "vars"

// ErrTimeout is returned when an evaluation exceeds its deadline.
var ErrTimeout = errors.New("evaluation timed out")

// Evaluator runs each snippet in a fresh sandboxed Lua state.
type Evaluator struct {
	Timeout time.Duration
}

// New creates an evaluator with DefaultTimeout.
func New() *Evaluator {
	return &Evaluator{Timeout: DefaultTimeout}
}

// Language names the evaluated language.
func (e *Evaluator) Language() string { return "lua" }

// Eval runs code with variables exposed as globals and through the vars table.
// Expressions return their value; statements return nil unless they use
// an explicit return.
func (e *Evaluator) Eval(code string, variables map[string]any) (any, error) {
	L := newSandbox()
	defer L.Close()

	vars := L.NewTable()
	for name, value := range variables {
		lv := goToLua(L, value)
		vars.RawSetString(name, lv)
		if isIdentifier(name) {
			L.SetGlobal(name, lv)
		}
	}
	L.SetGlobal(VarsTable, vars)

	timeout := e.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	L.SetContext(ctx)

	// Try the snippet as an expression first so "1 + 1" yields 2.
	fn, err := L.LoadString("return " + code)
	if err != nil {
		fn, err = L.LoadString(code)
		if err != nil {
			return nil, fmt.Errorf("syntax error: %w", err)
		}
	}

	top := L.GetTop()
	L.Push(fn)
	if err := L.PCall(0, lua.MultRet, nil); err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w after %v", ErrTimeout, timeout)
		}
		return nil, err
	}

	if L.GetTop() == top {
		return nil, nil
	}
	return luaToGo(L.Get(top + 1)), nil
}

// newSandbox opens only the base, table, string and math libraries and removes
// everything that can reach the file system or escape the sandbox.
func newSandbox() *lua.LState {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})

	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)

	for _, name := range []string{
		"dofile", "loadfile", "load", "loadstring", "require", "module",
		"rawequal", "rawget", "rawset", "getmetatable", "setmetatable",
		"collectgarbage", "setfenv", "getfenv",
	} {
		L.SetGlobal(name, lua.LNil)
	}
	return L
}

func isIdentifier(name string) bool {
	if name == "" || luaKeywords[name] {
		return false
	}
	for i, r := range name {
		switch {
		case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case i > 0 && r >= '0' && r <= '9':
		default:
			return false
		}
	}
	return true
}

var luaKeywords = map[string]bool{
	"and": true, "break": true, "do": true, "else": true, "elseif": true,
	"end": true, "false": true, "for": true, "function": true, "goto": true,
	"if": true, "in": true, "local": true, "nil": true, "not": true,
	"or": true, "repeat": true, "return": true, "then": true, "true": true,
	"until": true, "while": true,
}
