package luaeval

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluator_Expressions(t *testing.T) {
	e := New()
	assert.Equal(t, "lua", e.Language())

	tests := []struct {
		name string
		code string
		vars map[string]any
		want any
	}{
		{name: "arithmetic", code: "1 + 1", want: int64(2)},
		{name: "float", code: "7 / 2", want: 3.5},
		{name: "string", code: `"ab" .. "cd"`, want: "abcd"},
		{name: "bool", code: "1 < 2", want: true},
		{name: "nil", code: "nil", want: nil},
		{name: "global variable", code: "user_id * 2", vars: map[string]any{"user_id": 21}, want: int64(42)},
		{name: "vars table", code: `vars["result_user-create"].id`, vars: map[string]any{"result_user-create": map[string]any{"id": "u1"}}, want: "u1"},
		{name: "array", code: "{1, 2, 3}", want: []any{int64(1), int64(2), int64(3)}},
		{name: "map", code: "{name = 'x', n = 1}", want: map[string]any{"name": "x", "n": int64(1)}},
		{name: "string library", code: "string.upper('ops')", want: "OPS"},
		{name: "math library", code: "math.max(3, 9)", want: int64(9)},
		{name: "length of slice", code: "#items", vars: map[string]any{"items": []string{"a", "b"}}, want: int64(2)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := e.Eval(tt.code, tt.vars)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEvaluator_Statements(t *testing.T) {
	e := New()

	got, err := e.Eval("local x = 1", nil)
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = e.Eval("local total = 0 for i = 1, 4 do total = total + i end return total", nil)
	require.NoError(t, err)
	assert.Equal(t, int64(10), got)
}

func TestEvaluator_Errors(t *testing.T) {
	e := New()

	_, err := e.Eval("local = =", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "syntax error")

	_, err = e.Eval("error('boom')", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
}

func TestEvaluator_Sandboxed(t *testing.T) {
	e := New()
	for _, code := range []string{
		"os.exit(1)",
		"io.open('/etc/passwd')",
		"dofile('/etc/passwd')",
		"load('return 1')()",
		"require('os')",
		"setmetatable({}, {})",
	} {
		t.Run(code, func(t *testing.T) {
			_, err := e.Eval(code, nil)
			assert.Error(t, err)
		})
	}
}

func TestEvaluator_Timeout(t *testing.T) {
	e := &Evaluator{Timeout: 50 * time.Millisecond}

	_, err := e.Eval("while true do end", nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrTimeout))
}

func TestEvaluator_FreshStatePerCall(t *testing.T) {
	e := New()

	_, err := e.Eval("leaked = 5", nil)
	require.NoError(t, err)

	got, err := e.Eval("leaked", nil)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestEvaluator_SelfReferencingTable(t *testing.T) {
	got, err := New().Eval("local t = {} ; t.self = t ; return t", nil)

	require.NoError(t, err)
	assert.Equal(t, map[string]any{"self": CyclePlaceholder}, got)
}

func TestEvaluator_SharedTableIsNotACycle(t *testing.T) {
	got, err := New().Eval("local s = {1} return {a = s, b = s}", nil)

	require.NoError(t, err)
	assert.Equal(t, map[string]any{"a": []any{int64(1)}, "b": []any{int64(1)}}, got)
}

func TestEvaluator_DeepTableIsCut(t *testing.T) {
	got, err := New().Eval("local t = {} local cur = t for i = 1, 40 do cur.next = {} cur = cur.next end return t", nil)
	require.NoError(t, err)

	v := got
	for i := 0; i < MaxDepth; i++ {
		m, ok := v.(map[string]any)
		require.True(t, ok, "level %d", i)
		v = m["next"]
	}
	assert.Equal(t, MaxDepthPlaceholder, v)
}

func TestEvaluator_SelfReferencingVariable(t *testing.T) {
	loop := map[string]any{"name": "loop"}
	loop["self"] = loop
	list := []any{"head", nil}
	list[1] = list
	vars := map[string]any{"loop": loop, "list": list}

	got, err := New().Eval("loop.name", vars)
	require.NoError(t, err)
	assert.Equal(t, "loop", got)

	got, err = New().Eval("loop.self", vars)
	require.NoError(t, err)
	assert.Equal(t, CyclePlaceholder, got)

	got, err = New().Eval("list[2]", vars)
	require.NoError(t, err)
	assert.Equal(t, CyclePlaceholder, got)
}

func TestIsIdentifier(t *testing.T) {
	assert.True(t, isIdentifier("result_user_create"))
	assert.True(t, isIdentifier("_x1"))
	assert.False(t, isIdentifier("1x"))
	assert.False(t, isIdentifier("user-create"))
	assert.False(t, isIdentifier("end"))
	assert.False(t, isIdentifier(""))
}
