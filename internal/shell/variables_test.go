package shell

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"opshell/internal/testutils"
)

func TestParseValue(t *testing.T) {
	tests := []struct {
		raw  string
		want any
	}{
		{"hello", "hello"},
		{"42", float64(42)},
		{"true", true},
		{"null", nil},
		{`"quoted"`, "quoted"},
		{`{"a": 1}`, map[string]any{"a": float64(1)}},
		{`[1, "two"]`, []any{float64(1), "two"}},
		{"", ""},
		{"{broken", "{broken"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseValue(tt.raw), tt.raw)
	}
}

func TestVariableManager_Empty(t *testing.T) {
	f := newFixture(DefaultSettings(), nil)

	require.NoError(t, f.ctrl.VariableManager())

	assert.True(t, f.out.Contains("info", "No variables stored in this session."))
	assert.Empty(t, f.prompter.Calls)
	assert.Equal(t, 1, f.out.Pauses)
}

func TestVariableManager_List(t *testing.T) {
	f := newFixture(DefaultSettings(), nil, testutils.Choose(VarList))
	f.ctrl.Session().SetVariable("region", "eu-west")
	f.ctrl.Session().SetVariable("ids", []any{1, 2, 3})

	require.NoError(t, f.ctrl.VariableManager())

	tables := f.out.OfKind("table")
	require.Len(t, tables, 1)
	assert.Equal(t, [][]string{
		{"Variable", "Type", "Preview"},
		{"$region", "string", `"eu-west"`},
		{"$ids", "list", "[3 items]"},
	}, tables[0].Rows)
}

func TestVariableManager_View(t *testing.T) {
	f := newFixture(DefaultSettings(), nil,
		testutils.Choose(VarView),
		testutils.Find("reg", "region"),
	)
	f.ctrl.Session().SetVariable("region", "eu-west")
	f.ctrl.Session().SetVariable("count", 3)

	require.NoError(t, f.ctrl.VariableManager())

	search := f.prompter.CallsOf(testutils.CallSearch)
	require.Len(t, search, 1)
	require.Len(t, search[0].Options, 1)
	assert.Equal(t, "$region (string)", search[0].Options[0].Display)
	assert.True(t, f.out.Contains("line", "Variable: $region"))
	results := f.out.OfKind("result")
	require.Len(t, results, 1)
	assert.Equal(t, "eu-west", results[0].Data)
}

func TestVariableManager_Set(t *testing.T) {
	f := newFixture(DefaultSettings(), nil,
		testutils.Choose(VarSet),
		testutils.Choose("$limits"),
		testutils.Choose(`{"max": 10}`),
	)
	f.ctrl.Session().SetVariable("existing", 1)

	require.NoError(t, f.ctrl.VariableManager())

	value, ok := f.ctrl.Session().Variable("limits")
	require.True(t, ok)
	assert.Equal(t, map[string]any{"max": float64(10)}, value)
	assert.True(t, f.out.Contains("success", "✅ Variable $limits set successfully!"))
}

func TestVariableManager_SetEmptyName(t *testing.T) {
	f := newFixture(DefaultSettings(), nil, testutils.Choose(VarSet), testutils.Choose("  "))
	f.ctrl.Session().SetVariable("existing", 1)

	require.NoError(t, f.ctrl.VariableManager())

	assert.True(t, f.out.Contains("warning", "Variable name cannot be empty."))
	assert.Equal(t, 1, f.ctrl.Session().VariableCount())
}

func TestVariableManager_Delete(t *testing.T) {
	t.Run("confirmed", func(t *testing.T) {
		f := newFixture(DefaultSettings(), nil,
			testutils.Choose(VarDelete),
			testutils.Find("", "tmp"),
			testutils.Yes(),
		)
		f.ctrl.Session().SetVariable("tmp", 1)
		f.ctrl.Session().SetVariable("keep", 2)

		require.NoError(t, f.ctrl.VariableManager())

		assert.False(t, f.ctrl.Session().HasVariable("tmp"))
		assert.True(t, f.ctrl.Session().HasVariable("keep"))
		assert.True(t, f.out.Contains("success", "✅ Variable $tmp deleted!"))
	})

	t.Run("declined", func(t *testing.T) {
		f := newFixture(DefaultSettings(), nil,
			testutils.Choose(VarDelete),
			testutils.Find("tmp", "tmp"),
			testutils.No(),
		)
		f.ctrl.Session().SetVariable("tmp", 1)

		require.NoError(t, f.ctrl.VariableManager())

		assert.True(t, f.ctrl.Session().HasVariable("tmp"))
		assert.Equal(t, "Are you sure you want to delete $tmp?", f.prompter.CallsOf(testutils.CallConfirm)[0].Label)
	})
}

func TestVariableManager_Clear(t *testing.T) {
	f := newFixture(DefaultSettings(), nil, testutils.Choose(VarClear), testutils.Yes())
	f.ctrl.Session().SetVariable("a", 1)
	f.ctrl.Session().SetVariable("b", 2)

	require.NoError(t, f.ctrl.VariableManager())

	assert.Equal(t, 0, f.ctrl.Session().VariableCount())
	assert.True(t, f.out.Contains("success", "✅ All variables cleared!"))
}

func TestVariableManager_Back(t *testing.T) {
	f := newFixture(DefaultSettings(), nil, testutils.Choose(ActionBack))
	f.ctrl.Session().SetVariable("a", 1)

	require.NoError(t, f.ctrl.VariableManager())

	assert.Equal(t, 1, f.ctrl.Session().VariableCount())
	assert.Equal(t, 0, f.out.Pauses)
}

func TestVariableManager_InputEnds(t *testing.T) {
	f := newFixture(DefaultSettings(), nil)
	f.ctrl.Session().SetVariable("a", 1)

	assert.Error(t, f.ctrl.VariableManager())
}
