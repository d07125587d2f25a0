package discovery

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"opshell/internal/testutils"
	"opshell/pkg/optypes"
)

func names(scripts []optypes.Script) []string {
	out := make([]string, 0, len(scripts))
	for _, s := range scripts {
		out = append(out, s.Name())
	}
	return out
}

func newIndex() *ScriptIndex {
	r := newManualRegistry()
	r.Register("users", testutils.NewFakeCategory("Users", 1,
		testutils.NewFakeScript("user-create", "users", false),
		testutils.NewFakeScript("user-delete", "users", false),
	))
	r.Register("cache", testutils.NewFakeCategory("Cache", 2,
		testutils.NewFakeScript("cache-clear", "cache", true),
	))
	return NewScriptIndex(r)
}

func TestScriptIndex_Search(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{name: "prefix", query: "user", want: []string{"user-create", "user-delete"}},
		{name: "infix", query: "clear", want: []string{"cache-clear"}},
		{name: "empty query returns all", query: "", want: []string{"user-create", "user-delete", "cache-clear"}},
		{name: "case sensitive", query: "USER", want: []string{}},
		{name: "description not searched", query: "Fake", want: []string{}},
		{name: "no match", query: "zzz", want: []string{}},
	}

	idx := newIndex()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := idx.Search(tt.query)
			assert.Equal(t, tt.want, names(got))
			for _, s := range got {
				assert.Contains(t, s.Name(), tt.query)
			}
		})
	}
}

func TestScriptIndex_FindByID(t *testing.T) {
	idx := newIndex()

	s, ok := idx.FindByID("cache-clear")
	require.True(t, ok)
	assert.Equal(t, "cache-clear", s.Name())

	_, ok = idx.FindByID("cache")
	assert.False(t, ok, "ids match exactly")

	_, ok = idx.FindByID("missing")
	assert.False(t, ok)
}

func TestScriptIndex_FindByIDDuplicateFirstWins(t *testing.T) {
	first := testutils.NewFakeScript("dup", "a", true)
	second := testutils.NewFakeScript("dup", "b", true)

	r := newManualRegistry()
	r.Register("a", testutils.NewFakeCategory("A", 9, first))
	r.Register("b", testutils.NewFakeCategory("B", 1, second))

	got, ok := NewScriptIndex(r).FindByID("dup")
	require.True(t, ok)
	assert.Same(t, first, got)
}

func TestScriptIndex_CachedAfterFirstUse(t *testing.T) {
	r := newManualRegistry()
	r.Register("users", testutils.NewFakeCategory("Users", 1, testutils.NewFakeScript("user-create", "users", false)))
	idx := NewScriptIndex(r)

	require.Len(t, idx.Scripts(), 1)

	r.Register("late", testutils.NewFakeCategory("Late", 1, testutils.NewFakeScript("late-script", "late", true)))

	assert.Len(t, idx.Scripts(), 1)
	_, ok := idx.FindByID("late-script")
	assert.False(t, ok)
	assert.Len(t, NewScriptIndex(r).Scripts(), 2)
}
