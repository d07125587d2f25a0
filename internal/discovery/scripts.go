package discovery

import (
	"strings"
	"sync"

	"opshell/pkg/optypes"
)

// ScriptIndex is the flattened, cached list of every script of every category.
// It is built on first use and never invalidated; rebuild it together with the
// CategoryRegistry if the categories ever change.
type ScriptIndex struct {
	categories *CategoryRegistry

	mu      sync.Mutex
	built   bool
	scripts []optypes.Script
}

// NewScriptIndex creates an index over categories.
func NewScriptIndex(categories *CategoryRegistry) *ScriptIndex {
	return &ScriptIndex{categories: categories}
}

// Scripts returns every indexed script in category iteration order.
func (x *ScriptIndex) Scripts() []optypes.Script {
	x.mu.Lock()
	defer x.mu.Unlock()

	if !x.built {
		for _, e := range x.categories.All() {
			x.scripts = append(x.scripts, e.Category.Scripts()...)
		}
		x.built = true
	}

	out := make([]optypes.Script, len(x.scripts))
	copy(out, x.scripts)
	return out
}

// Search returns the scripts whose name contains query, case-sensitively.
// Only names are matched; an empty query matches everything.
func (x *ScriptIndex) Search(query string) []optypes.Script {
	var out []optypes.Script
	for _, s := range x.Scripts() {
		if strings.Contains(s.Name(), query) {
			out = append(out, s)
		}
	}
	return out
}

// FindByID returns the first script whose name equals id.
// Duplicate names across categories resolve to the first one indexed.
func (x *ScriptIndex) FindByID(id string) (optypes.Script, bool) {
	for _, s := range x.Scripts() {
		if s.Name() == id {
			return s, true
		}
	}
	return nil, false
}
