package plugins

import (
	"strings"
	"sync"

	"opshell/pkg/optypes"
)

// Defaults applied by NewBaseCategory when the metadata leaves them empty.
const (
	DefaultIcon      = "📁"
	DefaultColor     = "blue"
	DefaultSortOrder = 100
)

// CategoryMeta is the static description of a category.
// The zero value of Disabled means the category is enabled.
type CategoryMeta struct {
	Name        string
	Description string
	Icon        string
	Color       string
	SortOrder   int
	Disabled    bool
	// Requires is an optional shell version constraint checked at discovery.
	Requires string
}

// BaseCategory implements optypes.Category and lazily loads its scripts the
// first time they are requested. Plugin categories embed a *BaseCategory.
type BaseCategory struct {
	meta CategoryMeta
	load func(c *BaseCategory)

	once    sync.Once
	mu      sync.RWMutex
	scripts []optypes.Script
}

// NewBaseCategory creates a category whose scripts are populated by load on first use.
// load may be nil for categories that add scripts eagerly. load runs while the
// first Scripts call holds the category's once guard, so it must only call
// AddScript or AddScripts; calling Scripts or RemoveScript from load deadlocks.
func NewBaseCategory(meta CategoryMeta, load func(c *BaseCategory)) *BaseCategory {
	if meta.Icon == "" {
		meta.Icon = DefaultIcon
	}
	if meta.Color == "" {
		meta.Color = DefaultColor
	}
	return &BaseCategory{meta: meta, load: load}
}

// Name returns the display name.
func (c *BaseCategory) Name() string { return c.meta.Name }

// Description returns the one-line description shown in category headers.
func (c *BaseCategory) Description() string { return c.meta.Description }

// Icon returns the glyph shown before the name.
func (c *BaseCategory) Icon() string { return c.meta.Icon }

// Color returns the colour tag.
func (c *BaseCategory) Color() string { return c.meta.Color }

// SortOrder returns the ordering weight; lower sorts first.
func (c *BaseCategory) SortOrder() int { return c.meta.SortOrder }

// IsEnabled reports whether the category is shown.
func (c *BaseCategory) IsEnabled() bool { return !c.meta.Disabled }

// RequiresShell returns the shell version constraint, if any.
func (c *BaseCategory) RequiresShell() string { return c.meta.Requires }

// Scripts returns a copy of the owned scripts, loading them on first call.
func (c *BaseCategory) Scripts() []optypes.Script {
	c.once.Do(func() {
		if c.load != nil {
			c.load(c)
		}
	})

	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]optypes.Script, len(c.scripts))
	copy(out, c.scripts)
	return out
}

// AddScript appends a script to the category.
func (c *BaseCategory) AddScript(script optypes.Script) {
	if script == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.scripts = append(c.scripts, script)
}

// AddScripts appends every non-nil script in order.
func (c *BaseCategory) AddScripts(scripts ...optypes.Script) {
	for _, s := range scripts {
		c.AddScript(s)
	}
}

// RemoveScript drops every script with the given name.
func (c *BaseCategory) RemoveScript(name string) {
	c.Scripts()

	c.mu.Lock()
	defer c.mu.Unlock()
	kept := c.scripts[:0]
	for _, s := range c.scripts {
		if s.Name() != name {
			kept = append(kept, s)
		}
	}
	c.scripts = kept
}

// ScriptCount returns the number of scripts.
func (c *BaseCategory) ScriptCount() int {
	return len(c.Scripts())
}

// HasScripts reports whether the category owns at least one script.
func (c *BaseCategory) HasScripts() bool {
	return c.ScriptCount() > 0
}

// ScriptsByTag returns the scripts carrying tag.
func (c *BaseCategory) ScriptsByTag(tag string) []optypes.Script {
	var out []optypes.Script
	for _, s := range c.Scripts() {
		for _, t := range s.Tags() {
			if t == tag {
				out = append(out, s)
				break
			}
		}
	}
	return out
}

// ProductionSafeScripts returns the scripts flagged safe to run in production.
func (c *BaseCategory) ProductionSafeScripts() []optypes.Script {
	var out []optypes.Script
	for _, s := range c.Scripts() {
		if s.IsProductionSafe() {
			out = append(out, s)
		}
	}
	return out
}

// FindScript returns the first script named name.
func (c *BaseCategory) FindScript(name string) (optypes.Script, bool) {
	return FindScript(c.Scripts(), name)
}

// SearchScripts filters by a case-insensitive match on name or description.
func (c *BaseCategory) SearchScripts(query string) []optypes.Script {
	return FilterScripts(c.Scripts(), query)
}

// FindScript returns the first script in scripts whose name equals name exactly.
func FindScript(scripts []optypes.Script, name string) (optypes.Script, bool) {
	for _, s := range scripts {
		if s.Name() == name {
			return s, true
		}
	}
	return nil, false
}

// FilterScripts keeps the scripts whose name or description contains query,
// ignoring case. An empty query keeps everything.
func FilterScripts(scripts []optypes.Script, query string) []optypes.Script {
	q := strings.ToLower(query)
	var out []optypes.Script
	for _, s := range scripts {
		if strings.Contains(strings.ToLower(s.Name()), q) ||
			strings.Contains(strings.ToLower(s.Description()), q) {
			out = append(out, s)
		}
	}
	return out
}
