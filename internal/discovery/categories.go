package discovery

import (
	"sort"
	"sync"

	"github.com/charmbracelet/log"

	"opshell/internal/logger"
	"opshell/internal/plugins"
	"opshell/pkg/optypes"
)

// CategoryEntry pairs a registry key with its category.
type CategoryEntry struct {
	Key      string
	Category optypes.Category
}

// CategoryConfig wires a CategoryRegistry to its plugin source.
type CategoryConfig struct {
	// Plugins resolves qualified type names; nil disables discovery.
	Plugins *plugins.Registry
	// Namespace qualifies the short names produced by Source.
	Namespace string
	// Source lists candidate type names; nil disables discovery.
	Source Source
	// KeyFunc derives keys from short names; nil means DefaultKeyFunc.
	KeyFunc KeyFunc
}

// CategoryRegistry discovers categories once and serves lookups from the snapshot.
// Categories added to the source after the first lookup stay invisible until a
// new registry is created.
type CategoryRegistry struct {
	mu          sync.Mutex
	initialized bool
	entries     []CategoryEntry
	index       map[string]int

	cfg    CategoryConfig
	logger *log.Logger
}

// NewCategoryRegistry creates a registry that discovers lazily from cfg.
func NewCategoryRegistry(cfg CategoryConfig) *CategoryRegistry {
	if cfg.KeyFunc == nil {
		cfg.KeyFunc = DefaultKeyFunc
	}
	return &CategoryRegistry{
		index:  make(map[string]int),
		cfg:    cfg,
		logger: logger.NewStyledLogger("Discovery"),
	}
}

// Register inserts or overwrites the category stored under key.
// An overwritten key keeps its original position. Register never triggers discovery.
func (r *CategoryRegistry) Register(key string, category optypes.Category) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.register(key, category)
}

func (r *CategoryRegistry) register(key string, category optypes.Category) {
	if i, exists := r.index[key]; exists {
		r.entries[i].Category = category
		return
	}
	r.index[key] = len(r.entries)
	r.entries = append(r.entries, CategoryEntry{Key: key, Category: category})
}

// Get returns the category registered under key.
func (r *CategoryRegistry) Get(key string) (optypes.Category, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ensureInitialized()

	i, ok := r.index[key]
	if !ok {
		return nil, false
	}
	return r.entries[i].Category, true
}

// All returns every category in discovery/registration order.
func (r *CategoryRegistry) All() []CategoryEntry {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ensureInitialized()

	out := make([]CategoryEntry, len(r.entries))
	copy(out, r.entries)
	return out
}

// Enabled returns the enabled categories, preserving the order of All.
func (r *CategoryRegistry) Enabled() []CategoryEntry {
	var out []CategoryEntry
	for _, e := range r.All() {
		if e.Category.IsEnabled() {
			out = append(out, e)
		}
	}
	return out
}

// Sorted returns all categories ordered by ascending sort order.
// Ties keep registration order.
func (r *CategoryRegistry) Sorted() []CategoryEntry {
	out := r.All()
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Category.SortOrder() < out[j].Category.SortOrder()
	})
	return out
}

// ByScript returns the first category owning a script named scriptName.
func (r *CategoryRegistry) ByScript(scriptName string) (optypes.Category, bool) {
	for _, e := range r.All() {
		for _, s := range e.Category.Scripts() {
			if s.Name() == scriptName {
				return e.Category, true
			}
		}
	}
	return nil, false
}

// KeyOf returns the key a category instance is registered under.
func (r *CategoryRegistry) KeyOf(category optypes.Category) (string, bool) {
	for _, e := range r.All() {
		if e.Category == category {
			return e.Key, true
		}
	}
	return "", false
}

// ensureInitialized runs discovery exactly once. Callers hold r.mu.
func (r *CategoryRegistry) ensureInitialized() {
	if r.initialized {
		return
	}
	r.initialized = true
	r.discover()
}

func (r *CategoryRegistry) discover() {
	if r.cfg.Source == nil || r.cfg.Plugins == nil {
		return
	}

	names, err := r.cfg.Source.Names()
	if err != nil {
		// Discovery failures leave the registry with whatever was registered by hand.
		r.logger.Warn("Category discovery failed", "error", err)
		return
	}

	for _, name := range names {
		qualified := plugins.Qualify(r.cfg.Namespace, name)

		value, ok := instantiate(r.cfg.Plugins, qualified)
		if !ok {
			logger.DiscoveryStep("category", qualified, "unresolvable")
			continue
		}
		category, ok := value.(optypes.Category)
		if !ok {
			logger.DiscoveryStep("category", qualified, "not a category")
			continue
		}
		if !shellCompatible(r.logger, qualified, category) {
			continue
		}

		key := r.cfg.KeyFunc(name)
		r.register(key, category)
		r.logger.Debug("Registered category", "category", key, "type", qualified)
	}
}
