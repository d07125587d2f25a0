// Package plugins provides the compile-time plugin registry and the base kits
// plugin authors embed in their categories, scripts and system checks.
//
// Plugin packages register constructors from init(); discovery later resolves
// type names against this registry instead of loading code from disk.
package plugins

import (
	"fmt"
	"strings"
	"sync"
)

// Factory constructs one fresh plugin instance.
type Factory func() any

// Registry maps fully qualified type names ("namespace.ShortName") to factories.
// It preserves registration order so discovery is deterministic.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
	order     []string
}

// NewRegistry creates an empty plugin registry.
func NewRegistry() *Registry {
	return &Registry{
		factories: make(map[string]Factory),
	}
}

// Register adds a factory under namespace.name. Returns an error if either part
// is empty or the qualified name is already registered.
func (r *Registry) Register(namespace, name string, factory Factory) error {
	if namespace == "" || name == "" {
		return fmt.Errorf("plugin namespace and name cannot be empty")
	}
	if factory == nil {
		return fmt.Errorf("plugin %s.%s has no factory", namespace, name)
	}

	qualified := Qualify(namespace, name)

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.factories[qualified]; exists {
		return fmt.Errorf("plugin %s already registered", qualified)
	}
	r.factories[qualified] = factory
	r.order = append(r.order, qualified)
	return nil
}

// MustRegister is Register for init() functions; it panics on error.
func (r *Registry) MustRegister(namespace, name string, factory Factory) {
	if err := r.Register(namespace, name, factory); err != nil {
		panic(fmt.Sprintf("failed to register plugin: %v", err))
	}
}

// Resolve returns the factory for a qualified type name.
func (r *Registry) Resolve(qualified string) (Factory, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.factories[qualified]
	return f, ok
}

// Names returns the short names registered under namespace, in registration order.
func (r *Registry) Names(namespace string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	prefix := namespace + "."
	var names []string
	for _, qualified := range r.order {
		if strings.HasPrefix(qualified, prefix) {
			names = append(names, strings.TrimPrefix(qualified, prefix))
		}
	}
	return names
}

// Len returns the number of registered factories.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order)
}

// Qualify joins a namespace and a short type name.
func Qualify(namespace, name string) string {
	return namespace + "." + name
}

// ShortName returns the part of a qualified name after the last dot.
func ShortName(qualified string) string {
	if i := strings.LastIndex(qualified, "."); i >= 0 {
		return qualified[i+1:]
	}
	return qualified
}

// Default namespaces used by the built-in plugin packages and the default config.
const (
	CategoriesNamespace = "app/categories"
	ChecksNamespace     = "app/checks"
)

// GlobalRegistry is the process-wide plugin registry.
// Plugin packages register themselves with this instance during initialization.
var GlobalRegistry = NewRegistry()
