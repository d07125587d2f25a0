// Package discovery turns registered plugin types into the cached, queryable
// collections the shell works with: the category registry, the script index
// and the system check registry.
//
// Discovery never loads code. A Source lists candidate short type names, and
// each name is resolved against the compile-time plugin registry. Anything that
// cannot be resolved is skipped, never fatal.
package discovery

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"gopkg.in/yaml.v3"

	"opshell/internal/plugins"
)

// Source lists the short type names that discovery should try to resolve.
type Source interface {
	Names() ([]string, error)
}

// RegistrySource offers every factory registered under a namespace.
type RegistrySource struct {
	Plugins   *plugins.Registry
	Namespace string
}

// Names returns the registered short names in registration order.
func (s RegistrySource) Names() ([]string, error) {
	if s.Plugins == nil {
		return nil, nil
	}
	return s.Plugins.Names(s.Namespace), nil
}

// DefaultExtensions are the plugin file extensions DirectorySource accepts.
var DefaultExtensions = []string{".go"}

// DirectorySource derives type names from the plugin files in a directory:
// "UsersCategory.go" and "users_category.go" both yield "UsersCategory".
// Only file names are read, never their content.
type DirectorySource struct {
	Path       string
	Extensions []string
}

// Names scans the directory. A missing directory yields no names and no error.
func (s DirectorySource) Names() ([]string, error) {
	if s.Path == "" {
		return nil, nil
	}

	entries, err := os.ReadDir(s.Path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to scan plugin directory %s: %w", s.Path, err)
	}

	exts := s.Extensions
	if len(exts) == 0 {
		exts = DefaultExtensions
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		ext := filepath.Ext(entry.Name())
		if !hasExtension(exts, ext) {
			continue
		}
		base := strings.TrimSuffix(entry.Name(), ext)
		if strings.HasSuffix(base, "_test") {
			continue
		}
		names = append(names, TypeNameFromFile(base))
	}
	return names, nil
}

func hasExtension(exts []string, ext string) bool {
	for _, e := range exts {
		if strings.EqualFold(e, ext) {
			return true
		}
	}
	return false
}

// TypeNameFromFile converts a file base name to the Go type name convention:
// segments separated by '_' or '-' are capitalised and joined.
func TypeNameFromFile(base string) string {
	parts := strings.FieldsFunc(base, func(r rune) bool {
		return r == '_' || r == '-'
	})
	var b strings.Builder
	for _, p := range parts {
		runes := []rune(p)
		runes[0] = unicode.ToUpper(runes[0])
		b.WriteString(string(runes))
	}
	return b.String()
}

// Manifest is the YAML document naming the plugin types to load.
//
//	categories:
//	  - UsersCategory
//	checks:
//	  - DiskSpaceCheck
type Manifest struct {
	Categories []string `yaml:"categories"`
	Checks     []string `yaml:"checks"`
}

// Manifest sections.
const (
	SectionCategories = "categories"
	SectionChecks     = "checks"
)

// ManifestSource reads one section of a YAML manifest file.
type ManifestSource struct {
	Path    string
	Section string
}

// Names returns the names listed in the section. A missing file yields no names.
func (s ManifestSource) Names() ([]string, error) {
	if s.Path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(s.Path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read plugin manifest %s: %w", s.Path, err)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse plugin manifest %s: %w", s.Path, err)
	}

	switch s.Section {
	case SectionCategories:
		return m.Categories, nil
	case SectionChecks:
		return m.Checks, nil
	default:
		return nil, fmt.Errorf("unknown manifest section %q", s.Section)
	}
}

// instantiate resolves namespace.name and calls its factory.
// A panicking constructor counts as unresolvable.
func instantiate(registry *plugins.Registry, qualified string) (value any, ok bool) {
	if registry == nil {
		return nil, false
	}
	factory, found := registry.Resolve(qualified)
	if !found {
		return nil, false
	}
	defer func() {
		if r := recover(); r != nil {
			value, ok = nil, false
		}
	}()
	value = factory()
	return value, value != nil
}
