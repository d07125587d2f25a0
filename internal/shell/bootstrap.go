package shell

import (
	"fmt"

	"opshell/internal/config"
	"opshell/internal/discovery"
	"opshell/internal/plugins"
)

// Registries bundles the discovery collections built from configuration.
type Registries struct {
	Categories *discovery.CategoryRegistry
	Scripts    *discovery.ScriptIndex
	Checks     *discovery.CheckRegistry
}

// BuildRegistries wires the category, script and check registries to the
// plugin registry and the discovery source selected by discovery.source.
func BuildRegistries(cfg *config.Config, reg *plugins.Registry) (*Registries, error) {
	catNS := cfg.GetString(config.KeyCategoriesNamespace)
	checkNS := cfg.GetString(config.KeyChecksNamespace)

	var catSource, checkSource discovery.Source
	switch kind := cfg.GetString(config.KeyDiscoverySource); kind {
	case config.SourceRegistry, "":
		catSource = discovery.RegistrySource{Plugins: reg, Namespace: catNS}
		checkSource = discovery.RegistrySource{Plugins: reg, Namespace: checkNS}
	case config.SourceDirectory:
		catSource = discovery.DirectorySource{Path: cfg.GetString(config.KeyCategoriesPath)}
		checkSource = discovery.DirectorySource{Path: cfg.GetString(config.KeyChecksPath)}
	case config.SourceManifest:
		manifest := cfg.GetString(config.KeyManifest)
		catSource = discovery.ManifestSource{Path: manifest, Section: discovery.SectionCategories}
		checkSource = discovery.ManifestSource{Path: manifest, Section: discovery.SectionChecks}
	default:
		return nil, fmt.Errorf("unknown discovery source %q", kind)
	}

	categories := discovery.NewCategoryRegistry(discovery.CategoryConfig{
		Plugins:   reg,
		Namespace: catNS,
		Source:    catSource,
	})
	checks := discovery.NewCheckRegistry(discovery.CheckConfig{
		Plugins:   reg,
		Preload:   cfg.SystemChecks(),
		Discover:  cfg.GetBool(config.KeySystemChecksDiscovery),
		Namespace: checkNS,
		Source:    checkSource,
	})

	return &Registries{
		Categories: categories,
		Scripts:    discovery.NewScriptIndex(categories),
		Checks:     checks,
	}, nil
}
