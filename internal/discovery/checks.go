package discovery

import (
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/log"

	"opshell/internal/logger"
	"opshell/internal/plugins"
	"opshell/pkg/optypes"
)

// CheckConfig wires a CheckRegistry to configuration and discovery.
type CheckConfig struct {
	Plugins *plugins.Registry
	// Preload lists check identifiers from configuration. Qualified names are
	// resolved as given; bare names are qualified under Namespace.
	Preload []string
	// Discover enables the Source scan after the preload.
	Discover  bool
	Namespace string
	Source    Source
}

// CheckRow is one flattened result row of a status report.
type CheckRow struct {
	Check  string
	Result optypes.CheckResult
}

// CheckRegistry holds system checks, loading configured and discovered ones on first use.
type CheckRegistry struct {
	mu          sync.Mutex
	initialized bool
	checks      []optypes.SystemCheck

	cfg    CheckConfig
	logger *log.Logger
}

// NewCheckRegistry creates a registry that loads lazily from cfg.
func NewCheckRegistry(cfg CheckConfig) *CheckRegistry {
	return &CheckRegistry{
		cfg:    cfg,
		logger: logger.NewStyledLogger("Checks"),
	}
}

// Register appends a check. Duplicates are kept.
func (r *CheckRegistry) Register(check optypes.SystemCheck) {
	if check == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.checks = append(r.checks, check)
}

// Checks returns every check: manual registrations, configured ones, then discovered ones.
func (r *CheckRegistry) Checks() []optypes.SystemCheck {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.initialized {
		r.initialized = true
		r.loadFromConfig()
		if r.cfg.Discover {
			r.discover()
		}
	}

	out := make([]optypes.SystemCheck, len(r.checks))
	copy(out, r.checks)
	return out
}

// RunAll runs every check and flattens the rows in check order.
func (r *CheckRegistry) RunAll() []CheckRow {
	var rows []CheckRow
	for _, check := range r.Checks() {
		for _, result := range runCheck(check) {
			rows = append(rows, CheckRow{Check: check.Label(), Result: result})
		}
	}
	return rows
}

func runCheck(check optypes.SystemCheck) (results []optypes.CheckResult) {
	defer func() {
		if rec := recover(); rec != nil {
			results = []optypes.CheckResult{{
				Successful: false,
				Message:    fmt.Sprintf("%s: FAILED - %v", check.Label(), rec),
			}}
		}
	}()
	return check.Run()
}

func (r *CheckRegistry) loadFromConfig() {
	for _, id := range r.cfg.Preload {
		qualified := id
		if !strings.Contains(id, ".") && r.cfg.Namespace != "" {
			qualified = plugins.Qualify(r.cfg.Namespace, id)
		}
		r.tryRegister(qualified, "config")
	}
}

func (r *CheckRegistry) discover() {
	if r.cfg.Source == nil {
		return
	}
	names, err := r.cfg.Source.Names()
	if err != nil {
		r.logger.Warn("System check discovery failed", "error", err)
		return
	}
	for _, name := range names {
		r.tryRegister(plugins.Qualify(r.cfg.Namespace, name), "discovery")
	}
}

func (r *CheckRegistry) tryRegister(qualified string, origin string) {
	value, ok := instantiate(r.cfg.Plugins, qualified)
	if !ok {
		r.logger.Warn("Skipping unresolvable system check", "type", qualified, "origin", origin)
		return
	}
	check, ok := value.(optypes.SystemCheck)
	if !ok {
		logger.DiscoveryStep("check", qualified, "not a system check")
		return
	}
	if !shellCompatible(r.logger, qualified, check) {
		return
	}
	r.checks = append(r.checks, check)
	logger.DiscoveryStep("check", qualified, origin)
}
