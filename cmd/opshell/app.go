package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"opshell/internal/config"
	"opshell/internal/discovery"
	"opshell/internal/logger"
	"opshell/internal/luaeval"
	"opshell/internal/output"
	"opshell/internal/plugins"
	"opshell/internal/prompt"
	"opshell/internal/shell"
	"opshell/internal/version"
)

// Config keys the logging flags are bound to, so they can also come from
// opshell.yaml or OPSHELL_LOG_LEVEL / OPSHELL_LOG_FILE.
const (
	keyLogLevel = "log.level"
	keyLogFile  = "log.file"
)

// app carries the parsed flags and the configuration loaded from them.
type app struct {
	configFile string
	envFile    string
	logLevel   string
	logFile    string
	category   string
	script     string
	safeMode   bool
	plain      bool

	// input feeds the prompter; tests replace it with a file of answers.
	input   *os.File
	plugins *plugins.Registry
	cfg     *config.Config
}

func newApp() *app {
	return &app{
		input:   os.Stdin,
		plugins: plugins.GlobalRegistry,
	}
}

// setup loads configuration and configures logging before any command runs.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(config.Options{File: a.configFile, DotEnv: a.envFile})
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if err := cfg.Viper().BindPFlag(keyLogLevel, flags.Lookup("log-level")); err != nil {
		return fmt.Errorf("error binding log-level flag: %w", err)
	}
	if err := cfg.Viper().BindPFlag(keyLogFile, flags.Lookup("log-file")); err != nil {
		return fmt.Errorf("error binding log-file flag: %w", err)
	}

	if err := logger.Configure(cfg.GetString(keyLogLevel), cfg.GetString(keyLogFile)); err != nil {
		return fmt.Errorf("error configuring logger: %w", err)
	}

	config.SetCurrent(cfg)
	a.cfg = cfg
	logger.Debug("Configuration loaded", "environment", cfg.Environment(), "source", cfg.GetString(config.KeyDiscoverySource))
	return nil
}

func (a *app) console(cmd *cobra.Command, extra ...output.Option) *output.Console {
	opts := []output.Option{output.WithWriter(cmd.OutOrStdout())}
	if a.plain {
		opts = append(opts, output.PlainText())
	}
	return output.NewConsole(append(opts, extra...)...)
}

func (a *app) settings() shell.Settings {
	s := shell.SettingsFromConfig(a.cfg)
	s.SafeModeOverride = a.safeMode
	return s
}

func (a *app) registries() (*shell.Registries, error) {
	return shell.BuildRegistries(a.cfg, a.plugins)
}

func (a *app) controller(cmd *cobra.Command) (*shell.Controller, error) {
	regs, err := a.registries()
	if err != nil {
		return nil, err
	}

	out := cmd.OutOrStdout()
	p := prompt.New(a.input, out)
	return shell.New(shell.Deps{
		Categories: regs.Categories,
		Scripts:    regs.Scripts,
		Checks:     regs.Checks,
		Prompter:   p,
		Renderer:   a.console(cmd, output.WithPauseFunc(p.Wait)),
		Evaluator:  luaeval.New(),
	}, a.settings()), nil
}

func (a *app) runShell(cmd *cobra.Command, _ []string) error {
	ctrl, err := a.controller(cmd)
	if err != nil {
		return err
	}

	if a.script != "" {
		return ctrl.RunScript(a.script)
	}

	logger.Info("Starting opshell", "version", version.String(), "environment", a.cfg.Environment())
	ctrl.StartIn(a.category)
	ctrl.Run()
	return nil
}

func (a *app) runScript(cmd *cobra.Command, args []string) error {
	ctrl, err := a.controller(cmd)
	if err != nil {
		return err
	}
	return ctrl.RunScript(args[0])
}

func (a *app) runList(cmd *cobra.Command, _ []string) error {
	regs, err := a.registries()
	if err != nil {
		return err
	}
	writeListing(a.console(cmd), regs.Categories)
	return nil
}

// writeListing prints every enabled category in menu order with its scripts.
func writeListing(out *output.Console, categories *discovery.CategoryRegistry) {
	rows := [][]string{}
	for _, entry := range categories.Sorted() {
		cat := entry.Category
		if !cat.IsEnabled() {
			continue
		}
		for _, s := range cat.Scripts() {
			marker := shell.UnsafeMarker
			if s.IsProductionSafe() {
				marker = shell.SafeMarker
			}
			rows = append(rows, []string{entry.Key, s.Name(), marker, s.Description()})
		}
	}
	if len(rows) == 0 {
		out.Info("No scripts available.")
		return
	}
	out.Table([]string{"Category", "Script", "Safe", "Description"}, rows)
}

// errChecksFailed makes `opshell checks` exit non-zero.
var errChecksFailed = errors.New("one or more system checks failed")

func (a *app) runChecks(cmd *cobra.Command, _ []string) error {
	regs, err := a.registries()
	if err != nil {
		return err
	}
	return writeChecks(a.console(cmd), regs.Checks)
}

func writeChecks(out *output.Console, checks *discovery.CheckRegistry) error {
	rows := checks.RunAll()
	if len(rows) == 0 {
		out.Info("No system checks configured.")
		return nil
	}
	out.Table([]string{"Check", "Status", "Message"}, shell.CheckTableRows(rows))
	for _, row := range rows {
		if !row.Result.Successful {
			return errChecksFailed
		}
	}
	return nil
}

func newVersionCmd() *cobra.Command {
	var detailed bool
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  `Display the version of opshell.`,
		Run: func(cmd *cobra.Command, _ []string) {
			text := version.Formatted()
			if detailed {
				text = version.Detailed()
			}
			_, _ = io.WriteString(cmd.OutOrStdout(), text+"\n")
		},
	}
	cmd.Flags().BoolVar(&detailed, "detailed", false, "Show build details")
	return cmd
}
