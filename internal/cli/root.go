package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/treykane/chousei/internal/app"
	"github.com/treykane/chousei/internal/clipboard"
	"github.com/treykane/chousei/internal/config"
	"github.com/treykane/chousei/internal/logging"
)

var log = logging.New("cli")

// App holds the persistent flags shared by every command.
type App struct {
	ConfigPath string
	Preamble   string

	// exporterOptions are appended after the defaults of every exporter the
	// commands build.
	exporterOptions []clipboard.Option
	// probe overrides environment detection for copy.
	probe clipboard.Probe
	// runProgram runs the interactive UI.
	runProgram func(m tea.Model) error
}

// NewRootCmd builds the chousei command tree.
func NewRootCmd() *cobra.Command {
	return newRootCmd(&App{})
}

func newRootCmd(app *App) *cobra.Command {
	if app.runProgram == nil {
		app.runProgram = runAltScreen
	}

	cmd := &cobra.Command{
		Use:          "chousei",
		Short:        "Compose scheduling messages in the terminal",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Start the interactive composer
  chousei

  # Copy a prepared draft for Slack
  chousei copy --slack --file draft.txt

  # Build a message in a shell script
  printf '%s%s\n' "$(chousei date --with-preamble 2025-05-03)" "$(chousei slot 09:00 10:00)" | chousei copy --slack
`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(app)
		},
	}

	cmd.PersistentFlags().StringVar(&app.ConfigPath, "config", envOr("CHOUSEI_CONFIG", ""), "Path to config file (default: ~/.chousei/config.json)")
	cmd.PersistentFlags().StringVar(&app.Preamble, "preamble", "", "Preamble placed above every message (overrides config)")

	cmd.AddCommand(newCopyCmd(app))
	cmd.AddCommand(newDateCmd(app))
	cmd.AddCommand(newSlotCmd(app))
	cmd.AddCommand(newInitCmd(app))

	return cmd
}

func runTUI(a *App) error {
	cfg, err := a.loadConfig()
	if err != nil {
		return err
	}
	m, err := app.New(cfg)
	if err != nil {
		return err
	}
	return a.runProgram(m)
}

func runAltScreen(m tea.Model) error {
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// loadConfig reads the config file, falling back to defaults when none
// exists, and applies flag overrides.
func (a *App) loadConfig() (config.Config, error) {
	var (
		cfg config.Config
		err error
	)
	if a.ConfigPath != "" {
		cfg, err = config.LoadFile(a.ConfigPath)
	} else {
		cfg, err = config.Load()
	}
	switch {
	case errors.Is(err, config.ErrNotConfigured):
		log.Debug("no config file, using defaults", "path", a.ConfigPath)
		cfg = config.Default()
	case err != nil:
		return config.Config{}, fmt.Errorf("load config: %w", err)
	}

	if a.Preamble != "" {
		cfg.Preamble = a.Preamble
	}
	if err := cfg.Normalize(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}
