package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/treykane/chousei/internal/config"
)

func newInitCmd(app *App) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config file with the default settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Default()
			if app.Preamble != "" {
				cfg.Preamble = app.Preamble
			}

			if app.ConfigPath != "" {
				return initFile(cmd, app.ConfigPath, cfg, force)
			}

			path, err := config.ConfigPath()
			if err != nil {
				return err
			}
			exists, err := config.Exists()
			if err != nil {
				return err
			}
			if exists && !force {
				return alreadyExists(path)
			}
			if err := config.Save(cfg); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing config file")
	return cmd
}

// initFile writes cfg to an explicit --config path.
func initFile(cmd *cobra.Command, path string, cfg config.Config, force bool) error {
	exists, err := config.ExistsFile(path)
	if err != nil {
		return err
	}
	if exists && !force {
		return alreadyExists(path)
	}
	if err := config.SaveFile(path, cfg); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), path)
	return nil
}

func alreadyExists(path string) error {
	return fmt.Errorf("config already exists at %s (use --force to overwrite)", path)
}
