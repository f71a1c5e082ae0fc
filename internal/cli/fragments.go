package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/treykane/chousei/internal/composer"
)

func newDateCmd(app *App) *cobra.Command {
	var withPreamble bool

	cmd := &cobra.Command{
		Use:   "date [YYYY-MM-DD]",
		Short: "Print the date line for a day (default: today)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			day := time.Now()
			if len(args) == 1 {
				parsed, err := time.ParseInLocation("2006-01-02", strings.TrimSpace(args[0]), time.Local)
				if err != nil {
					return fmt.Errorf("invalid date %q (expected YYYY-MM-DD)", args[0])
				}
				day = parsed
			}

			line := composer.FormatDate(day)
			if withPreamble {
				cfg, err := app.loadConfig()
				if err != nil {
					return err
				}
				line = composer.New(cfg.Preamble).ReplaceWithDate(line).Draft
			}
			fmt.Fprintln(cmd.OutOrStdout(), line)
			return nil
		},
	}

	cmd.Flags().BoolVar(&withPreamble, "with-preamble", false, "Print the configured preamble above the date")
	return cmd
}

func newSlotCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "slot HH:MM [HH:MM...]",
		Short: "Print time slot fragments; times alternate between start and end",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var b strings.Builder
			for i, arg := range args {
				clock, err := composer.ParseClock(arg)
				if err != nil {
					return err
				}
				b.WriteString(composer.FormatTimeSlot(clock, i))
			}
			fmt.Fprintln(cmd.OutOrStdout(), b.String())
			return nil
		},
	}
}
