package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/treykane/chousei/internal/clipboard"
	"github.com/treykane/chousei/internal/composer"
)

var errCopyFailed = errors.New("copy failed")

func newCopyCmd(app *App) *cobra.Command {
	var (
		slack      bool
		restricted bool
		file       string
		echo       bool
	)

	cmd := &cobra.Command{
		Use:   "copy",
		Short: "Copy a draft read from stdin or a file to the clipboard",
		Long: `Copy a draft to the clipboard.

Blank lines are dropped. With --slack every line after the first gets a stamp
prefix from the configured tables, cycling through them.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.loadConfig()
			if err != nil {
				return err
			}
			draft, err := readDraft(cmd.InOrStdin(), file)
			if err != nil {
				return err
			}

			probe := app.probe
			if probe == nil {
				probe = clipboard.NewEnvironmentProbe(cfg.RestrictedMarkers)
			}
			if restricted {
				probe = clipboard.StaticProbe{SupportsAsyncClipboardWrite: false}
			}
			capability := probe.Capability()

			flavor := composer.FlavorPlain
			if slack {
				flavor = composer.FlavorSlack
			}
			text := composer.BuildExport(draft, flavor, capability.Platform(), cfg.DecorationTables())
			if echo {
				fmt.Fprintln(cmd.OutOrStdout(), text)
			}

			stderr := cmd.ErrOrStderr()
			opts := []clipboard.Option{
				clipboard.WithLegacyCopier(clipboard.NewOSC52Copier(stderr)),
				clipboard.WithFallbackCommand(cfg.FallbackCommand),
			}
			opts = append(opts, app.exporterOptions...)
			opts = append(opts, clipboard.WithNotifier(clipboard.NotifierFunc(func(message string, _ clipboard.Severity) {
				fmt.Fprintln(stderr, message)
			})))

			result := <-clipboard.NewExporter(opts...).Export(cmd.Context(), text, capability)
			log.Debug("copy finished", "ok", result.OK, "platform", result.Platform.String(), "flavor", flavor.String())
			if result.OK {
				return nil
			}
			if result.Err != nil {
				return fmt.Errorf("%w: %w", errCopyFailed, result.Err)
			}
			return errCopyFailed
		},
	}

	cmd.Flags().BoolVar(&slack, "slack", false, "Prefix each line with a Slack stamp")
	cmd.Flags().BoolVar(&restricted, "restricted", false, "Force the clipboard-restricted fallback")
	cmd.Flags().StringVar(&file, "file", "", "Read the draft from this file instead of stdin")
	cmd.Flags().BoolVar(&echo, "print", false, "Also print the exported text to stdout")
	return cmd
}

func readDraft(stdin io.Reader, path string) (string, error) {
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("read draft: %w", err)
		}
		return string(data), nil
	}
	data, err := io.ReadAll(stdin)
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	return string(data), nil
}
