package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"calendar-cli/internal/ics"
	"calendar-cli/internal/log"

	"github.com/spf13/cobra"
)

func newExportCmd(app *App) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export all events as iCalendar (.ics)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, _, err := openStore(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			evs := s.All()

			var w io.Writer = cmd.OutOrStdout()
			if strings.TrimSpace(out) != "" && out != "-" {
				f, err := os.Create(out)
				if err != nil {
					return writeErr(cmd, err)
				}
				defer f.Close()
				w = f
			}
			if err := ics.Export(w, evs, app.now()); err != nil {
				return writeErr(cmd, fmt.Errorf("export: %w", err))
			}
			log.Debug("exported events", "count", len(evs), "out", out)
			return nil
		},
	}
	cmd.Flags().StringVar(&out, "out", "", "Write to this file instead of stdout")
	return cmd
}

func newImportCmd(app *App) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "import <file.ics>",
		Short: "Import events from an iCalendar file (one event per day; later entries win)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var r io.Reader = cmd.InOrStdin()
			if args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return writeErr(cmd, err)
				}
				defer f.Close()
				r = f
			}
			evs, err := ics.Import(r)
			if err != nil {
				return writeErr(cmd, err)
			}

			if !dryRun {
				s, _, err := openStore(cmd.Context(), app)
				if err != nil {
					return writeErr(cmd, err)
				}
				for _, ev := range evs {
					if err := s.Put(cmd.Context(), ev.Date, ev); err != nil {
						return writeErr(cmd, fmt.Errorf("import %s: %w", ev.Date, err))
					}
				}
				log.Info("imported events", "count", len(evs), "file", args[0])
			}
			return writeOut(cmd, app, evs, map[string]any{"count": len(evs), "dryRun": dryRun})
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Parse and print without saving")
	return cmd
}
