package cli

import (
	"fmt"
	"strings"

	"calendar-cli/internal/calendar"
	"calendar-cli/internal/locale"
	"calendar-cli/internal/model"
	"calendar-cli/internal/render"

	"github.com/spf13/cobra"
)

func newViewCmd(app *App) *cobra.Command {
	var (
		date   string
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "view [monthly|yearly|daily]",
		Short: "Print the monthly, yearly or daily view as text",
		Example: strings.TrimSpace(`
  calendar view
  calendar view yearly --date 2024-01-01
  calendar view daily --date 2024-03-15 --json`),
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mode := model.ViewMonthly
			if len(args) == 1 {
				m, err := model.ParseViewMode(args[0])
				if err != nil {
					return writeErr(cmd, err)
				}
				mode = m
			}

			st := calendar.New(app.now())
			if strings.TrimSpace(date) != "" {
				d, err := model.ParseDateKey(date)
				if err != nil {
					return writeErr(cmd, err)
				}
				st = calendar.Reduce(st, calendar.GoTo(d))
			}
			st = calendar.Reduce(st, calendar.ShowMode(mode))

			s, cfg, err := openStore(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			g := render.Build(st, s.Snapshot(), app.now(), render.Options{
				Locale:    locale.Get(cfg.Locale),
				WeekStart: cfg.FirstWeekday(),
			})
			if asJSON {
				return writeOut(cmd, app, g, map[string]any{"anchor": st.AnchorKey()})
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), render.Text(g))
			return err
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "Anchor date (YYYY-MM-DD, default today)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the grid as JSON")
	return cmd
}
