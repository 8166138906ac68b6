package cli

import (
	"strings"
	"time"

	"calendar-cli/internal/model"

	"github.com/spf13/cobra"
)

func newEventsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "events",
		Short: "List, read and edit events (one per day)",
	}
	cmd.AddCommand(newEventsListCmd(app))
	cmd.AddCommand(newEventsGetCmd(app))
	cmd.AddCommand(newEventsSetCmd(app))
	cmd.AddCommand(newEventsDeleteCmd(app))
	return cmd
}

func newEventsListCmd(app *App) *cobra.Command {
	var month string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List events in date order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, _, err := openStore(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			var evs []model.Event
			if strings.TrimSpace(month) == "" {
				evs = s.All()
			} else {
				t, err := time.Parse("2006-01", strings.TrimSpace(month))
				if err != nil {
					return writeErr(cmd, errUsage("invalid --month %q (want YYYY-MM)", month))
				}
				evs = s.Month(t.Year(), t.Month())
			}
			return writeOut(cmd, app, evs, map[string]any{"count": len(evs)})
		},
	}
	cmd.Flags().StringVar(&month, "month", "", "Only events in this month (YYYY-MM)")
	return cmd
}

func newEventsGetCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "get <date>",
		Aliases: []string{"show"},
		Short:   "Show the event on a date (YYYY-MM-DD)",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := model.NormalizeDateKey(args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			s, _, err := openStore(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			ev, ok := s.Get(key)
			if !ok {
				return writeErr(cmd, errNotFound("event", key))
			}
			return writeOut(cmd, app, ev, nil)
		},
	}
}

func newEventsSetCmd(app *App) *cobra.Command {
	var (
		at           string
		description  string
		participants string
	)

	cmd := &cobra.Command{
		Use:   "set <date>",
		Short: "Create or replace the event on a date",
		Long: strings.TrimSpace(`
Create or replace the event on a date. Each date holds at most one event, so
setting a date that already has one overwrites it. Flags that are not given
keep the existing value.`),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := model.NormalizeDateKey(args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			s, _, err := openStore(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}

			ev, existed := s.Get(key)
			if !existed || !model.IsTimeSlot(ev.Time) {
				ev.Time = model.DefaultTime
			}
			if cmd.Flags().Changed("time") {
				ev.Time = strings.TrimSpace(at)
			}
			if cmd.Flags().Changed("description") {
				ev.Description = strings.TrimSpace(description)
			}
			if cmd.Flags().Changed("participants") {
				ev.Participants = strings.TrimSpace(participants)
			}

			if err := s.Put(cmd.Context(), key, ev); err != nil {
				return writeErr(cmd, err)
			}
			saved, _ := s.Get(key)
			return writeOut(cmd, app, saved, map[string]any{"created": !existed})
		},
	}
	cmd.Flags().StringVar(&at, "time", "", "Start time on a half-hour boundary (HH:MM, default 00:00)")
	cmd.Flags().StringVar(&description, "description", "", "Description")
	cmd.Flags().StringVar(&participants, "participants", "", "Participants (free text)")
	return cmd
}

func newEventsDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "delete <date>",
		Aliases: []string{"rm"},
		Short:   "Delete the event on a date (no-op when there is none)",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := model.NormalizeDateKey(args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			s, _, err := openStore(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			existed := s.Has(key)
			if err := s.Remove(cmd.Context(), key); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"date": key, "deleted": existed}, nil)
		},
	}
}
