package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"calendar-cli/internal/config"
	"calendar-cli/internal/format"
	"calendar-cli/internal/locale"
	"calendar-cli/internal/log"
	"calendar-cli/internal/store"
	"calendar-cli/internal/tui"

	"github.com/spf13/cobra"
)

type App struct {
	Dir        string
	Storage    string
	Locale     string
	PrettyJSON bool

	// now is overridable in tests.
	now func() time.Time
}

func NewRootCmd() *cobra.Command {
	app := &App{now: time.Now}

	cmd := &cobra.Command{
		Use:          "calendar",
		Short:        "Calendar with monthly, yearly and daily views (CLI + TUI)",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Start the interactive TUI
  calendar

  # Scriptable commands
  calendar events list --month 2024-03
  calendar events set 2024-03-15 --time 14:30 --description Standup --participants "Alice, Bob"

  # Direct date lookup (shortcut for: calendar events get <date>)
  calendar 2024-03-15
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive TUI.
			if cmd.HasSubCommands() && len(args) == 0 {
				return runTUI(cmd.Context(), app)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		log.SetOutput(cmd.ErrOrStderr())
		if strings.TrimSpace(app.Storage) != "" {
			if _, err := store.ParseBackendKind(app.Storage); err != nil {
				return writeErr(cmd, err)
			}
		}
		return nil
	}

	cmd.PersistentFlags().StringVar(&app.Dir, "dir", envOr("CALENDAR_DIR", ""), "Path to the data dir (overrides data_dir in config.yaml)")
	cmd.PersistentFlags().StringVar(&app.Storage, "storage", envOr("CALENDAR_STORAGE", ""), "Storage backend (sqlite|json)")
	cmd.PersistentFlags().StringVar(&app.Locale, "locale", envOr("CALENDAR_LOCALE", ""), "Locale for month names and labels (en|es)")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON output")

	cmd.AddCommand(newEventsCmd(app))
	cmd.AddCommand(newViewCmd(app))
	cmd.AddCommand(newExportCmd(app))
	cmd.AddCommand(newImportCmd(app))
	cmd.AddCommand(newConfigCmd(app))
	cmd.AddCommand(newDocsCmd(app))

	return cmd
}

// loadConfig reads config.yaml and applies flag/env overrides on top.
func loadConfig(app *App) (*config.Config, error) {
	path, err := config.Path()
	if err != nil {
		return nil, err
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if app.Dir != "" {
		cfg.DataDir = app.Dir
	}
	if app.Storage != "" {
		cfg.Storage = app.Storage
	}
	if app.Locale != "" {
		cfg.Locale = app.Locale
	}
	cfg.Normalize()
	log.SetLevel(log.ParseLevel(cfg.LogLevel))
	return cfg, nil
}

// openStore loads the configured event store.
func openStore(ctx context.Context, app *App) (*store.EventStore, *config.Config, error) {
	cfg, err := loadConfig(app)
	if err != nil {
		return nil, nil, err
	}
	dir, err := cfg.ResolveDataDir()
	if err != nil {
		return nil, nil, err
	}
	kind, err := store.ParseBackendKind(cfg.Storage)
	if err != nil {
		return nil, nil, err
	}
	b, err := store.OpenBackend(kind, dir)
	if err != nil {
		return nil, nil, err
	}
	s := store.New(b)
	if err := s.Load(ctx); err != nil {
		return nil, nil, err
	}
	if s.Status() == store.LoadCorrupt {
		log.Info("stored events were unreadable; starting empty", "dir", dir)
	}
	return s, cfg, nil
}

func runTUI(ctx context.Context, app *App) error {
	if ctx == nil {
		ctx = context.Background()
	}
	s, cfg, err := openStore(ctx, app)
	if err != nil {
		return err
	}

	// The TUI owns the terminal; log lines go to log_path or nowhere.
	log.SetOutput(io.Discard)
	defer log.SetOutput(os.Stderr)
	if cfg.LogPath != "" {
		c, err := log.OpenFile(cfg.LogPath)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer c.Close()
	}

	opts := tui.Options{
		Store:     s,
		Locale:    locale.Get(cfg.Locale),
		WeekStart: cfg.FirstWeekday(),
		Now:       app.now,
	}
	if cfg.RestoreView {
		if opts.StateDir, err = cfg.ResolveDataDir(); err != nil {
			return err
		}
	}
	log.Info("tui start", "storage", cfg.Storage, "events", s.Len())
	return tui.Run(ctx, opts)
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func writeOut(cmd *cobra.Command, app *App, v any, meta any) error {
	return format.Write(cmd.OutOrStdout(), v, meta, app.PrettyJSON)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}
