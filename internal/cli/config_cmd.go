package cli

import (
	"strconv"
	"strings"

	"calendar-cli/internal/config"

	"github.com/spf13/cobra"
)

func newConfigCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or change the configuration (config.yaml)",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print the config file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := config.Path()
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"path": p}, nil)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration (file + flags + env)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			dataDir, err := cfg.ResolveDataDir()
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, cfg, map[string]any{"resolvedDataDir": dataDir})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a config value (storage, data_dir, locale, week_start, log_level, log_path, restore_view)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := config.Path()
			if err != nil {
				return writeErr(cmd, err)
			}
			cfg, err := config.Load(p)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := setConfigValue(cfg, args[0], args[1]); err != nil {
				return writeErr(cmd, err)
			}
			if err := cfg.Save(p); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, cfg, nil)
		},
	})

	return cmd
}

func setConfigValue(cfg *config.Config, key, value string) error {
	value = strings.TrimSpace(value)
	switch strings.ToLower(strings.TrimSpace(key)) {
	case "storage":
		cfg.Storage = value
	case "data_dir":
		cfg.DataDir = value
	case "locale":
		cfg.Locale = value
	case "week_start":
		cfg.WeekStart = value
	case "log_level":
		cfg.LogLevel = value
	case "log_path":
		cfg.LogPath = value
	case "restore_view":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return errUsage("invalid restore_view %q (want true|false)", value)
		}
		cfg.RestoreView = b
	default:
		return errNotFound("config key", key)
	}
	return nil
}
