package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_FirstRunWritesDefaults(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "sub", "config.yaml")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Storage != "sqlite" || cfg.Locale != "en" || cfg.WeekStart != "sunday" {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
	st, err := os.Stat(path)
	if err != nil {
		t.Fatalf("expected config file written: %v", err)
	}
	if st.Mode().Perm() != 0o600 {
		t.Fatalf("expected 0600, got %v", st.Mode().Perm())
	}
}

func TestLoad_NormalizesUnknownValues(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.yaml")
	body := "storage: JSON\nlocale: fr\nweek_start: Monday\nlog_level: trace\ndata_dir: ' /tmp/cal '\n"
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Storage != "json" {
		t.Fatalf("storage: %q", cfg.Storage)
	}
	if cfg.Locale != "en" {
		t.Fatalf("unknown locale should fall back to en, got %q", cfg.Locale)
	}
	if cfg.FirstWeekday() != time.Monday {
		t.Fatalf("expected monday week start")
	}
	if cfg.LogLevel != "info" {
		t.Fatalf("log level: %q", cfg.LogLevel)
	}
	if cfg.DataDir != "/tmp/cal" {
		t.Fatalf("data dir: %q", cfg.DataDir)
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("storage: [unterminated"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatalf("expected yaml error")
	}
}

func TestSave_RoundTrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.yaml")
	want := &Config{Storage: "json", DataDir: "/data", Locale: "es", WeekStart: "monday", LogLevel: "debug", LogPath: "/tmp/cal.log"}
	if err := want.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if *got != *want {
		t.Fatalf("roundtrip mismatch:\nwant: %#v\ngot:  %#v", want, got)
	}
}

func TestDir_EnvOverride(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("CALENDAR_CONFIG_DIR", dir)

	got, err := Path()
	if err != nil {
		t.Fatalf("Path: %v", err)
	}
	if got != filepath.Join(dir, "config.yaml") {
		t.Fatalf("unexpected path %q", got)
	}
	data, err := DefaultConfig().ResolveDataDir()
	if err != nil || data != filepath.Join(dir, "data") {
		t.Fatalf("ResolveDataDir: %q %v", data, err)
	}
}
