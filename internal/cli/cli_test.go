package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func runCLI(t *testing.T, args []string) (stdout []byte, stderr []byte, err error) {
	t.Helper()

	cmd := NewRootCmd()

	var outBuf bytes.Buffer
	var errBuf bytes.Buffer
	cmd.SetOut(&outBuf)
	cmd.SetErr(&errBuf)
	cmd.SetArgs(args)

	e := cmd.Execute()
	return outBuf.Bytes(), errBuf.Bytes(), e
}

// isolate points the config dir at a temp dir and returns a data dir.
func isolate(t *testing.T) string {
	t.Helper()
	t.Setenv("CALENDAR_CONFIG_DIR", t.TempDir())
	t.Setenv("CALENDAR_DIR", "")
	t.Setenv("CALENDAR_STORAGE", "")
	t.Setenv("CALENDAR_LOCALE", "")
	return t.TempDir()
}

func mustRunJSON(t *testing.T, args ...string) map[string]any {
	t.Helper()
	stdout, stderr, err := runCLI(t, args)
	if err != nil {
		t.Fatalf("command failed: calendar %v\nerr: %v\nstderr:\n%s\nstdout:\n%s", args, err, string(stderr), string(stdout))
	}
	var env map[string]any
	if err := json.Unmarshal(stdout, &env); err != nil {
		t.Fatalf("unmarshal stdout as json envelope: %v\nstdout:\n%s\nargs: %v", err, string(stdout), args)
	}
	if _, ok := env["data"]; !ok {
		t.Fatalf("expected JSON envelope to contain data key; got: %v", env)
	}
	return env
}

func TestEvents_SetGetListDelete(t *testing.T) {
	for _, storage := range []string{"sqlite", "json"} {
		t.Run(storage, func(t *testing.T) {
			dir := isolate(t)

			set := mustRunJSON(t, "--dir", dir, "--storage", storage, "events", "set", "2024-3-15",
				"--time", "14:30", "--description", " Standup ", "--participants", "Alice, Bob")
			ev := set["data"].(map[string]any)
			if ev["date"] != "2024-03-15" || ev["time"] != "14:30" || ev["description"] != "Standup" || ev["participants"] != "Alice, Bob" {
				t.Fatalf("unexpected saved event %#v", ev)
			}
			if set["meta"].(map[string]any)["created"] != true {
				t.Fatalf("expected created=true, got %#v", set["meta"])
			}

			// Partial update keeps the other fields.
			upd := mustRunJSON(t, "--dir", dir, "--storage", storage, "events", "set", "2024-03-15", "--description", "Retro")
			ev = upd["data"].(map[string]any)
			if ev["time"] != "14:30" || ev["description"] != "Retro" || ev["participants"] != "Alice, Bob" {
				t.Fatalf("unexpected updated event %#v", ev)
			}

			mustRunJSON(t, "--dir", dir, "--storage", storage, "events", "set", "2024-04-01")

			got := mustRunJSON(t, "--dir", dir, "--storage", storage, "events", "get", "2024-03-15")
			if got["data"].(map[string]any)["description"] != "Retro" {
				t.Fatalf("unexpected get output %#v", got)
			}

			all := mustRunJSON(t, "--dir", dir, "--storage", storage, "events", "list")
			if xs := all["data"].([]any); len(xs) != 2 {
				t.Fatalf("expected 2 events, got %#v", all["data"])
			}
			march := mustRunJSON(t, "--dir", dir, "--storage", storage, "events", "list", "--month", "2024-03")
			if xs := march["data"].([]any); len(xs) != 1 {
				t.Fatalf("expected 1 event in March, got %#v", march["data"])
			}

			del := mustRunJSON(t, "--dir", dir, "--storage", storage, "events", "delete", "2024-03-15")
			if del["data"].(map[string]any)["deleted"] != true {
				t.Fatalf("expected deleted=true, got %#v", del["data"])
			}
			again := mustRunJSON(t, "--dir", dir, "--storage", storage, "events", "delete", "2024-03-15")
			if again["data"].(map[string]any)["deleted"] != false {
				t.Fatalf("expected no-op delete, got %#v", again["data"])
			}

			_, stderr, err := runCLI(t, []string{"--dir", dir, "--storage", storage, "events", "get", "2024-03-15"})
			if err == nil || !strings.Contains(string(stderr), "event not found: 2024-03-15") {
				t.Fatalf("expected not found error, got err=%v stderr=%s", err, stderr)
			}
		})
	}
}

func TestEvents_SetRejectsOffSlotTime(t *testing.T) {
	dir := isolate(t)

	_, _, err := runCLI(t, []string{"--dir", dir, "events", "set", "2024-03-15", "--time", "14:15"})
	if err == nil {
		t.Fatalf("expected error for 14:15")
	}
	_, _, err = runCLI(t, []string{"--dir", dir, "events", "set", "not-a-date"})
	if err == nil {
		t.Fatalf("expected error for bad date")
	}
}

func TestUnknownStorageFlagFails(t *testing.T) {
	dir := isolate(t)

	_, stderr, err := runCLI(t, []string{"--dir", dir, "--storage", "postgres", "events", "list"})
	if err == nil || !strings.Contains(string(stderr), "unknown storage backend") {
		t.Fatalf("expected storage error, got err=%v stderr=%s", err, stderr)
	}
}

func TestView_MonthlyTextAndYearlyJSON(t *testing.T) {
	dir := isolate(t)

	mustRunJSON(t, "--dir", dir, "events", "set", "2024-02-02", "--description", "x")

	stdout, stderr, err := runCLI(t, []string{"--dir", dir, "view", "--date", "2024-02-10"})
	if err != nil {
		t.Fatalf("view: %v\n%s", err, stderr)
	}
	out := string(stdout)
	if !strings.HasPrefix(out, "February 2024\n") || !strings.Contains(out, "  2 *") {
		t.Fatalf("unexpected monthly text:\n%s", out)
	}

	env := mustRunJSON(t, "--dir", dir, "--locale", "es", "view", "yearly", "--date", "2024-02-10", "--json")
	g := env["data"].(map[string]any)
	if g["title"] != "2024" || g["mode"] != "yearly" {
		t.Fatalf("unexpected yearly grid %#v", g)
	}
	cells := g["cells"].([]any)
	if len(cells) != 12 || cells[0].(map[string]any)["label"] != "Enero" {
		t.Fatalf("unexpected yearly cells %#v", cells)
	}

	daily := mustRunJSON(t, "--dir", dir, "view", "daily", "--date", "2024-02-02", "--json")
	detail := daily["data"].(map[string]any)["cells"].([]any)[0].(map[string]any)
	if detail["kind"] != "detail" || !strings.Contains(detail["detail"].(string), "Event: x") {
		t.Fatalf("unexpected daily detail %#v", detail)
	}
}

func TestExportImport_RoundTrip(t *testing.T) {
	src := isolate(t)

	mustRunJSON(t, "--dir", src, "events", "set", "2024-03-15", "--time", "14:30", "--description", "Standup", "--participants", "Alice, Bob")
	mustRunJSON(t, "--dir", src, "events", "set", "2024-12-31", "--time", "23:30", "--description", "Fireworks")
	mustRunJSON(t, "--dir", src, "events", "set", "2024-06-01", "--description", `C:\new`, "--participants", `x\,y`)

	icsPath := filepath.Join(t.TempDir(), "cal.ics")
	if _, stderr, err := runCLI(t, []string{"--dir", src, "export", "--out", icsPath}); err != nil {
		t.Fatalf("export: %v\n%s", err, stderr)
	}
	b, err := os.ReadFile(icsPath)
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	if strings.Count(string(b), "BEGIN:VEVENT") != 3 {
		t.Fatalf("expected three VEVENTs:\n%s", b)
	}

	dst := t.TempDir()
	dry := mustRunJSON(t, "--dir", dst, "import", icsPath, "--dry-run")
	if dry["meta"].(map[string]any)["count"] != float64(3) {
		t.Fatalf("unexpected dry-run meta %#v", dry["meta"])
	}
	if list := mustRunJSON(t, "--dir", dst, "events", "list"); len(list["data"].([]any)) != 0 {
		t.Fatalf("dry run must not save")
	}

	mustRunJSON(t, "--dir", dst, "import", icsPath)
	got := mustRunJSON(t, "--dir", dst, "events", "get", "2024-03-15")
	ev := got["data"].(map[string]any)
	if ev["time"] != "14:30" || ev["description"] != "Standup" || ev["participants"] != "Alice, Bob" {
		t.Fatalf("unexpected imported event %#v", ev)
	}
	got = mustRunJSON(t, "--dir", dst, "events", "get", "2024-06-01")
	ev = got["data"].(map[string]any)
	if ev["description"] != `C:\new` || ev["participants"] != `x\,y` {
		t.Fatalf("backslashes not preserved: %#v", ev)
	}
}

func TestConfig_SetShowPath(t *testing.T) {
	isolate(t)

	p := mustRunJSON(t, "config", "path")
	path := p["data"].(map[string]any)["path"].(string)
	if filepath.Base(path) != "config.yaml" {
		t.Fatalf("unexpected path %q", path)
	}

	mustRunJSON(t, "config", "set", "week_start", "monday")
	mustRunJSON(t, "config", "set", "restore_view", "true")
	if _, _, err := runCLI(t, []string{"config", "set", "nope", "x"}); err == nil {
		t.Fatalf("expected unknown key error")
	}

	show := mustRunJSON(t, "--locale", "es", "config", "show")
	cfg := show["data"].(map[string]any)
	if cfg["week_start"] != "monday" || cfg["restore_view"] != true || cfg["locale"] != "es" {
		t.Fatalf("unexpected effective config %#v", cfg)
	}

	// Flag overrides are not written back.
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read config: %v", err)
	}
	if !strings.Contains(string(b), "locale: en") {
		t.Fatalf("expected file locale to stay en:\n%s", b)
	}
}

func TestDocs_ListAndRaw(t *testing.T) {
	isolate(t)

	env := mustRunJSON(t, "docs")
	topics := env["data"].(map[string]any)["topics"].([]any)
	if len(topics) != 3 {
		t.Fatalf("unexpected topics %#v", topics)
	}

	stdout, _, err := runCLI(t, []string{"docs", "keys", "--raw"})
	if err != nil || !strings.HasPrefix(string(stdout), "# Keys") {
		t.Fatalf("expected raw markdown, err=%v out=%q", err, stdout)
	}
	if _, _, err := runCLI(t, []string{"docs", "nope"}); err == nil {
		t.Fatalf("expected unknown topic error")
	}
}
