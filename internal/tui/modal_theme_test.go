package tui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"
)

func TestRenderModalBox_UsesLightBackground_WhenThemeForcedLight(t *testing.T) {
	oldProfile := lipgloss.ColorProfile()
	oldBG := lipgloss.HasDarkBackground()
	lipgloss.SetColorProfile(termenv.ANSI256)
	t.Cleanup(func() {
		lipgloss.SetColorProfile(oldProfile)
		lipgloss.SetHasDarkBackground(oldBG)
	})

	t.Setenv("CALENDAR_TUI_THEME", "light")
	t.Setenv("CALENDAR_TUI_DARKBG", "")
	applyThemePreference()
	if lipgloss.HasDarkBackground() {
		t.Fatalf("expected HasDarkBackground=false after forcing light theme")
	}

	out := renderModalBox(80, "Title", "Body")

	// colorSurfaceBg is ac("255","235") so the light bg should appear in the ANSI output.
	if !strings.Contains(out, "48;5;255") {
		t.Fatalf("expected modal to include light background (48;5;255); got: %q", out)
	}
}

func TestNormalizePane_PadsAndTruncates(t *testing.T) {
	t.Parallel()

	out := normalizePane("abc\nabcdefghij", 5, 3)
	lines := strings.Split(out, "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	for i, ln := range lines {
		if w := ansi.StringWidth(ln); w != 5 {
			t.Fatalf("line %d width %d, want 5: %q", i, w, ln)
		}
	}
	if lines[0] != "abc  " || lines[1] != "abcd…" {
		t.Fatalf("unexpected lines %q", lines)
	}
}

func TestModalWidths_AreBounded(t *testing.T) {
	t.Parallel()

	if got := modalBoxWidth(20); got != modalMinWidth {
		t.Fatalf("narrow terminal: got %d", got)
	}
	if got := modalBoxWidth(300); got != modalMaxWidth {
		t.Fatalf("wide terminal: got %d", got)
	}
	if modalBodyWidth(300) >= modalBoxWidth(300) {
		t.Fatalf("body must be narrower than the box")
	}
}
