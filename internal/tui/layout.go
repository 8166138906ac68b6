package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
)

const (
	modalMaxWidth = 64
	modalMinWidth = 28
)

// normalizePane forces s to be exactly width columns wide (ANSI-aware) and
// height lines tall, so the frame never jitters between renders.
func normalizePane(s string, width, height int) string {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}

	lines := strings.Split(s, "\n")

	if height > 0 {
		if len(lines) > height {
			lines = lines[:height]
		}
		for len(lines) < height {
			lines = append(lines, "")
		}
	}

	for i := range lines {
		ln := lines[i]
		w := xansi.StringWidth(ln)
		if w > width {
			switch {
			case width <= 0:
				ln = ""
			case width == 1:
				ln = xansi.Cut(ln, 0, 1)
			default:
				ln = xansi.Cut(ln, 0, width-1) + "…"
			}
			w = xansi.StringWidth(ln)
		}
		if w < width {
			ln += strings.Repeat(" ", width-w)
		}
		lines[i] = ln
	}

	return strings.Join(lines, "\n")
}

// modalBoxWidth is the outer width of a modal for a terminal of the given width.
func modalBoxWidth(termWidth int) int {
	w := termWidth - 8
	if w > modalMaxWidth {
		w = modalMaxWidth
	}
	if w < modalMinWidth {
		w = modalMinWidth
	}
	return w
}

// modalBodyWidth is the usable content width inside a modal box.
func modalBodyWidth(termWidth int) int {
	// Border (2) + horizontal padding (4).
	return modalBoxWidth(termWidth) - 6
}

// renderModalBox draws a bordered surface with a header line for title.
func renderModalBox(termWidth int, title, content string) string {
	bodyW := modalBodyWidth(termWidth)

	header := lipgloss.NewStyle().
		Bold(true).
		Width(bodyW).
		Foreground(colorSurfaceFg).
		Background(colorControlBg).
		Render(title)

	body := lipgloss.NewStyle().
		Width(bodyW).
		Foreground(colorSurfaceFg).
		Background(colorSurfaceBg).
		Render(content)

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorAccent).
		Background(colorSurfaceBg).
		Padding(0, 2).
		Render(header + "\n\n" + body)
}

// overlayCenter places fg in the middle of a width x height frame.
func overlayCenter(fg string, width, height int) string {
	if width <= 0 || height <= 0 {
		return fg
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, fg)
}
