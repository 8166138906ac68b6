package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"calendar-cli/internal/model"
	"calendar-cli/internal/render"
)

const (
	dayCellWidth   = 6
	monthCellWidth = 16
)

func (m appModel) View() string {
	g := m.grid()

	var body string
	switch g.Mode {
	case model.ViewYearly:
		body = m.renderYearly(g)
	case model.ViewDaily:
		body = m.renderDaily(g)
	default:
		body = m.renderMonthly(g)
	}

	parts := []string{m.renderHeader(g), "", body, ""}
	if m.status != "" {
		st := styleMuted()
		if m.statusIsErr {
			st = styleError()
		}
		parts = append(parts, st.Render(m.status))
	}
	parts = append(parts, styleMuted().Render(m.helpLine()))
	out := strings.Join(parts, "\n")

	if m.editor.Visible {
		return overlayCenter(m.renderEditorModal(), m.width, m.height)
	}
	if m.width > 0 && m.height > 0 {
		return normalizePane(out, m.width, m.height)
	}
	return out
}

func (m appModel) helpLine() string {
	switch m.state.Mode {
	case model.ViewYearly:
		return "h/l: prev/next year   arrows: move   enter: open month   m/d: view   t: today   q: quit"
	case model.ViewDaily:
		return "h/l: prev/next day   enter: edit   m/y: view   t: today   q: quit"
	default:
		return "h/l: prev/next month   arrows: move   enter: edit   y/d: view   t: today   q: quit"
	}
}

func (m appModel) renderHeader(g render.Grid) string {
	tab := func(label string, mode model.ViewMode) string {
		if m.state.Mode == mode {
			return styleSelected().Padding(0, 1).Render(label)
		}
		return styleChrome().Padding(0, 1).Render(label)
	}
	tabs := lipgloss.JoinHorizontal(lipgloss.Top,
		tab("month", model.ViewMonthly),
		tab("year", model.ViewYearly),
		tab("day", model.ViewDaily),
	)
	return styleTitle().Render(g.Title) + "   " + tabs
}

func (m appModel) renderMonthly(g render.Grid) string {
	var b strings.Builder
	for _, h := range g.Header {
		b.WriteString(styleChrome().Render(fmt.Sprintf("%3s", h) + strings.Repeat(" ", dayCellWidth-3)))
	}
	b.WriteString("\n")

	anchor := m.state.AnchorKey()
	var cursor render.Cell
	for i, c := range g.Cells {
		if i > 0 && i%g.Columns == 0 {
			b.WriteString("\n")
		}
		if c.Kind == render.CellBlank {
			b.WriteString(strings.Repeat(" ", dayCellWidth))
			continue
		}
		if c.DateKey == anchor {
			cursor = c
		}
		b.WriteString(m.renderDayCell(c, c.DateKey == anchor))
	}

	b.WriteString("\n\n")
	b.WriteString(m.renderCursorTooltip(cursor))
	return b.String()
}

func (m appModel) renderDayCell(c render.Cell, selected bool) string {
	num := fmt.Sprintf("%3s", c.Label)
	mark := "  "
	if c.HasEvent {
		mark = " •"
	}
	switch {
	case selected:
		return styleSelected().Render(num+mark) + " "
	case c.IsToday:
		num = styleToday().Render(num)
	}
	if c.HasEvent {
		mark = styleEvent().Render(mark)
	}
	return num + mark + " "
}

// renderCursorTooltip shows the event of the highlighted day.
func (m appModel) renderCursorTooltip(c render.Cell) string {
	if c.Event == nil {
		return styleMuted().Render(m.opts.Locale.NoEvents)
	}
	lines := strings.SplitN(c.Tooltip, "\n", 2)
	out := styleEvent().Render(c.Event.Time) + "  " + lines[0]
	if len(lines) > 1 && strings.TrimSpace(lines[1]) != "" {
		out += "\n" + styleMuted().Render(lines[1])
	}
	return out
}

func (m appModel) renderYearly(g render.Grid) string {
	now := m.today()
	var b strings.Builder
	for i, c := range g.Cells {
		if i > 0 && i%g.Columns == 0 {
			b.WriteString("\n\n")
		}
		cell := lipgloss.NewStyle().Width(monthCellWidth)
		switch {
		case c.Month == m.state.Month:
			cell = cell.Inherit(styleSelected())
		case c.Month == now.Month() && m.state.Year == now.Year():
			cell = cell.Inherit(styleToday())
		}
		b.WriteString(cell.Render(" " + c.Label))
	}
	return b.String()
}

func (m appModel) renderDaily(g render.Grid) string {
	if len(g.Cells) == 0 {
		return ""
	}
	c := g.Cells[0]
	md := detailMarkdown(c.Detail)
	if c.Event != nil {
		md = "**" + escapeMarkdown(m.opts.Locale.TimeLabel) + ":** " + c.Event.Time + "\n\n" + md
	}
	width := m.width - 4
	if width <= 0 {
		width = 72
	}
	return styleTitle().Render(c.Label) + "\n\n" + renderMarkdown(md, width)
}
