package render

import (
	"fmt"
	"strings"
	"time"

	"calendar-cli/internal/calendar"
	"calendar-cli/internal/locale"
	"calendar-cli/internal/model"
)

type CellKind int

func (k CellKind) String() string {
	switch k {
	case CellDay:
		return "day"
	case CellMonth:
		return "month"
	case CellDetail:
		return "detail"
	default:
		return "blank"
	}
}

func (k CellKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

const (
	CellBlank CellKind = iota
	CellDay
	CellMonth
	CellDetail
)

// Cell is one entry of the display grid.
type Cell struct {
	Kind  CellKind `json:"kind"`
	Label string   `json:"label"`
	// DateKey is set for day and detail cells.
	DateKey string `json:"date,omitempty"`
	// Month is set for month cells (yearly view).
	Month    time.Month `json:"month,omitempty"`
	HasEvent bool       `json:"hasEvent,omitempty"`
	IsToday  bool       `json:"isToday,omitempty"`
	// Tooltip is "description\nparticipants" for day cells that have an event.
	Tooltip string `json:"tooltip,omitempty"`
	// Detail holds the text body of the daily view.
	Detail string       `json:"detail,omitempty"`
	Event  *model.Event `json:"event,omitempty"`
}

// Grid is the full display for one render: a title plus cells laid out
// row-major in Columns columns.
type Grid struct {
	Title   string         `json:"title"`
	Mode    model.ViewMode `json:"mode"`
	Columns int            `json:"columns"`
	// Header holds weekday labels for the monthly view.
	Header []string `json:"header,omitempty"`
	Cells  []Cell   `json:"cells"`
}

type Options struct {
	Locale    locale.Locale
	WeekStart time.Weekday
}

// Build derives the grid for s from events. It only reads its inputs;
// identical inputs always give an identical grid.
func Build(s calendar.State, events map[string]model.Event, today time.Time, opt Options) Grid {
	if opt.Locale.Tag == "" {
		opt.Locale = locale.Get("en")
	}
	switch s.Mode {
	case model.ViewYearly:
		return buildYearly(s, opt)
	case model.ViewDaily:
		return buildDaily(s, events, opt)
	default:
		return buildMonthly(s, events, today, opt)
	}
}

func buildMonthly(s calendar.State, events map[string]model.Event, today time.Time, opt Options) Grid {
	y, m := s.Year, s.Month
	days := calendar.DaysInMonth(y, m)
	blanks := calendar.FirstWeekday(y, m, opt.WeekStart)

	g := Grid{
		Title:   opt.Locale.MonthYear(m, y),
		Mode:    model.ViewMonthly,
		Columns: 7,
		Header:  opt.Locale.WeekHeader(opt.WeekStart),
		Cells:   make([]Cell, 0, blanks+days),
	}
	for i := 0; i < blanks; i++ {
		g.Cells = append(g.Cells, Cell{Kind: CellBlank})
	}
	for d := 1; d <= days; d++ {
		key := model.KeyFor(y, m, d)
		c := Cell{
			Kind:    CellDay,
			Label:   fmt.Sprintf("%d", d),
			DateKey: key,
			IsToday: d == today.Day() && m == today.Month() && y == today.Year(),
		}
		if ev, ok := events[key]; ok {
			ev := ev
			c.HasEvent = true
			c.Tooltip = ev.Description + "\n" + ev.Participants
			c.Event = &ev
		}
		g.Cells = append(g.Cells, c)
	}
	return g
}

func buildYearly(s calendar.State, opt Options) Grid {
	g := Grid{
		Title:   fmt.Sprintf("%d", s.Year),
		Mode:    model.ViewYearly,
		Columns: 3,
		Cells:   make([]Cell, 0, 12),
	}
	for m := time.January; m <= time.December; m++ {
		g.Cells = append(g.Cells, Cell{
			Kind:  CellMonth,
			Label: locale.Title(opt.Locale.MonthName(m)),
			Month: m,
		})
	}
	return g
}

func buildDaily(s calendar.State, events map[string]model.Event, opt Options) Grid {
	anchor := s.Anchor()
	key := model.KeyOf(anchor)
	l := opt.Locale

	c := Cell{
		Kind:    CellDetail,
		Label:   l.TodayIs + " " + l.LongDateWithWeekday(anchor),
		DateKey: key,
		Detail:  l.NoEvents,
	}
	if ev, ok := events[key]; ok {
		ev := ev
		c.HasEvent = true
		c.Event = &ev
		c.Detail = fmt.Sprintf("%s: %s\n%s: %s", l.EventLabel, ev.Description, l.PeopleLabel, ev.Participants)
	}

	return Grid{
		Title:   l.LongDate(anchor),
		Mode:    model.ViewDaily,
		Columns: 1,
		Cells:   []Cell{c},
	}
}

// DayCells returns only the day cells of a monthly grid.
func (g Grid) DayCells() []Cell {
	out := []Cell{}
	for _, c := range g.Cells {
		if c.Kind == CellDay {
			out = append(out, c)
		}
	}
	return out
}

// LeadingBlanks counts the blank cells before the first non-blank cell.
func (g Grid) LeadingBlanks() int {
	n := 0
	for _, c := range g.Cells {
		if c.Kind != CellBlank {
			break
		}
		n++
	}
	return n
}

// Text lays the grid out as plain text. Day cells carry markers: "*" for
// days with an event, brackets for today.
func Text(g Grid) string {
	var b strings.Builder
	b.WriteString(g.Title)
	b.WriteString("\n")

	switch g.Mode {
	case model.ViewDaily:
		for _, c := range g.Cells {
			b.WriteString(c.Label)
			b.WriteString("\n")
			b.WriteString(c.Detail)
			b.WriteString("\n")
		}
		return b.String()
	case model.ViewYearly:
		for i, c := range g.Cells {
			b.WriteString(fmt.Sprintf("%-12s", c.Label))
			if (i+1)%g.Columns == 0 {
				b.WriteString("\n")
			}
		}
		return b.String()
	}

	for _, h := range g.Header {
		b.WriteString(fmt.Sprintf(" %2s  ", h))
	}
	b.WriteString("\n")
	for i, c := range g.Cells {
		b.WriteString(dayText(c))
		if (i+1)%g.Columns == 0 {
			b.WriteString("\n")
		}
	}
	if len(g.Cells)%g.Columns != 0 {
		b.WriteString("\n")
	}
	return b.String()
}

func dayText(c Cell) string {
	if c.Kind == CellBlank {
		return "     "
	}
	mark := " "
	if c.HasEvent {
		mark = "*"
	}
	if c.IsToday {
		return fmt.Sprintf("[%2s]%s", c.Label, mark)
	}
	return fmt.Sprintf(" %2s %s", c.Label, mark)
}
