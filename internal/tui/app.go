package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"calendar-cli/internal/calendar"
	"calendar-cli/internal/editor"
	"calendar-cli/internal/locale"
	"calendar-cli/internal/log"
	"calendar-cli/internal/model"
	"calendar-cli/internal/render"
	"calendar-cli/internal/store"
)

// Options configures the interactive calendar.
type Options struct {
	Store     *store.EventStore
	Locale    locale.Locale
	WeekStart time.Weekday

	// StateDir, when set, keeps the last view and anchor across launches.
	StateDir string

	// Now defaults to time.Now.
	Now func() time.Time
}

type appModel struct {
	ctx   context.Context
	opts  Options
	store *store.EventStore

	width  int
	height int

	state  calendar.State
	editor editor.Editor

	descInput   textinput.Model
	peopleInput textinput.Model
	modalFocus  modalFocus
	modalErr    string

	status      string
	statusIsErr bool
}

func newAppModel(ctx context.Context, opts Options) appModel {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Locale.Tag == "" {
		opts.Locale = locale.Get("en")
	}
	m := appModel{
		ctx:         ctx,
		opts:        opts,
		store:       opts.Store,
		state:       calendar.New(opts.Now()),
		descInput:   newModalInput(opts.Locale.DescriptionLabel),
		peopleInput: newModalInput(opts.Locale.PeopleLabel),
	}

	if opts.StateDir != "" {
		if st, err := store.LoadViewState(opts.StateDir); err == nil {
			m.applySavedViewState(st)
		} else {
			log.Debug("load view state", "err", err)
		}
	}
	return m
}

func (m *appModel) applySavedViewState(st *store.ViewState) {
	if st == nil || st.Anchor == "" {
		return
	}
	anchor, err := model.ParseDateKey(st.Anchor)
	if err != nil {
		return
	}
	mode, err := model.ParseViewMode(st.Mode)
	if err != nil {
		return
	}
	m.state = calendar.Reduce(calendar.Reduce(m.state, calendar.GoTo(anchor)), calendar.ShowMode(mode))
}

func (m appModel) saveViewState() {
	if m.opts.StateDir == "" {
		return
	}
	st := &store.ViewState{Mode: m.state.Mode.String(), Anchor: m.state.AnchorKey()}
	if err := store.SaveViewState(m.opts.StateDir, st); err != nil {
		log.Error("save view state failed", err)
	}
}

func (m appModel) today() time.Time { return m.opts.Now() }

func (m *appModel) setStatus(s string) {
	m.status = s
	m.statusIsErr = false
}

func (m *appModel) setStatusError(err error) {
	m.status = err.Error()
	m.statusIsErr = true
}

func (m appModel) Init() tea.Cmd { return nil }

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if m.editor.Visible {
			return m.updateEditor(msg)
		}
		return m.updateCalendar(msg)
	}
	return m, nil
}

func (m appModel) updateCalendar(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		m.saveViewState()
		return m, tea.Quit
	case "h", "p", "[", "pgup":
		return m.apply(calendar.Prev()), nil
	case "l", "n", "]", "pgdown":
		return m.apply(calendar.Next()), nil
	case "m":
		return m.apply(calendar.ShowMonthly()), nil
	case "y":
		return m.apply(calendar.ShowYearly()), nil
	case "d":
		return m.apply(calendar.ShowDaily()), nil
	case "t":
		return m.apply(calendar.GoTo(m.today())), nil
	case "left":
		return m.moveCursor(-1, 0), nil
	case "right":
		return m.moveCursor(1, 0), nil
	case "up":
		return m.moveCursor(0, -1), nil
	case "down":
		return m.moveCursor(0, 1), nil
	case "enter", " ", "e":
		switch m.state.Mode {
		case model.ViewYearly:
			return m.apply(calendar.SelectMonth(m.state.Month)), nil
		default:
			m.openEditor(m.state.AnchorKey())
			return m, nil
		}
	}
	return m, nil
}

func (m appModel) apply(a calendar.Action) appModel {
	m.state = calendar.Reduce(m.state, a)
	m.status = ""
	return m
}

// moveCursor shifts the anchor within the grid of the active view: by days
// (rows are weeks) in the monthly view, by months (rows of three) in the
// yearly view, and by days in the daily view.
func (m appModel) moveCursor(dx, dy int) appModel {
	switch m.state.Mode {
	case model.ViewYearly:
		return m.apply(calendar.MoveMonths(dx + 3*dy))
	case model.ViewDaily:
		if dx == 0 {
			return m
		}
		return m.apply(calendar.MoveDays(dx))
	default:
		return m.apply(calendar.MoveDays(dx + 7*dy))
	}
}

func (m appModel) grid() render.Grid {
	return render.Build(m.state, m.store.Snapshot(), m.today(), render.Options{
		Locale:    m.opts.Locale,
		WeekStart: m.opts.WeekStart,
	})
}
