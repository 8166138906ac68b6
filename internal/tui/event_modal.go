package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"calendar-cli/internal/log"
)

type modalFocus int

const (
	modalFocusTime modalFocus = iota
	modalFocusDescription
	modalFocusParticipants
	modalFocusSave
	modalFocusDelete
	modalFocusCount
)

func newModalInput(placeholder string) textinput.Model {
	in := textinput.New()
	in.Placeholder = placeholder
	in.CharLimit = 200
	in.Width = 40
	in.Prompt = ""
	return in
}

// openEditor shows the modal for key with the form filled from the store.
func (m *appModel) openEditor(key string) {
	if err := m.editor.Open(key, m.store, m.opts.Locale); err != nil {
		m.setStatusError(err)
		return
	}
	m.descInput.SetValue(m.editor.Form.Description)
	m.peopleInput.SetValue(m.editor.Form.Participants)
	m.descInput.CursorEnd()
	m.peopleInput.CursorEnd()
	m.modalErr = ""
	m.modalFocus = modalFocusDescription
	m.applyModalFocus()
}

func (m *appModel) closeEditor() {
	m.editor.Close()
	m.descInput.Blur()
	m.peopleInput.Blur()
	m.modalErr = ""
}

func (m *appModel) applyModalFocus() {
	m.descInput.Blur()
	m.peopleInput.Blur()
	switch m.modalFocus {
	case modalFocusDescription:
		m.descInput.Focus()
	case modalFocusParticipants:
		m.peopleInput.Focus()
	}
}

func (m *appModel) syncFormFromInputs() {
	m.editor.Form.Description = m.descInput.Value()
	m.editor.Form.Participants = m.peopleInput.Value()
}

func (m *appModel) saveEditor() {
	m.syncFormFromInputs()
	key := m.editor.Selected
	if err := m.editor.Save(m.ctx, m.store); err != nil {
		log.Error("save event failed", err, "date", key)
		m.modalErr = err.Error()
		return
	}
	log.Info("event saved", "date", key)
	m.closeEditor()
	m.setStatus("Saved " + key)
}

func (m *appModel) deleteEditor() {
	key := m.editor.Selected
	if err := m.editor.Delete(m.ctx, m.store); err != nil {
		log.Error("delete event failed", err, "date", key)
		m.modalErr = err.Error()
		return
	}
	log.Info("event deleted", "date", key)
	m.closeEditor()
	m.setStatus("Deleted " + key)
}

func (m appModel) updateEditor(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "ctrl+g":
		m.closeEditor()
		return m, nil
	case "ctrl+s":
		m.saveEditor()
		return m, nil
	case "ctrl+d":
		m.deleteEditor()
		return m, nil
	case "tab", "down":
		if msg.String() == "down" && m.modalFocus == modalFocusTime {
			m.editor.CycleTime(1)
			return m, nil
		}
		m.modalFocus = (m.modalFocus + 1) % modalFocusCount
		m.applyModalFocus()
		return m, nil
	case "shift+tab", "up":
		if msg.String() == "up" && m.modalFocus == modalFocusTime {
			m.editor.CycleTime(-1)
			return m, nil
		}
		m.modalFocus = (m.modalFocus + modalFocusCount - 1) % modalFocusCount
		m.applyModalFocus()
		return m, nil
	case "enter":
		switch m.modalFocus {
		case modalFocusDelete:
			m.deleteEditor()
		default:
			m.saveEditor()
		}
		return m, nil
	}

	switch m.modalFocus {
	case modalFocusTime:
		switch msg.String() {
		case "left", "-", "h":
			m.editor.CycleTime(-1)
		case "right", "+", "l":
			m.editor.CycleTime(1)
		case "pgup":
			m.editor.CycleTime(-2)
		case "pgdown":
			m.editor.CycleTime(2)
		}
		return m, nil
	case modalFocusSave, modalFocusDelete:
		switch msg.String() {
		case "left", "right":
			if m.modalFocus == modalFocusSave {
				m.modalFocus = modalFocusDelete
			} else {
				m.modalFocus = modalFocusSave
			}
		}
		return m, nil
	}

	var cmd tea.Cmd
	if m.modalFocus == modalFocusDescription {
		m.descInput, cmd = m.descInput.Update(msg)
	} else {
		m.peopleInput, cmd = m.peopleInput.Update(msg)
	}
	m.syncFormFromInputs()
	return m, cmd
}

func (m appModel) renderEditorModal() string {
	l := m.opts.Locale
	bodyW := modalBodyWidth(m.width)

	label := func(s string, f modalFocus) string {
		st := styleChrome()
		if m.modalFocus == f {
			st = st.Foreground(colorAccent).Bold(true)
		}
		return st.Render(s)
	}
	field := lipgloss.NewStyle().Background(colorInputBg).Width(bodyW)

	timeVal := "‹ " + m.editor.Form.Time + " ›"
	if m.modalFocus == modalFocusTime {
		timeVal = lipgloss.NewStyle().Foreground(colorAccentFg).Background(colorAccent).Render(timeVal)
	}

	btnBase := lipgloss.NewStyle().
		Padding(0, 1).
		Foreground(colorSurfaceFg).
		Background(colorControlBg)
	btnActive := btnBase.
		Foreground(colorSelectedFg).
		Background(colorSelectedBg).
		Bold(true)
	save, del := btnBase.Render(l.SaveLabel), btnBase.Render(l.DeleteLabel)
	if m.modalFocus == modalFocusSave {
		save = btnActive.Render(l.SaveLabel)
	}
	if m.modalFocus == modalFocusDelete {
		del = btnActive.Render(l.DeleteLabel)
	}
	sep := lipgloss.NewStyle().Background(colorControlBg).Render(" ")
	controls := lipgloss.JoinHorizontal(lipgloss.Top, save, sep, del)

	lines := []string{
		label(l.TimeLabel, modalFocusTime),
		timeVal,
		"",
		label(l.DescriptionLabel, modalFocusDescription),
		field.Render(m.descInput.View()),
		"",
		label(l.PeopleLabel, modalFocusParticipants),
		field.Render(m.peopleInput.View()),
		"",
		controls,
	}
	if m.modalErr != "" {
		lines = append(lines, "", styleError().Width(bodyW).Render(m.modalErr))
	}
	lines = append(lines, "", styleMuted().Width(bodyW).Render("tab: focus   ←/→: time   ctrl+s: save   ctrl+d: delete   esc: close"))

	return renderModalBox(m.width, m.editor.Title, strings.Join(lines, "\n"))
}
