package editor

import (
	"context"
	"strings"

	"calendar-cli/internal/locale"
	"calendar-cli/internal/model"
)

// Store is the part of the event store the editor needs.
type Store interface {
	Get(key string) (model.Event, bool)
	Put(ctx context.Context, key string, ev model.Event) error
	Remove(ctx context.Context, key string) error
}

// Form mirrors the modal's input fields.
type Form struct {
	Time         string
	Description  string
	Participants string
}

// Editor is the event modal bound to a single selected date-key.
type Editor struct {
	Selected string
	Visible  bool
	Title    string
	Form     Form
}

// Open selects key and fills the form from the stored event, or defaults.
func (e *Editor) Open(key string, st Store, l locale.Locale) error {
	k, err := model.NormalizeDateKey(key)
	if err != nil {
		return err
	}
	e.Selected = k
	e.Form = Form{Time: model.DefaultTime}
	if ev, ok := st.Get(k); ok {
		e.Form = Form{Time: ev.Time, Description: ev.Description, Participants: ev.Participants}
		if !model.IsTimeSlot(e.Form.Time) {
			e.Form.Time = model.DefaultTime
		}
	}
	if l.Tag == "" {
		l = locale.Get("en")
	}
	d, _ := model.ParseDateKey(k)
	e.Title = l.ManageFor + " " + l.LongDate(d)
	e.Visible = true
	return nil
}

// Close hides the modal. The selection stays until the next Open.
func (e *Editor) Close() {
	e.Visible = false
}

// Event builds the record the form currently describes.
func (e *Editor) Event() model.Event {
	return model.Event{
		Date:         e.Selected,
		Time:         e.Form.Time,
		Description:  strings.TrimSpace(e.Form.Description),
		Participants: strings.TrimSpace(e.Form.Participants),
	}
}

// Save stores the form under the selected key (create or update) and closes.
// The modal stays open if persisting fails.
func (e *Editor) Save(ctx context.Context, st Store) error {
	if e.Selected == "" {
		return errNoSelection
	}
	if err := st.Put(ctx, e.Selected, e.Event()); err != nil {
		return err
	}
	e.Close()
	return nil
}

// Delete removes the event at the selected key (absent is fine) and closes.
func (e *Editor) Delete(ctx context.Context, st Store) error {
	if e.Selected == "" {
		return errNoSelection
	}
	if err := st.Remove(ctx, e.Selected); err != nil {
		return err
	}
	e.Close()
	return nil
}

// CycleTime moves the time field through the half-hour slots, wrapping.
func (e *Editor) CycleTime(delta int) {
	idx := model.TimeSlotIndex(e.Form.Time)
	if idx < 0 {
		idx = 0
		delta = 0
	}
	e.Form.Time = model.SlotAt(idx + delta)
}

type editorError string

func (e editorError) Error() string { return string(e) }

const errNoSelection = editorError("no date selected")
