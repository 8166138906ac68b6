package ics

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/google/uuid"

	"calendar-cli/internal/log"
	"calendar-cli/internal/model"
)

const (
	productID = "-//calendar-cli//EN"

	// propParticipants carries the free-text participants field, which is not
	// an address list and so does not fit ATTENDEE.
	propParticipants = ical.ComponentProperty("X-CALENDAR-PARTICIPANTS")

	floatingLayout = "20060102T150405"
	utcLayout      = "20060102T150405Z"
	dateLayout     = "20060102"
)

// uidNamespace makes event UIDs stable per date-key, so re-exporting updates
// instead of duplicating entries in subscribing clients.
var uidNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("calendar-cli"))

func eventUID(dateKey string) string {
	return uuid.NewSHA1(uidNamespace, []byte(dateKey)).String() + "@calendar-cli"
}

// slotStart returns the wall-clock start of ev. Times carry no zone.
func slotStart(ev model.Event) (time.Time, error) {
	d, err := model.ParseDateKey(ev.Date)
	if err != nil {
		return time.Time{}, err
	}
	hm, err := time.Parse("15:04", ev.Time)
	if err != nil {
		hm = time.Time{}
	}
	return time.Date(d.Year(), d.Month(), d.Day(), hm.Hour(), hm.Minute(), 0, 0, time.UTC), nil
}

// Export writes events as an iCalendar document, one VEVENT per day.
// Start times are floating (no TZID) and each event lasts one slot.
func Export(w io.Writer, events []model.Event, now time.Time) error {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(productID)

	for _, ev := range events {
		start, err := slotStart(ev)
		if err != nil {
			log.Debug("skipping event with bad date", "date", ev.Date, "err", err)
			continue
		}
		end := start.Add(30 * time.Minute)

		ve := cal.AddEvent(eventUID(ev.Date))
		ve.SetDtStampTime(now.UTC())
		ve.SetProperty(ical.ComponentPropertyDtStart, start.Format(floatingLayout))
		ve.SetProperty(ical.ComponentPropertyDtEnd, end.Format(floatingLayout))
		ve.SetSummary(ev.Description)
		if strings.TrimSpace(ev.Participants) != "" {
			ve.SetProperty(propParticipants, ev.Participants)
			ve.SetDescription(ev.Participants)
		}
	}
	return cal.SerializeTo(w)
}

// Import reads VEVENTs and maps each onto a date-key and a half-hour slot
// (start rounded down). When a file has several events on one day the last
// one wins, matching the one-event-per-day store.
func Import(r io.Reader) ([]model.Event, error) {
	cal, err := ical.ParseCalendar(r)
	if err != nil {
		return nil, fmt.Errorf("parse ics: %w", err)
	}

	byKey := map[string]int{}
	out := []model.Event{}
	for _, ve := range cal.Events() {
		ev, err := fromVEvent(ve)
		if err != nil {
			log.Debug("skipping vevent", "err", err)
			continue
		}
		if i, ok := byKey[ev.Date]; ok {
			out[i] = ev
			continue
		}
		byKey[ev.Date] = len(out)
		out = append(out, ev)
	}
	return out, nil
}

func fromVEvent(ve *ical.VEvent) (model.Event, error) {
	p := ve.GetProperty(ical.ComponentPropertyDtStart)
	if p == nil || strings.TrimSpace(p.Value) == "" {
		return model.Event{}, errors.New("missing DTSTART")
	}
	start, allDay, err := parseICSTime(p.Value)
	if err != nil {
		return model.Event{}, err
	}

	ev := model.Event{Date: model.KeyOf(start), Time: model.DefaultTime}
	if !allDay {
		ev.Time = model.FloorTimeSlot(start.Hour(), start.Minute())
	}
	if s := ve.GetProperty(ical.ComponentPropertySummary); s != nil {
		ev.Description = strings.TrimSpace(s.Value)
	}
	if pp := ve.GetProperty(propParticipants); pp != nil {
		ev.Participants = strings.TrimSpace(pp.Value)
	} else {
		ev.Participants = attendees(ve)
	}
	return ev, nil
}

// attendees joins ATTENDEE common names, or their addresses without mailto:.
func attendees(ve *ical.VEvent) string {
	var names []string
	for _, a := range ve.GetProperties(ical.ComponentPropertyAttendee) {
		name := ""
		if cn, ok := a.ICalParameters["CN"]; ok && len(cn) > 0 {
			name = strings.TrimSpace(cn[0])
		}
		if name == "" {
			v := strings.TrimSpace(a.Value)
			if len(v) >= len("mailto:") && strings.EqualFold(v[:len("mailto:")], "mailto:") {
				v = v[len("mailto:"):]
			}
			name = v
		}
		if name != "" {
			names = append(names, name)
		}
	}
	return strings.Join(names, ", ")
}

// parseICSTime handles the DATE, floating DATE-TIME and UTC DATE-TIME forms.
// Zoned and UTC values are read as wall-clock time; zones are not converted.
func parseICSTime(v string) (t time.Time, allDay bool, err error) {
	v = strings.TrimSpace(v)
	switch {
	case strings.HasSuffix(v, "Z"):
		t, err = time.Parse(utcLayout, v)
	case strings.Contains(v, "T"):
		t, err = time.Parse(floatingLayout, v)
	default:
		t, err = time.Parse(dateLayout, v)
		allDay = true
	}
	return t, allDay, err
}
