package ics

import (
	"bytes"
	"reflect"
	"strings"
	"testing"
	"time"

	"calendar-cli/internal/model"
)

func TestExportImport_RoundTrip(t *testing.T) {
	t.Parallel()

	events := []model.Event{
		{Date: "2024-03-15", Time: "14:30", Description: "Standup", Participants: "Alice, Bob"},
		{Date: "2024-12-31", Time: "23:30", Description: "Fireworks", Participants: ""},
		{Date: "2025-01-01", Time: "00:00", Description: "", Participants: "Everyone"},
		{Date: "2025-01-02", Time: "09:00", Description: `C:\new`, Participants: `x\,y`},
		{Date: "2025-01-03", Time: "10:30", Description: "line one\nline two; back\\slash", Participants: `C:\new`},
	}

	var buf bytes.Buffer
	if err := Export(&buf, events, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)); err != nil {
		t.Fatalf("Export: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "DTSTART:20240315T143000") {
		t.Fatalf("expected floating DTSTART, got:\n%s", out)
	}
	if strings.Count(out, "BEGIN:VEVENT") != 5 {
		t.Fatalf("expected five events:\n%s", out)
	}

	if !strings.Contains(out, `SUMMARY:C:\\new`) || !strings.Contains(out, `X-CALENDAR-PARTICIPANTS:x\\\,y`) {
		t.Fatalf("expected values escaped once, got:\n%s", out)
	}

	got, err := Import(strings.NewReader(out))
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if !reflect.DeepEqual(got, events) {
		t.Fatalf("roundtrip mismatch:\nwant: %#v\ngot:  %#v", events, got)
	}
}

func TestExport_StableUIDs(t *testing.T) {
	t.Parallel()

	if eventUID("2024-03-15") != eventUID("2024-03-15") {
		t.Fatalf("uid not deterministic")
	}
	if eventUID("2024-03-15") == eventUID("2024-03-16") {
		t.Fatalf("uid collision across days")
	}
}

func TestImport_ForeignCalendar(t *testing.T) {
	t.Parallel()

	body := strings.Join([]string{
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"PRODID:-//other//EN",
		"BEGIN:VEVENT",
		"UID:a@x",
		"DTSTAMP:20240101T000000Z",
		"DTSTART:20240410T094500Z",
		"SUMMARY:Planning",
		"ATTENDEE;CN=Carol:mailto:carol@example.com",
		"ATTENDEE:mailto:dave@example.com",
		"END:VEVENT",
		"BEGIN:VEVENT",
		"UID:b@x",
		"DTSTAMP:20240101T000000Z",
		"DTSTART;VALUE=DATE:20240501",
		"SUMMARY:Holiday",
		"END:VEVENT",
		"BEGIN:VEVENT",
		"UID:c@x",
		"DTSTAMP:20240101T000000Z",
		"SUMMARY:No start",
		"END:VEVENT",
		"END:VCALENDAR",
		"",
	}, "\r\n")

	got, err := Import(strings.NewReader(body))
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	want := []model.Event{
		{Date: "2024-04-10", Time: "09:30", Description: "Planning", Participants: "Carol, dave@example.com"},
		{Date: "2024-05-01", Time: "00:00", Description: "Holiday", Participants: ""},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("mismatch:\nwant: %#v\ngot:  %#v", want, got)
	}
}

func TestParseICSTime(t *testing.T) {
	t.Parallel()

	if _, allDay, err := parseICSTime("20240101"); err != nil || !allDay {
		t.Fatalf("date form: allDay=%v err=%v", allDay, err)
	}
	if tm, allDay, err := parseICSTime("20240101T123000"); err != nil || allDay || tm.Hour() != 12 {
		t.Fatalf("floating form: %v %v %v", tm, allDay, err)
	}
	if _, _, err := parseICSTime("nope"); err == nil {
		t.Fatalf("expected error")
	}
}
