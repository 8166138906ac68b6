package locale

import (
	"fmt"
	"strings"
	"time"
)

// Locale holds the month/weekday names and UI phrases for one language.
type Locale struct {
	Tag          string
	Months       [12]string
	Weekdays     [7]string // long names, Sunday first
	WeekdaysAbbr [7]string // Sunday first
	NoEvents     string
	EventLabel   string
	PeopleLabel  string
	TodayIs      string
	ManageFor    string
	// Editor labels.
	TimeLabel        string
	DescriptionLabel string
	SaveLabel        string
	DeleteLabel      string
	// dateFmt renders day, month name and year.
	dateFmt func(day int, month string, year int) string
}

var en = Locale{
	Tag: "en",
	Months: [12]string{"January", "February", "March", "April", "May", "June",
		"July", "August", "September", "October", "November", "December"},
	Weekdays:     [7]string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"},
	WeekdaysAbbr: [7]string{"Su", "Mo", "Tu", "We", "Th", "Fr", "Sa"},
	NoEvents:     "No events",
	EventLabel:   "Event",
	PeopleLabel:  "Participants",
	TodayIs:      "Today is",
	ManageFor:    "Manage event for",

	TimeLabel:        "Time",
	DescriptionLabel: "Description",
	SaveLabel:        "Save",
	DeleteLabel:      "Delete",
	dateFmt: func(day int, month string, year int) string {
		return fmt.Sprintf("%s %d, %d", month, day, year)
	},
}

var es = Locale{
	Tag: "es",
	Months: [12]string{"enero", "febrero", "marzo", "abril", "mayo", "junio",
		"julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre"},
	Weekdays:     [7]string{"domingo", "lunes", "martes", "miércoles", "jueves", "viernes", "sábado"},
	WeekdaysAbbr: [7]string{"do", "lu", "ma", "mi", "ju", "vi", "sá"},
	NoEvents:     "No hay eventos",
	EventLabel:   "Evento",
	PeopleLabel:  "Participantes",
	TodayIs:      "Hoy es",
	ManageFor:    "Gestionar evento para el",

	TimeLabel:        "Hora",
	DescriptionLabel: "Descripción",
	SaveLabel:        "Guardar",
	DeleteLabel:      "Eliminar",
	dateFmt: func(day int, month string, year int) string {
		return fmt.Sprintf("%d de %s de %d", day, month, year)
	},
}

// Get returns the locale for tag, falling back to English.
func Get(tag string) Locale {
	switch strings.ToLower(strings.TrimSpace(tag)) {
	case "es", "es-es":
		return es
	default:
		return en
	}
}

func (l Locale) MonthName(m time.Month) string {
	if m < time.January || m > time.December {
		return ""
	}
	return l.Months[m-1]
}

// Title capitalizes the first letter (Spanish month names are lowercase in running text).
func Title(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	return strings.ToUpper(string(r[0])) + string(r[1:])
}

// MonthYear is the monthly view title, e.g. "March 2024".
func (l Locale) MonthYear(m time.Month, year int) string {
	return fmt.Sprintf("%s %d", Title(l.MonthName(m)), year)
}

// LongDate renders e.g. "March 15, 2024" / "15 de marzo de 2024".
func (l Locale) LongDate(t time.Time) string {
	return l.dateFmt(t.Day(), l.MonthName(t.Month()), t.Year())
}

// LongDateWithWeekday renders e.g. "Friday, March 15, 2024".
func (l Locale) LongDateWithWeekday(t time.Time) string {
	return l.Weekdays[t.Weekday()] + ", " + l.LongDate(t)
}

// WeekHeader returns the weekday abbreviations starting at start.
func (l Locale) WeekHeader(start time.Weekday) []string {
	out := make([]string, 0, 7)
	for i := 0; i < 7; i++ {
		out = append(out, l.WeekdaysAbbr[(int(start)+i)%7])
	}
	return out
}
