package calendar

import (
	"time"

	"calendar-cli/internal/model"
)

func DaysInMonth(y int, m time.Month) int {
	// Day 0 of next month is last day of this month.
	return time.Date(y, m+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func clampDay(y int, m time.Month, d int) int {
	if d < 1 {
		return 1
	}
	max := DaysInMonth(y, m)
	if d > max {
		return max
	}
	return d
}

// FirstWeekday returns the number of leading blank cells before day 1 of the
// month when weeks start on weekStart (0 when the 1st falls on weekStart).
func FirstWeekday(y int, m time.Month, weekStart time.Weekday) int {
	wd := time.Date(y, m, 1, 0, 0, 0, 0, time.UTC).Weekday()
	return (int(wd) - int(weekStart) + 7) % 7
}

// State is the view state: an anchor date plus the active view mode.
//
// Day is the requested day of month and may exceed the month length after
// month/year steps (Jan 31 -> Feb keeps Day=31). Anchor clamps it, so stepping
// back returns to the original date.
type State struct {
	Year  int
	Month time.Month
	Day   int
	Mode  model.ViewMode
}

// New returns the startup state: today, monthly view.
func New(now time.Time) State {
	return State{Year: now.Year(), Month: now.Month(), Day: now.Day(), Mode: model.ViewMonthly}
}

// Anchor returns the effective anchor date (midnight UTC).
func (s State) Anchor() time.Time {
	return time.Date(s.Year, s.Month, clampDay(s.Year, s.Month, s.Day), 0, 0, 0, 0, time.UTC)
}

// AnchorKey returns the date-key of the effective anchor date.
func (s State) AnchorKey() string {
	return model.KeyOf(s.Anchor())
}

func (s State) stepMonths(delta int) State {
	total := s.Year*12 + int(s.Month-1) + delta
	y := total / 12
	mo := total % 12
	if mo < 0 {
		mo += 12
		y--
	}
	s.Year = y
	s.Month = time.Month(mo + 1)
	return s
}

func (s State) stepDays(delta int) State {
	t := s.Anchor().AddDate(0, 0, delta)
	s.Year, s.Month, s.Day = t.Year(), t.Month(), t.Day()
	return s
}

// Step moves the anchor by delta units of the active mode.
func (s State) Step(delta int) State {
	switch s.Mode {
	case model.ViewYearly:
		s.Year += delta
		return s
	case model.ViewDaily:
		return s.stepDays(delta)
	default:
		return s.stepMonths(delta)
	}
}

type ActionKind int

const (
	ActionPrev ActionKind = iota
	ActionNext
	ActionShowMonthly
	ActionShowYearly
	ActionShowDaily
	ActionSelectMonth
	ActionGoTo
	ActionMoveDays
	ActionMoveMonths
)

// Action is a user intent applied to State by Reduce.
type Action struct {
	Kind ActionKind
	// Month is used by ActionSelectMonth.
	Month time.Month
	// Date is used by ActionGoTo.
	Date time.Time
	// Delta is used by ActionMoveDays and ActionMoveMonths.
	Delta int
}

func Prev() Action { return Action{Kind: ActionPrev} }
func Next() Action { return Action{Kind: ActionNext} }
func ShowMonthly() Action { return Action{Kind: ActionShowMonthly} }
func ShowYearly() Action { return Action{Kind: ActionShowYearly} }
func ShowDaily() Action { return Action{Kind: ActionShowDaily} }
func SelectMonth(m time.Month) Action { return Action{Kind: ActionSelectMonth, Month: m} }
func GoTo(date time.Time) Action { return Action{Kind: ActionGoTo, Date: date} }
func MoveDays(n int) Action { return Action{Kind: ActionMoveDays, Delta: n} }
func MoveMonths(n int) Action { return Action{Kind: ActionMoveMonths, Delta: n} }

// ShowMode maps a view mode onto its switch action.
func ShowMode(mode model.ViewMode) Action {
	switch mode {
	case model.ViewYearly:
		return ShowYearly()
	case model.ViewDaily:
		return ShowDaily()
	default:
		return ShowMonthly()
	}
}

// Reduce applies a to s and returns the new state. It never mutates s.
func Reduce(s State, a Action) State {
	switch a.Kind {
	case ActionPrev:
		return s.Step(-1)
	case ActionNext:
		return s.Step(1)
	case ActionShowMonthly:
		s.Mode = model.ViewMonthly
	case ActionShowYearly:
		s.Mode = model.ViewYearly
	case ActionShowDaily:
		s.Mode = model.ViewDaily
	case ActionSelectMonth:
		if a.Month >= time.January && a.Month <= time.December {
			s.Month = a.Month
		}
		s.Mode = model.ViewMonthly
	case ActionGoTo:
		if !a.Date.IsZero() {
			s.Year, s.Month, s.Day = a.Date.Year(), a.Date.Month(), a.Date.Day()
		}
	case ActionMoveDays:
		return s.stepDays(a.Delta)
	case ActionMoveMonths:
		return s.stepMonths(a.Delta)
	}
	return s
}
