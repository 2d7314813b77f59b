package shop

import (
	"strings"
	"time"
)

// ComputeStatus reconciles a shop's weekly schedule with its manual
// online/offline override and returns the effective open/closed verdict.
// now must already be in the shop's local timezone.
//
// The override is deliberately asymmetric: a manual close expires as soon as
// the next scheduled opening begins (owners forget to flip the switch back),
// while a manual open holds for the rest of the calendar day.
func ComputeStatus(s *Shop, now time.Time) Status {
	// No configured hours at all: treat as 24/7 unless the owner has
	// explicitly gone offline.
	if len(s.WorkingHours) == 0 {
		if !s.IsOnline && s.ManualOverrideAt != nil {
			return Status{IsOpen: false, Reason: ReasonOverride}
		}
		return Status{IsOpen: true, Reason: ReasonSchedule}
	}

	within := withinSchedule(s.WorkingHours, now)

	if overrideExpired(s, now) {
		return Status{IsOpen: within, Reason: ReasonSchedule}
	}

	return Status{IsOpen: s.IsOnline, Reason: ReasonOverride}
}

// withinSchedule reports whether now falls inside today's scheduled window.
func withinSchedule(hours WeeklySchedule, now time.Time) bool {
	today, ok := hours[weekdayName(now)]
	if !ok || today.Closed {
		return false
	}
	if today.Is24Hours {
		return true
	}

	openMin, okOpen := parseClock(today.Open)
	closeMin, okClose := parseClock(today.Close)
	if !okOpen || !okClose {
		return false
	}

	// open == close means round-the-clock operation.
	if openMin == closeMin {
		return true
	}

	nowMin := now.Hour()*60 + now.Minute()

	// An open later than close spans midnight (e.g. 22:00-06:00).
	if openMin > closeMin {
		return nowMin >= openMin || nowMin <= closeMin
	}
	return nowMin >= openMin && nowMin <= closeMin
}

// overrideExpired decides whether the manual toggle still applies.
func overrideExpired(s *Shop, now time.Time) bool {
	if s.ManualOverrideAt == nil {
		return true
	}

	override := s.ManualOverrideAt.In(now.Location())

	// Overrides never outlive the calendar day they were set on.
	if override.Year() != now.Year() || override.YearDay() != now.YearDay() {
		return true
	}

	// A manual close set before today's opening auto-resets once the
	// scheduled window begins.
	if !s.IsOnline {
		if openMin, ok := todayOpening(s.WorkingHours, now); ok {
			overrideMin := override.Hour()*60 + override.Minute()
			nowMin := now.Hour()*60 + now.Minute()
			if overrideMin < openMin && nowMin >= openMin {
				return true
			}
		}
	}

	return false
}

// todayOpening returns today's scheduled opening in minutes since midnight.
func todayOpening(hours WeeklySchedule, now time.Time) (int, bool) {
	today, ok := hours[weekdayName(now)]
	if !ok || today.Closed {
		return 0, false
	}
	if today.Is24Hours {
		return 0, true
	}
	return parseClock(today.Open)
}

func weekdayName(t time.Time) string {
	return strings.ToLower(t.Weekday().String())
}
