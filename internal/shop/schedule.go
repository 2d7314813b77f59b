package shop

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var weekdays = []string{
	"sunday", "monday", "tuesday", "wednesday", "thursday", "friday", "saturday",
}

// rawDaySchedule accepts both the current format and the legacy database
// format ({isOpen, openTime, closeTime}) in one shape.
type rawDaySchedule struct {
	Open      string `json:"open"`
	Close     string `json:"close"`
	Closed    *bool  `json:"closed"`
	Is24Hours bool   `json:"is24Hours"`
	IsOpen    *bool  `json:"isOpen"`
	OpenTime  string `json:"openTime"`
	CloseTime string `json:"closeTime"`
}

var clockRegex = regexp.MustCompile(`^(\d{1,2}):(\d{2})$`)
var twelveHourRegex = regexp.MustCompile(`^(\d{1,2}):?(\d{2})?\s*(AM|PM)$`)

// parseClock converts "H:MM" or "HH:MM" to minutes since midnight.
func parseClock(s string) (int, bool) {
	m := clockRegex.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return 0, false
	}
	hours, _ := strconv.Atoi(m[1])
	minutes, _ := strconv.Atoi(m[2])
	if hours > 23 || minutes > 59 {
		return 0, false
	}
	return hours*60 + minutes, true
}

// normalizeClock renders a time string in canonical zero-padded form,
// converting 12-hour forms like "8:30 PM" along the way.
func normalizeClock(s string) string {
	clean := strings.ToUpper(strings.TrimSpace(s))

	if m := clockRegex.FindStringSubmatch(clean); m != nil {
		hours, _ := strconv.Atoi(m[1])
		return fmt.Sprintf("%02d:%s", hours, m[2])
	}

	if m := twelveHourRegex.FindStringSubmatch(clean); m != nil {
		hours, _ := strconv.Atoi(m[1])
		minutes := 0
		if m[2] != "" {
			minutes, _ = strconv.Atoi(m[2])
		}
		if m[3] == "PM" && hours != 12 {
			hours += 12
		}
		if m[3] == "AM" && hours == 12 {
			hours = 0
		}
		return fmt.Sprintf("%02d:%02d", hours, minutes)
	}

	return ""
}

// parseDayString handles free-text day entries like "10 AM to 8:30 PM",
// "Closed" or "24/7".
func parseDayString(s string) (DaySchedule, bool) {
	clean := strings.TrimSpace(s)
	lower := strings.ToLower(clean)

	if strings.Contains(lower, "closed") {
		return DaySchedule{Closed: true}, true
	}
	if strings.Contains(lower, "24") {
		return DaySchedule{Open: "00:00", Close: "00:00", Is24Hours: true}, true
	}

	parts := regexp.MustCompile(`\s*(?:to|-|–|—)\s*`).Split(clean, 2)
	if len(parts) == 2 {
		openAt := normalizeClock(parts[0])
		closeAt := normalizeClock(parts[1])
		if openAt != "" && closeAt != "" {
			return DaySchedule{Open: openAt, Close: closeAt}, true
		}
	}

	return DaySchedule{}, false
}

// NormalizeWorkingHours converts any persisted working-hours payload into the
// canonical WeeklySchedule. Day keys are matched case-insensitively; a day
// that cannot be interpreted is simply left out (closed for that day only).
func NormalizeWorkingHours(raw []byte) WeeklySchedule {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}

	var byDay map[string]json.RawMessage
	if err := json.Unmarshal(raw, &byDay); err != nil {
		return nil
	}

	normalized := make(WeeklySchedule)
	for key, val := range byDay {
		day := strings.ToLower(strings.TrimSpace(key))
		if !isWeekday(day) {
			continue
		}

		var asString string
		if err := json.Unmarshal(val, &asString); err == nil {
			if ds, ok := parseDayString(asString); ok {
				normalized[day] = ds
			}
			continue
		}

		var rawDay rawDaySchedule
		if err := json.Unmarshal(val, &rawDay); err != nil {
			continue
		}
		normalized[day] = canonicalDay(rawDay)
	}

	if len(normalized) == 0 {
		return nil
	}
	return normalized
}

func canonicalDay(raw rawDaySchedule) DaySchedule {
	ds := DaySchedule{
		Open:      normalizeClock(firstNonEmpty(raw.Open, raw.OpenTime)),
		Close:     normalizeClock(firstNonEmpty(raw.Close, raw.CloseTime)),
		Is24Hours: raw.Is24Hours,
	}

	if raw.Closed != nil && *raw.Closed {
		ds.Closed = true
	}
	// Legacy rows carry isOpen instead of closed.
	if raw.IsOpen != nil && !*raw.IsOpen {
		ds.Closed = true
	}

	return ds
}

func firstNonEmpty(a, b string) string {
	if strings.TrimSpace(a) != "" {
		return a
	}
	return b
}

func isWeekday(s string) bool {
	for _, d := range weekdays {
		if d == s {
			return true
		}
	}
	return false
}
