package shop

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// June 2, 2025 is a Monday.
func monday(hour, min int) time.Time {
	return time.Date(2025, time.June, 2, hour, min, 0, 0, time.UTC)
}

func tuesday(hour, min int) time.Time {
	return time.Date(2025, time.June, 3, hour, min, 0, 0, time.UTC)
}

func mondaySchedule(open, close string) WeeklySchedule {
	return WeeklySchedule{
		"monday": {Open: open, Close: close},
	}
}

func TestComputeStatus_NoWorkingHours(t *testing.T) {
	t.Run("Defaults to always open", func(t *testing.T) {
		st := ComputeStatus(&Shop{IsOnline: true}, monday(3, 0))
		assert.True(t, st.IsOpen)
		assert.Equal(t, ReasonSchedule, st.Reason)
	})

	t.Run("Explicit offline override wins", func(t *testing.T) {
		at := monday(8, 0)
		st := ComputeStatus(&Shop{IsOnline: false, ManualOverrideAt: &at}, monday(9, 0))
		assert.False(t, st.IsOpen)
		assert.Equal(t, ReasonOverride, st.Reason)
	})
}

func TestComputeStatus_Schedule(t *testing.T) {
	t.Run("Within regular hours", func(t *testing.T) {
		s := &Shop{WorkingHours: mondaySchedule("09:00", "18:00")}
		assert.True(t, ComputeStatus(s, monday(12, 0)).IsOpen)
		assert.False(t, ComputeStatus(s, monday(8, 59)).IsOpen)
		assert.False(t, ComputeStatus(s, monday(18, 1)).IsOpen)
	})

	t.Run("Boundary minutes are inclusive", func(t *testing.T) {
		s := &Shop{WorkingHours: mondaySchedule("09:00", "18:00")}
		assert.True(t, ComputeStatus(s, monday(9, 0)).IsOpen)
		assert.True(t, ComputeStatus(s, monday(18, 0)).IsOpen)
	})

	t.Run("Open equals close means 24 hours", func(t *testing.T) {
		for _, hours := range []WeeklySchedule{
			mondaySchedule("00:00", "00:00"),
			mondaySchedule("0:00", "0:00"),
			mondaySchedule("13:30", "13:30"),
		} {
			s := &Shop{WorkingHours: hours}
			assert.True(t, ComputeStatus(s, monday(0, 0)).IsOpen)
			assert.True(t, ComputeStatus(s, monday(23, 59)).IsOpen)
		}
	})

	t.Run("Explicit 24 hour flag", func(t *testing.T) {
		s := &Shop{WorkingHours: WeeklySchedule{"monday": {Is24Hours: true}}}
		assert.True(t, ComputeStatus(s, monday(4, 30)).IsOpen)
	})

	t.Run("Overnight span", func(t *testing.T) {
		s := &Shop{WorkingHours: mondaySchedule("22:00", "06:00")}
		assert.True(t, ComputeStatus(s, monday(23, 30)).IsOpen)
		assert.True(t, ComputeStatus(s, monday(5, 0)).IsOpen)
		assert.False(t, ComputeStatus(s, monday(12, 0)).IsOpen)
	})

	t.Run("Closed day", func(t *testing.T) {
		s := &Shop{WorkingHours: WeeklySchedule{"monday": {Open: "09:00", Close: "18:00", Closed: true}}}
		assert.False(t, ComputeStatus(s, monday(12, 0)).IsOpen)
	})

	t.Run("Missing day entry closes that day only", func(t *testing.T) {
		s := &Shop{WorkingHours: mondaySchedule("09:00", "18:00")}
		st := ComputeStatus(s, tuesday(12, 0))
		assert.False(t, st.IsOpen)
		assert.Equal(t, ReasonSchedule, st.Reason)
	})

	t.Run("Single digit hour strings", func(t *testing.T) {
		s := &Shop{WorkingHours: mondaySchedule("9:00", "18:00")}
		assert.True(t, ComputeStatus(s, monday(9, 30)).IsOpen)
		assert.False(t, ComputeStatus(s, monday(8, 30)).IsOpen)
	})
}

func TestComputeStatus_ManualOverride(t *testing.T) {
	hours := mondaySchedule("09:00", "18:00")

	t.Run("Manual close before opening auto-resets at opening", func(t *testing.T) {
		// Owner toggles offline at 08:00 Monday; at 09:00 the scheduled
		// window begins and the override expires.
		at := monday(8, 0)
		s := &Shop{WorkingHours: hours, IsOnline: false, ManualOverrideAt: &at}

		st := ComputeStatus(s, monday(9, 0))
		assert.True(t, st.IsOpen)
		assert.Equal(t, ReasonSchedule, st.Reason)
	})

	t.Run("Manual close before opening still holds before opening", func(t *testing.T) {
		at := monday(8, 0)
		s := &Shop{WorkingHours: hours, IsOnline: false, ManualOverrideAt: &at}

		st := ComputeStatus(s, monday(8, 30))
		assert.False(t, st.IsOpen)
		assert.Equal(t, ReasonOverride, st.Reason)
	})

	t.Run("Manual close during open window holds for the day", func(t *testing.T) {
		at := monday(11, 0)
		s := &Shop{WorkingHours: hours, IsOnline: false, ManualOverrideAt: &at}

		st := ComputeStatus(s, monday(15, 0))
		assert.False(t, st.IsOpen)
		assert.Equal(t, ReasonOverride, st.Reason)
	})

	t.Run("Manual open persists until the next calendar day", func(t *testing.T) {
		at := monday(7, 0)
		s := &Shop{WorkingHours: hours, IsOnline: true, ManualOverrideAt: &at}

		// Open early despite the schedule saying closed.
		st := ComputeStatus(s, monday(8, 0))
		assert.True(t, st.IsOpen)
		assert.Equal(t, ReasonOverride, st.Reason)

		// Next day the override is stale and the schedule rules again.
		st = ComputeStatus(s, tuesday(8, 0))
		assert.False(t, st.IsOpen)
		assert.Equal(t, ReasonSchedule, st.Reason)
	})

	t.Run("Override from a previous day is ignored", func(t *testing.T) {
		at := monday(16, 0)
		s := &Shop{WorkingHours: WeeklySchedule{
			"monday":  {Open: "09:00", Close: "18:00"},
			"tuesday": {Open: "09:00", Close: "18:00"},
		}, IsOnline: false, ManualOverrideAt: &at}

		st := ComputeStatus(s, tuesday(12, 0))
		assert.True(t, st.IsOpen)
		assert.Equal(t, ReasonSchedule, st.Reason)
	})
}
