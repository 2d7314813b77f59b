package shop

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClock(t *testing.T) {
	cases := []struct {
		input   string
		minutes int
		ok      bool
	}{
		{"09:00", 540, true},
		{"9:00", 540, true},
		{"0:00", 0, true},
		{"23:59", 1439, true},
		{"24:00", 0, false},
		{"12:60", 0, false},
		{"nine", 0, false},
		{"", 0, false},
	}

	for _, c := range cases {
		got, ok := parseClock(c.input)
		assert.Equal(t, c.ok, ok, c.input)
		if c.ok {
			assert.Equal(t, c.minutes, got, c.input)
		}
	}
}

func TestNormalizeWorkingHours(t *testing.T) {
	t.Run("Current format", func(t *testing.T) {
		raw := []byte(`{"monday": {"open": "9:00", "close": "18:00", "closed": false}}`)
		hours := NormalizeWorkingHours(raw)

		require.Contains(t, hours, "monday")
		assert.Equal(t, "09:00", hours["monday"].Open)
		assert.Equal(t, "18:00", hours["monday"].Close)
		assert.False(t, hours["monday"].Closed)
	})

	t.Run("Legacy database format", func(t *testing.T) {
		raw := []byte(`{"Monday": {"isOpen": true, "openTime": "10:00", "closeTime": "20:30"},
			"Tuesday": {"isOpen": false, "openTime": "10:00", "closeTime": "20:30"}}`)
		hours := NormalizeWorkingHours(raw)

		require.Contains(t, hours, "monday")
		assert.Equal(t, "10:00", hours["monday"].Open)
		assert.Equal(t, "20:30", hours["monday"].Close)
		assert.False(t, hours["monday"].Closed)

		require.Contains(t, hours, "tuesday")
		assert.True(t, hours["tuesday"].Closed)
	})

	t.Run("Free text day entries", func(t *testing.T) {
		raw := []byte(`{"monday": "10 AM to 8:30 PM", "tuesday": "Closed", "wednesday": "24/7"}`)
		hours := NormalizeWorkingHours(raw)

		require.Contains(t, hours, "monday")
		assert.Equal(t, "10:00", hours["monday"].Open)
		assert.Equal(t, "20:30", hours["monday"].Close)

		assert.True(t, hours["tuesday"].Closed)
		assert.True(t, hours["wednesday"].Is24Hours)
	})

	t.Run("Unknown keys and garbage skipped", func(t *testing.T) {
		raw := []byte(`{"monday": {"open": "09:00", "close": "18:00"}, "someday": {"open": "09:00"}, "tuesday": 42}`)
		hours := NormalizeWorkingHours(raw)

		assert.Contains(t, hours, "monday")
		assert.NotContains(t, hours, "someday")
		assert.NotContains(t, hours, "tuesday")
	})

	t.Run("Empty and null payloads", func(t *testing.T) {
		assert.Nil(t, NormalizeWorkingHours(nil))
		assert.Nil(t, NormalizeWorkingHours([]byte("null")))
		assert.Nil(t, NormalizeWorkingHours([]byte("not json")))
		assert.Nil(t, NormalizeWorkingHours([]byte("{}")))
	})
}
