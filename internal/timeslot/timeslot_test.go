package timeslot

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGrid(t *testing.T) {
	t.Run("covers 08:00 AM through 07:45 PM in 15 minute steps", func(t *testing.T) {
		slots := Grid()
		assert.Len(t, slots, 48)
		assert.Equal(t, "08:00 AM", slots[0])
		assert.Equal(t, "12:00 PM", slots[16])
		assert.Equal(t, "07:45 PM", slots[len(slots)-1])
	})

	t.Run("is strictly chronological", func(t *testing.T) {
		slots := Grid()
		prev := -1
		for _, s := range slots {
			m, ok := Minutes(s)
			assert.True(t, ok)
			assert.Greater(t, m, prev)
			prev = m
		}
	})

	t.Run("returns a copy", func(t *testing.T) {
		slots := Grid()
		slots[0] = "mutated"
		assert.Equal(t, "08:00 AM", Grid()[0])
	})
}

func TestIsValid(t *testing.T) {
	testCases := []struct {
		name  string
		slot  string
		valid bool
	}{
		{"first slot", "08:00 AM", true},
		{"noon", "12:00 PM", true},
		{"last slot", "07:45 PM", true},
		{"off grid minutes", "08:07 AM", false},
		{"before grid", "07:45 AM", false},
		{"after grid", "08:00 PM", false},
		{"24 hour format", "13:00", false},
		{"missing zero padding", "8:00 AM", false},
		{"lowercase meridiem", "08:00 am", false},
		{"empty", "", false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.valid, IsValid(tc.slot))
		})
	}
}

func TestMinutes(t *testing.T) {
	t.Run("known slots", func(t *testing.T) {
		m, ok := Minutes("08:00 AM")
		assert.True(t, ok)
		assert.Equal(t, 480, m)

		m, ok = Minutes("01:00 PM")
		assert.True(t, ok)
		assert.Equal(t, 780, m)

		m, ok = Minutes("07:45 PM")
		assert.True(t, ok)
		assert.Equal(t, 1185, m)
	})

	t.Run("afternoon sorts after morning", func(t *testing.T) {
		morning, _ := Minutes("08:00 AM")
		afternoon, _ := Minutes("01:00 PM")
		assert.Less(t, morning, afternoon)
	})

	t.Run("off grid", func(t *testing.T) {
		_, ok := Minutes("08:10 AM")
		assert.False(t, ok)
	})
}
