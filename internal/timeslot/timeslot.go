// Package timeslot defines the fixed booking grid: 15-minute start times from
// 08:00 AM through 07:45 PM. Times outside the grid are rejected before any
// availability check runs.
package timeslot

import "time"

// Layout is the display format for grid times, e.g. "08:00 AM"
const Layout = "03:04 PM"

const (
	gridStartMinutes = 8 * 60
	gridEndMinutes   = 19*60 + 45
	gridStepMinutes  = 15
)

var (
	grid        []string
	slotMinutes map[string]int
)

func init() {
	slotMinutes = make(map[string]int)
	base := time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)
	for m := gridStartMinutes; m <= gridEndMinutes; m += gridStepMinutes {
		slot := base.Add(time.Duration(m) * time.Minute).Format(Layout)
		grid = append(grid, slot)
		slotMinutes[slot] = m
	}
}

// Grid returns the slot grid in chronological order
func Grid() []string {
	out := make([]string, len(grid))
	copy(out, grid)
	return out
}

// IsValid reports whether s is exactly one of the grid slots
func IsValid(s string) bool {
	_, ok := slotMinutes[s]
	return ok
}

// Minutes returns s as minutes since midnight, used to order bookings
// chronologically. ok is false when s is not on the grid.
func Minutes(s string) (int, bool) {
	m, ok := slotMinutes[s]
	return m, ok
}
