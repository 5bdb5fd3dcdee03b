package availability

import (
	"fmt"
	"sort"
	"time"
)

// SeatCategory is one of the venue's bookable seat types. The set is fixed
// per venue; ServiceCategory is the opaque id the timetable API expects.
type SeatCategory struct {
	Key             string
	Label           string
	ServiceCategory string
}

// Slot is one timetable entry. Seconds is the slot start as seconds since
// midnight; a nil Seconds means the entry carries no usable time.
type Slot struct {
	Seconds   *int `json:"seconds"`
	Available bool `json:"available"`
}

// Timetable is the parsed timetable API response:
// data.slots.<date>.<slotID> -> Slot. Fields the watcher does not use are
// dropped on decode.
type Timetable struct {
	Data struct {
		Slots map[string]map[string]Slot `json:"slots"`
	} `json:"data"`
}

// WithinWindow reports whether now's local hour falls in the half-open
// window [startHour, endHour). No wraparound: end <= start means never.
func WithinWindow(now time.Time, startHour, endHour int) bool {
	h := now.Hour()
	return startHour <= h && h < endHour
}

// SecToHM formats seconds since midnight as zero-padded "HH:MM".
func SecToHM(sec int) string {
	return fmt.Sprintf("%02d:%02d", sec/3600, (sec%3600)/60)
}

// AvailableTimes returns the start seconds of every available slot on date
// whose start falls in [startHour, endHour), sorted ascending. A date missing
// from the timetable yields an empty result. Duplicate seconds values are
// kept as-is.
func AvailableTimes(t Timetable, date string, startHour, endHour int) []int {
	startSec := startHour * 3600
	endSec := endHour * 3600

	var out []int
	for _, slot := range t.Data.Slots[date] {
		if slot.Seconds == nil || !slot.Available {
			continue
		}
		s := *slot.Seconds
		if startSec <= s && s < endSec {
			out = append(out, s)
		}
	}
	sort.Ints(out)
	return out
}
