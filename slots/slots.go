package slots

import (
	"fmt"
	"time"
)

// Window defines the pickup window as minutes since midnight, stepped by
// Interval. The grid is inclusive of EndMinutes.
type Window struct {
	StartMinutes int
	EndMinutes   int
	Interval     int
}

// TimeSlot is one bookable pickup time. Value is the canonical "HH:MM"
// form used as part of the reservation counter key; Label is what the
// customer sees.
type TimeSlot struct {
	Minutes int    `json:"minutes"`
	Value   string `json:"value"`
	Label   string `json:"label"`
}

// CoffeeWindow is the morning pickup window: 7:30-8:15 in 5 minute steps.
var CoffeeWindow = Window{
	StartMinutes: 7*60 + 30,
	EndMinutes:   8*60 + 15,
	Interval:     5,
}

const (
	DefaultCapacity = 5
	HighCapacity    = 10

	highCapacityStart = 8 * 60
	highCapacityEnd   = 8*60 + 15
)

// Value formats minutes since midnight as "HH:MM".
func Value(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// Label formats minutes since midnight as a 12-hour clock label.
func Label(minutes int) string {
	hours := minutes / 60
	mins := minutes % 60
	period := "AM"
	if hours >= 12 {
		period = "PM"
	}
	displayHour := (hours+11)%12 + 1
	return fmt.Sprintf("%d:%02d %s", displayHour, mins, period)
}

// Generate returns the full slot grid for a window in ascending order.
func Generate(w Window) []TimeSlot {
	var out []TimeSlot
	for m := w.StartMinutes; m <= w.EndMinutes; m += w.Interval {
		out = append(out, TimeSlot{Minutes: m, Value: Value(m), Label: Label(m)})
	}
	return out
}

// EarliestBookable returns the first minute that may still be offered. For
// a day other than today that is the window start. For today the current
// time (seconds included) is rounded up to the next interval multiple;
// slots in the past are never offered. A result past EndMinutes means the
// window is closed for the day.
func EarliestBookable(w Window, now time.Time, today bool) int {
	if !today {
		return w.StartMinutes
	}
	nowMinutes := float64(now.Hour()*60+now.Minute()) + float64(now.Second())/60
	if nowMinutes <= float64(w.StartMinutes) {
		return w.StartMinutes
	}
	rounded := int(nowMinutes) / w.Interval * w.Interval
	if float64(rounded) < nowMinutes {
		rounded += w.Interval
	}
	return rounded
}

// WindowClosed reports whether no slot in the window can be offered today.
func WindowClosed(w Window, now time.Time, today bool) bool {
	return EarliestBookable(w, now, today) > w.EndMinutes
}

// CapacityFor returns the reservation capacity for a slot. The tail of the
// window is the rush period and gets double capacity.
func CapacityFor(minutes int) int {
	if minutes >= highCapacityStart && minutes <= highCapacityEnd {
		return HighCapacity
	}
	return DefaultCapacity
}

// Available filters the slot grid down to what can still be booked: slots
// at or after the earliest bookable minute whose reservation count is
// below capacity. Counts are keyed by the slot's "HH:MM" value. Ordering
// follows the grid, ascending.
func Available(w Window, now time.Time, today bool, counts map[string]int) []TimeSlot {
	earliest := EarliestBookable(w, now, today)
	if earliest > w.EndMinutes {
		return nil
	}

	var out []TimeSlot
	for _, slot := range Generate(w) {
		if slot.Minutes < earliest {
			continue
		}
		if counts[slot.Value] >= CapacityFor(slot.Minutes) {
			continue
		}
		out = append(out, slot)
	}
	return out
}
