package booking

import (
	"fmt"
	"time"
)

// Window is the daily operating window within which alternative slots are
// searched, anchored to a single configured timezone for the whole system.
type Window struct {
	openMinute  int
	closeMinute int
	loc         *time.Location
}

// NewWindow parses open/close as "15:04" wall-clock times in the given zone
// name. Close must be after open.
func NewWindow(open, close, timezone string) (Window, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return Window{}, fmt.Errorf("invalid window timezone: %w", err)
	}

	openMin, err := parseWallClock(open)
	if err != nil {
		return Window{}, fmt.Errorf("invalid window open time: %w", err)
	}
	closeMin, err := parseWallClock(close)
	if err != nil {
		return Window{}, fmt.Errorf("invalid window close time: %w", err)
	}
	if closeMin <= openMin {
		return Window{}, fmt.Errorf("window close %q must be after open %q", close, open)
	}

	return Window{openMinute: openMin, closeMinute: closeMin, loc: loc}, nil
}

func parseWallClock(s string) (int, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, err
	}
	return t.Hour()*60 + t.Minute(), nil
}

// ForDay returns the window's [open, close) instants on the calendar day that
// contains ref, evaluated in the window's zone.
func (w Window) ForDay(ref time.Time) (time.Time, time.Time) {
	local := ref.In(w.loc)
	midnight := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, w.loc)
	open := midnight.Add(time.Duration(w.openMinute) * time.Minute)
	close := midnight.Add(time.Duration(w.closeMinute) * time.Minute)
	return open, close
}

// FreeSlots sweeps the active bookings, which must be sorted ascending by start
// time, and emits up to max free intervals of exactly duration inside
// [windowStart, windowEnd). Bookings straddling the window boundary still block
// the time they cover: the cursor only advances forward, so an interval that
// began before the window cannot open up time behind it.
//
// A window narrower than duration yields no slots; that is a valid outcome,
// not an error.
func FreeSlots(windowStart, windowEnd time.Time, duration time.Duration, active []*Booking, max int) []Slot {
	if duration <= 0 || max <= 0 {
		return nil
	}

	var slots []Slot
	cursor := windowStart

	for _, b := range active {
		if !Overlaps(windowStart, windowEnd, b.StartTime, b.EndTime) {
			continue
		}
		if b.StartTime.Sub(cursor) >= duration {
			slots = append(slots, Slot{StartTime: cursor, EndTime: cursor.Add(duration)})
			if len(slots) == max {
				return slots
			}
		}
		if b.EndTime.After(cursor) {
			cursor = b.EndTime
		}
	}

	if windowEnd.Sub(cursor) >= duration {
		slots = append(slots, Slot{StartTime: cursor, EndTime: cursor.Add(duration)})
	}

	return slots
}
