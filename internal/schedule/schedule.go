// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package schedule validates booking windows and filters rooms by
// availability. Bookings are stored as 30-minute slot timestamps; a window
// is decomposed into consecutive slots and a room qualifies only when none
// of them collide with an existing booking.
package schedule

import (
	"fmt"
	"time"

	"github.com/pdiddy/roombook/pkg/types"
)

const (
	// DateLayout is the wire form of booking dates.
	DateLayout = "2006-01-02"

	// TimeLayout is the wire form of window boundaries.
	TimeLayout = "15:04:05"

	// SlotLayout is the stored form of a 30-minute booking slot.
	SlotLayout = "2006-01-02 15:04:05"

	// SlotDuration is the booking granularity.
	SlotDuration = 30 * time.Minute
)

// ValidationError reports a malformed date or window. The request is
// rejected outright; no partial result is produced.
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string { return e.msg }

func validationErrorf(format string, args ...any) error {
	return &ValidationError{msg: fmt.Sprintf(format, args...)}
}

// Window is a validated half-open booking interval [Start, End) on a
// single date, aligned to 30-minute boundaries.
type Window struct {
	Start time.Time
	End   time.Time
}

// ParseWindow validates date ("YYYY-MM-DD"), start and end ("HH:MM:SS")
// and returns the window. The end must be strictly after the start, both
// must fall on the given date, and both must align to 30-minute
// boundaries with zero seconds. Violations return a *ValidationError;
// nothing is silently coerced.
func ParseWindow(date, startTime, endTime string) (Window, error) {
	start, err := time.Parse(SlotLayout, date+" "+startTime)
	if err != nil {
		return Window{}, validationErrorf("invalid start %q %q: must be %s %s", date, startTime, DateLayout, TimeLayout)
	}
	end, err := time.Parse(SlotLayout, date+" "+endTime)
	if err != nil {
		return Window{}, validationErrorf("invalid end %q %q: must be %s %s", date, endTime, DateLayout, TimeLayout)
	}

	if !end.After(start) {
		return Window{}, validationErrorf("end time %s must be after start time %s", endTime, startTime)
	}
	if start.Minute()%30 != 0 || start.Second() != 0 {
		return Window{}, validationErrorf("start time %s must be on a 30-minute boundary", startTime)
	}
	if end.Minute()%30 != 0 || end.Second() != 0 {
		return Window{}, validationErrorf("end time %s must be on a 30-minute boundary", endTime)
	}

	return Window{Start: start, End: end}, nil
}

// Slots returns the 30-minute slot timestamps covering the window, in
// SlotLayout form: a 09:00-10:00 window yields the 09:00 and 09:30 slots.
func (w Window) Slots() []string {
	var slots []string
	for t := w.Start; t.Before(w.End); t = t.Add(SlotDuration) {
		slots = append(slots, t.Format(SlotLayout))
	}
	return slots
}

// BookedSlots maps room IDs to their existing booking slot timestamps.
type BookedSlots map[string]map[string]struct{}

// FilterAvailable returns the rooms that seat at least minCapacity and
// have no booking in any slot of the window. Rooms come back in input
// order; callers must not rely on any particular order.
//
// Collision is exact slot-string equality, not interval overlap: bookings
// are stored at the same 30-minute granularity the decomposition
// produces, so the two coincide.
func FilterAvailable(window Window, rooms []types.RoomEquipment, minCapacity int, bookings BookedSlots) []string {
	slots := window.Slots()

	available := make([]string, 0, len(rooms))
	for _, room := range rooms {
		if room.Capacity < minCapacity {
			continue
		}
		if collides(bookings[room.RoomID], slots) {
			continue
		}
		available = append(available, room.RoomID)
	}
	return available
}

func collides(booked map[string]struct{}, slots []string) bool {
	if len(booked) == 0 {
		return false
	}
	for _, slot := range slots {
		if _, ok := booked[slot]; ok {
			return true
		}
	}
	return false
}
