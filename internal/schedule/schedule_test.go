// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package schedule

import (
	"errors"
	"reflect"
	"testing"

	"github.com/pdiddy/roombook/pkg/types"
)

func TestParseWindowValidation(t *testing.T) {
	tests := []struct {
		name    string
		date    string
		start   string
		end     string
		wantErr bool
	}{
		{"valid hour", "2026-03-02", "09:00:00", "10:00:00", false},
		{"valid half hour", "2026-03-02", "09:30:00", "10:00:00", false},
		{"end equals start", "2026-03-02", "09:00:00", "09:00:00", true},
		{"end before start", "2026-03-02", "10:00:00", "09:00:00", true},
		{"start off boundary", "2026-03-02", "09:15:00", "10:00:00", true},
		{"end off boundary", "2026-03-02", "09:00:00", "10:10:00", true},
		{"nonzero seconds", "2026-03-02", "09:00:30", "10:00:00", true},
		{"garbage date", "03/02/2026", "09:00:00", "10:00:00", true},
		{"garbage time", "2026-03-02", "late", "10:00:00", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseWindow(tt.date, tt.start, tt.end)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseWindow() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				var verr *ValidationError
				if !errors.As(err, &verr) {
					t.Errorf("error %v is not a ValidationError", err)
				}
			}
		})
	}
}

func TestWindowSlots(t *testing.T) {
	w, err := ParseWindow("2026-03-02", "09:00:00", "10:30:00")
	if err != nil {
		t.Fatal(err)
	}
	want := []string{
		"2026-03-02 09:00:00",
		"2026-03-02 09:30:00",
		"2026-03-02 10:00:00",
	}
	if got := w.Slots(); !reflect.DeepEqual(got, want) {
		t.Errorf("Slots() = %v, want %v", got, want)
	}
}

func room(id string, capacity int) types.RoomEquipment {
	return types.RoomEquipment{RoomID: id, Capacity: capacity}
}

func booked(slots ...string) map[string]struct{} {
	m := make(map[string]struct{}, len(slots))
	for _, s := range slots {
		m[s] = struct{}{}
	}
	return m
}

func window(t *testing.T, date, start, end string) Window {
	t.Helper()
	w, err := ParseWindow(date, start, end)
	if err != nil {
		t.Fatal(err)
	}
	return w
}

func TestFilterAvailableCapacity(t *testing.T) {
	rooms := []types.RoomEquipment{room("small", 4), room("big", 30)}

	got := FilterAvailable(window(t, "2026-03-02", "09:00:00", "10:00:00"), rooms, 10, nil)
	if want := []string{"big"}; !reflect.DeepEqual(got, want) {
		t.Errorf("FilterAvailable() = %v, want %v", got, want)
	}
}

func TestFilterAvailableCollision(t *testing.T) {
	// Room R is booked 09:30; a 09:00-10:00 request needs both the 09:00
	// and 09:30 slots, so R is excluded even though 09:00 is free.
	rooms := []types.RoomEquipment{room("R", 10), room("S", 10)}
	bookings := BookedSlots{
		"R": booked("2026-03-02 09:30:00"),
	}

	got := FilterAvailable(window(t, "2026-03-02", "09:00:00", "10:00:00"), rooms, 1, bookings)
	if want := []string{"S"}; !reflect.DeepEqual(got, want) {
		t.Errorf("FilterAvailable() = %v, want %v", got, want)
	}
}

func TestFilterAvailableAdjacentBookingKept(t *testing.T) {
	// A booking at 10:00 does not block a 09:00-10:00 request: the window
	// is half-open and its last slot is 09:30.
	rooms := []types.RoomEquipment{room("R", 10)}
	bookings := BookedSlots{
		"R": booked("2026-03-02 10:00:00"),
	}

	got := FilterAvailable(window(t, "2026-03-02", "09:00:00", "10:00:00"), rooms, 1, bookings)
	if want := []string{"R"}; !reflect.DeepEqual(got, want) {
		t.Errorf("FilterAvailable() = %v, want %v", got, want)
	}
}

func TestParseWindowReturnsValidationError(t *testing.T) {
	_, err := ParseWindow("2026-03-02", "10:00:00", "09:00:00")
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("error = %v, want ValidationError", err)
	}
}
