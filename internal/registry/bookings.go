// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package registry

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mattn/go-sqlite3"

	"github.com/pdiddy/roombook/internal/schedule"
)

var (
	// ErrSlotTaken is returned when a booking collides with an existing
	// reservation for the same room and slot.
	ErrSlotTaken = errors.New("slot already booked")

	// ErrRoomNotFound is returned when the booked room is not in the
	// registry.
	ErrRoomNotFound = errors.New("room not found")

	// ErrBookingNotFound is returned when cancelling an unknown booking id.
	ErrBookingNotFound = errors.New("booking not found")
)

// Booking is a confirmed reservation covering one or more slots.
type Booking struct {
	ID       string   `json:"id"`
	RoomID   string   `json:"room_id"`
	Slots    []string `json:"slots"`
	BookedBy string   `json:"booked_by,omitempty"`
}

// FetchBookings returns all booked slots from midnight of date through
// the following days, keyed by room id. A days value below 1 is treated
// as 1.
func (s *Store) FetchBookings(ctx context.Context, date string, days int) (schedule.BookedSlots, error) {
	start, err := time.Parse(schedule.DateLayout, date)
	if err != nil {
		return nil, fmt.Errorf("parsing date %q: %w", date, err)
	}
	if days < 1 {
		days = 1
	}
	end := start.AddDate(0, 0, days)

	rows, err := s.db.QueryContext(ctx,
		`SELECT room_id, slot FROM bookings WHERE slot >= ? AND slot < ? ORDER BY room_id, slot`,
		start.Format(schedule.SlotLayout), end.Format(schedule.SlotLayout),
	)
	if err != nil {
		return nil, fmt.Errorf("querying bookings: %w", err)
	}
	defer rows.Close()

	booked := make(schedule.BookedSlots)
	for rows.Next() {
		var roomID, slot string
		if err := rows.Scan(&roomID, &slot); err != nil {
			return nil, fmt.Errorf("scanning booking: %w", err)
		}
		if booked[roomID] == nil {
			booked[roomID] = make(map[string]struct{})
		}
		booked[roomID][slot] = struct{}{}
	}
	return booked, rows.Err()
}

// Book reserves every slot in the window for the room. The whole window
// is reserved atomically: if any slot is already taken the booking fails
// with ErrSlotTaken and nothing is written.
func (s *Store) Book(ctx context.Context, roomID, date, start, end, bookedBy string) (*Booking, error) {
	window, err := schedule.ParseWindow(date, start, end)
	if err != nil {
		return nil, err
	}

	room, err := s.FetchEquipment(ctx, roomID)
	if err != nil {
		return nil, err
	}
	if room == nil {
		return nil, fmt.Errorf("%w: %s", ErrRoomNotFound, roomID)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	booking := &Booking{
		ID:       uuid.NewString(),
		RoomID:   roomID,
		Slots:    window.Slots(),
		BookedBy: bookedBy,
	}
	created := time.Now().UTC().Format(time.RFC3339)

	for _, slot := range booking.Slots {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO bookings (id, booking_id, room_id, slot, booked_by, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
			uuid.NewString(), booking.ID, roomID, slot, bookedBy, created,
		)
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("%w: %s at %s", ErrSlotTaken, roomID, slot)
		}
		if err != nil {
			return nil, fmt.Errorf("inserting booking slot: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing booking: %w", err)
	}
	return booking, nil
}

// Cancel removes every slot of a booking. ErrBookingNotFound is returned
// when the id matches nothing.
func (s *Store) Cancel(ctx context.Context, bookingID string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM bookings WHERE booking_id = ?`, bookingID)
	if err != nil {
		return fmt.Errorf("cancelling booking %s: %w", bookingID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("cancelling booking %s: %w", bookingID, err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrBookingNotFound, bookingID)
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	return errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique
}
