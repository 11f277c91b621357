// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package registry persists the room inventory (seating capacity and
// equipment flags) and the booking calendar in a SQLite database. The
// ranking engine consumes it read-only; the booking write path lives here
// too so the CLI and HTTP API can reserve slots.
package registry

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	_ "github.com/mattn/go-sqlite3"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/roombook/pkg/types"
)

// Store manages the rooms and bookings SQLite database.
type Store struct {
	db *sql.DB
}

// NewStore opens or creates the database at cfg.DBPath and ensures the
// schema exists.
func NewStore(cfg types.RegistryConfig) (*Store, error) {
	path := cfg.DBPath
	if path == "" {
		path = "roombook.db"
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS rooms (
			id TEXT PRIMARY KEY,
			capacity INTEGER NOT NULL,
			projector INTEGER NOT NULL DEFAULT 0,
			blackboard INTEGER NOT NULL DEFAULT 0,
			whiteboard INTEGER NOT NULL DEFAULT 0,
			smartboard INTEGER NOT NULL DEFAULT 0,
			microphone INTEGER NOT NULL DEFAULT 0,
			pc INTEGER NOT NULL DEFAULT 0
		)`,
		`CREATE TABLE IF NOT EXISTS bookings (
			id TEXT PRIMARY KEY,
			booking_id TEXT NOT NULL,
			room_id TEXT NOT NULL REFERENCES rooms(id),
			slot TEXT NOT NULL,
			booked_by TEXT,
			created_at TEXT NOT NULL,
			UNIQUE(room_id, slot)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_bookings_slot ON bookings(slot)`,
		`CREATE INDEX IF NOT EXISTS idx_bookings_booking ON bookings(booking_id)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// inventory is the YAML room inventory file format.
type inventory struct {
	Rooms []types.RoomEquipment `yaml:"rooms"`
}

// SeedSummary holds counts from an inventory seeding run.
type SeedSummary struct {
	Added   int
	Updated int
}

// Seed loads the YAML inventory at path and upserts every room. Seeding
// is idempotent: re-running with the same file updates rooms in place and
// never duplicates them.
func (s *Store) Seed(ctx context.Context, path string) (SeedSummary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return SeedSummary{}, fmt.Errorf("reading inventory %s: %w", path, err)
	}

	var inv inventory
	if err := yaml.Unmarshal(data, &inv); err != nil {
		return SeedSummary{}, fmt.Errorf("parsing inventory %s: %w", path, err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return SeedSummary{}, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	var summary SeedSummary
	for _, room := range inv.Rooms {
		if room.RoomID == "" {
			return SeedSummary{}, fmt.Errorf("inventory %s: room with empty id", path)
		}
		if room.Capacity <= 0 {
			return SeedSummary{}, fmt.Errorf("inventory %s: room %s has capacity %d", path, room.RoomID, room.Capacity)
		}

		var exists int
		err := tx.QueryRowContext(ctx, `SELECT count(*) FROM rooms WHERE id = ?`, room.RoomID).Scan(&exists)
		if err != nil {
			return SeedSummary{}, fmt.Errorf("checking room %s: %w", room.RoomID, err)
		}

		_, err = tx.ExecContext(ctx,
			`INSERT INTO rooms (id, capacity, projector, blackboard, whiteboard, smartboard, microphone, pc)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)
			 ON CONFLICT(id) DO UPDATE SET
				capacity=excluded.capacity, projector=excluded.projector,
				blackboard=excluded.blackboard, whiteboard=excluded.whiteboard,
				smartboard=excluded.smartboard, microphone=excluded.microphone,
				pc=excluded.pc`,
			room.RoomID, room.Capacity,
			room.Projector, room.Blackboard, room.Whiteboard,
			room.Smartboard, room.Microphone, room.PC,
		)
		if err != nil {
			return SeedSummary{}, fmt.Errorf("upserting room %s: %w", room.RoomID, err)
		}

		if exists > 0 {
			summary.Updated++
		} else {
			summary.Added++
		}
	}

	if err := tx.Commit(); err != nil {
		return SeedSummary{}, fmt.Errorf("committing seed: %w", err)
	}
	return summary, nil
}

const roomColumns = `id, capacity, projector, blackboard, whiteboard, smartboard, microphone, pc`

// ListRooms returns every room's equipment record, ordered by id.
func (s *Store) ListRooms(ctx context.Context) ([]types.RoomEquipment, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+roomColumns+` FROM rooms ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("listing rooms: %w", err)
	}
	defer rows.Close()

	var rooms []types.RoomEquipment
	for rows.Next() {
		room, err := scanRoom(rows)
		if err != nil {
			return nil, err
		}
		rooms = append(rooms, room)
	}
	return rooms, rows.Err()
}

// FetchEquipment returns one room's record, or nil when the registry has
// no entry for the id.
func (s *Store) FetchEquipment(ctx context.Context, roomID string) (*types.RoomEquipment, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+roomColumns+` FROM rooms WHERE id = ?`, roomID)
	room, err := scanRoom(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &room, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRoom(r rowScanner) (types.RoomEquipment, error) {
	var room types.RoomEquipment
	err := r.Scan(
		&room.RoomID, &room.Capacity,
		&room.Projector, &room.Blackboard, &room.Whiteboard,
		&room.Smartboard, &room.Microphone, &room.PC,
	)
	if err == sql.ErrNoRows {
		return types.RoomEquipment{}, err
	}
	if err != nil {
		return types.RoomEquipment{}, fmt.Errorf("scanning room: %w", err)
	}
	return room, nil
}
