// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package decision builds the per-request decision matrix and ranks rooms
// with TOPSIS (Technique for Order Preference by Similarity to Ideal
// Solution). A matrix is built fresh for every ranking request and
// discarded with the response.
package decision

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/pdiddy/roombook/internal/compliance"
	"github.com/pdiddy/roombook/pkg/types"
)

// Matrix is a tabular decision structure: one row per candidate room, one
// column per ranking attribute. All rows share the same attribute set, and
// rows exist only for rooms that passed every compliance check.
type Matrix struct {
	attrs   []string
	roomIDs []string
	rows    map[string]map[string]float64
}

// NewMatrix returns an empty matrix over the given attribute columns.
func NewMatrix(attrs []string) *Matrix {
	return &Matrix{
		attrs: append([]string(nil), attrs...),
		rows:  make(map[string]map[string]float64),
	}
}

// Append adds one room's row. Every matrix attribute must be present; rows
// keep their insertion order, which the ranker uses for tie-breaking.
func (m *Matrix) Append(roomID string, row map[string]float64) error {
	if _, ok := m.rows[roomID]; ok {
		return fmt.Errorf("room %s already present in matrix", roomID)
	}
	stored := make(map[string]float64, len(m.attrs))
	for _, attr := range m.attrs {
		v, ok := row[attr]
		if !ok {
			return fmt.Errorf("room %s: missing attribute %q", roomID, attr)
		}
		stored[attr] = v
	}
	m.roomIDs = append(m.roomIDs, roomID)
	m.rows[roomID] = stored
	return nil
}

// Len returns the number of rows.
func (m *Matrix) Len() int { return len(m.roomIDs) }

// IsEmpty reports whether the matrix has no rows.
func (m *Matrix) IsEmpty() bool { return len(m.roomIDs) == 0 }

// Attributes returns the column names in matrix order.
func (m *Matrix) Attributes() []string {
	return append([]string(nil), m.attrs...)
}

// RoomIDs returns the row keys in insertion order.
func (m *Matrix) RoomIDs() []string {
	return append([]string(nil), m.roomIDs...)
}

// Row returns a copy of one room's attribute row.
func (m *Matrix) Row(roomID string) map[string]float64 {
	src, ok := m.rows[roomID]
	if !ok {
		return nil
	}
	row := make(map[string]float64, len(src))
	for k, v := range src {
		row[k] = v
	}
	return row
}

// SeriesFetcher supplies sensor history for a room. Implemented by the
// sensor time-series store; may return an empty series when no data
// exists for the pair.
type SeriesFetcher interface {
	FetchSeries(ctx context.Context, roomID, sensor string) ([]types.TimeSeriesPoint, error)
}

// EquipmentLookup supplies static equipment records. A nil record with a
// nil error means the registry has no entry for the room.
type EquipmentLookup interface {
	FetchEquipment(ctx context.Context, roomID string) (*types.RoomEquipment, error)
}

// Builder assembles the decision matrix for a set of candidate rooms.
type Builder struct {
	fetcher   SeriesFetcher
	equipment EquipmentLookup
	evaluator *compliance.Evaluator
	logger    *slog.Logger
}

// NewBuilder wires a Builder. A nil logger falls back to slog.Default.
func NewBuilder(fetcher SeriesFetcher, equipment EquipmentLookup, evaluator *compliance.Evaluator, logger *slog.Logger) *Builder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Builder{fetcher: fetcher, equipment: equipment, evaluator: evaluator, logger: logger}
}

// Build evaluates every candidate room over every sensor and returns the
// matrix of survivors plus their equipment records.
//
// Per room the sensor loop fails fast: the first non-compliant or
// unavailable sensor drops the room and the remaining sensors are not
// fetched. A fetch error or empty series counts as unavailable data for
// that room only; it is logged and the room excluded, never surfaced as a
// batch failure. Rooms without an equipment record are dropped even when
// environmentally compliant. An empty result means "no eligible room",
// not an error.
func (b *Builder) Build(ctx context.Context, roomIDs, sensors []string) (*Matrix, map[string]types.RoomEquipment, error) {
	attrs := append(append([]string(nil), sensors...), types.EquipmentAttributes()...)
	matrix := NewMatrix(attrs)
	equipment := make(map[string]types.RoomEquipment)

	for _, roomID := range roomIDs {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}

		row, ok := b.evaluateRoom(ctx, roomID, sensors)
		if !ok {
			continue
		}

		eq, err := b.equipment.FetchEquipment(ctx, roomID)
		if err != nil {
			b.logger.Warn("equipment lookup failed, excluding room",
				slog.String("room", roomID), slog.Any("err", err))
			continue
		}
		if eq == nil {
			b.logger.Info("no equipment record, excluding room", slog.String("room", roomID))
			continue
		}

		row[types.AttrCapacity] = float64(eq.Capacity)
		for attr, v := range eq.Flags() {
			row[attr] = v
		}

		if err := matrix.Append(roomID, row); err != nil {
			return nil, nil, fmt.Errorf("assembling matrix row: %w", err)
		}
		equipment[roomID] = *eq
	}

	return matrix, equipment, nil
}

// evaluateRoom runs the fail-fast compliance sweep for one room. The
// second return value is false when the room must be excluded.
func (b *Builder) evaluateRoom(ctx context.Context, roomID string, sensors []string) (map[string]float64, bool) {
	row := make(map[string]float64, len(sensors))

	for _, sensor := range sensors {
		series, err := b.fetcher.FetchSeries(ctx, roomID, sensor)
		if err != nil {
			b.logger.Warn("sensor fetch failed, excluding room",
				slog.String("room", roomID), slog.String("sensor", sensor), slog.Any("err", err))
			return nil, false
		}

		result := b.evaluator.Evaluate(sensor, series, -1)
		if !result.Compliant {
			b.logger.Info("room failed compliance",
				slog.String("room", roomID), slog.String("sensor", sensor), slog.String("reason", result.Reason))
			return nil, false
		}
		row[sensor] = result.Representative
	}

	return row, true
}
