// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package engine orchestrates the room ranking pipeline: availability
// filter, decision matrix build, and TOPSIS ranking. It owns no storage
// or connections; collaborators are supplied as interfaces and each
// request builds its state from scratch, so concurrent requests are
// independent as long as the collaborators tolerate concurrent reads.
package engine

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/pdiddy/roombook/internal/compliance"
	"github.com/pdiddy/roombook/internal/decision"
	"github.com/pdiddy/roombook/internal/schedule"
	"github.com/pdiddy/roombook/pkg/types"
)

// SensorStore supplies sensor history per (room, sensor) pair. An empty
// series means no data; implementations must be safe for concurrent reads.
type SensorStore interface {
	FetchSeries(ctx context.Context, roomID, sensor string) ([]types.TimeSeriesPoint, error)
}

// BookingStore supplies existing bookings as per-room slot timestamps
// starting at date for the given number of days.
type BookingStore interface {
	FetchBookings(ctx context.Context, date string, days int) (schedule.BookedSlots, error)
}

// EquipmentRegistry enumerates rooms and serves their static equipment
// records. FetchEquipment returns (nil, nil) for unknown rooms.
type EquipmentRegistry interface {
	ListRooms(ctx context.Context) ([]types.RoomEquipment, error)
	FetchEquipment(ctx context.Context, roomID string) (*types.RoomEquipment, error)
}

// Status tags a ranking outcome so callers can tell an empty result's
// causes apart without parsing logs.
type Status string

const (
	// StatusRanked means at least one room was scored.
	StatusRanked Status = "ranked"

	// StatusNoRoomsAvailable means no room passed the availability and
	// capacity filter.
	StatusNoRoomsAvailable Status = "no_rooms_available"

	// StatusNoCompliantRooms means available rooms existed but none
	// passed every compliance check (or none had an equipment record).
	StatusNoCompliantRooms Status = "no_compliant_rooms"

	// StatusRankingFailed means the TOPSIS stage could not compute a
	// ranking; the pipeline degraded to an empty result.
	StatusRankingFailed Status = "ranking_failed"
)

// Outcome is the tagged result of one ranking request.
type Outcome struct {
	// Rooms is the ranked list, best first. Empty unless Status is
	// StatusRanked.
	Rooms []types.RankedRoom `json:"rooms"`

	// Status explains an empty Rooms slice.
	Status Status `json:"status"`
}

// Engine runs the ranking pipeline against its collaborators.
type Engine struct {
	sensors   SensorStore
	bookings  BookingStore
	registry  EquipmentRegistry
	evaluator *compliance.Evaluator
	logger    *slog.Logger
}

// New wires an Engine. A nil logger falls back to slog.Default.
func New(sensors SensorStore, bookings BookingStore, registry EquipmentRegistry, evaluator *compliance.Evaluator, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		sensors:   sensors,
		bookings:  bookings,
		registry:  registry,
		evaluator: evaluator,
		logger:    logger,
	}
}

// RankRooms executes the full pipeline for one request: validate the
// window, filter rooms by availability and capacity, build the decision
// matrix over all tracked sensors, and rank the survivors.
//
// A malformed request returns a *schedule.ValidationError and no outcome.
// Collaborator failures during enumeration surface as errors. Per-room
// data problems only exclude the affected room, and a ranking-stage
// computation failure degrades to an empty outcome tagged
// StatusRankingFailed, never a panic or error.
func (e *Engine) RankRooms(ctx context.Context, req types.RankingRequest) (Outcome, error) {
	// Validate before touching any collaborator.
	window, err := schedule.ParseWindow(req.Date, req.StartTime, req.EndTime)
	if err != nil {
		return Outcome{}, err
	}

	rooms, err := e.registry.ListRooms(ctx)
	if err != nil {
		return Outcome{}, fmt.Errorf("listing rooms: %w", err)
	}

	booked, err := e.bookings.FetchBookings(ctx, req.Date, 1)
	if err != nil {
		return Outcome{}, fmt.Errorf("fetching bookings: %w", err)
	}

	available := schedule.FilterAvailable(window, rooms, req.SeatingCapacity, booked)
	e.logger.Info("availability filter done",
		slog.Int("candidates", len(rooms)), slog.Int("available", len(available)))
	if len(available) == 0 {
		return Outcome{Rooms: []types.RankedRoom{}, Status: StatusNoRoomsAvailable}, nil
	}

	builder := decision.NewBuilder(e.sensors, e.registry, e.evaluator, e.logger)
	matrix, equipment, err := builder.Build(ctx, available, types.Sensors())
	if err != nil {
		return Outcome{}, fmt.Errorf("building decision matrix: %w", err)
	}
	if matrix.IsEmpty() {
		return Outcome{Rooms: []types.RankedRoom{}, Status: StatusNoCompliantRooms}, nil
	}

	anchors := decision.Anchors(req)
	weights := decision.MergeWeights(req.Weights)

	ranked, err := decision.Rank(matrix, anchors, weights, nil)
	if err != nil {
		// Ranking is best-effort: degrade to an empty, tagged outcome.
		e.logger.Error("ranking failed", slog.Any("err", err))
		return Outcome{Rooms: []types.RankedRoom{}, Status: StatusRankingFailed}, nil
	}

	for i := range ranked {
		ranked[i].Equipment = equipment[ranked[i].RoomID]
	}
	return Outcome{Rooms: ranked, Status: StatusRanked}, nil
}
