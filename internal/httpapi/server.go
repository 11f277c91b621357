// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httpapi exposes the ranking engine and the booking registry
// over HTTP.
package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/pdiddy/roombook/internal/engine"
	"github.com/pdiddy/roombook/internal/registry"
	"github.com/pdiddy/roombook/internal/schedule"
	"github.com/pdiddy/roombook/pkg/types"
)

// Server routes HTTP requests to the ranking engine and the registry.
type Server struct {
	engine   *engine.Engine
	registry *registry.Store
	log      *slog.Logger
}

// NewServer builds a Server. A nil logger falls back to slog.Default.
func NewServer(eng *engine.Engine, reg *registry.Store, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	return &Server{engine: eng, registry: reg, log: log}
}

// Router returns the route table without middleware. Tests use it
// directly; Handler wraps it for serving.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/health", s.health).Methods("GET")
	r.HandleFunc("/rank", s.rank).Methods("POST")
	r.HandleFunc("/book", s.book).Methods("POST")
	r.HandleFunc("/bookings/{id}", s.cancel).Methods("DELETE")
	r.HandleFunc("/rooms", s.listRooms).Methods("GET")
	r.HandleFunc("/rooms/{id}/equipment", s.roomEquipment).Methods("GET")

	return r
}

// Handler returns the router wrapped with access logging.
func (s *Server) Handler(accessLog io.Writer) http.Handler {
	return handlers.LoggingHandler(accessLog, s.Router())
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) rank(w http.ResponseWriter, r *http.Request) {
	var req types.RankingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	defer r.Body.Close()

	outcome, err := s.engine.RankRooms(r.Context(), req)
	if err != nil {
		var verr *schedule.ValidationError
		if errors.As(err, &verr) {
			writeError(w, http.StatusBadRequest, verr.Error())
			return
		}
		s.log.Error("ranking failed", "error", err)
		writeError(w, http.StatusInternalServerError, "ranking failed")
		return
	}

	writeJSON(w, http.StatusOK, rankResponse{
		Status: string(outcome.Status),
		Rooms:  outcome.Rooms,
	})
}

type rankResponse struct {
	Status string             `json:"status"`
	Rooms  []types.RankedRoom `json:"rooms"`
}

type bookRequest struct {
	RoomID    string `json:"room_id"`
	Date      string `json:"date"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	BookedBy  string `json:"booked_by"`
}

func (s *Server) book(w http.ResponseWriter, r *http.Request) {
	var req bookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	defer r.Body.Close()

	if req.RoomID == "" {
		writeError(w, http.StatusBadRequest, "room_id is required")
		return
	}

	booking, err := s.registry.Book(r.Context(), req.RoomID, req.Date, req.StartTime, req.EndTime, req.BookedBy)
	switch {
	case err == nil:
		writeJSON(w, http.StatusCreated, booking)
	case errors.Is(err, registry.ErrSlotTaken):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, registry.ErrRoomNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	default:
		var verr *schedule.ValidationError
		if errors.As(err, &verr) {
			writeError(w, http.StatusBadRequest, verr.Error())
			return
		}
		s.log.Error("booking failed", "room", req.RoomID, "error", err)
		writeError(w, http.StatusInternalServerError, "booking failed")
	}
}

func (s *Server) cancel(w http.ResponseWriter, r *http.Request) {
	bookingID := mux.Vars(r)["id"]

	err := s.registry.Cancel(r.Context(), bookingID)
	switch {
	case err == nil:
		w.WriteHeader(http.StatusNoContent)
	case errors.Is(err, registry.ErrBookingNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	default:
		s.log.Error("cancel failed", "booking", bookingID, "error", err)
		writeError(w, http.StatusInternalServerError, "cancel failed")
	}
}

func (s *Server) listRooms(w http.ResponseWriter, r *http.Request) {
	rooms, err := s.registry.ListRooms(r.Context())
	if err != nil {
		s.log.Error("listing rooms failed", "error", err)
		writeError(w, http.StatusInternalServerError, "listing rooms failed")
		return
	}
	if rooms == nil {
		rooms = []types.RoomEquipment{}
	}
	writeJSON(w, http.StatusOK, rooms)
}

func (s *Server) roomEquipment(w http.ResponseWriter, r *http.Request) {
	roomID := mux.Vars(r)["id"]

	room, err := s.registry.FetchEquipment(r.Context(), roomID)
	if err != nil {
		s.log.Error("fetching equipment failed", "room", roomID, "error", err)
		writeError(w, http.StatusInternalServerError, "fetching equipment failed")
		return
	}
	if room == nil {
		writeError(w, http.StatusNotFound, "room not found")
		return
	}
	writeJSON(w, http.StatusOK, room)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
