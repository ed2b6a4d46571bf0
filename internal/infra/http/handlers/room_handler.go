package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/homewiz/homewiz-backend/internal/entity"
	"github.com/homewiz/homewiz-backend/internal/usecase"
)

type RoomHandler struct {
	UC     *usecase.RoomUseCase
	Logger *zap.Logger
}

func NewRoomHandler(uc *usecase.RoomUseCase, logger *zap.Logger) *RoomHandler {
	return &RoomHandler{UC: uc, Logger: logger}
}

// List accepts an optional building_id query parameter.
func (h *RoomHandler) List(w http.ResponseWriter, r *http.Request) {
	rooms, err := h.UC.List(r.Context(), r.URL.Query().Get("building_id"))
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, rooms)
}

func (h *RoomHandler) Get(w http.ResponseWriter, r *http.Request) {
	room, err := h.UC.Get(r.Context(), chi.URLParam(r, "roomId"))
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, room)
}

func (h *RoomHandler) Occupy(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.UC.Occupy, "Room occupied")
}

func (h *RoomHandler) Release(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.UC.Release, "Room released")
}

func (h *RoomHandler) transition(w http.ResponseWriter, r *http.Request, fn func(context.Context, string) (*entity.Room, error), message string) {
	room, err := fn(r.Context(), chi.URLParam(r, "roomId"))
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, newEnvelope(message, room).with("room_id", room.RoomID))
}
