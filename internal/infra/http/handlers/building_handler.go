package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/homewiz/homewiz-backend/internal/infra/http/middleware"
	"github.com/homewiz/homewiz-backend/internal/usecase"
)

type BuildingHandler struct {
	Buildings *usecase.BuildingUseCase
	Rooms     *usecase.RoomUseCase
	Logger    *zap.Logger
}

func NewBuildingHandler(buildings *usecase.BuildingUseCase, rooms *usecase.RoomUseCase, logger *zap.Logger) *BuildingHandler {
	return &BuildingHandler{Buildings: buildings, Rooms: rooms, Logger: logger}
}

func (h *BuildingHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input usecase.CreateBuildingInput
	if !decodeJSON(w, r, &input) {
		return
	}

	b, err := h.Buildings.Create(r.Context(), input)
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, newEnvelope("Building created successfully", b).with("building_id", b.BuildingID))
}

func (h *BuildingHandler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.Buildings.List(r.Context())
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *BuildingHandler) Get(w http.ResponseWriter, r *http.Request) {
	b, err := h.Buildings.Get(r.Context(), chi.URLParam(r, "buildingId"))
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, b)
}

func (h *BuildingHandler) GenerateRooms(w http.ResponseWriter, r *http.Request) {
	out, err := h.Rooms.Generate(r.Context(), chi.URLParam(r, "buildingId"))
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}
	middleware.RecordRoomsGenerated(out.Generated, out.Dropped)
	writeJSON(w, http.StatusCreated, newEnvelope("Rooms generated successfully", out).with("building_id", out.BuildingID))
}
