package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/homewiz/homewiz-backend/internal/usecase"
)

type OperatorHandler struct {
	UC     *usecase.OperatorUseCase
	Logger *zap.Logger
}

func NewOperatorHandler(uc *usecase.OperatorUseCase, logger *zap.Logger) *OperatorHandler {
	return &OperatorHandler{UC: uc, Logger: logger}
}

func (h *OperatorHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input usecase.CreateOperatorInput
	if !decodeJSON(w, r, &input) {
		return
	}

	op, err := h.UC.Create(r.Context(), input)
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, newEnvelope("Operator created successfully", op).with("operator_id", op.ID))
}

func (h *OperatorHandler) List(w http.ResponseWriter, r *http.Request) {
	ops, err := h.UC.List(r.Context())
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, ops)
}

func (h *OperatorHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "operatorId"), 10, 64)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "operator id must be a number")
		return
	}
	op, err := h.UC.Get(r.Context(), id)
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, op)
}
