package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/homewiz/homewiz-backend/internal/infra/http/middleware"
	"github.com/homewiz/homewiz-backend/internal/usecase"
)

type TenantHandler struct {
	UC     *usecase.TenantUseCase
	Logger *zap.Logger
}

func NewTenantHandler(uc *usecase.TenantUseCase, logger *zap.Logger) *TenantHandler {
	return &TenantHandler{UC: uc, Logger: logger}
}

func (h *TenantHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input usecase.CreateTenantInput
	if !decodeJSON(w, r, &input) {
		return
	}

	tenant, err := h.UC.Create(r.Context(), input)
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}
	middleware.RecordTenantCreated("direct")
	writeJSON(w, http.StatusCreated, newEnvelope("Tenant created successfully", tenant).with("tenant_id", tenant.TenantID))
}

func (h *TenantHandler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.UC.List(r.Context())
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *TenantHandler) Get(w http.ResponseWriter, r *http.Request) {
	tenant, err := h.UC.Get(r.Context(), chi.URLParam(r, "tenantId"))
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, tenant)
}

func (h *TenantHandler) End(w http.ResponseWriter, r *http.Request) {
	tenant, err := h.UC.End(r.Context(), chi.URLParam(r, "tenantId"))
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, newEnvelope("Tenancy ended", tenant).with("tenant_id", tenant.TenantID))
}

func (h *TenantHandler) UpdatePaymentStatus(w http.ResponseWriter, r *http.Request) {
	var input usecase.UpdatePaymentStatusInput
	if !decodeJSON(w, r, &input) {
		return
	}
	tenant, err := h.UC.UpdatePaymentStatus(r.Context(), chi.URLParam(r, "tenantId"), input)
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, newEnvelope("Payment status updated", tenant).with("tenant_id", tenant.TenantID))
}
