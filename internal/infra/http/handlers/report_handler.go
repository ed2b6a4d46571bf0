package handlers

import (
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/homewiz/homewiz-backend/internal/infra/report"
	"github.com/homewiz/homewiz-backend/internal/usecase"
)

type ReportHandler struct {
	RentRoll *usecase.RentRollUseCase
	Logger   *zap.Logger
}

func NewReportHandler(rentRoll *usecase.RentRollUseCase, logger *zap.Logger) *ReportHandler {
	return &ReportHandler{RentRoll: rentRoll, Logger: logger}
}

// RentRollXLSX streams the rent roll as a spreadsheet attachment.
func (h *ReportHandler) RentRollXLSX(w http.ResponseWriter, r *http.Request) {
	rr, err := h.RentRoll.Execute(r.Context())
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}
	data, err := report.GenerateRentRoll(rr)
	if err != nil {
		h.Logger.Error("failed to render rent roll", zap.Error(err))
		writeMessage(w, http.StatusInternalServerError, "internal error")
		return
	}

	filename := fmt.Sprintf("rent_roll_%s.xlsx", time.Now().UTC().Format("20060102"))
	w.Header().Set("Content-Type", report.ContentTypeXLSX)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	w.Header().Set("Content-Length", fmt.Sprintf("%d", len(data)))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}
