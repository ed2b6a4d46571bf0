package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/homewiz/homewiz-backend/internal/usecase"
)

type ErrorResponse struct {
	Success bool   `json:"success"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message"`
}

// Envelope is the body of create and lifecycle responses. The id of the
// touched entity is added under its own key, e.g. "lead_id".
type Envelope map[string]any

func newEnvelope(message string, data any) Envelope {
	return Envelope{"success": true, "message": message, "data": data}
}

func (e Envelope) with(key string, value any) Envelope {
	e[key] = value
	return e
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, ErrorResponse{Success: false, Message: message})
}

// StatusForCode maps a use case error code onto an HTTP status.
func StatusForCode(code string) int {
	switch code {
	case usecase.CodeNotFound:
		return http.StatusNotFound
	case usecase.CodeConflict:
		return http.StatusConflict
	case usecase.CodeValidation:
		return http.StatusBadRequest
	case usecase.CodeConfiguration:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, logger *zap.Logger, err error) {
	code := usecase.ErrorCode(err)
	if code == "" {
		code = usecase.CodeStorage
	}
	status := StatusForCode(code)
	message := err.Error()
	if status >= http.StatusInternalServerError {
		logger.Error("request failed", zap.String("code", code), zap.Error(err))
		message = "internal error"
	}
	writeJSON(w, status, ErrorResponse{Success: false, Code: code, Message: message})
}

// decodeJSON reports a 400 itself and returns false when the body is not valid JSON.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Success: false,
			Code:    usecase.CodeValidation,
			Message: "Invalid JSON: " + err.Error(),
		})
		return false
	}
	return true
}
