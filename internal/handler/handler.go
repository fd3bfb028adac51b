package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"voucher-hub/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Headers are already sent.
		return
	}
}

// writeError writes an error response with the given status code, error code and message.
func writeError(w http.ResponseWriter, status int, code, message string, logger zerolog.Logger) {
	event := logger.Warn()
	if status >= http.StatusInternalServerError {
		event = logger.Error()
	}
	event.Str("error_code", code).Str("error", message).Int("status", status).Msg("handler error")

	writeJSON(w, status, model.ErrorResponse{Error: code, Message: message})
}

// writeServiceError maps a service error onto an HTTP response.
func writeServiceError(w http.ResponseWriter, err error, logger zerolog.Logger) {
	var domainErr *model.DomainError
	if !errors.As(err, &domainErr) {
		logger.Error().Err(err).Msg("unexpected service error")
		writeError(w, http.StatusInternalServerError, model.ErrCodeInternalError, "internal server error", logger)
		return
	}

	status := http.StatusInternalServerError
	switch domainErr.Code {
	case model.ErrCodeInvalidCampaign, model.ErrCodeInvalidCount:
		status = http.StatusBadRequest
	case model.ErrCodeDuplicateName:
		status = http.StatusConflict
	case model.ErrCodeCampaignNotFound:
		status = http.StatusNotFound
	case model.ErrCodeCodeSpaceExhausted, model.ErrCodeExportDisabled:
		status = http.StatusServiceUnavailable
	}

	writeError(w, status, domainErr.Code, domainErr.Message, logger)
}

// campaignID reads the {id} path value. A malformed id is reported as absent.
func campaignID(r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}
