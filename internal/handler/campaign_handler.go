package handler

import (
	"encoding/json"
	"net/http"

	"voucher-hub/internal/model"
	"voucher-hub/internal/service"

	"github.com/rs/zerolog"
)

// CampaignHandler handles campaign-related HTTP requests.
type CampaignHandler struct {
	service service.CampaignService
	logger  zerolog.Logger
}

// NewCampaignHandler creates a new campaign handler.
func NewCampaignHandler(service service.CampaignService, logger zerolog.Logger) *CampaignHandler {
	return &CampaignHandler{
		service: service,
		logger:  logger.With().Str("handler", "campaign").Logger(),
	}
}

// Create handles POST /api/campaigns requests.
func (h *CampaignHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.CampaignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid request body", h.logger)
		return
	}

	campaign, err := h.service.Create(r.Context(), &req)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, campaign)
}

// List handles GET /api/campaigns requests.
func (h *CampaignHandler) List(w http.ResponseWriter, r *http.Request) {
	campaigns, err := h.service.List(r.Context())
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	if campaigns == nil {
		campaigns = []model.Campaign{}
	}

	writeJSON(w, http.StatusOK, campaigns)
}

// GetByID handles GET /api/campaigns/{id} requests.
func (h *CampaignHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := campaignID(r)
	if !ok {
		writeServiceError(w, model.ErrCampaignNotFound, h.logger)
		return
	}

	campaign, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	if campaign == nil {
		writeServiceError(w, model.ErrCampaignNotFound, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, campaign)
}

// Delete handles DELETE /api/campaigns/{id} requests.
func (h *CampaignHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := campaignID(r)
	if !ok {
		writeServiceError(w, model.ErrCampaignNotFound, h.logger)
		return
	}

	existed, err := h.service.Delete(r.Context(), id)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	if !existed {
		writeServiceError(w, model.ErrCampaignNotFound, h.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
