package handler

import (
	"encoding/json"
	"net/http"

	"voucher-hub/internal/export"
	"voucher-hub/internal/model"
	"voucher-hub/internal/service"

	"github.com/rs/zerolog"
)

// VoucherHandler handles voucher-related HTTP requests.
type VoucherHandler struct {
	campaigns service.CampaignService
	vouchers  service.VoucherService
	exporter  export.Exporter
	logger    zerolog.Logger
}

// NewVoucherHandler creates a new voucher handler.
// A nil exporter disables the export endpoint.
func NewVoucherHandler(
	campaigns service.CampaignService,
	vouchers service.VoucherService,
	exporter export.Exporter,
	logger zerolog.Logger,
) *VoucherHandler {
	return &VoucherHandler{
		campaigns: campaigns,
		vouchers:  vouchers,
		exporter:  exporter,
		logger:    logger.With().Str("handler", "voucher").Logger(),
	}
}

// Create handles POST /api/campaigns/{id}/vouchers requests.
func (h *VoucherHandler) Create(w http.ResponseWriter, r *http.Request) {
	id, ok := campaignID(r)
	if !ok {
		writeServiceError(w, model.ErrCampaignNotFound, h.logger)
		return
	}

	var req model.VoucherRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid request body", h.logger)
		return
	}

	created, err := h.vouchers.CreateVouchers(r.Context(), id, req.Count)
	if err != nil {
		if len(created) > 0 {
			h.logger.Warn().
				Err(err).
				Str("campaign_id", id.String()).
				Int("committed", len(created)).
				Msg("voucher batch partially committed")
		}
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, model.VoucherBatchResponse{Created: len(created)})
}

// List handles GET /api/campaigns/{id}/vouchers requests.
// Unknown campaigns have no vouchers.
func (h *VoucherHandler) List(w http.ResponseWriter, r *http.Request) {
	id, ok := campaignID(r)
	if !ok {
		writeJSON(w, http.StatusOK, []model.Voucher{})
		return
	}

	vouchers, err := h.vouchers.ListVouchers(r.Context(), id)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	if vouchers == nil {
		vouchers = []model.Voucher{}
	}

	writeJSON(w, http.StatusOK, vouchers)
}

// DownloadCSV handles GET /api/campaigns/{id}/vouchers.csv requests.
// The file is named after the campaign. An unknown campaign keeps its uuid in
// the name and a malformed id is sanitised.
func (h *VoucherHandler) DownloadCSV(w http.ResponseWriter, r *http.Request) {
	rawID := r.PathValue("id")
	filename := export.Filename(rawID)
	var vouchers []model.Voucher

	if id, ok := campaignID(r); ok {
		campaign, err := h.campaigns.GetByID(r.Context(), id)
		if err != nil {
			writeServiceError(w, err, h.logger)
			return
		}
		if campaign != nil {
			filename = export.Filename(campaign.Name)
		} else {
			filename = export.IDFilename(id)
		}

		vouchers, err = h.vouchers.ListVouchers(r.Context(), id)
		if err != nil {
			writeServiceError(w, err, h.logger)
			return
		}
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(export.VouchersToCSV(vouchers))); err != nil {
		h.logger.Warn().Err(err).Str("campaign_id", rawID).Msg("failed to write csv body")
	}
}

// Export handles POST /api/campaigns/{id}/vouchers/export requests.
func (h *VoucherHandler) Export(w http.ResponseWriter, r *http.Request) {
	if h.exporter == nil {
		writeServiceError(w, model.ErrExportDisabled, h.logger)
		return
	}

	id, ok := campaignID(r)
	if !ok {
		writeServiceError(w, model.ErrCampaignNotFound, h.logger)
		return
	}

	campaign, err := h.campaigns.GetByID(r.Context(), id)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}
	if campaign == nil {
		writeServiceError(w, model.ErrCampaignNotFound, h.logger)
		return
	}

	vouchers, err := h.vouchers.ListVouchers(r.Context(), id)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	resp, err := h.exporter.Export(r.Context(), id, vouchers)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, resp)
}
