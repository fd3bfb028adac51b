package model

import (
	"time"

	"github.com/google/uuid"
)

// Voucher represents a single generated discount code tied to one campaign.
type Voucher struct {
	ID         uuid.UUID `json:"id"`
	Code       string    `json:"code"`
	CampaignID uuid.UUID `json:"campaignId"`
	CreatedAt  time.Time `json:"createdAt"`
}

// VoucherRequest represents the request payload for generating vouchers.
type VoucherRequest struct {
	Count int `json:"count"`
}

// VoucherBatchResponse represents the response payload for a generation request.
type VoucherBatchResponse struct {
	Created int `json:"created"`
}

// ExportResponse describes an uploaded voucher export.
type ExportResponse struct {
	Bucket string `json:"bucket"`
	Key    string `json:"key"`
	Count  int    `json:"count"`
}
