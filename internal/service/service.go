package service

import (
	"context"

	"voucher-hub/internal/model"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("voucher-hub/internal/service")

// CampaignService defines operations for campaign management.
type CampaignService interface {
	// Create validates and stores a new campaign.
	Create(ctx context.Context, req *model.CampaignRequest) (*model.Campaign, error)

	// List retrieves all live campaigns.
	List(ctx context.Context) ([]model.Campaign, error)

	// GetByID retrieves a campaign by ID. It returns nil, nil when absent.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Campaign, error)

	// Delete removes a campaign with its vouchers and reports whether it existed.
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

// VoucherService defines operations for voucher generation and retrieval.
type VoucherService interface {
	// CreateVouchers generates count globally unique vouchers for a campaign.
	CreateVouchers(ctx context.Context, campaignID uuid.UUID, count int) ([]model.Voucher, error)

	// ListVouchers retrieves the live vouchers of a campaign.
	ListVouchers(ctx context.Context, campaignID uuid.UUID) ([]model.Voucher, error)

	VoucherReleaser
}

// VoucherReleaser frees the vouchers of a deleted campaign.
type VoucherReleaser interface {
	// ReleaseCampaignVouchers removes a campaign's vouchers and frees their codes.
	ReleaseCampaignVouchers(ctx context.Context, campaignID uuid.UUID) (int, error)
}
