package repository

import (
	"context"
	"errors"

	"voucher-hub/internal/model"

	"github.com/google/uuid"
)

// ErrCodeTaken is returned by VoucherRepository.Insert when the voucher code
// is already present in the global code set.
var ErrCodeTaken = errors.New("voucher code already in use")

// CampaignRepository defines the interface for campaign data access operations.
type CampaignRepository interface {
	// Create stores a new campaign. It fails with model.ErrDuplicateName when a
	// live campaign has the same name, compared case-insensitively.
	Create(ctx context.Context, campaign *model.Campaign) error

	// GetAll retrieves all live campaigns in insertion order.
	GetAll(ctx context.Context) ([]model.Campaign, error)

	// GetByID retrieves a single campaign by its ID. It returns nil when absent.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Campaign, error)

	// Delete removes a campaign and reports whether it existed.
	Delete(ctx context.Context, id uuid.UUID) (bool, error)

	CampaignLookup
}

// CampaignLookup reports campaign liveness without copying records.
type CampaignLookup interface {
	// Exists reports whether a live campaign has the given ID.
	Exists(id uuid.UUID) bool
}

// VoucherRepository defines the interface for voucher data access operations.
// It owns the global code set.
type VoucherRepository interface {
	// Insert commits a single voucher. It fails with ErrCodeTaken when the code
	// is in use and with model.ErrCampaignNotFound when the owning campaign is
	// no longer live. The check and the insert are atomic.
	Insert(ctx context.Context, voucher *model.Voucher) error

	// GetByCampaign retrieves a snapshot of a campaign's vouchers in insertion order.
	GetByCampaign(ctx context.Context, campaignID uuid.UUID) ([]model.Voucher, error)

	// DeleteByCampaign removes a campaign's vouchers, frees their codes and
	// returns how many were removed.
	DeleteByCampaign(ctx context.Context, campaignID uuid.UUID) (int, error)

	// ContainsCode checks whether a code is currently in use.
	ContainsCode(code string) bool

	// Count returns the number of live vouchers across all campaigns.
	Count() int
}
