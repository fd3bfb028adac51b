package repository

import (
	"context"
	"sync"

	"voucher-hub/internal/coupon"
	"voucher-hub/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// voucherRepository implements VoucherRepository in process memory.
// A single mutex guards the voucher collection and the global code set.
type voucherRepository struct {
	mu        sync.RWMutex
	byOwner   map[uuid.UUID][]model.Voucher
	codes     coupon.MutableCodeSet
	total     int
	campaigns CampaignLookup
	logger    zerolog.Logger
}

// NewVoucherRepository creates a new in-memory voucher repository.
// campaigns is consulted on every insert to reject vouchers for deleted campaigns.
func NewVoucherRepository(campaigns CampaignLookup, logger zerolog.Logger) VoucherRepository {
	return &voucherRepository{
		byOwner:   make(map[uuid.UUID][]model.Voucher),
		codes:     coupon.NewMapCodeSet(1024),
		campaigns: campaigns,
		logger:    logger.With().Str("repository", "voucher").Logger(),
	}
}

// Insert commits a single voucher if its code is free and its campaign is live.
func (r *voucherRepository) Insert(ctx context.Context, voucher *model.Voucher) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Lock order: voucher store, then campaign store.
	if !r.campaigns.Exists(voucher.CampaignID) {
		return model.ErrCampaignNotFound
	}

	if !r.codes.Add(voucher.Code) {
		return ErrCodeTaken
	}

	r.byOwner[voucher.CampaignID] = append(r.byOwner[voucher.CampaignID], *voucher)
	r.total++

	return nil
}

// GetByCampaign retrieves a snapshot of a campaign's vouchers in insertion order.
func (r *voucherRepository) GetByCampaign(ctx context.Context, campaignID uuid.UUID) ([]model.Voucher, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	owned := r.byOwner[campaignID]
	vouchers := make([]model.Voucher, len(owned))
	copy(vouchers, owned)

	return vouchers, nil
}

// DeleteByCampaign removes a campaign's vouchers and frees their codes.
func (r *voucherRepository) DeleteByCampaign(ctx context.Context, campaignID uuid.UUID) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	owned, ok := r.byOwner[campaignID]
	if !ok {
		return 0, nil
	}

	for _, v := range owned {
		r.codes.Remove(v.Code)
	}
	delete(r.byOwner, campaignID)
	r.total -= len(owned)

	r.logger.Debug().
		Str("campaign_id", campaignID.String()).
		Int("released", len(owned)).
		Int("codes_in_use", r.codes.Size()).
		Msg("released campaign vouchers")

	return len(owned), nil
}

// ContainsCode checks whether a code is currently in use.
func (r *voucherRepository) ContainsCode(code string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.codes.Contains(code)
}

// Count returns the number of live vouchers across all campaigns.
func (r *voucherRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.total
}
