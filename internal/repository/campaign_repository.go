package repository

import (
	"context"
	"strings"
	"sync"

	"voucher-hub/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// campaignRepository implements CampaignRepository in process memory.
type campaignRepository struct {
	mu        sync.RWMutex
	campaigns map[uuid.UUID]model.Campaign
	names     map[string]uuid.UUID
	order     []uuid.UUID
	logger    zerolog.Logger
}

// NewCampaignRepository creates a new in-memory campaign repository.
func NewCampaignRepository(logger zerolog.Logger) CampaignRepository {
	return &campaignRepository{
		campaigns: make(map[uuid.UUID]model.Campaign),
		names:     make(map[string]uuid.UUID),
		logger:    logger.With().Str("repository", "campaign").Logger(),
	}
}

// nameKey folds a campaign name for case-insensitive comparison.
func nameKey(name string) string {
	return strings.ToLower(name)
}

// Create stores a new campaign unless its name is already taken.
func (r *campaignRepository) Create(ctx context.Context, campaign *model.Campaign) error {
	key := nameKey(campaign.Name)

	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, taken := r.names[key]; taken {
		r.logger.Debug().
			Str("name", campaign.Name).
			Str("existing_id", existing.String()).
			Msg("campaign name already taken")
		return model.ErrDuplicateName
	}

	r.campaigns[campaign.ID] = *campaign
	r.names[key] = campaign.ID
	r.order = append(r.order, campaign.ID)

	return nil
}

// GetAll retrieves all live campaigns in insertion order.
func (r *campaignRepository) GetAll(ctx context.Context) ([]model.Campaign, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	campaigns := make([]model.Campaign, 0, len(r.order))
	for _, id := range r.order {
		campaigns = append(campaigns, r.campaigns[id])
	}

	return campaigns, nil
}

// GetByID retrieves a single campaign by its ID.
func (r *campaignRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Campaign, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.campaigns[id]
	if !ok {
		r.logger.Debug().Str("campaign_id", id.String()).Msg("campaign not found")
		return nil, nil
	}

	return &c, nil
}

// Exists reports whether a live campaign has the given ID.
func (r *campaignRepository) Exists(id uuid.UUID) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.campaigns[id]
	return ok
}

// Delete removes a campaign and reports whether it existed.
func (r *campaignRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.campaigns[id]
	if !ok {
		return false, nil
	}

	delete(r.campaigns, id)
	delete(r.names, nameKey(c.Name))
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}

	return true, nil
}
