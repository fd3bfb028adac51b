package service

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"voucher-hub/internal/model"
	"voucher-hub/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// MinPrefixLength is the shortest accepted voucher code prefix.
const MinPrefixLength = 3

var currencyPattern = regexp.MustCompile(`^[A-Za-z]{3}$`)

// campaignService implements CampaignService.
type campaignService struct {
	campaignRepo repository.CampaignRepository
	releaser     VoucherReleaser
	logger       zerolog.Logger
}

// NewCampaignService creates a new campaign service.
// releaser is invoked on delete to cascade to the campaign's vouchers.
func NewCampaignService(
	campaignRepo repository.CampaignRepository,
	releaser VoucherReleaser,
	logger zerolog.Logger,
) CampaignService {
	return &campaignService{
		campaignRepo: campaignRepo,
		releaser:     releaser,
		logger:       logger.With().Str("service", "campaign").Logger(),
	}
}

// Create validates and stores a new campaign.
func (s *campaignService) Create(ctx context.Context, req *model.CampaignRequest) (*model.Campaign, error) {
	ctx, span := tracer.Start(ctx, "CampaignService.Create")
	defer span.End()

	if err := s.validateCampaignRequest(req); err != nil {
		span.RecordError(err)
		return nil, err
	}

	campaign := &model.Campaign{
		ID:        uuid.New(),
		Name:      strings.TrimSpace(req.Name),
		ValidFrom: req.ValidFrom,
		ValidTo:   req.ValidTo,
		Amount:    req.Amount,
		Currency:  strings.ToUpper(req.Currency),
		Prefix:    strings.TrimSpace(req.Prefix),
		CreatedAt: time.Now().UTC(),
	}
	span.SetAttributes(attribute.String("campaign.id", campaign.ID.String()))

	if err := s.campaignRepo.Create(ctx, campaign); err != nil {
		span.RecordError(err)
		s.logger.Warn().
			Err(err).
			Str("name", campaign.Name).
			Msg("failed to create campaign")
		return nil, err
	}

	s.logger.Info().
		Str("campaign_id", campaign.ID.String()).
		Str("name", campaign.Name).
		Str("prefix", campaign.Prefix).
		Msg("campaign created successfully")

	return campaign, nil
}

// List retrieves all live campaigns.
func (s *campaignService) List(ctx context.Context) ([]model.Campaign, error) {
	campaigns, err := s.campaignRepo.GetAll(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list campaigns")
		return nil, fmt.Errorf("failed to list campaigns: %w", err)
	}

	s.logger.Debug().Int("count", len(campaigns)).Msg("retrieved campaigns")

	return campaigns, nil
}

// GetByID retrieves a campaign by ID.
func (s *campaignService) GetByID(ctx context.Context, id uuid.UUID) (*model.Campaign, error) {
	campaign, err := s.campaignRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Str("campaign_id", id.String()).Msg("failed to get campaign")
		return nil, fmt.Errorf("failed to get campaign: %w", err)
	}

	return campaign, nil
}

// Delete removes a campaign, then releases its vouchers and codes.
func (s *campaignService) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	ctx, span := tracer.Start(ctx, "CampaignService.Delete",
		trace.WithAttributes(attribute.String("campaign.id", id.String())))
	defer span.End()

	// The campaign goes first so that in-flight generation stops committing
	// before its vouchers are released.
	existed, err := s.campaignRepo.Delete(ctx, id)
	if err != nil {
		span.RecordError(err)
		s.logger.Error().Err(err).Str("campaign_id", id.String()).Msg("failed to delete campaign")
		return false, fmt.Errorf("failed to delete campaign: %w", err)
	}

	released, err := s.releaser.ReleaseCampaignVouchers(ctx, id)
	if err != nil {
		span.RecordError(err)
		s.logger.Error().Err(err).Str("campaign_id", id.String()).Msg("failed to release campaign vouchers")
		return existed, fmt.Errorf("failed to release campaign vouchers: %w", err)
	}

	if existed {
		s.logger.Info().
			Str("campaign_id", id.String()).
			Int("vouchers_released", released).
			Msg("campaign deleted")
	}

	return existed, nil
}

// validateCampaignRequest validates the campaign request.
func (s *campaignService) validateCampaignRequest(req *model.CampaignRequest) error {
	if req == nil {
		return model.ErrInvalidCampaign.WithDetail("campaign request is nil")
	}

	var problems []string

	if strings.TrimSpace(req.Name) == "" {
		problems = append(problems, "name: required")
	}

	switch {
	case req.ValidFrom.IsZero() || req.ValidTo.IsZero():
		problems = append(problems, "validFrom/validTo: both dates are required")
	case !req.ValidTo.After(req.ValidFrom):
		problems = append(problems, "validTo: must be after validFrom")
	}

	if !req.Amount.IsPositive() {
		problems = append(problems, "amount: must be greater than 0")
	}

	if !currencyPattern.MatchString(req.Currency) {
		problems = append(problems, "currency: must be 3 letters")
	}

	if len(strings.TrimSpace(req.Prefix)) < MinPrefixLength {
		problems = append(problems, fmt.Sprintf("prefix: must be at least %d characters", MinPrefixLength))
	}

	if len(problems) > 0 {
		s.logger.Debug().Strs("problems", problems).Msg("campaign request rejected")
		return model.ErrInvalidCampaign.WithDetail("%s", strings.Join(problems, "; "))
	}

	return nil
}
