package service

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"time"

	"voucher-hub/internal/coupon"
	"voucher-hub/internal/metrics"
	"voucher-hub/internal/model"
	"voucher-hub/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/semaphore"
)

// VoucherServiceConfig tunes voucher generation.
type VoucherServiceConfig struct {
	// MaxCount is the largest batch a single request may generate.
	MaxCount int
	// YieldEvery is the number of commits between scheduler yields.
	YieldEvery int
	// MaxDrawAttempts bounds redraws for a single code.
	MaxDrawAttempts int
	// MaxConcurrent bounds generation requests running at once.
	MaxConcurrent int64
}

// DefaultVoucherServiceConfig returns the production defaults.
func DefaultVoucherServiceConfig() VoucherServiceConfig {
	return VoucherServiceConfig{
		MaxCount:        100000,
		YieldEvery:      5000,
		MaxDrawAttempts: 1000,
		MaxConcurrent:   4,
	}
}

// voucherService implements VoucherService.
type voucherService struct {
	campaignRepo repository.CampaignRepository
	voucherRepo  repository.VoucherRepository
	generator    coupon.Generator
	reserved     coupon.ReservedList
	slots        *semaphore.Weighted
	cfg          VoucherServiceConfig
	logger       zerolog.Logger
}

// NewVoucherService creates a new voucher service.
// A nil reserved list reserves nothing. Zero config fields take their defaults.
func NewVoucherService(
	campaignRepo repository.CampaignRepository,
	voucherRepo repository.VoucherRepository,
	generator coupon.Generator,
	reserved coupon.ReservedList,
	cfg VoucherServiceConfig,
	logger zerolog.Logger,
) VoucherService {
	def := DefaultVoucherServiceConfig()
	if cfg.MaxCount <= 0 {
		cfg.MaxCount = def.MaxCount
	}
	if cfg.YieldEvery <= 0 {
		cfg.YieldEvery = def.YieldEvery
	}
	if cfg.MaxDrawAttempts <= 0 {
		cfg.MaxDrawAttempts = def.MaxDrawAttempts
	}
	if cfg.MaxConcurrent <= 0 {
		cfg.MaxConcurrent = def.MaxConcurrent
	}
	if reserved == nil {
		reserved = coupon.EmptyReservedList()
	}

	return &voucherService{
		campaignRepo: campaignRepo,
		voucherRepo:  voucherRepo,
		generator:    generator,
		reserved:     reserved,
		slots:        semaphore.NewWeighted(cfg.MaxConcurrent),
		cfg:          cfg,
		logger:       logger.With().Str("service", "voucher").Logger(),
	}
}

// CreateVouchers generates count vouchers for a campaign, committing each one
// before drawing the next. On failure the vouchers committed so far are
// returned alongside the error and stay in the store.
func (s *voucherService) CreateVouchers(ctx context.Context, campaignID uuid.UUID, count int) (created []model.Voucher, err error) {
	ctx, span := tracer.Start(ctx, "VoucherService.CreateVouchers",
		trace.WithAttributes(
			attribute.String("campaign.id", campaignID.String()),
			attribute.Int("voucher.count", count),
		))
	defer span.End()

	start := time.Now()
	defer func() {
		status := "success"
		if err != nil {
			status = "error"
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		metrics.RecordGenerationDuration(status, time.Since(start).Seconds())
		span.SetAttributes(attribute.Int("voucher.created", len(created)))
	}()

	if count < 1 || count > s.cfg.MaxCount {
		return nil, model.ErrInvalidCount.WithDetail("count must be between 1 and %d", s.cfg.MaxCount)
	}

	campaign, err := s.campaignRepo.GetByID(ctx, campaignID)
	if err != nil {
		return nil, fmt.Errorf("failed to get campaign: %w", err)
	}
	if campaign == nil {
		return nil, model.ErrCampaignNotFound
	}

	if err := s.slots.Acquire(ctx, 1); err != nil {
		return nil, fmt.Errorf("failed to acquire generation slot: %w", err)
	}
	defer s.slots.Release(1)

	s.logger.Debug().
		Str("campaign_id", campaignID.String()).
		Int("count", count).
		Msg("generating vouchers")

	created = make([]model.Voucher, 0, count)
	for i := 0; i < count; i++ {
		voucher, err := s.commitNext(ctx, campaign)
		if err != nil {
			s.logger.Warn().
				Err(err).
				Str("campaign_id", campaignID.String()).
				Int("committed", len(created)).
				Int("requested", count).
				Msg("voucher generation stopped")
			return created, err
		}
		created = append(created, *voucher)
		metrics.VouchersGenerated.Inc()

		if (i+1)%s.cfg.YieldEvery == 0 && i+1 < count {
			runtime.Gosched()
			if err := ctx.Err(); err != nil {
				s.logger.Warn().
					Err(err).
					Str("campaign_id", campaignID.String()).
					Int("committed", len(created)).
					Msg("voucher generation cancelled")
				return created, fmt.Errorf("voucher generation cancelled: %w", err)
			}
		}
	}

	s.logger.Info().
		Str("campaign_id", campaignID.String()).
		Int("created", len(created)).
		Dur("duration", time.Since(start)).
		Msg("vouchers generated successfully")

	return created, nil
}

// commitNext draws codes until one is free and commits it.
func (s *voucherService) commitNext(ctx context.Context, campaign *model.Campaign) (*model.Voucher, error) {
	for attempt := 0; attempt < s.cfg.MaxDrawAttempts; attempt++ {
		code := coupon.Code(campaign.Prefix, s.generator.Suffix())

		if s.reserved.Contains(code) {
			metrics.RecordCollision("reserved")
			continue
		}

		voucher := &model.Voucher{
			ID:         uuid.New(),
			Code:       code,
			CampaignID: campaign.ID,
			CreatedAt:  time.Now().UTC(),
		}

		err := s.voucherRepo.Insert(ctx, voucher)
		switch {
		case err == nil:
			return voucher, nil
		case errors.Is(err, repository.ErrCodeTaken):
			metrics.RecordCollision("in_use")
			continue
		default:
			return nil, err
		}
	}

	return nil, model.ErrCodeSpaceExhausted.WithDetail(
		"no unused code for prefix %s after %d attempts", campaign.Prefix, s.cfg.MaxDrawAttempts)
}

// ListVouchers retrieves the live vouchers of a campaign.
func (s *voucherService) ListVouchers(ctx context.Context, campaignID uuid.UUID) ([]model.Voucher, error) {
	vouchers, err := s.voucherRepo.GetByCampaign(ctx, campaignID)
	if err != nil {
		s.logger.Error().Err(err).Str("campaign_id", campaignID.String()).Msg("failed to list vouchers")
		return nil, fmt.Errorf("failed to list vouchers: %w", err)
	}

	return vouchers, nil
}

// ReleaseCampaignVouchers removes a campaign's vouchers and frees their codes.
func (s *voucherService) ReleaseCampaignVouchers(ctx context.Context, campaignID uuid.UUID) (int, error) {
	released, err := s.voucherRepo.DeleteByCampaign(ctx, campaignID)
	if err != nil {
		return 0, fmt.Errorf("failed to release vouchers: %w", err)
	}

	if released > 0 {
		metrics.VouchersReleased.Add(float64(released))
		s.logger.Debug().
			Str("campaign_id", campaignID.String()).
			Int("released", released).
			Msg("vouchers released")
	}

	return released, nil
}
