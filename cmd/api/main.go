package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"voucher-hub/internal/config"
	"voucher-hub/internal/coupon"
	"voucher-hub/internal/export"
	"voucher-hub/internal/handler"
	"voucher-hub/internal/repository"
	"voucher-hub/internal/router"
	"voucher-hub/internal/service"
	"voucher-hub/internal/tracing"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"golang.org/x/time/rate"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Create context for application lifecycle
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Load configuration
	cfg, err := config.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialise logger
	logger := config.NewLogger(cfg.Logger)
	logger.Info().Msg("starting voucher-hub API server")

	shutdownTracing, err := tracing.Setup(ctx, cfg.Tracing)
	if err != nil {
		return fmt.Errorf("failed to initialise tracing: %w", err)
	}
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			logger.Error().Err(err).Msg("failed to flush traces")
		}
	}()

	// S3 backs reserved code files and voucher exports when enabled
	var s3Client *s3.Client
	if cfg.S3.Enabled {
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.S3.Region))
		if err != nil {
			logger.Warn().
				Err(err).
				Msg("failed to load AWS configuration, S3 features disabled")
		} else {
			s3Client = s3.NewFromConfig(awsCfg)
			logger.Info().
				Str("bucket", cfg.S3.Bucket).
				Str("region", cfg.S3.Region).
				Msg("S3 client initialised")
		}
	} else {
		logger.Info().Msg("S3 disabled, using local file system for reserved codes")
	}

	// Load reserved codes with S3 and local fallback
	var s3Loader coupon.Loader
	if s3Client != nil {
		s3Loader = coupon.NewS3Loader(s3Client, cfg.S3.Bucket, logger)
	}
	codeLoader := coupon.NewFallbackLoader(s3Loader, coupon.NewFileLoader(logger), cfg.S3.Prefix, logger)

	reserved, err := coupon.NewReservedList(ctx, cfg.Reserved.Files, codeLoader, logger)
	if err != nil {
		return fmt.Errorf("failed to load reserved codes: %w", err)
	}

	// Initialise repositories
	campaignRepo := repository.NewCampaignRepository(logger)
	voucherRepo := repository.NewVoucherRepository(campaignRepo, logger)

	// Initialise services
	voucherService := service.NewVoucherService(
		campaignRepo,
		voucherRepo,
		coupon.NewGenerator(nil),
		reserved,
		service.VoucherServiceConfig{
			MaxCount:        cfg.Generation.MaxCount,
			YieldEvery:      cfg.Generation.YieldEvery,
			MaxDrawAttempts: cfg.Generation.MaxDrawAttempts,
			MaxConcurrent:   cfg.Generation.MaxConcurrent,
		},
		logger,
	)
	campaignService := service.NewCampaignService(campaignRepo, voucherService, logger)

	var exporter export.Exporter
	if s3Client != nil {
		exporter = export.NewS3Exporter(s3Client, cfg.S3.Bucket, cfg.S3.Prefix, logger)
	}

	// Initialise HTTP handlers
	campaignHandler := handler.NewCampaignHandler(campaignService, logger)
	voucherHandler := handler.NewVoucherHandler(campaignService, voucherService, exporter, logger)

	opts := router.Options{APIKey: cfg.Auth.APIKey}
	if cfg.Generation.RateLimit > 0 {
		opts.GenerationLimiter = rate.NewLimiter(rate.Limit(cfg.Generation.RateLimit), cfg.Generation.RateBurst)
	}
	if opts.APIKey == "" {
		logger.Warn().Msg("AUTH_API_KEY not set, API is unauthenticated")
	}

	// Initialise router
	mux := router.New(campaignHandler, voucherHandler, opts, logger)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      mux,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Channel to listen for errors from the server
	serverErrors := make(chan error, 1)

	// Start HTTP server in a goroutine
	go func() {
		logger.Info().
			Str("address", cfg.Server.Address()).
			Int("reserved_codes", reserved.Size()).
			Msg("HTTP server started")
		serverErrors <- server.ListenAndServe()
	}()

	// Channel to listen for interrupt signals
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a signal or an error
	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		logger.Info().
			Str("signal", sig.String()).
			Msg("shutdown signal received, starting graceful shutdown")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("failed to shutdown server gracefully")
			if closeErr := server.Close(); closeErr != nil {
				logger.Error().Err(closeErr).Msg("failed to close server")
			}
			return fmt.Errorf("server shutdown failed: %w", err)
		}

		logger.Info().Msg("server shutdown completed")
	}

	return nil
}
