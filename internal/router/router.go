package router

import (
	"net/http"

	"voucher-hub/internal/handler"
	"voucher-hub/internal/middleware"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/time/rate"
)

// Options carries the optional request guards.
type Options struct {
	// APIKey enables X-API-Key authentication when non-empty.
	APIKey string
	// GenerationLimiter throttles voucher generation when non-nil.
	GenerationLimiter *rate.Limiter
}

// New creates a new HTTP router with all routes and middleware configured.
func New(
	campaignHandler *handler.CampaignHandler,
	voucherHandler *handler.VoucherHandler,
	opts Options,
	logger zerolog.Logger,
) http.Handler {
	mux := http.NewServeMux()

	// Health check endpoint (no authentication required)
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"healthy"}`))
	})
	mux.Handle("GET /metrics", promhttp.Handler())

	mux.HandleFunc("POST /api/campaigns", campaignHandler.Create)
	mux.HandleFunc("GET /api/campaigns", campaignHandler.List)
	mux.HandleFunc("GET /api/campaigns/{id}", campaignHandler.GetByID)
	mux.HandleFunc("DELETE /api/campaigns/{id}", campaignHandler.Delete)

	generate := middleware.RateLimit(opts.GenerationLimiter, logger)(http.HandlerFunc(voucherHandler.Create))
	mux.Handle("POST /api/campaigns/{id}/vouchers", generate)
	mux.HandleFunc("GET /api/campaigns/{id}/vouchers", voucherHandler.List)
	mux.HandleFunc("GET /api/campaigns/{id}/vouchers.csv", voucherHandler.DownloadCSV)
	mux.HandleFunc("POST /api/campaigns/{id}/vouchers/export", voucherHandler.Export)

	// Apply middleware in order: Recovery -> Logging -> CORS -> APIKeyAuth
	var handler http.Handler = mux
	handler = middleware.APIKeyAuth(opts.APIKey, logger)(handler)
	handler = middleware.CORS(handler)
	handler = middleware.Logging(logger)(handler)
	handler = middleware.Recovery(logger)(handler)

	return otelhttp.NewHandler(handler, "voucher-hub")
}
