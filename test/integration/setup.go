package integration

import (
	"bytes"
	"compress/gzip"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"voucher-hub/internal/coupon"
	"voucher-hub/internal/export"
	"voucher-hub/internal/handler"
	"voucher-hub/internal/repository"
	"voucher-hub/internal/router"
	"voucher-hub/internal/service"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

// TestAPIKey is the key every TestServer requires.
const TestAPIKey = "test-api-key"

// TestServer is a fully wired in-memory API.
type TestServer struct {
	Handler     http.Handler
	VoucherRepo repository.VoucherRepository
	Bucket      *MemoryBucket
}

// ServerOptions tweaks SetupTestServer.
type ServerOptions struct {
	ReservedFiles     []string
	Generator         coupon.Generator
	GenerationLimiter *rate.Limiter
	DisableExport     bool
}

// SetupTestServer wires repositories, services and handlers behind the real router.
func SetupTestServer(t *testing.T, opts ServerOptions) *TestServer {
	t.Helper()

	logger := zerolog.Nop()
	ctx := context.Background()

	reserved, err := coupon.NewReservedList(ctx, opts.ReservedFiles, coupon.NewFileLoader(logger), logger)
	if err != nil {
		t.Fatalf("failed to load reserved codes: %v", err)
	}

	gen := opts.Generator
	if gen == nil {
		gen = coupon.NewGenerator(nil)
	}

	campaignRepo := repository.NewCampaignRepository(logger)
	voucherRepo := repository.NewVoucherRepository(campaignRepo, logger)

	voucherService := service.NewVoucherService(campaignRepo, voucherRepo, gen, reserved,
		service.DefaultVoucherServiceConfig(), logger)
	campaignService := service.NewCampaignService(campaignRepo, voucherService, logger)

	bucket := NewMemoryBucket()
	var exporter export.Exporter
	if !opts.DisableExport {
		exporter = export.NewS3Exporter(bucket, "test-bucket", "it/", logger)
	}

	campaignHandler := handler.NewCampaignHandler(campaignService, logger)
	voucherHandler := handler.NewVoucherHandler(campaignService, voucherService, exporter, logger)

	return &TestServer{
		Handler: router.New(campaignHandler, voucherHandler, router.Options{
			APIKey:            TestAPIKey,
			GenerationLimiter: opts.GenerationLimiter,
		}, logger),
		VoucherRepo: voucherRepo,
		Bucket:      bucket,
	}
}

// Do sends an authenticated request with an optional JSON body.
func (s *TestServer) Do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, ok := body.(string)
		if !ok {
			encoded, err := json.Marshal(body)
			if err != nil {
				t.Fatalf("failed to encode request body: %v", err)
			}
			raw = string(encoded)
		}
		reader = strings.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("X-API-Key", TestAPIKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	s.Handler.ServeHTTP(w, req)
	return w
}

// MemoryBucket is an in-memory stand-in for an S3 bucket.
type MemoryBucket struct {
	mu      sync.Mutex
	objects map[string][]byte
}

// NewMemoryBucket creates an empty bucket.
func NewMemoryBucket() *MemoryBucket {
	return &MemoryBucket{objects: make(map[string][]byte)}
}

// PutObject stores the body under the key.
func (b *MemoryBucket) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	body, err := io.ReadAll(params.Body)
	if err != nil {
		return nil, err
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.objects[aws.ToString(params.Key)] = body

	return &s3.PutObjectOutput{}, nil
}

// Object returns a stored object body.
func (b *MemoryBucket) Object(key string) ([]byte, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	body, ok := b.objects[key]
	return body, ok
}

// GzipCodes renders codes one per line and gzips them.
func GzipCodes(t *testing.T, codes ...string) []byte {
	t.Helper()

	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	for _, code := range codes {
		if _, err := gz.Write([]byte(code + "\n")); err != nil {
			t.Fatalf("failed to write reserved code: %v", err)
		}
	}
	if err := gz.Close(); err != nil {
		t.Fatalf("failed to close gzip writer: %v", err)
	}
	return buf.Bytes()
}

// WriteReservedFile writes codes as a gzipped file in a temp dir and returns its path.
func WriteReservedFile(t *testing.T, codes ...string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "reserved.gz")
	if err := os.WriteFile(path, GzipCodes(t, codes...), 0o600); err != nil {
		t.Fatalf("failed to write reserved file: %v", err)
	}
	return path
}
