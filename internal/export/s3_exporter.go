package export

import (
	"context"
	"fmt"
	"strings"
	"time"

	"voucher-hub/internal/model"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// ObjectPutter is the subset of the S3 client used to upload exports.
type ObjectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Exporter uploads a campaign's vouchers to durable storage.
type Exporter interface {
	// Export writes the vouchers as CSV and describes where they went.
	Export(ctx context.Context, campaignID uuid.UUID, vouchers []model.Voucher) (*model.ExportResponse, error)
}

// s3Exporter implements Exporter on AWS S3.
type s3Exporter struct {
	client ObjectPutter
	bucket string
	prefix string
	now    func() time.Time
	logger zerolog.Logger
}

// NewS3Exporter creates an exporter writing under prefix+"exports/" in bucket.
func NewS3Exporter(client ObjectPutter, bucket, prefix string, logger zerolog.Logger) Exporter {
	return &s3Exporter{
		client: client,
		bucket: bucket,
		prefix: prefix,
		now:    time.Now,
		logger: logger.With().Str("component", "s3-exporter").Logger(),
	}
}

// Export uploads the vouchers to <prefix>exports/<campaign id>/<timestamp>.csv.
func (e *s3Exporter) Export(ctx context.Context, campaignID uuid.UUID, vouchers []model.Voucher) (*model.ExportResponse, error) {
	key := e.objectKey(campaignID)
	body := VouchersToCSV(vouchers)

	_, err := e.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(e.bucket),
		Key:         aws.String(key),
		Body:        strings.NewReader(body),
		ContentType: aws.String("text/csv"),
	})
	if err != nil {
		e.logger.Error().
			Err(err).
			Str("bucket", e.bucket).
			Str("key", key).
			Msg("failed to put object to S3")
		return nil, fmt.Errorf("failed to put object to S3 (bucket=%s, key=%s): %w", e.bucket, key, err)
	}

	e.logger.Info().
		Str("bucket", e.bucket).
		Str("key", key).
		Int("vouchers", len(vouchers)).
		Msg("voucher export uploaded")

	return &model.ExportResponse{
		Bucket: e.bucket,
		Key:    key,
		Count:  len(vouchers),
	}, nil
}

func (e *s3Exporter) objectKey(campaignID uuid.UUID) string {
	return fmt.Sprintf("%sexports/%s/%s.csv", e.prefix, campaignID, e.now().UTC().Format("20060102T150405Z"))
}
