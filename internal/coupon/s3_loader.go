package coupon

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog"
)

// ObjectGetter is the subset of the S3 client used to fetch code files.
type ObjectGetter interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// s3Loader implements Loader for reading gzipped code files from AWS S3.
type s3Loader struct {
	client ObjectGetter
	bucket string
	logger zerolog.Logger
}

// NewS3Loader creates a new S3-based code loader.
func NewS3Loader(client ObjectGetter, bucket string, logger zerolog.Logger) Loader {
	logger = logger.With().Str("component", "s3-code-loader").Logger()

	logger.Info().
		Str("bucket", bucket).
		Msg("S3 loader initialised")

	return &s3Loader{
		client: client,
		bucket: bucket,
		logger: logger,
	}
}

// Load reads a gzipped code file from S3 and returns a CodeSet.
// The key parameter should be the full S3 key (including any prefix).
func (l *s3Loader) Load(ctx context.Context, key string) (CodeSet, error) {
	l.logger.Info().
		Str("bucket", l.bucket).
		Str("key", key).
		Msg("loading code file from S3")

	result, err := l.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(l.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		l.logger.Error().
			Err(err).
			Str("bucket", l.bucket).
			Str("key", key).
			Msg("failed to get object from S3")
		return nil, fmt.Errorf("failed to get object from S3 (bucket=%s, key=%s): %w", l.bucket, key, err)
	}
	defer result.Body.Close()

	set, err := readGzippedCodes(ctx, result.Body)
	if err != nil {
		l.logger.Error().
			Err(err).
			Str("bucket", l.bucket).
			Str("key", key).
			Msg("failed to read code file from S3")
		return nil, fmt.Errorf("failed to read code file from S3 %s: %w", key, err)
	}

	l.logger.Info().
		Str("bucket", l.bucket).
		Str("key", key).
		Int("codes_loaded", set.Size()).
		Msg("code file loaded successfully from S3")

	return set, nil
}

// fallbackLoader tries S3 first, then falls back to the local file system.
type fallbackLoader struct {
	s3Loader   Loader
	fileLoader Loader
	s3Prefix   string
	logger     zerolog.Logger
}

// NewFallbackLoader creates a loader that tries S3 first, then falls back to local file system.
// If s3Loader is nil, it will only use the file loader.
func NewFallbackLoader(s3Loader, fileLoader Loader, s3Prefix string, logger zerolog.Logger) Loader {
	return &fallbackLoader{
		s3Loader:   s3Loader,
		fileLoader: fileLoader,
		s3Prefix:   s3Prefix,
		logger:     logger.With().Str("component", "fallback-loader").Logger(),
	}
}

// Load attempts S3 with the prefixed key, then the local path as-is.
func (l *fallbackLoader) Load(ctx context.Context, filePath string) (CodeSet, error) {
	if l.s3Loader != nil {
		s3Key := l.s3Prefix + filePath

		set, err := l.s3Loader.Load(ctx, s3Key)
		if err == nil {
			return set, nil
		}

		l.logger.Warn().
			Err(err).
			Str("s3_key", s3Key).
			Msg("failed to load from S3, falling back to local file system")
	}

	return l.fileLoader.Load(ctx, filePath)
}
