package coupon

import (
	"bufio"
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// defaultSetCapacity is the initial capacity for sets built from code files.
const defaultSetCapacity = 1 << 16

// fileLoader implements Loader for reading gzipped code files from disk.
type fileLoader struct {
	logger zerolog.Logger
}

// NewFileLoader creates a new file-based code loader.
func NewFileLoader(logger zerolog.Logger) Loader {
	return &fileLoader{
		logger: logger.With().Str("component", "code-loader").Logger(),
	}
}

// Load reads a gzipped code file and returns a CodeSet.
// The file is expected to contain one code per line.
func (l *fileLoader) Load(ctx context.Context, filePath string) (CodeSet, error) {
	l.logger.Info().Str("file", filePath).Msg("loading code file")

	file, err := os.Open(filePath)
	if err != nil {
		l.logger.Error().Err(err).Str("file", filePath).Msg("failed to open code file")
		return nil, fmt.Errorf("failed to open code file %s: %w", filePath, err)
	}
	defer file.Close()

	set, err := readGzippedCodes(ctx, file)
	if err != nil {
		l.logger.Error().Err(err).Str("file", filePath).Msg("failed to read code file")
		return nil, fmt.Errorf("failed to read code file %s: %w", filePath, err)
	}

	l.logger.Info().
		Str("file", filePath).
		Int("codes_loaded", set.Size()).
		Msg("code file loaded successfully")

	return set, nil
}

// readGzippedCodes decompresses r and collects one trimmed code per non-empty line.
func readGzippedCodes(ctx context.Context, r io.Reader) (CodeSet, error) {
	gzipReader, err := gzip.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to create gzip reader: %w", err)
	}
	defer gzipReader.Close()

	set := NewMapCodeSet(defaultSetCapacity)

	scanner := bufio.NewScanner(gzipReader)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	lineCount := 0
	for scanner.Scan() {
		// Check context cancellation periodically
		if lineCount%100_000 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		lineCount++

		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			set.Add(line)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error scanning codes: %w", err)
	}

	return set, nil
}
