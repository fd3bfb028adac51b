package main

import (
	"compress/gzip"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"voucher-hub/internal/coupon"

	"github.com/rs/zerolog"
)

// reservegen writes a gzipped reserved-code file for RESERVED_FILES.
// Codes come from -codes and, with -count, from random draws under -prefix.
func main() {
	out := flag.String("out", "data/reserved/reserved.gz", "output file")
	prefix := flag.String("prefix", "", "prefix for randomly drawn codes")
	count := flag.Int("count", 0, "number of random codes to draw")
	codes := flag.String("codes", "", "comma-separated explicit codes")
	flag.Parse()

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	reserved, err := collectCodes(*codes, *prefix, *count, coupon.NewGenerator(nil))
	if err != nil {
		logger.Fatal().Err(err).Msg("invalid arguments")
	}

	if err := writeCodeFile(*out, reserved); err != nil {
		logger.Fatal().Err(err).Str("out", *out).Msg("failed to write reserved code file")
	}

	logger.Info().
		Str("out", *out).
		Int("codes", len(reserved)).
		Msg("reserved code file created")
}

func collectCodes(explicit, prefix string, count int, gen coupon.Generator) ([]string, error) {
	if count > 0 && len(prefix) < 3 {
		return nil, fmt.Errorf("prefix must be at least 3 characters when drawing codes")
	}

	seen := make(map[string]struct{})
	var codes []string
	add := func(code string) {
		if _, dup := seen[code]; dup {
			return
		}
		seen[code] = struct{}{}
		codes = append(codes, code)
	}

	for _, code := range strings.Split(explicit, ",") {
		if code = strings.TrimSpace(code); code != "" {
			add(code)
		}
	}

	target := len(codes) + count
	for len(codes) < target {
		add(coupon.Code(prefix, gen.Suffix()))
	}

	if len(codes) == 0 {
		return nil, fmt.Errorf("no codes given: use -codes or -prefix with -count")
	}

	return codes, nil
}

func writeCodeFile(filePath string, codes []string) error {
	if err := os.MkdirAll(filepath.Dir(filePath), 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	file, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	gzipWriter := gzip.NewWriter(file)
	for _, code := range codes {
		if _, err := fmt.Fprintf(gzipWriter, "%s\n", code); err != nil {
			return fmt.Errorf("failed to write code: %w", err)
		}
	}

	if err := gzipWriter.Close(); err != nil {
		return fmt.Errorf("failed to flush gzip stream: %w", err)
	}

	return nil
}
