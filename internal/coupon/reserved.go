package coupon

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"
)

// reservedList implements ReservedList over a fixed group of code sets.
// The sets are read-only after construction.
type reservedList struct {
	sets []CodeSet
}

// EmptyReservedList returns a ReservedList that reserves nothing.
func EmptyReservedList() ReservedList {
	return &reservedList{}
}

// NewReservedList loads every file concurrently and returns the combined list.
// Any failed file aborts construction.
func NewReservedList(ctx context.Context, filePaths []string, loader Loader, logger zerolog.Logger) (ReservedList, error) {
	logger = logger.With().Str("component", "reserved-codes").Logger()

	if len(filePaths) == 0 {
		logger.Debug().Msg("no reserved code files configured")
		return EmptyReservedList(), nil
	}

	type loadResult struct {
		set CodeSet
		err error
	}

	results := make([]loadResult, len(filePaths))
	var wg sync.WaitGroup

	for i, filePath := range filePaths {
		wg.Add(1)
		go func(index int, path string) {
			defer wg.Done()

			set, err := loader.Load(ctx, path)
			results[index] = loadResult{set: set, err: err}
		}(i, filePath)
	}

	wg.Wait()

	list := &reservedList{sets: make([]CodeSet, 0, len(filePaths))}
	for i, result := range results {
		if result.err != nil {
			logger.Error().
				Err(result.err).
				Str("file", filePaths[i]).
				Msg("failed to load reserved code file")
			return nil, fmt.Errorf("failed to load reserved code file %s: %w", filePaths[i], result.err)
		}
		list.sets = append(list.sets, result.set)
	}

	logger.Info().
		Int("file_count", len(filePaths)).
		Int("total_codes", list.Size()).
		Msg("reserved codes loaded")

	return list, nil
}

// Contains checks if a code is reserved by any loaded source.
func (l *reservedList) Contains(code string) bool {
	for _, set := range l.sets {
		if set.Contains(code) {
			return true
		}
	}
	return false
}

// Size returns the total number of reserved entries across sources.
func (l *reservedList) Size() int {
	total := 0
	for _, set := range l.sets {
		total += set.Size()
	}
	return total
}
