package serial

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	domainErrors "github.com/mugworks/storefront/internal/domain/errors"
	"github.com/mugworks/storefront/internal/domain/repository"
)

// Strategy selects how the next sequence number for a series is derived.
type Strategy string

const (
	// StrategyScan derives the next number from a scan over the issued
	// history, then reserves the block against a uniqueness constraint.
	// Two concurrent scans can compute the same start; the reservation
	// turns that race into a conflict and the allocation is retried with
	// a fresh scan.
	StrategyScan Strategy = "scan"

	// StrategyCounter claims the block from an atomic per-series counter
	// row and never needs a retry.
	StrategyCounter Strategy = "counter"
)

// ParseStrategy maps a config value to a Strategy, defaulting to scan.
func ParseStrategy(value string) Strategy {
	if Strategy(strings.ToLower(strings.TrimSpace(value))) == StrategyCounter {
		return StrategyCounter
	}
	return StrategyScan
}

const maxReserveAttempts = 3

// Allocator issues contiguous blocks of formatted serials per series.
type Allocator struct {
	store    repository.SerialRepository
	strategy Strategy
	logger   *slog.Logger
}

// NewAllocator constructs Allocator with the given strategy.
func NewAllocator(store repository.SerialRepository, strategy Strategy, logger *slog.Logger) *Allocator {
	if strategy != StrategyCounter {
		strategy = StrategyScan
	}
	return &Allocator{store: store, strategy: strategy, logger: logger}
}

// Allocate returns quantity formatted serials for the series, numbered
// consecutively from one past the highest previously issued sequence
// (starting at 1 for a fresh series).
func (a *Allocator) Allocate(ctx context.Context, seriesCode string, quantity int) ([]string, error) {
	if quantity < 1 {
		return nil, fmt.Errorf("allocate serials: quantity %d out of range", quantity)
	}
	code := strings.ToUpper(strings.TrimSpace(seriesCode))
	if len(code) != 4 {
		return nil, fmt.Errorf("allocate serials: malformed series code %q", seriesCode)
	}

	if a.strategy == StrategyCounter {
		start, err := a.store.NextCounterBlock(ctx, code, quantity)
		if err != nil {
			return nil, fmt.Errorf("advance serial counter for %s: %w", code, err)
		}
		return FormatBlock(code, start, quantity), nil
	}

	for attempt := 1; attempt <= maxReserveAttempts; attempt++ {
		stored, err := a.store.StoredSerials(ctx, code)
		if err != nil {
			return nil, fmt.Errorf("scan serial history for %s: %w", code, err)
		}

		start := MaxSequence(code, stored) + 1
		err = a.store.ReserveBlock(ctx, code, start, quantity)
		if err == nil {
			return FormatBlock(code, start, quantity), nil
		}
		if !errors.Is(err, domainErrors.ErrSerialConflict) {
			return nil, fmt.Errorf("reserve serial block for %s: %w", code, err)
		}

		a.logger.Warn("serial block conflict, rescanning",
			slog.String("series", code),
			slog.Int64("start", start),
			slog.Int("attempt", attempt))
	}

	return nil, fmt.Errorf("allocate serials for %s: %w", code, domainErrors.ErrSerialConflict)
}
