package repository

import "context"

// SerialRepository exposes the issued-serial history and the two
// allocation primitives backing the serial allocator strategies.
type SerialRepository interface {
	// StoredSerials returns raw stored serial values whose text contains
	// the series code. Values may be individual serials or legacy
	// comma-joined strings; normalization happens in the serial package.
	StoredSerials(ctx context.Context, seriesCode string) ([]string, error)

	// ReserveBlock records sequence numbers [start, start+count) for the
	// series. Returns ErrSerialConflict when any number was already
	// reserved by a concurrent allocation.
	ReserveBlock(ctx context.Context, seriesCode string, start int64, count int) error

	// NextCounterBlock atomically advances the per-series counter by
	// count and returns the first sequence number of the claimed block.
	NextCounterBlock(ctx context.Context, seriesCode string, count int) (int64, error)
}
