package repository

import (
	"context"

	"github.com/mugworks/storefront/internal/domain/model"
)

// MugAssignmentRepository manages the global mug unit ledger.
type MugAssignmentRepository interface {
	CountByOrder(ctx context.Context, orderID int64) (int64, error)
	MaxUnitID(ctx context.Context) (int64, error)

	// InsertBatch inserts assignments with unordered semantics: a failure
	// on one row must not prevent the remaining rows from being written.
	// It returns the number of rows actually inserted.
	InsertBatch(ctx context.Context, assignments []model.MugAssignment) (int, error)

	ListByUser(ctx context.Context, userID int64) ([]model.MugAssignment, error)
}
