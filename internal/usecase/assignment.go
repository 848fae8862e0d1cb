package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mugworks/storefront/internal/domain/model"
	"github.com/mugworks/storefront/internal/domain/repository"
)

// MugAssignmentUseCase hands out globally ascending mug unit IDs, one per
// buyer profile attached to a paid order.
type MugAssignmentUseCase struct {
	mugs   repository.MugAssignmentRepository
	logger *slog.Logger
}

// NewMugAssignmentUseCase constructs MugAssignmentUseCase.
func NewMugAssignmentUseCase(mugs repository.MugAssignmentRepository, logger *slog.Logger) *MugAssignmentUseCase {
	return &MugAssignmentUseCase{mugs: mugs, logger: logger}
}

// AssignUnits creates the assignment batch for a confirmed order. It is
// idempotent and never propagates failures: payment confirmation must not
// be rolled back because of this step.
func (u *MugAssignmentUseCase) AssignUnits(ctx context.Context, order *model.Order) {
	if err := u.assign(ctx, order); err != nil {
		u.logger.Error("mug unit assignment failed",
			slog.String("order", order.Number),
			slog.String("error", err.Error()))
	}
}

func (u *MugAssignmentUseCase) assign(ctx context.Context, order *model.Order) error {
	existing, err := u.mugs.CountByOrder(ctx, order.ID)
	if err != nil {
		return fmt.Errorf("check existing assignments: %w", err)
	}
	if existing > 0 {
		// Already processed; a duplicate confirmation signal is a no-op.
		return nil
	}

	if len(order.ProfileIDs) == 0 {
		return nil
	}

	maxID, err := u.mugs.MaxUnitID(ctx)
	if err != nil {
		return fmt.Errorf("read max unit id: %w", err)
	}

	batch := make([]model.MugAssignment, 0, len(order.ProfileIDs))
	for i, profileID := range order.ProfileIDs {
		batch = append(batch, model.MugAssignment{
			OrderID:   order.ID,
			ProfileID: profileID,
			UserID:    order.UserID,
			UnitID:    maxID + 1 + int64(i),
		})
	}

	inserted, err := u.mugs.InsertBatch(ctx, batch)
	if err != nil {
		return fmt.Errorf("insert assignment batch: %w", err)
	}
	if inserted < len(batch) {
		u.logger.Warn("mug assignment batch partially inserted",
			slog.String("order", order.Number),
			slog.Int("requested", len(batch)),
			slog.Int("inserted", inserted))
	}
	return nil
}

// ListByUser returns the account's assigned mug units.
func (u *MugAssignmentUseCase) ListByUser(ctx context.Context, userID int64) ([]model.MugAssignment, error) {
	return u.mugs.ListByUser(ctx, userID)
}
