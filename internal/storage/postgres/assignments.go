package postgres

import (
	"context"
	"log/slog"

	"github.com/mugworks/storefront/internal/domain/model"
)

func (r *mugAssignmentRepository) CountByOrder(ctx context.Context, orderID int64) (int64, error) {
	const query = `SELECT COUNT(*) FROM mug_assignments WHERE order_id=$1`
	var count int64
	if err := r.storage.pool.QueryRow(ctx, query, orderID).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *mugAssignmentRepository) MaxUnitID(ctx context.Context) (int64, error) {
	const query = `SELECT COALESCE(MAX(unit_id), 0) FROM mug_assignments`
	var max int64
	if err := r.storage.pool.QueryRow(ctx, query).Scan(&max); err != nil {
		return 0, err
	}
	return max, nil
}

// InsertBatch writes assignments row by row. A failed row is logged and
// skipped so the remaining units still land.
func (r *mugAssignmentRepository) InsertBatch(ctx context.Context, assignments []model.MugAssignment) (int, error) {
	const query = `INSERT INTO mug_assignments (order_id, profile_id, user_id, unit_id)
                   VALUES ($1, $2, $3, $4)`
	inserted := 0
	for _, a := range assignments {
		if _, err := r.storage.pool.Exec(ctx, query, a.OrderID, a.ProfileID, a.UserID, a.UnitID); err != nil {
			r.storage.logger.Warn("insert mug assignment failed",
				slog.Int64("order_id", a.OrderID),
				slog.Int64("profile_id", a.ProfileID),
				slog.Int64("unit_id", a.UnitID),
				slog.String("error", err.Error()),
			)
			continue
		}
		inserted++
	}
	return inserted, nil
}

func (r *mugAssignmentRepository) ListByUser(ctx context.Context, userID int64) ([]model.MugAssignment, error) {
	const query = `SELECT id, order_id, profile_id, user_id, unit_id, created_at
                   FROM mug_assignments WHERE user_id=$1 ORDER BY unit_id`
	rows, err := r.storage.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.MugAssignment
	for rows.Next() {
		var a model.MugAssignment
		if err := rows.Scan(&a.ID, &a.OrderID, &a.ProfileID, &a.UserID, &a.UnitID, &a.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
