package model

import "time"

// MugAssignment ties one physical mug unit to a buyer profile. Rows are
// created in bulk when an order's payment is confirmed and are never
// mutated afterwards. UnitID ascends across the whole system, not per
// series.
type MugAssignment struct {
	ID        int64
	OrderID   int64
	ProfileID int64
	UserID    int64
	UnitID    int64
	CreatedAt time.Time
}
