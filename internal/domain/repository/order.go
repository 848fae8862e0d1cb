package repository

import (
	"context"

	"github.com/mugworks/storefront/internal/domain/model"
)

// OrderRepository describes persistence operations for orders and their
// line items.
type OrderRepository interface {
	Create(ctx context.Context, order *model.Order) (*model.Order, error)
	GetByID(ctx context.Context, userID, id int64) (*model.Order, error)
	GetByMerchantTransactionID(ctx context.Context, txnID string) (*model.Order, error)
	ListByUser(ctx context.Context, userID int64, status model.OrderStatus, page, limit int) ([]model.Order, int64, error)
	UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) error
	SetMerchantTransactionID(ctx context.Context, orderID int64, txnID string) error
	// MarkPaymentCompleted completes the payment and confirms the order
	// in one guarded update. It reports whether this call performed the
	// transition; false means another path already completed the payment.
	MarkPaymentCompleted(ctx context.Context, orderID int64, transactionID string) (bool, error)
	MarkPaymentFailed(ctx context.Context, orderID int64) error
	SelectPendingPayments(ctx context.Context, limit int) ([]model.Order, error)
	CountByShippingState(ctx context.Context, state string) (int64, error)
}
