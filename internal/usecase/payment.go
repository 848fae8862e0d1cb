package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	domainErrors "github.com/mugworks/storefront/internal/domain/errors"
	"github.com/mugworks/storefront/internal/domain/model"
	"github.com/mugworks/storefront/internal/domain/repository"
)

// PaymentGateway abstracts the payment processor.
type PaymentGateway interface {
	CreatePayment(ctx context.Context, amountPaise int64, merchantTxnID, mobile string) (*model.PaymentLink, error)
	CheckStatus(ctx context.Context, merchantTxnID string) (*model.GatewayStatus, error)
}

// PaymentSignal is a normalized payment outcome from any trigger path:
// webhook callback, view-time poll or the background sweeper.
type PaymentSignal struct {
	Success       bool
	Failed        bool
	TransactionID string
}

// SignalFromGateway maps a gateway status to a reconcile signal.
func SignalFromGateway(status *model.GatewayStatus) PaymentSignal {
	switch status.State {
	case model.GatewayStateCompleted:
		return PaymentSignal{Success: true, TransactionID: status.TransactionID}
	case model.GatewayStateFailed:
		return PaymentSignal{Failed: true}
	default:
		return PaymentSignal{}
	}
}

// PaymentUseCase reconciles an order's payment status against gateway
// signals and drives the post-confirmation side effects.
type PaymentUseCase struct {
	orders      repository.OrderRepository
	gateway     PaymentGateway
	assignments *MugAssignmentUseCase
	events      EventPublisher
	logger      *slog.Logger
}

// NewPaymentUseCase constructs PaymentUseCase.
func NewPaymentUseCase(
	orders repository.OrderRepository,
	gateway PaymentGateway,
	assignments *MugAssignmentUseCase,
	events EventPublisher,
	logger *slog.Logger,
) *PaymentUseCase {
	return &PaymentUseCase{
		orders:      orders,
		gateway:     gateway,
		assignments: assignments,
		events:      events,
		logger:      logger,
	}
}

// Initiate registers a payment request with the gateway for a pending
// order and records the merchant transaction id on the order.
func (u *PaymentUseCase) Initiate(ctx context.Context, order *model.Order) (*model.PaymentLink, error) {
	if order.Payment.Method != model.PaymentMethodPhonePe {
		return nil, domainErrors.ErrInvalidPayload
	}
	if order.Payment.Status == model.PaymentStatusCompleted {
		return nil, domainErrors.ErrAlreadyExists
	}

	txnID := newMerchantTransactionID(order.ID)
	link, err := u.gateway.CreatePayment(ctx, toPaise(order.FinalAmount), txnID, order.Shipping.Phone)
	if err != nil {
		return nil, fmt.Errorf("create gateway payment: %w", err)
	}

	if err := u.orders.SetMerchantTransactionID(ctx, order.ID, txnID); err != nil {
		return nil, err
	}
	order.Payment.MerchantTransactionID = txnID
	return link, nil
}

// Reconcile applies one payment signal to an order. An order whose
// payment is already completed is returned unchanged; a success signal
// marks the payment completed, confirms the order and triggers mug unit
// assignment exactly once.
func (u *PaymentUseCase) Reconcile(ctx context.Context, order *model.Order, signal PaymentSignal) (*model.Order, error) {
	if order.Payment.Status == model.PaymentStatusCompleted {
		return order, nil
	}

	switch {
	case signal.Success:
		transitioned, err := u.orders.MarkPaymentCompleted(ctx, order.ID, signal.TransactionID)
		if err != nil {
			return nil, fmt.Errorf("mark payment completed: %w", err)
		}
		order.Payment.Status = model.PaymentStatusCompleted
		order.Payment.TransactionID = signal.TransactionID
		order.Status = model.OrderStatusConfirmed

		// only the caller that won the guarded update runs the side
		// effects; a concurrent path holding a stale pending copy skips
		if transitioned {
			u.assignments.AssignUnits(ctx, order)
			if u.events != nil {
				u.events.PaymentConfirmed(ctx, order)
			}
		}
	case signal.Failed:
		if err := u.orders.MarkPaymentFailed(ctx, order.ID); err != nil {
			return nil, fmt.Errorf("mark payment failed: %w", err)
		}
		order.Payment.Status = model.PaymentStatusFailed
	}

	return order, nil
}

// RefreshStatus polls the gateway for a still-pending PhonePe order and
// reconciles the result. Poll failures are logged and leave the order
// untouched: view paths must not break because the gateway is down.
func (u *PaymentUseCase) RefreshStatus(ctx context.Context, order *model.Order) *model.Order {
	if order.Payment.Method != model.PaymentMethodPhonePe ||
		order.Payment.Status != model.PaymentStatusPending ||
		order.Payment.MerchantTransactionID == "" {
		return order
	}

	status, err := u.gateway.CheckStatus(ctx, order.Payment.MerchantTransactionID)
	if err != nil {
		u.logger.Warn("payment status poll failed",
			slog.String("order", order.Number),
			slog.String("error", err.Error()))
		return order
	}

	updated, err := u.Reconcile(ctx, order, SignalFromGateway(status))
	if err != nil {
		u.logger.Error("payment reconcile failed",
			slog.String("order", order.Number),
			slog.String("error", err.Error()))
		return order
	}
	return updated
}

// PendingPayments returns still-pending PhonePe orders for the sweeper.
func (u *PaymentUseCase) PendingPayments(ctx context.Context, limit int) ([]model.Order, error) {
	return u.orders.SelectPendingPayments(ctx, limit)
}

// FindByMerchantTransactionID locates the order referenced by a webhook.
func (u *PaymentUseCase) FindByMerchantTransactionID(ctx context.Context, txnID string) (*model.Order, error) {
	return u.orders.GetByMerchantTransactionID(ctx, txnID)
}

func newMerchantTransactionID(orderID int64) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:12])
	return fmt.Sprintf("TXN_%d_%s", orderID, suffix)
}

func toPaise(amount float64) int64 {
	return int64(amount*100 + 0.5)
}
