package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"strings"
	"time"

	domainErrors "github.com/mugworks/storefront/internal/domain/errors"
	"github.com/mugworks/storefront/internal/domain/model"
	"github.com/mugworks/storefront/internal/domain/repository"
	"github.com/mugworks/storefront/internal/serial"
)

// Free shipping threshold and the flat charge below it.
const (
	freeShippingAbove = 1000.0
	shippingCharge    = 50.0
)

// EventPublisher announces order lifecycle events. Implementations must
// be safe to call with a nil receiver check upstream; publishing is
// always best effort.
type EventPublisher interface {
	OrderCreated(ctx context.Context, order *model.Order)
	PaymentConfirmed(ctx context.Context, order *model.Order)
}

// OrderUseCase handles checkout and order views, including the serial
// fan-out for serialized mug products.
type OrderUseCase struct {
	orders    repository.OrderRepository
	addresses repository.AddressRepository
	profiles  repository.ProfileRepository
	resolver  *serial.Resolver
	allocator *serial.Allocator
	events    EventPublisher
	logger    *slog.Logger
}

// NewOrderUseCase constructs OrderUseCase.
func NewOrderUseCase(
	orders repository.OrderRepository,
	addresses repository.AddressRepository,
	profiles repository.ProfileRepository,
	resolver *serial.Resolver,
	allocator *serial.Allocator,
	events EventPublisher,
	logger *slog.Logger,
) *OrderUseCase {
	return &OrderUseCase{
		orders:    orders,
		addresses: addresses,
		profiles:  profiles,
		resolver:  resolver,
		allocator: allocator,
		events:    events,
		logger:    logger,
	}
}

// OrderItemInput is one requested line at checkout.
type OrderItemInput struct {
	ProductID     string
	ProductName   string
	Quantity      int
	Price         float64
	ReferenceCode string
	Serialized    bool
}

// CreateOrderInput is the checkout payload.
type CreateOrderInput struct {
	Items             []OrderItemInput
	ShippingAddressID int64
	PaymentMethod     string
	ProfileIDs        []int64
}

// Create validates the checkout payload, snapshots the shipping address,
// issues serials for serialized items and persists the order in pending
// state. A failed serial allocation is logged and leaves that line item
// without serials; it never aborts the order.
func (u *OrderUseCase) Create(ctx context.Context, userID int64, input CreateOrderInput) (*model.Order, error) {
	if len(input.Items) == 0 || input.ShippingAddressID == 0 {
		return nil, domainErrors.ErrInvalidPayload
	}
	method := model.PaymentMethod(strings.ToLower(strings.TrimSpace(input.PaymentMethod)))
	if method != model.PaymentMethodPhonePe {
		return nil, domainErrors.ErrInvalidPayload
	}
	for _, item := range input.Items {
		if item.Quantity < 1 || item.Price < 0 || strings.TrimSpace(item.ProductID) == "" {
			return nil, domainErrors.ErrInvalidPayload
		}
	}

	address, err := u.addresses.GetByID(ctx, userID, input.ShippingAddressID)
	if err != nil {
		return nil, err
	}

	for _, profileID := range input.ProfileIDs {
		if _, err := u.profiles.GetByID(ctx, userID, profileID); err != nil {
			return nil, err
		}
	}

	order := &model.Order{
		UserID:     userID,
		Number:     newOrderNumber(),
		ProfileIDs: input.ProfileIDs,
		Status:     model.OrderStatusPending,
		Shipping: model.ShippingSnapshot{
			FullName:     address.FullName,
			Phone:        address.Phone,
			AddressLine1: address.AddressLine1,
			City:         address.City,
			State:        address.State,
			District:     address.District,
			PostalCode:   address.PostalCode,
			Country:      address.Country,
			Landmark:     address.Landmark,
		},
	}

	var total float64
	for _, in := range input.Items {
		item := model.OrderItem{
			ProductID:     in.ProductID,
			ProductName:   in.ProductName,
			Quantity:      in.Quantity,
			Price:         in.Price,
			TotalPrice:    float64(in.Quantity) * in.Price,
			ReferenceCode: strings.TrimSpace(in.ReferenceCode),
			Serialized:    in.Serialized,
		}
		total += item.TotalPrice

		if item.Serialized {
			code := u.resolver.Resolve(ctx, item, order.Shipping)
			serials, err := u.allocator.Allocate(ctx, code, item.Quantity)
			if err != nil {
				u.logger.Error("serial allocation failed, item left unserialized",
					slog.String("order", order.Number),
					slog.String("series", code),
					slog.String("error", err.Error()))
			} else {
				item.Serials = serials
			}
		}

		order.Items = append(order.Items, item)
	}

	order.TotalAmount = total
	order.ShippingCharges = shippingCharge
	if total > freeShippingAbove {
		order.ShippingCharges = 0
	}
	order.FinalAmount = order.TotalAmount + order.ShippingCharges
	order.Payment = model.PaymentDetails{
		Method:   method,
		Status:   model.PaymentStatusPending,
		Amount:   order.FinalAmount,
		Currency: "INR",
	}

	created, err := u.orders.Create(ctx, order)
	if err != nil {
		return nil, err
	}

	if u.events != nil {
		u.events.OrderCreated(ctx, created)
	}
	return created, nil
}

// Get returns one order scoped to the account.
func (u *OrderUseCase) Get(ctx context.Context, userID, id int64) (*model.Order, error) {
	return u.orders.GetByID(ctx, userID, id)
}

// ListByUser returns a page of the account's orders, optionally filtered
// by status, and the total count.
func (u *OrderUseCase) ListByUser(ctx context.Context, userID int64, status model.OrderStatus, page, limit int) ([]model.Order, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}
	return u.orders.ListByUser(ctx, userID, status, page, limit)
}

// statusRank orders the linear delivery lifecycle.
var statusRank = map[model.OrderStatus]int{
	model.OrderStatusPending:    0,
	model.OrderStatusConfirmed:  1,
	model.OrderStatusProcessing: 2,
	model.OrderStatusShipped:    3,
	model.OrderStatusDelivered:  4,
}

// UpdateStatus advances the delivery lifecycle. Backward transitions are
// rejected; cancellation is allowed any time before shipment.
func (u *OrderUseCase) UpdateStatus(ctx context.Context, userID, orderID int64, status model.OrderStatus) (*model.Order, error) {
	order, err := u.orders.GetByID(ctx, userID, orderID)
	if err != nil {
		return nil, err
	}

	if status == model.OrderStatusCancelled {
		if statusRank[order.Status] >= statusRank[model.OrderStatusShipped] || order.Status == model.OrderStatusCancelled {
			return nil, domainErrors.ErrInvalidStatus
		}
	} else {
		next, ok := statusRank[status]
		if !ok || order.Status == model.OrderStatusCancelled || next <= statusRank[order.Status] {
			return nil, domainErrors.ErrInvalidStatus
		}
	}

	if err := u.orders.UpdateStatus(ctx, orderID, status); err != nil {
		return nil, err
	}
	order.Status = status
	return order, nil
}

func newOrderNumber() string {
	return fmt.Sprintf("ORD-%d-%03d", time.Now().UnixMilli(), rand.IntN(1000))
}
