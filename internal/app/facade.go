package app

import (
	"context"

	"github.com/mugworks/storefront/internal/domain/model"
	"github.com/mugworks/storefront/internal/usecase"
)

// CallbackDecoder parses gateway webhook bodies into payment statuses.
type CallbackDecoder interface {
	DecodeCallback(body []byte) (*model.GatewayStatus, error)
}

// StorefrontFacade aggregates the application use cases behind one
// surface consumed by the HTTP handlers and the payment sweeper.
type StorefrontFacade struct {
	auth        *usecase.AuthUseCase
	profiles    *usecase.ProfileUseCase
	addresses   *usecase.AddressUseCase
	orders      *usecase.OrderUseCase
	payments    *usecase.PaymentUseCase
	assignments *usecase.MugAssignmentUseCase
	decoder     CallbackDecoder
}

func NewStorefrontFacade(
	auth *usecase.AuthUseCase,
	profiles *usecase.ProfileUseCase,
	addresses *usecase.AddressUseCase,
	orders *usecase.OrderUseCase,
	payments *usecase.PaymentUseCase,
	assignments *usecase.MugAssignmentUseCase,
	decoder CallbackDecoder,
) *StorefrontFacade {
	return &StorefrontFacade{
		auth:        auth,
		profiles:    profiles,
		addresses:   addresses,
		orders:      orders,
		payments:    payments,
		assignments: assignments,
		decoder:     decoder,
	}
}

func (f *StorefrontFacade) Register(ctx context.Context, name, email, phone, password string) (string, error) {
	_, token, err := f.auth.Register(ctx, name, email, phone, password)
	return token, err
}

func (f *StorefrontFacade) Authenticate(ctx context.Context, email, password string) (string, error) {
	_, token, err := f.auth.Authenticate(ctx, email, password)
	return token, err
}

func (f *StorefrontFacade) ParseToken(token string) (int64, error) {
	return f.auth.ParseToken(token)
}

func (f *StorefrontFacade) CreateBuyerProfile(ctx context.Context, userID int64, input usecase.ProfileInput) (*model.Profile, error) {
	return f.profiles.CreateBuyer(ctx, userID, input)
}

func (f *StorefrontFacade) Profiles(ctx context.Context, userID int64) ([]model.Profile, error) {
	return f.profiles.List(ctx, userID)
}

func (f *StorefrontFacade) Profile(ctx context.Context, userID, id int64) (*model.Profile, error) {
	return f.profiles.Get(ctx, userID, id)
}

func (f *StorefrontFacade) UpdateProfile(ctx context.Context, userID, id int64, input usecase.ProfileInput) (*model.Profile, error) {
	return f.profiles.Update(ctx, userID, id, input)
}

func (f *StorefrontFacade) DeleteProfile(ctx context.Context, userID, id int64) error {
	return f.profiles.Delete(ctx, userID, id)
}

func (f *StorefrontFacade) CreateAddress(ctx context.Context, userID int64, input usecase.AddressInput) (*model.Address, error) {
	return f.addresses.Create(ctx, userID, input)
}

func (f *StorefrontFacade) Addresses(ctx context.Context, userID int64) ([]model.Address, error) {
	return f.addresses.List(ctx, userID)
}

func (f *StorefrontFacade) Address(ctx context.Context, userID, id int64) (*model.Address, error) {
	return f.addresses.Get(ctx, userID, id)
}

func (f *StorefrontFacade) UpdateAddress(ctx context.Context, userID, id int64, input usecase.AddressInput) (*model.Address, error) {
	return f.addresses.Update(ctx, userID, id, input)
}

func (f *StorefrontFacade) DeleteAddress(ctx context.Context, userID, id int64) error {
	return f.addresses.Delete(ctx, userID, id)
}

func (f *StorefrontFacade) CreateOrder(ctx context.Context, userID int64, input usecase.CreateOrderInput) (*model.Order, error) {
	return f.orders.Create(ctx, userID, input)
}

// Order returns one order, refreshing a still-pending payment against
// the gateway first so the caller always sees the latest state.
func (f *StorefrontFacade) Order(ctx context.Context, userID, id int64) (*model.Order, error) {
	order, err := f.orders.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	return f.payments.RefreshStatus(ctx, order), nil
}

// Orders lists a page of orders, refreshing pending payments in place.
func (f *StorefrontFacade) Orders(ctx context.Context, userID int64, status model.OrderStatus, page, limit int) ([]model.Order, int64, error) {
	orders, total, err := f.orders.ListByUser(ctx, userID, status, page, limit)
	if err != nil {
		return nil, 0, err
	}
	for i := range orders {
		orders[i] = *f.payments.RefreshStatus(ctx, &orders[i])
	}
	return orders, total, nil
}

func (f *StorefrontFacade) UpdateOrderStatus(ctx context.Context, userID, orderID int64, status model.OrderStatus) (*model.Order, error) {
	return f.orders.UpdateStatus(ctx, userID, orderID, status)
}

// InitiatePayment registers a payment request for an order the user owns.
func (f *StorefrontFacade) InitiatePayment(ctx context.Context, userID, orderID int64) (*model.PaymentLink, error) {
	order, err := f.orders.Get(ctx, userID, orderID)
	if err != nil {
		return nil, err
	}
	return f.payments.Initiate(ctx, order)
}

// HandlePaymentCallback applies a gateway webhook to its order.
func (f *StorefrontFacade) HandlePaymentCallback(ctx context.Context, body []byte) error {
	status, err := f.decoder.DecodeCallback(body)
	if err != nil {
		return err
	}

	order, err := f.payments.FindByMerchantTransactionID(ctx, status.MerchantTransactionID)
	if err != nil {
		return err
	}

	_, err = f.payments.Reconcile(ctx, order, usecase.SignalFromGateway(status))
	return err
}

func (f *StorefrontFacade) MugUnits(ctx context.Context, userID int64) ([]model.MugAssignment, error) {
	return f.assignments.ListByUser(ctx, userID)
}

// PendingPayments feeds the background sweeper.
func (f *StorefrontFacade) PendingPayments(ctx context.Context, limit int) ([]model.Order, error) {
	return f.payments.PendingPayments(ctx, limit)
}

// RefreshPayment polls and reconciles one pending order.
func (f *StorefrontFacade) RefreshPayment(ctx context.Context, order *model.Order) *model.Order {
	return f.payments.RefreshStatus(ctx, order)
}
