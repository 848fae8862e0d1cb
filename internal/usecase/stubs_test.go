package usecase

import (
	"context"
	"strings"

	domainErrors "github.com/mugworks/storefront/internal/domain/errors"
	"github.com/mugworks/storefront/internal/domain/model"
)

// orderRepoStub keeps orders in memory for usecase tests.
type orderRepoStub struct {
	orders map[int64]*model.Order
	nextID int64

	createErr    error
	completedErr error
}

func newOrderRepoStub() *orderRepoStub {
	return &orderRepoStub{orders: make(map[int64]*model.Order), nextID: 1}
}

func (s *orderRepoStub) Create(_ context.Context, order *model.Order) (*model.Order, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	order.ID = s.nextID
	s.nextID++
	s.orders[order.ID] = order
	return order, nil
}

func (s *orderRepoStub) GetByID(_ context.Context, userID, id int64) (*model.Order, error) {
	o, ok := s.orders[id]
	if !ok || o.UserID != userID {
		return nil, domainErrors.ErrNotFound
	}
	return o, nil
}

func (s *orderRepoStub) GetByMerchantTransactionID(_ context.Context, txnID string) (*model.Order, error) {
	for _, o := range s.orders {
		if o.Payment.MerchantTransactionID == txnID {
			return o, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

func (s *orderRepoStub) ListByUser(_ context.Context, userID int64, status model.OrderStatus, page, limit int) ([]model.Order, int64, error) {
	var out []model.Order
	for _, o := range s.orders {
		if o.UserID == userID && (status == "" || o.Status == status) {
			out = append(out, *o)
		}
	}
	return out, int64(len(out)), nil
}

func (s *orderRepoStub) UpdateStatus(_ context.Context, orderID int64, status model.OrderStatus) error {
	o, ok := s.orders[orderID]
	if !ok {
		return domainErrors.ErrNotFound
	}
	o.Status = status
	return nil
}

func (s *orderRepoStub) SetMerchantTransactionID(_ context.Context, orderID int64, txnID string) error {
	o, ok := s.orders[orderID]
	if !ok {
		return domainErrors.ErrNotFound
	}
	o.Payment.MerchantTransactionID = txnID
	return nil
}

func (s *orderRepoStub) MarkPaymentCompleted(_ context.Context, orderID int64, transactionID string) (bool, error) {
	if s.completedErr != nil {
		return false, s.completedErr
	}
	o, ok := s.orders[orderID]
	if !ok {
		return false, domainErrors.ErrNotFound
	}
	if o.Payment.Status != model.PaymentStatusPending {
		return false, nil
	}
	o.Payment.Status = model.PaymentStatusCompleted
	o.Payment.TransactionID = transactionID
	o.Status = model.OrderStatusConfirmed
	return true, nil
}

func (s *orderRepoStub) MarkPaymentFailed(_ context.Context, orderID int64) error {
	o, ok := s.orders[orderID]
	if !ok {
		return domainErrors.ErrNotFound
	}
	o.Payment.Status = model.PaymentStatusFailed
	return nil
}

func (s *orderRepoStub) SelectPendingPayments(_ context.Context, limit int) ([]model.Order, error) {
	var out []model.Order
	for _, o := range s.orders {
		if o.Payment.Method == model.PaymentMethodPhonePe &&
			o.Payment.Status == model.PaymentStatusPending &&
			o.Payment.MerchantTransactionID != "" {
			out = append(out, *o)
		}
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (s *orderRepoStub) CountByShippingState(_ context.Context, state string) (int64, error) {
	var n int64
	for _, o := range s.orders {
		if strings.EqualFold(o.Shipping.State, state) {
			n++
		}
	}
	return n, nil
}

// addressRepoStub serves a fixed set of addresses.
type addressRepoStub struct {
	addresses map[int64]*model.Address
}

func (s *addressRepoStub) Create(_ context.Context, address *model.Address) (*model.Address, error) {
	return address, nil
}

func (s *addressRepoStub) GetByID(_ context.Context, userID, id int64) (*model.Address, error) {
	a, ok := s.addresses[id]
	if !ok || a.UserID != userID {
		return nil, domainErrors.ErrNotFound
	}
	return a, nil
}

func (s *addressRepoStub) ListByUser(context.Context, int64) ([]model.Address, error) {
	return nil, nil
}

func (s *addressRepoStub) Update(context.Context, *model.Address) error { return nil }

func (s *addressRepoStub) Delete(context.Context, int64, int64) error { return nil }

// profileRepoStub serves a fixed set of profiles.
type profileRepoStub struct {
	profiles map[int64]*model.Profile
}

func (s *profileRepoStub) Create(_ context.Context, p *model.Profile) (*model.Profile, error) {
	return p, nil
}

func (s *profileRepoStub) GetByID(_ context.Context, userID, id int64) (*model.Profile, error) {
	p, ok := s.profiles[id]
	if !ok || p.UserID != userID {
		return nil, domainErrors.ErrNotFound
	}
	return p, nil
}

func (s *profileRepoStub) ListByUser(context.Context, int64) ([]model.Profile, error) {
	return nil, nil
}

func (s *profileRepoStub) Update(context.Context, *model.Profile) error { return nil }

func (s *profileRepoStub) Delete(context.Context, int64, int64) error { return nil }

// serialRepoStub backs the allocator with in-memory history.
type serialRepoStub struct {
	stored   []string
	reserved map[string]map[int64]bool
	counters map[string]int64
	scanErr  error
}

func newSerialRepoStub(stored ...string) *serialRepoStub {
	return &serialRepoStub{
		stored:   stored,
		reserved: make(map[string]map[int64]bool),
		counters: make(map[string]int64),
	}
}

func (s *serialRepoStub) StoredSerials(context.Context, string) ([]string, error) {
	return s.stored, s.scanErr
}

func (s *serialRepoStub) ReserveBlock(_ context.Context, code string, start int64, count int) error {
	if s.reserved[code] == nil {
		s.reserved[code] = make(map[int64]bool)
	}
	for i := int64(0); i < int64(count); i++ {
		if s.reserved[code][start+i] {
			return domainErrors.ErrSerialConflict
		}
		s.reserved[code][start+i] = true
	}
	return nil
}

func (s *serialRepoStub) NextCounterBlock(_ context.Context, code string, count int) (int64, error) {
	start := s.counters[code] + 1
	s.counters[code] += int64(count)
	return start, nil
}

// gatewayStub is a scriptable PaymentGateway.
type gatewayStub struct {
	link      *model.PaymentLink
	createErr error

	status    *model.GatewayStatus
	statusErr error

	statusCalls int
}

func (s *gatewayStub) CreatePayment(_ context.Context, amountPaise int64, merchantTxnID, mobile string) (*model.PaymentLink, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	if s.link != nil {
		return s.link, nil
	}
	return &model.PaymentLink{MerchantTransactionID: merchantTxnID, RedirectURL: "https://pay.example/redirect"}, nil
}

func (s *gatewayStub) CheckStatus(_ context.Context, merchantTxnID string) (*model.GatewayStatus, error) {
	s.statusCalls++
	if s.statusErr != nil {
		return nil, s.statusErr
	}
	if s.status != nil {
		return s.status, nil
	}
	return &model.GatewayStatus{MerchantTransactionID: merchantTxnID, State: model.GatewayStatePending}, nil
}

// eventsStub records published events.
type eventsStub struct {
	created   int
	confirmed int
}

func (s *eventsStub) OrderCreated(context.Context, *model.Order) { s.created++ }

func (s *eventsStub) PaymentConfirmed(context.Context, *model.Order) { s.confirmed++ }
