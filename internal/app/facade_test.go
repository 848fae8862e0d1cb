package app

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	domainErrors "github.com/mugworks/storefront/internal/domain/errors"
	"github.com/mugworks/storefront/internal/domain/model"
	"github.com/mugworks/storefront/internal/serial"
	"github.com/mugworks/storefront/internal/usecase"
)

type userRepoStub struct {
	users  map[string]*model.User
	nextID int64
}

func (s *userRepoStub) Create(_ context.Context, user *model.User) (*model.User, error) {
	if _, ok := s.users[user.Email]; ok {
		return nil, domainErrors.ErrAlreadyExists
	}
	s.nextID++
	user.ID = s.nextID
	s.users[user.Email] = user
	return user, nil
}

func (s *userRepoStub) GetByEmail(_ context.Context, email string) (*model.User, error) {
	u, ok := s.users[email]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	return u, nil
}

func (s *userRepoStub) GetByID(_ context.Context, id int64) (*model.User, error) {
	for _, u := range s.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

type profileRepoStub struct {
	profiles map[int64]*model.Profile
	nextID   int64
}

func (s *profileRepoStub) Create(_ context.Context, p *model.Profile) (*model.Profile, error) {
	s.nextID++
	p.ID = s.nextID
	s.profiles[p.ID] = p
	return p, nil
}

func (s *profileRepoStub) GetByID(_ context.Context, userID, id int64) (*model.Profile, error) {
	p, ok := s.profiles[id]
	if !ok || p.UserID != userID {
		return nil, domainErrors.ErrNotFound
	}
	return p, nil
}

func (s *profileRepoStub) ListByUser(_ context.Context, userID int64) ([]model.Profile, error) {
	var out []model.Profile
	for _, p := range s.profiles {
		if p.UserID == userID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (s *profileRepoStub) Update(_ context.Context, p *model.Profile) error {
	s.profiles[p.ID] = p
	return nil
}

func (s *profileRepoStub) Delete(_ context.Context, userID, id int64) error {
	delete(s.profiles, id)
	return nil
}

type addressRepoStub struct {
	addresses map[int64]*model.Address
	nextID    int64
}

func (s *addressRepoStub) Create(_ context.Context, a *model.Address) (*model.Address, error) {
	s.nextID++
	a.ID = s.nextID
	s.addresses[a.ID] = a
	return a, nil
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

type orderRepoStub struct {
	orders map[int64]*model.Order
	nextID int64
}

func (s *orderRepoStub) Create(_ context.Context, order *model.Order) (*model.Order, error) {
	s.nextID++
	order.ID = s.nextID
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

type serialRepoStub struct {
	counters map[string]int64
}

func (s *serialRepoStub) StoredSerials(context.Context, string) ([]string, error) {
	return nil, nil
}

func (s *serialRepoStub) ReserveBlock(context.Context, string, int64, int) error { return nil }

func (s *serialRepoStub) NextCounterBlock(_ context.Context, code string, count int) (int64, error) {
	start := s.counters[code] + 1
	s.counters[code] += int64(count)
	return start, nil
}

type mugRepoStub struct {
	assignments []model.MugAssignment
	maxUnit     int64
}

func (s *mugRepoStub) CountByOrder(_ context.Context, orderID int64) (int64, error) {
	var n int64
	for _, a := range s.assignments {
		if a.OrderID == orderID {
			n++
		}
	}
	return n, nil
}

func (s *mugRepoStub) MaxUnitID(context.Context) (int64, error) { return s.maxUnit, nil }

func (s *mugRepoStub) InsertBatch(_ context.Context, assignments []model.MugAssignment) (int, error) {
	s.assignments = append(s.assignments, assignments...)
	if len(assignments) > 0 {
		last := assignments[len(assignments)-1]
		if last.UnitID > s.maxUnit {
			s.maxUnit = last.UnitID
		}
	}
	return len(assignments), nil
}

func (s *mugRepoStub) ListByUser(_ context.Context, userID int64) ([]model.MugAssignment, error) {
	var out []model.MugAssignment
	for _, a := range s.assignments {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	return out, nil
}

type hasherStub struct{}

func (hasherStub) Hash(password string) (string, error) { return "hash:" + password, nil }

func (hasherStub) Compare(hash, password string) error {
	if hash != "hash:"+password {
		return domainErrors.ErrInvalidCredentials
	}
	return nil
}

type strategyStub struct{}

func (strategyStub) IssueToken(int64) (string, error) { return "token", nil }

func (strategyStub) ParseToken(string) (int64, error) { return 99, nil }

type gatewayStub struct {
	state model.GatewayState
}

func (s *gatewayStub) CreatePayment(_ context.Context, amountPaise int64, merchantTxnID, mobile string) (*model.PaymentLink, error) {
	return &model.PaymentLink{MerchantTransactionID: merchantTxnID, RedirectURL: "https://pay.example/redirect"}, nil
}

func (s *gatewayStub) CheckStatus(_ context.Context, merchantTxnID string) (*model.GatewayStatus, error) {
	return &model.GatewayStatus{MerchantTransactionID: merchantTxnID, State: s.state, TransactionID: "T1"}, nil
}

type eventsStub struct {
	created   int
	confirmed int
}

func (s *eventsStub) OrderCreated(context.Context, *model.Order) { s.created++ }

func (s *eventsStub) PaymentConfirmed(context.Context, *model.Order) { s.confirmed++ }

type decoderStub struct {
	status *model.GatewayStatus
	err    error
}

func (s *decoderStub) DecodeCallback([]byte) (*model.GatewayStatus, error) {
	return s.status, s.err
}

type facadeFixture struct {
	facade    *StorefrontFacade
	users     *userRepoStub
	profiles  *profileRepoStub
	addresses *addressRepoStub
	orders    *orderRepoStub
	mugs      *mugRepoStub
	gateway   *gatewayStub
	events    *eventsStub
	decoder   *decoderStub
}

func newFacadeFixture() *facadeFixture {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))

	users := &userRepoStub{users: make(map[string]*model.User)}
	profiles := &profileRepoStub{profiles: make(map[int64]*model.Profile)}
	addresses := &addressRepoStub{addresses: make(map[int64]*model.Address)}
	orders := &orderRepoStub{orders: make(map[int64]*model.Order)}
	mugs := &mugRepoStub{}
	gateway := &gatewayStub{state: model.GatewayStatePending}
	events := &eventsStub{}
	decoder := &decoderStub{}

	authUC := usecase.NewAuthUseCase(users, profiles, hasherStub{}, strategyStub{})
	profileUC := usecase.NewProfileUseCase(profiles)
	addressUC := usecase.NewAddressUseCase(addresses)
	orderUC := usecase.NewOrderUseCase(
		orders, addresses, profiles,
		serial.NewResolver(orders, logger),
		serial.NewAllocator(&serialRepoStub{counters: make(map[string]int64)}, serial.StrategyCounter, logger),
		events, logger,
	)
	assignmentUC := usecase.NewMugAssignmentUseCase(mugs, logger)
	paymentUC := usecase.NewPaymentUseCase(orders, gateway, assignmentUC, events, logger)

	return &facadeFixture{
		facade:    NewStorefrontFacade(authUC, profileUC, addressUC, orderUC, paymentUC, assignmentUC, decoder),
		users:     users,
		profiles:  profiles,
		addresses: addresses,
		orders:    orders,
		mugs:      mugs,
		gateway:   gateway,
		events:    events,
		decoder:   decoder,
	}
}

func (f *facadeFixture) seedOrder(t *testing.T, userID int64) *model.Order {
	t.Helper()
	ctx := context.Background()

	address, err := f.facade.CreateAddress(ctx, userID, usecase.AddressInput{
		FullName:     "Arun Kumar",
		Phone:        "9876543210",
		AddressLine1: "12 Beach Road",
		City:         "Chennai",
		State:        "Tamil Nadu",
		PostalCode:   "600001",
	})
	if err != nil {
		t.Fatalf("create address: %v", err)
	}

	buyer, err := f.facade.CreateBuyerProfile(ctx, userID, usecase.ProfileInput{Name: "Gift Buyer"})
	if err != nil {
		t.Fatalf("create profile: %v", err)
	}

	order, err := f.facade.CreateOrder(ctx, userID, usecase.CreateOrderInput{
		Items: []usecase.OrderItemInput{
			{ProductID: "mug-classic", ProductName: "Classic Mug", Quantity: 1, Price: 299, Serialized: true},
		},
		ShippingAddressID: address.ID,
		PaymentMethod:     "phonepe",
		ProfileIDs:        []int64{buyer.ID},
	})
	if err != nil {
		t.Fatalf("create order: %v", err)
	}
	return order
}

func TestStorefrontFacadeAuth(t *testing.T) {
	f := newFacadeFixture()
	ctx := context.Background()

	token, err := f.facade.Register(ctx, "Arun", "arun@example.com", "9876543210", "secret123")
	if err != nil {
		t.Fatalf("register returned error: %v", err)
	}
	if token != "token" {
		t.Fatalf("unexpected token %q", token)
	}

	stored, err := f.users.GetByEmail(ctx, "arun@example.com")
	if err != nil {
		t.Fatalf("user not stored: %v", err)
	}

	profiles, err := f.facade.Profiles(ctx, stored.ID)
	if err != nil {
		t.Fatalf("list profiles: %v", err)
	}
	if len(profiles) != 1 || profiles[0].Type != model.ProfileTypeUser {
		t.Fatalf("expected auto-created user profile, got %+v", profiles)
	}

	if _, err = f.facade.Authenticate(ctx, "arun@example.com", "secret123"); err != nil {
		t.Fatalf("authenticate returned error: %v", err)
	}

	id, err := f.facade.ParseToken("anything")
	if err != nil {
		t.Fatalf("parse token returned error: %v", err)
	}
	if id != 99 {
		t.Fatalf("expected id 99, got %d", id)
	}
}

func TestStorefrontFacadePaymentFlow(t *testing.T) {
	f := newFacadeFixture()
	ctx := context.Background()
	order := f.seedOrder(t, 7)

	link, err := f.facade.InitiatePayment(ctx, 7, order.ID)
	if err != nil {
		t.Fatalf("initiate payment: %v", err)
	}
	if link.RedirectURL == "" || link.MerchantTransactionID == "" {
		t.Fatalf("incomplete payment link: %+v", link)
	}

	f.decoder.status = &model.GatewayStatus{
		MerchantTransactionID: link.MerchantTransactionID,
		State:                 model.GatewayStateCompleted,
		TransactionID:         "T777",
	}
	if err := f.facade.HandlePaymentCallback(ctx, []byte(`{"response":"x"}`)); err != nil {
		t.Fatalf("handle callback: %v", err)
	}

	stored := f.orders.orders[order.ID]
	if stored.Payment.Status != model.PaymentStatusCompleted || stored.Status != model.OrderStatusConfirmed {
		t.Fatalf("order not settled: payment=%s status=%s", stored.Payment.Status, stored.Status)
	}
	if stored.Payment.TransactionID != "T777" {
		t.Fatalf("unexpected transaction id %q", stored.Payment.TransactionID)
	}
	if len(f.mugs.assignments) != 1 {
		t.Fatalf("expected 1 mug assignment, got %d", len(f.mugs.assignments))
	}
	if f.events.confirmed != 1 {
		t.Fatalf("expected 1 confirmation event, got %d", f.events.confirmed)
	}
}

func TestStorefrontFacadeOrderViewRefreshesPendingPayment(t *testing.T) {
	f := newFacadeFixture()
	ctx := context.Background()
	order := f.seedOrder(t, 7)

	if _, err := f.facade.InitiatePayment(ctx, 7, order.ID); err != nil {
		t.Fatalf("initiate payment: %v", err)
	}
	f.gateway.state = model.GatewayStateCompleted

	viewed, err := f.facade.Order(ctx, 7, order.ID)
	if err != nil {
		t.Fatalf("order view: %v", err)
	}
	if viewed.Payment.Status != model.PaymentStatusCompleted {
		t.Fatalf("expected view to settle payment, got %s", viewed.Payment.Status)
	}
}

func TestStorefrontFacadeCallbackDecodeFailure(t *testing.T) {
	f := newFacadeFixture()
	f.decoder.err = domainErrors.ErrInvalidPayload

	err := f.facade.HandlePaymentCallback(context.Background(), []byte("garbage"))
	if err == nil {
		t.Fatalf("expected decode error to propagate")
	}
}

func TestStorefrontFacadeMugUnits(t *testing.T) {
	f := newFacadeFixture()
	f.mugs.assignments = []model.MugAssignment{
		{OrderID: 1, UserID: 7, ProfileID: 100, UnitID: 5},
		{OrderID: 2, UserID: 8, ProfileID: 200, UnitID: 6},
	}

	units, err := f.facade.MugUnits(context.Background(), 7)
	if err != nil {
		t.Fatalf("mug units: %v", err)
	}
	if len(units) != 1 || units[0].UnitID != 5 {
		t.Fatalf("unexpected units %+v", units)
	}
}
