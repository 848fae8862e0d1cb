package router

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/mugworks/storefront/internal/domain/model"
	"github.com/mugworks/storefront/internal/server/http/handlers"
	"github.com/mugworks/storefront/internal/usecase"
)

type routerFacadeStub struct{}

func (routerFacadeStub) Register(context.Context, string, string, string, string) (string, error) {
	return "token", nil
}

func (routerFacadeStub) Authenticate(context.Context, string, string) (string, error) {
	return "token", nil
}

func (routerFacadeStub) ParseToken(string) (int64, error) { return 7, nil }

func (routerFacadeStub) CreateBuyerProfile(context.Context, int64, usecase.ProfileInput) (*model.Profile, error) {
	return &model.Profile{ID: 1}, nil
}

func (routerFacadeStub) Profiles(context.Context, int64) ([]model.Profile, error) { return nil, nil }

func (routerFacadeStub) Profile(context.Context, int64, int64) (*model.Profile, error) {
	return &model.Profile{ID: 1}, nil
}

func (routerFacadeStub) UpdateProfile(context.Context, int64, int64, usecase.ProfileInput) (*model.Profile, error) {
	return &model.Profile{ID: 1}, nil
}

func (routerFacadeStub) DeleteProfile(context.Context, int64, int64) error { return nil }

func (routerFacadeStub) CreateAddress(context.Context, int64, usecase.AddressInput) (*model.Address, error) {
	return &model.Address{ID: 1}, nil
}

func (routerFacadeStub) Addresses(context.Context, int64) ([]model.Address, error) { return nil, nil }

func (routerFacadeStub) Address(context.Context, int64, int64) (*model.Address, error) {
	return &model.Address{ID: 1}, nil
}

func (routerFacadeStub) UpdateAddress(context.Context, int64, int64, usecase.AddressInput) (*model.Address, error) {
	return &model.Address{ID: 1}, nil
}

func (routerFacadeStub) DeleteAddress(context.Context, int64, int64) error { return nil }

func (routerFacadeStub) CreateOrder(context.Context, int64, usecase.CreateOrderInput) (*model.Order, error) {
	return &model.Order{ID: 1, Number: "ORD-1"}, nil
}

func (routerFacadeStub) Order(context.Context, int64, int64) (*model.Order, error) {
	return &model.Order{ID: 1, Number: "ORD-1"}, nil
}

func (routerFacadeStub) Orders(context.Context, int64, model.OrderStatus, int, int) ([]model.Order, int64, error) {
	return []model.Order{{ID: 1, Number: "ORD-1"}}, 1, nil
}

func (routerFacadeStub) UpdateOrderStatus(context.Context, int64, int64, model.OrderStatus) (*model.Order, error) {
	return &model.Order{ID: 1, Number: "ORD-1"}, nil
}

func (routerFacadeStub) InitiatePayment(context.Context, int64, int64) (*model.PaymentLink, error) {
	return &model.PaymentLink{MerchantTransactionID: "TXN_1"}, nil
}

func (routerFacadeStub) HandlePaymentCallback(context.Context, []byte) error { return nil }

func (routerFacadeStub) MugUnits(context.Context, int64) ([]model.MugAssignment, error) {
	return nil, nil
}

func TestSetupRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	engine := Setup(routerFacadeStub{}, logger)

	body, _ := json.Marshal(map[string]string{"name": "Arun", "email": "arun@example.com", "password": "secret"})
	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	engine.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200 for register, got %d", resp.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/orders", nil)
	req.Header.Set("Authorization", "Bearer token")
	resp = httptest.NewRecorder()
	engine.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200 for orders, got %d", resp.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/orders", nil)
	resp = httptest.NewRecorder()
	engine.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401 without token, got %d", resp.Code)
	}

	req = httptest.NewRequest(http.MethodPost, "/api/payments/phonepe/callback", bytes.NewReader([]byte(`{"response":"x"}`)))
	resp = httptest.NewRecorder()
	engine.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200 for callback, got %d", resp.Code)
	}
}

var _ handlers.StorefrontFacade = routerFacadeStub{}
