package handlers

import (
	"context"

	"github.com/mugworks/storefront/internal/domain/model"
	"github.com/mugworks/storefront/internal/usecase"
)

// AuthFacade describes authentication capabilities required by handlers.
type AuthFacade interface {
	Register(ctx context.Context, name, email, phone, password string) (string, error)
	Authenticate(ctx context.Context, email, password string) (string, error)
	ParseToken(token string) (int64, error)
}

// ProfileFacade manages buyer profiles.
type ProfileFacade interface {
	CreateBuyerProfile(ctx context.Context, userID int64, input usecase.ProfileInput) (*model.Profile, error)
	Profiles(ctx context.Context, userID int64) ([]model.Profile, error)
	Profile(ctx context.Context, userID, id int64) (*model.Profile, error)
	UpdateProfile(ctx context.Context, userID, id int64, input usecase.ProfileInput) (*model.Profile, error)
	DeleteProfile(ctx context.Context, userID, id int64) error
}

// AddressFacade manages saved delivery addresses.
type AddressFacade interface {
	CreateAddress(ctx context.Context, userID int64, input usecase.AddressInput) (*model.Address, error)
	Addresses(ctx context.Context, userID int64) ([]model.Address, error)
	Address(ctx context.Context, userID, id int64) (*model.Address, error)
	UpdateAddress(ctx context.Context, userID, id int64, input usecase.AddressInput) (*model.Address, error)
	DeleteAddress(ctx context.Context, userID, id int64) error
}

// OrderFacade encapsulates order operations exposed via HTTP.
type OrderFacade interface {
	CreateOrder(ctx context.Context, userID int64, input usecase.CreateOrderInput) (*model.Order, error)
	Order(ctx context.Context, userID, id int64) (*model.Order, error)
	Orders(ctx context.Context, userID int64, status model.OrderStatus, page, limit int) ([]model.Order, int64, error)
	UpdateOrderStatus(ctx context.Context, userID, orderID int64, status model.OrderStatus) (*model.Order, error)
}

// PaymentFacade covers checkout payment operations.
type PaymentFacade interface {
	InitiatePayment(ctx context.Context, userID, orderID int64) (*model.PaymentLink, error)
	HandlePaymentCallback(ctx context.Context, body []byte) error
}

// MugFacade exposes assigned mug units.
type MugFacade interface {
	MugUnits(ctx context.Context, userID int64) ([]model.MugAssignment, error)
}

// StorefrontFacade aggregates the full set of operations used across handlers.
type StorefrontFacade interface {
	AuthFacade
	ProfileFacade
	AddressFacade
	OrderFacade
	PaymentFacade
	MugFacade
}
