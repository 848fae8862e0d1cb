package usecase

import (
	"context"
	"strings"

	domainErrors "github.com/mugworks/storefront/internal/domain/errors"
	"github.com/mugworks/storefront/internal/domain/model"
	"github.com/mugworks/storefront/internal/domain/repository"
)

// AddressUseCase manages saved delivery addresses.
type AddressUseCase struct {
	addresses repository.AddressRepository
}

// NewAddressUseCase constructs AddressUseCase.
func NewAddressUseCase(addresses repository.AddressRepository) *AddressUseCase {
	return &AddressUseCase{addresses: addresses}
}

// AddressInput carries user supplied address fields.
type AddressInput struct {
	FullName     string
	Phone        string
	AddressLine1 string
	City         string
	State        string
	District     string
	PostalCode   string
	Country      string
	Landmark     string
}

func (in AddressInput) validate() error {
	for _, required := range []string{in.FullName, in.Phone, in.AddressLine1, in.State, in.District, in.PostalCode} {
		if strings.TrimSpace(required) == "" {
			return domainErrors.ErrInvalidPayload
		}
	}
	return nil
}

func (in AddressInput) toModel(userID int64) *model.Address {
	country := strings.TrimSpace(in.Country)
	if country == "" {
		country = "India"
	}
	return &model.Address{
		UserID:       userID,
		FullName:     strings.TrimSpace(in.FullName),
		Phone:        strings.TrimSpace(in.Phone),
		AddressLine1: strings.TrimSpace(in.AddressLine1),
		City:         strings.TrimSpace(in.City),
		State:        strings.TrimSpace(in.State),
		District:     strings.TrimSpace(in.District),
		PostalCode:   strings.TrimSpace(in.PostalCode),
		Country:      country,
		Landmark:     strings.TrimSpace(in.Landmark),
	}
}

// Create saves a new address for the account.
func (u *AddressUseCase) Create(ctx context.Context, userID int64, input AddressInput) (*model.Address, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}
	return u.addresses.Create(ctx, input.toModel(userID))
}

// List returns the account's saved addresses.
func (u *AddressUseCase) List(ctx context.Context, userID int64) ([]model.Address, error) {
	return u.addresses.ListByUser(ctx, userID)
}

// Get returns one address scoped to the account.
func (u *AddressUseCase) Get(ctx context.Context, userID, id int64) (*model.Address, error) {
	return u.addresses.GetByID(ctx, userID, id)
}

// Update replaces an address in place.
func (u *AddressUseCase) Update(ctx context.Context, userID, id int64, input AddressInput) (*model.Address, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}
	if _, err := u.addresses.GetByID(ctx, userID, id); err != nil {
		return nil, err
	}

	address := input.toModel(userID)
	address.ID = id
	if err := u.addresses.Update(ctx, address); err != nil {
		return nil, err
	}
	return address, nil
}

// Delete removes a saved address.
func (u *AddressUseCase) Delete(ctx context.Context, userID, id int64) error {
	return u.addresses.Delete(ctx, userID, id)
}
