package repository

import (
	"context"

	"github.com/mugworks/storefront/internal/domain/model"
)

// AddressRepository describes persistence operations for saved addresses.
type AddressRepository interface {
	Create(ctx context.Context, address *model.Address) (*model.Address, error)
	GetByID(ctx context.Context, userID, id int64) (*model.Address, error)
	ListByUser(ctx context.Context, userID int64) ([]model.Address, error)
	Update(ctx context.Context, address *model.Address) error
	Delete(ctx context.Context, userID, id int64) error
}
