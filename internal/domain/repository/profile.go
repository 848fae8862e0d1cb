package repository

import (
	"context"

	"github.com/mugworks/storefront/internal/domain/model"
)

// ProfileRepository describes persistence operations for sub-profiles.
type ProfileRepository interface {
	Create(ctx context.Context, profile *model.Profile) (*model.Profile, error)
	GetByID(ctx context.Context, userID, id int64) (*model.Profile, error)
	ListByUser(ctx context.Context, userID int64) ([]model.Profile, error)
	Update(ctx context.Context, profile *model.Profile) error
	Delete(ctx context.Context, userID, id int64) error
}
