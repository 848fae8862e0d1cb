package usecase

import (
	"context"
	"strings"
	"time"

	domainErrors "github.com/mugworks/storefront/internal/domain/errors"
	"github.com/mugworks/storefront/internal/domain/model"
	"github.com/mugworks/storefront/internal/domain/repository"
)

// ProfileUseCase manages buyer profiles under an account.
type ProfileUseCase struct {
	profiles repository.ProfileRepository
}

// NewProfileUseCase constructs ProfileUseCase.
func NewProfileUseCase(profiles repository.ProfileRepository) *ProfileUseCase {
	return &ProfileUseCase{profiles: profiles}
}

// ProfileInput carries user supplied profile fields.
type ProfileInput struct {
	Name        string
	State       string
	District    string
	DateOfBirth *time.Time
}

// CreateBuyer adds a buyer profile to the account.
func (u *ProfileUseCase) CreateBuyer(ctx context.Context, userID int64, input ProfileInput) (*model.Profile, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, domainErrors.ErrInvalidPayload
	}

	return u.profiles.Create(ctx, &model.Profile{
		UserID:      userID,
		Type:        model.ProfileTypeBuyer,
		Name:        name,
		State:       strings.TrimSpace(input.State),
		District:    strings.TrimSpace(input.District),
		DateOfBirth: input.DateOfBirth,
	})
}

// List returns all profiles of the account, the primary one included.
func (u *ProfileUseCase) List(ctx context.Context, userID int64) ([]model.Profile, error) {
	return u.profiles.ListByUser(ctx, userID)
}

// Get returns one profile scoped to the account.
func (u *ProfileUseCase) Get(ctx context.Context, userID, id int64) (*model.Profile, error) {
	return u.profiles.GetByID(ctx, userID, id)
}

// Update replaces the editable fields of a profile.
func (u *ProfileUseCase) Update(ctx context.Context, userID, id int64, input ProfileInput) (*model.Profile, error) {
	profile, err := u.profiles.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if name := strings.TrimSpace(input.Name); name != "" {
		profile.Name = name
	}
	profile.State = strings.TrimSpace(input.State)
	profile.District = strings.TrimSpace(input.District)
	if input.DateOfBirth != nil {
		profile.DateOfBirth = input.DateOfBirth
	}

	if err := u.profiles.Update(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// Delete removes a buyer profile. The primary profile cannot be deleted.
func (u *ProfileUseCase) Delete(ctx context.Context, userID, id int64) error {
	profile, err := u.profiles.GetByID(ctx, userID, id)
	if err != nil {
		return err
	}
	if profile.Type == model.ProfileTypeUser {
		return domainErrors.ErrInvalidPayload
	}
	return u.profiles.Delete(ctx, userID, id)
}
