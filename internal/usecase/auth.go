package usecase

import (
	"context"
	"errors"
	"strings"

	domainErrors "github.com/mugworks/storefront/internal/domain/errors"
	"github.com/mugworks/storefront/internal/domain/model"
	"github.com/mugworks/storefront/internal/domain/repository"
	pkgAuth "github.com/mugworks/storefront/internal/pkg/auth"
)

// AuthUseCase handles account lifecycle and token management.
type AuthUseCase struct {
	users    repository.UserRepository
	profiles repository.ProfileRepository
	hasher   pkgAuth.PasswordHasher
	tokens   pkgAuth.Strategy
}

// NewAuthUseCase constructs AuthUseCase.
func NewAuthUseCase(users repository.UserRepository, profiles repository.ProfileRepository, hasher pkgAuth.PasswordHasher, strategy pkgAuth.Strategy) *AuthUseCase {
	return &AuthUseCase{users: users, profiles: profiles, hasher: hasher, tokens: strategy}
}

// Register creates a new account plus its primary "user" profile and
// returns an auth token.
func (u *AuthUseCase) Register(ctx context.Context, name, email, phone, password string) (*model.User, string, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))
	if name == "" || email == "" || password == "" {
		return nil, "", domainErrors.ErrInvalidCredentials
	}

	hash, err := u.hasher.Hash(password)
	if err != nil {
		return nil, "", err
	}

	usr, err := u.users.Create(ctx, &model.User{
		Name:         name,
		Email:        email,
		Phone:        strings.TrimSpace(phone),
		PasswordHash: hash,
	})
	if err != nil {
		return nil, "", err
	}

	// The primary profile mirrors the account; buyer profiles are added
	// separately. Duplicate creation on a retried registration is benign.
	if _, err := u.profiles.Create(ctx, &model.Profile{
		UserID: usr.ID,
		Type:   model.ProfileTypeUser,
		Name:   usr.Name,
	}); err != nil && !errors.Is(err, domainErrors.ErrAlreadyExists) {
		return nil, "", err
	}

	token, err := u.tokens.IssueToken(usr.ID)
	if err != nil {
		return nil, "", err
	}

	return usr, token, nil
}

// Authenticate validates credentials and returns an auth token.
func (u *AuthUseCase) Authenticate(ctx context.Context, email, password string) (*model.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, "", domainErrors.ErrInvalidCredentials
	}

	usr, err := u.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, "", domainErrors.ErrInvalidCredentials
		}
		return nil, "", err
	}

	if err := u.hasher.Compare(usr.PasswordHash, password); err != nil {
		return nil, "", domainErrors.ErrInvalidCredentials
	}

	token, err := u.tokens.IssueToken(usr.ID)
	if err != nil {
		return nil, "", err
	}

	return usr, token, nil
}

// ParseToken resolves a bearer token to a user ID.
func (u *AuthUseCase) ParseToken(token string) (int64, error) {
	return u.tokens.ParseToken(token)
}
