package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/allisson/go-pwdhash"
	"github.com/google/uuid"

	apperrors "github.com/allisson/fleet/internal/errors"
	orgDomain "github.com/allisson/fleet/internal/org/domain"
	orgService "github.com/allisson/fleet/internal/org/service"
)

// userUseCase implements UserUseCase.
type userUseCase struct {
	userRepo       UserRepository
	tokenService   orgService.TokenService
	passwordHasher *pwdhash.PasswordHasher
}

// NewUserUseCase creates a new UserUseCase with the provided dependencies.
func NewUserUseCase(
	userRepo UserRepository,
	tokenService orgService.TokenService,
) (UserUseCase, error) {
	hasher, err := pwdhash.New(pwdhash.WithPolicy(pwdhash.PolicyInteractive))
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to create password hasher")
	}

	return &userUseCase{
		userRepo:       userRepo,
		tokenService:   tokenService,
		passwordHasher: hasher,
	}, nil
}

// Register creates a new user and issues an API token. The plain token is
// returned once and never stored; only its hash is persisted.
func (u *userUseCase) Register(
	ctx context.Context,
	input *RegisterUserInput,
) (*orgDomain.User, string, error) {
	email := strings.TrimSpace(strings.ToLower(input.Email))

	_, err := u.userRepo.GetByEmail(ctx, email)
	if err == nil {
		return nil, "", orgDomain.ErrUserAlreadyExists
	}
	if !apperrors.Is(err, apperrors.ErrNotFound) {
		return nil, "", err
	}

	passwordHash, err := u.passwordHasher.Hash([]byte(input.Password))
	if err != nil {
		return nil, "", apperrors.Wrap(err, "failed to hash password")
	}

	plainToken, tokenHash, err := u.tokenService.GenerateToken()
	if err != nil {
		return nil, "", err
	}

	user := &orgDomain.User{
		ID:           uuid.Must(uuid.NewV7()),
		Email:        email,
		Name:         strings.TrimSpace(input.Name),
		PasswordHash: passwordHash,
		APITokenHash: tokenHash,
		IsActive:     true,
		CreatedAt:    time.Now().UTC(),
		UpdatedAt:    time.Now().UTC(),
	}

	if err := u.userRepo.Create(ctx, user); err != nil {
		return nil, "", err
	}
	return user, plainToken, nil
}

// Authenticate resolves a plain bearer token to an active user.
func (u *userUseCase) Authenticate(ctx context.Context, plainToken string) (*orgDomain.User, error) {
	tokenHash := u.tokenService.HashToken(plainToken)

	user, err := u.userRepo.GetByTokenHash(ctx, tokenHash)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) {
			return nil, orgDomain.ErrInvalidToken
		}
		return nil, err
	}

	if !user.IsActive {
		return nil, orgDomain.ErrInactiveUser
	}
	return user, nil
}

// RotateToken issues a new API token for the user, invalidating the old one.
func (u *userUseCase) RotateToken(ctx context.Context, userID uuid.UUID) (string, error) {
	user, err := u.userRepo.Get(ctx, userID)
	if err != nil {
		return "", err
	}

	plainToken, tokenHash, err := u.tokenService.GenerateToken()
	if err != nil {
		return "", err
	}

	user.APITokenHash = tokenHash
	user.UpdatedAt = time.Now().UTC()

	if err := u.userRepo.Update(ctx, user); err != nil {
		return "", err
	}
	return plainToken, nil
}

// Deactivate marks a user inactive, blocking authentication.
func (u *userUseCase) Deactivate(ctx context.Context, userID uuid.UUID) error {
	user, err := u.userRepo.Get(ctx, userID)
	if err != nil {
		return err
	}

	user.IsActive = false
	user.UpdatedAt = time.Now().UTC()

	return u.userRepo.Update(ctx, user)
}

// Get retrieves a user by ID.
func (u *userUseCase) Get(ctx context.Context, userID uuid.UUID) (*orgDomain.User, error) {
	return u.userRepo.Get(ctx, userID)
}

// GetByEmail retrieves a user by email.
func (u *userUseCase) GetByEmail(ctx context.Context, email string) (*orgDomain.User, error) {
	return u.userRepo.GetByEmail(ctx, strings.TrimSpace(strings.ToLower(email)))
}
