package usecase

import (
	"context"
	"errors"
	"strings"

	"career-coach-backend/internal/domain"
	"career-coach-backend/pkg/apperror"
)

type authUsecase struct {
	userRepo domain.UserRepository
}

func NewAuthUsecase(userRepo domain.UserRepository) domain.AuthUsecase {
	return &authUsecase{userRepo: userRepo}
}

// EnsureUser provisions the local record on first authenticated access.
// Safe under concurrent first requests: the loser of the insert race re-reads.
func (u *authUsecase) EnsureUser(ctx context.Context, externalID, email string) (*domain.User, error) {
	externalID = strings.TrimSpace(externalID)
	if externalID == "" {
		return nil, apperror.Unauthorized("Unauthorized")
	}

	existing, err := u.userRepo.GetByExternalID(ctx, externalID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, apperror.StoreFailure("Failed to load user", err)
	}

	user := &domain.User{
		ExternalID: externalID,
		Email:      email,
		Skills:     []string{},
	}
	if err := u.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrUserExists) {
			existing, err := u.userRepo.GetByExternalID(ctx, externalID)
			if err != nil {
				return nil, apperror.StoreFailure("Failed to load user", err)
			}
			return existing, nil
		}
		return nil, apperror.StoreFailure("Failed to create user", err)
	}
	return user, nil
}

func (u *authUsecase) CurrentUser(ctx context.Context) (*domain.User, error) {
	return resolveUser(ctx, u.userRepo)
}
