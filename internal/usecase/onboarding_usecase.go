package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"career-coach-backend/internal/domain"
	"career-coach-backend/pkg/apperror"
	"career-coach-backend/pkg/logger"

	"github.com/go-playground/validator/v10"
)

// DefaultProfileTxTimeout bounds the ensure-insight-then-update transaction.
const DefaultProfileTxTimeout = 10 * time.Second

type onboardingUsecase struct {
	userRepo  domain.UserRepository
	repo      domain.OnboardingRepository
	cache     domain.ViewCache
	validate  *validator.Validate
	txTimeout time.Duration
	now       func() time.Time
}

func NewOnboardingUsecase(
	userRepo domain.UserRepository,
	repo domain.OnboardingRepository,
	cache domain.ViewCache,
	validate *validator.Validate,
	txTimeout time.Duration,
) domain.OnboardingUsecase {
	if txTimeout <= 0 {
		txTimeout = DefaultProfileTxTimeout
	}
	return &onboardingUsecase{
		userRepo:  userRepo,
		repo:      repo,
		cache:     cache,
		validate:  validate,
		txTimeout: txTimeout,
		now:       time.Now,
	}
}

// ============================================================================
// Update Profile (onboarding form and later edits)
// ============================================================================

func (u *onboardingUsecase) UpdateProfile(ctx context.Context, req *domain.ProfileUpdateRequest) (*domain.ProfileUpdateResult, error) {
	extID, err := externalID(ctx)
	if err != nil {
		return nil, err
	}

	req.Industry = strings.TrimSpace(req.Industry)
	if err := validateStruct(u.validate, req); err != nil {
		return nil, err
	}

	user, err := resolveUser(ctx, u.userRepo)
	if err != nil {
		return nil, err
	}

	// A uniqueness race on a brand-new industry aborts the loser's transaction;
	// one retry sees the winner's row.
	var result *domain.ProfileUpdateResult
	for attempt := 1; attempt <= 2; attempt++ {
		result, err = u.updateOnce(ctx, user.ID, req)
		if !errors.Is(err, domain.ErrIndustryConflict) {
			break
		}
		logger.Log.Warn("Industry insight creation raced, retrying", "industry", req.Industry, "attempt", attempt)
	}

	if err != nil {
		switch {
		case errors.Is(err, domain.ErrIndustryConflict):
			return nil, apperror.Conflict("Industry was updated concurrently, please try again")
		case errors.Is(err, context.DeadlineExceeded):
			logger.Log.Error("Profile update timed out", "user_id", user.ID, "error", err)
			return nil, apperror.Timeout("Failed to update profile", err)
		case errors.Is(err, domain.ErrNotFound):
			return nil, apperror.NotFound("User not found")
		default:
			logger.Log.Error("Error updating user and industry", "user_id", user.ID, "error", err)
			return nil, apperror.StoreFailure("Failed to update profile", err)
		}
	}

	invalidateViews(ctx, u.cache, extID, domain.ViewProfile, domain.ViewOnboarding, domain.ViewInsights)
	return result, nil
}

func (u *onboardingUsecase) updateOnce(ctx context.Context, userID string, req *domain.ProfileUpdateRequest) (*domain.ProfileUpdateResult, error) {
	txCtx, cancel := context.WithTimeout(ctx, u.txTimeout)
	defer cancel()

	result, err := u.repo.UpdateProfile(txCtx, userID, req, u.now())
	if err != nil && errors.Is(txCtx.Err(), context.DeadlineExceeded) && !errors.Is(err, context.DeadlineExceeded) {
		return nil, fmt.Errorf("%w: %v", context.DeadlineExceeded, err)
	}
	return result, err
}

// ============================================================================
// Onboarding Status
// ============================================================================

func (u *onboardingUsecase) GetOnboardingStatus(ctx context.Context) (*domain.OnboardingStatus, error) {
	extID, err := externalID(ctx)
	if err != nil {
		return nil, err
	}

	var cached domain.OnboardingStatus
	if loadView(ctx, u.cache, extID, domain.ViewOnboarding, &cached) {
		return &cached, nil
	}

	readAt := u.now()
	user, err := resolveUser(ctx, u.userRepo)
	if err != nil {
		return nil, err
	}

	status := &domain.OnboardingStatus{IsOnboarded: user.IsOnboarded()}
	storeView(ctx, u.cache, extID, domain.ViewOnboarding, status, readAt)
	return status, nil
}

// ============================================================================
// Profile
// ============================================================================

func (u *onboardingUsecase) GetProfile(ctx context.Context) (*domain.User, error) {
	extID, err := externalID(ctx)
	if err != nil {
		return nil, err
	}

	var cached domain.User
	if loadView(ctx, u.cache, extID, domain.ViewProfile, &cached) {
		return &cached, nil
	}

	readAt := u.now()
	user, err := resolveUser(ctx, u.userRepo)
	if err != nil {
		return nil, err
	}

	storeView(ctx, u.cache, extID, domain.ViewProfile, user, readAt)
	return user, nil
}
