package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"career-coach-backend/internal/domain"
	"career-coach-backend/pkg/apperror"
	"career-coach-backend/pkg/logger"
	"career-coach-backend/pkg/validation"

	"github.com/go-playground/validator/v10"
)

// externalID returns the identity provider subject placed in ctx by the auth
// middleware. The core never trusts a user id supplied in a payload.
func externalID(ctx context.Context) (string, error) {
	id, ok := ctx.Value(domain.KeyExternalID).(string)
	if !ok || id == "" {
		return "", apperror.Unauthorized("Unauthorized")
	}
	return id, nil
}

// resolveUser maps the caller identity to the local user record.
func resolveUser(ctx context.Context, users domain.UserRepository) (*domain.User, error) {
	extID, err := externalID(ctx)
	if err != nil {
		return nil, err
	}

	user, err := users.GetByExternalID(ctx, extID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("User not found")
		}
		return nil, apperror.StoreFailure("Failed to load user", err)
	}
	return user, nil
}

func validateStruct(v *validator.Validate, s any) error {
	if err := v.Struct(s); err != nil {
		return apperror.BadRequest("Validation failed: " + strings.Join(validation.FormatValidationErrors(err), "; "))
	}
	return nil
}

func loadView(ctx context.Context, cache domain.ViewCache, extID, path string, out any) bool {
	if cache == nil {
		return false
	}
	hit, err := cache.Load(ctx, extID, path, out)
	if err != nil {
		logger.Log.Warn("Failed to load cached view", "path", path, "error", err)
		return false
	}
	return hit
}

// storeView caches value read from the store at readAt.
func storeView(ctx context.Context, cache domain.ViewCache, extID, path string, value any, readAt time.Time) {
	if cache == nil {
		return
	}
	if err := cache.Store(ctx, extID, path, value, readAt); err != nil {
		logger.Log.Warn("Failed to cache view", "path", path, "error", err)
	}
}

// invalidateViews marks cached views stale. Cache failures are logged, never returned.
func invalidateViews(ctx context.Context, cache domain.ViewCache, extID string, paths ...string) {
	if cache == nil {
		return
	}
	for _, path := range paths {
		if err := cache.InvalidatePath(ctx, extID, path); err != nil {
			logger.Log.Warn("Failed to invalidate view", "path", path, "error", err)
		}
	}
}

func isNotFound(err error) bool {
	return errors.Is(err, domain.ErrNotFound)
}
