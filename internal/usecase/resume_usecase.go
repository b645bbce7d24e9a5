package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"career-coach-backend/internal/domain"
	"career-coach-backend/internal/prompt"
	"career-coach-backend/pkg/apperror"
	"career-coach-backend/pkg/logger"

	"github.com/go-playground/validator/v10"
)

// fallbackIndustry is used in prompts for users who skipped onboarding.
const fallbackIndustry = "general"

type resumeUsecase struct {
	userRepo   domain.UserRepository
	resumeRepo domain.ResumeRepository
	generator  domain.TextGenerator
	cache      domain.ViewCache
	validate   *validator.Validate
}

func NewResumeUsecase(
	userRepo domain.UserRepository,
	resumeRepo domain.ResumeRepository,
	generator domain.TextGenerator,
	cache domain.ViewCache,
	validate *validator.Validate,
) domain.ResumeUsecase {
	return &resumeUsecase{
		userRepo:   userRepo,
		resumeRepo: resumeRepo,
		generator:  generator,
		cache:      cache,
		validate:   validate,
	}
}

func (u *resumeUsecase) SaveResume(ctx context.Context, content string) (*domain.Resume, error) {
	extID, err := externalID(ctx)
	if err != nil {
		return nil, err
	}
	if err := validateStruct(u.validate, &domain.SaveResumeRequest{Content: content}); err != nil {
		return nil, err
	}

	user, err := resolveUser(ctx, u.userRepo)
	if err != nil {
		return nil, err
	}

	resume, err := u.resumeRepo.Upsert(ctx, user.ID, content)
	if err != nil {
		logger.Log.Error("Error saving resume", "user_id", user.ID, "error", err)
		return nil, apperror.SaveFailed("Failed to save resume", err)
	}

	invalidateViews(ctx, u.cache, extID, domain.ViewResume)
	return resume, nil
}

// GetResume returns (nil, nil) when nothing was saved yet. Absence is not cached.
func (u *resumeUsecase) GetResume(ctx context.Context) (*domain.Resume, error) {
	extID, err := externalID(ctx)
	if err != nil {
		return nil, err
	}

	var cached domain.Resume
	if loadView(ctx, u.cache, extID, domain.ViewResume, &cached) {
		return &cached, nil
	}

	readAt := time.Now()
	user, err := resolveUser(ctx, u.userRepo)
	if err != nil {
		return nil, err
	}

	resume, err := u.resumeRepo.GetByUserID(ctx, user.ID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil
		}
		return nil, apperror.StoreFailure("Failed to load resume", err)
	}

	storeView(ctx, u.cache, extID, domain.ViewResume, resume, readAt)
	return resume, nil
}

// ImproveWithAI rewrites one resume section. Nothing is persisted.
func (u *resumeUsecase) ImproveWithAI(ctx context.Context, req *domain.ImproveRequest) (string, error) {
	if _, err := externalID(ctx); err != nil {
		return "", err
	}
	if err := validateStruct(u.validate, req); err != nil {
		return "", err
	}

	user, err := resolveUser(ctx, u.userRepo)
	if err != nil {
		return "", err
	}

	industry := user.IndustryLabel()
	if industry == "" {
		industry = fallbackIndustry
	}

	p, err := prompt.ImproveResume(industry, req.Type, req.Current)
	if err != nil {
		return "", apperror.Internal(err)
	}

	improved, err := u.generator.Generate(ctx, p)
	if err != nil {
		logger.Log.Error("Error improving content", "user_id", user.ID, "type", req.Type, "error", err)
		return "", apperror.ProviderFailure("Failed to improve content", err)
	}

	improved = strings.TrimSpace(improved)
	if improved == "" {
		return "", apperror.ProviderFailure("Failed to improve content", nil)
	}
	return improved, nil
}
