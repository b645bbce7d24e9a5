package usecase

import (
	"context"
	"fmt"
	"time"

	"career-coach-backend/internal/domain"
	"career-coach-backend/internal/llmjson"
	"career-coach-backend/internal/prompt"
	"career-coach-backend/pkg/apperror"
	"career-coach-backend/pkg/logger"

	"golang.org/x/sync/errgroup"
)

type insightUsecase struct {
	userRepo    domain.UserRepository
	insightRepo domain.InsightRepository
	generator   domain.TextGenerator
	cache       domain.ViewCache
	workers     int
	now         func() time.Time
}

func NewInsightUsecase(
	userRepo domain.UserRepository,
	insightRepo domain.InsightRepository,
	generator domain.TextGenerator,
	cache domain.ViewCache,
	workers int,
) domain.InsightUsecase {
	if workers < 1 {
		workers = 1
	}
	return &insightUsecase{
		userRepo:    userRepo,
		insightRepo: insightRepo,
		generator:   generator,
		cache:       cache,
		workers:     workers,
		now:         time.Now,
	}
}

func (u *insightUsecase) GetForUser(ctx context.Context) (*domain.IndustryInsight, error) {
	extID, err := externalID(ctx)
	if err != nil {
		return nil, err
	}

	var cached domain.IndustryInsight
	if loadView(ctx, u.cache, extID, domain.ViewInsights, &cached) {
		return &cached, nil
	}

	readAt := u.now()
	user, err := resolveUser(ctx, u.userRepo)
	if err != nil {
		return nil, err
	}
	if !user.IsOnboarded() {
		return nil, apperror.NotFound("Complete onboarding first")
	}

	insight, err := u.insightRepo.GetByIndustry(ctx, user.IndustryLabel())
	if err != nil {
		if isNotFound(err) {
			return nil, apperror.NotFound("Industry insight not found")
		}
		return nil, apperror.StoreFailure("Failed to load industry insight", err)
	}

	storeView(ctx, u.cache, extID, domain.ViewInsights, insight, readAt)
	return insight, nil
}

// RefreshAll regenerates every stored industry. A failed industry is logged and
// skipped; the returned error is non-nil only when the industry list is unreadable.
func (u *insightUsecase) RefreshAll(ctx context.Context) ([]domain.RefreshResult, error) {
	industries, err := u.insightRepo.ListIndustries(ctx)
	if err != nil {
		return nil, apperror.StoreFailure("Failed to list industries", err)
	}

	logger.Log.Info("Insight refresh started", "industries", len(industries), "workers", u.workers)

	results := make([]domain.RefreshResult, len(industries))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(u.workers)

	for i, industry := range industries {
		g.Go(func() error {
			err := u.refreshOne(gctx, industry)
			if err != nil {
				logger.Log.Error("Insight refresh failed", "industry", industry, "error", err)
			} else {
				logger.Log.Info("Insight refreshed", "industry", industry)
			}
			results[i] = domain.RefreshResult{Industry: industry, Err: err}
			// Never cancel siblings: one bad industry must not abort the sweep.
			return nil
		})
	}
	_ = g.Wait()

	if u.cache != nil {
		if err := u.cache.InvalidateAll(ctx, domain.ViewInsights); err != nil {
			logger.Log.Warn("Failed to invalidate insight views", "error", err)
		}
	}

	failed := 0
	for _, r := range results {
		if !r.OK() {
			failed++
		}
	}
	logger.Log.Info("Insight refresh finished", "updated", len(results)-failed, "failed", failed)

	return results, nil
}

func (u *insightUsecase) refreshOne(ctx context.Context, industry string) error {
	p, err := prompt.IndustryInsight(industry)
	if err != nil {
		return err
	}

	raw, err := u.generator.Generate(ctx, p)
	if err != nil {
		return fmt.Errorf("generate: %w", err)
	}

	payload, err := llmjson.ParseInsight(raw)
	if err != nil {
		return err
	}

	if err := u.insightRepo.ApplyRefresh(ctx, industry, payload, u.now()); err != nil {
		return fmt.Errorf("apply: %w", err)
	}
	return nil
}
