package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"career-coach-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

type onboardingRepo struct {
	db *pgxpool.Pool
}

func NewOnboardingRepository(db *pgxpool.Pool) domain.OnboardingRepository {
	return &onboardingRepo{db: db}
}

// UpdateProfile runs ensure-insight-then-update-user as one READ COMMITTED
// transaction. The unique index on industry_insights.industry makes the loser of
// a creation race fail here instead of inserting a duplicate.
func (r *onboardingRepo) UpdateProfile(ctx context.Context, userID string, req *domain.ProfileUpdateRequest, now time.Time) (*domain.ProfileUpdateResult, error) {
	industry := strings.TrimSpace(req.Industry)

	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx) // no-op after commit

	// 1. Look up the shared insight row
	insight, err := getInsight(ctx, tx, industry)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("failed to get industry insight: %w", err)
	}

	// 2. Create it with placeholder values if this is the first user in the industry
	if insight == nil {
		insight, err = insertInsight(ctx, tx, domain.NewDefaultInsight(industry, now))
		if err != nil {
			return nil, err
		}
	}

	// 3. Update the user profile to reference it
	skills := req.Skills
	if skills == nil {
		skills = []string{}
	}
	user, err := scanUser(tx.QueryRow(ctx, `
		UPDATE users
		SET industry = $2,
			experience = $3,
			skills = $4,
			bio = $5,
			updated_at = $6
		WHERE id = $1
		RETURNING `+userColumns,
		userID, industry, req.Experience, pq.Array(skills), req.Bio, now,
	))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to update user profile: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return &domain.ProfileUpdateResult{User: user, IndustryInsight: insight}, nil
}
