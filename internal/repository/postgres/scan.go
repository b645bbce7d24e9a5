package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"career-coach-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
)

// PostgreSQL error codes
const (
	pgUniqueViolation = "23505"
)

// querier is satisfied by both *pgxpool.Pool and pgx.Tx.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func isUniqueViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != pgUniqueViolation {
		return false
	}
	return constraint == "" || pgErr.ConstraintName == constraint
}

const userColumns = `id, external_id, email, industry, experience, skills, bio, created_at, updated_at`

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	var skills []string
	err := row.Scan(
		&u.ID, &u.ExternalID, &u.Email, &u.Industry, &u.Experience,
		pq.Array(&skills), &u.Bio, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if skills == nil {
		skills = []string{}
	}
	u.Skills = skills
	return &u, nil
}

const insightColumns = `id, industry, salary_ranges, growth_rate, demand_level, top_skills,
	market_outlook, key_trends, recommended_skills, last_updated, next_update`

func scanInsight(row pgx.Row) (*domain.IndustryInsight, error) {
	var in domain.IndustryInsight
	var salaryJSON []byte
	var topSkills, keyTrends, recommended []string
	var demand, outlook string

	err := row.Scan(
		&in.ID, &in.Industry, &salaryJSON, &in.GrowthRate, &demand, pq.Array(&topSkills),
		&outlook, pq.Array(&keyTrends), pq.Array(&recommended), &in.LastUpdated, &in.NextUpdate,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	in.SalaryRanges = []domain.SalaryRange{}
	if len(salaryJSON) > 0 {
		if err := json.Unmarshal(salaryJSON, &in.SalaryRanges); err != nil {
			return nil, fmt.Errorf("decode salary_ranges for %s: %w", in.Industry, err)
		}
	}
	in.DemandLevel = domain.DemandLevel(demand)
	in.MarketOutlook = domain.MarketOutlook(outlook)
	in.TopSkills = nonNil(topSkills)
	in.KeyTrends = nonNil(keyTrends)
	in.RecommendedSkills = nonNil(recommended)
	return &in, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func marshalSalaryRanges(ranges []domain.SalaryRange) (string, error) {
	if ranges == nil {
		ranges = []domain.SalaryRange{}
	}
	b, err := json.Marshal(ranges)
	if err != nil {
		return "", fmt.Errorf("encode salary_ranges: %w", err)
	}
	return string(b), nil
}
