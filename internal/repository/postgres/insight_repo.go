package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"career-coach-backend/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

type insightRepo struct {
	db *pgxpool.Pool
}

func NewInsightRepository(db *pgxpool.Pool) domain.InsightRepository {
	return &insightRepo{db: db}
}

func (r *insightRepo) GetByIndustry(ctx context.Context, industry string) (*domain.IndustryInsight, error) {
	in, err := getInsight(ctx, r.db, industry)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("failed to get industry insight: %w", err)
	}
	return in, err
}

func (r *insightRepo) ListIndustries(ctx context.Context) ([]string, error) {
	rows, err := r.db.Query(ctx, `SELECT industry FROM industry_insights ORDER BY industry ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list industries: %w", err)
	}
	defer rows.Close()

	industries := []string{}
	for rows.Next() {
		var industry string
		if err := rows.Scan(&industry); err != nil {
			return nil, fmt.Errorf("failed to scan industry: %w", err)
		}
		industries = append(industries, industry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating industries: %w", err)
	}
	return industries, nil
}

func (r *insightRepo) ApplyRefresh(ctx context.Context, industry string, p *domain.InsightPayload, now time.Time) error {
	salary, err := marshalSalaryRanges(p.SalaryRanges)
	if err != nil {
		return err
	}

	tag, err := r.db.Exec(ctx, `
		UPDATE industry_insights
		SET salary_ranges = $2::jsonb,
			growth_rate = $3,
			demand_level = $4,
			top_skills = $5,
			market_outlook = $6,
			key_trends = $7,
			recommended_skills = $8,
			last_updated = $9,
			next_update = $10
		WHERE industry = $1
	`, industry, salary, p.GrowthRate, string(p.DemandLevel), pq.Array(nonNil(p.TopSkills)),
		string(p.MarketOutlook), pq.Array(nonNil(p.KeyTrends)), pq.Array(nonNil(p.RecommendedSkills)),
		now, now.Add(domain.InsightRefreshInterval))
	if err != nil {
		return fmt.Errorf("failed to update industry insight %s: %w", industry, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func getInsight(ctx context.Context, q querier, industry string) (*domain.IndustryInsight, error) {
	query := `SELECT ` + insightColumns + ` FROM industry_insights WHERE industry = $1`
	return scanInsight(q.QueryRow(ctx, query, industry))
}

// insertInsight creates the row; a duplicate industry maps to ErrIndustryConflict.
func insertInsight(ctx context.Context, q querier, in *domain.IndustryInsight) (*domain.IndustryInsight, error) {
	salary, err := marshalSalaryRanges(in.SalaryRanges)
	if err != nil {
		return nil, err
	}

	query := `
		INSERT INTO industry_insights (
			industry, salary_ranges, growth_rate, demand_level, top_skills,
			market_outlook, key_trends, recommended_skills, last_updated, next_update
		)
		VALUES ($1, $2::jsonb, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING ` + insightColumns

	created, err := scanInsight(q.QueryRow(ctx, query,
		in.Industry, salary, in.GrowthRate, string(in.DemandLevel), pq.Array(nonNil(in.TopSkills)),
		string(in.MarketOutlook), pq.Array(nonNil(in.KeyTrends)), pq.Array(nonNil(in.RecommendedSkills)),
		in.LastUpdated, in.NextUpdate,
	))
	if err != nil {
		if isUniqueViolation(err, "industry_insights_industry_key") {
			return nil, domain.ErrIndustryConflict
		}
		return nil, fmt.Errorf("failed to create industry insight: %w", err)
	}
	return created, nil
}
