package postgres

import (
	"context"
	"errors"
	"fmt"

	"career-coach-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type resumeRepo struct {
	db *pgxpool.Pool
}

func NewResumeRepository(db *pgxpool.Pool) domain.ResumeRepository {
	return &resumeRepo{db: db}
}

const resumeColumns = `id, user_id, content, ats_score, feedback, created_at, updated_at`

func scanResume(row pgx.Row) (*domain.Resume, error) {
	var res domain.Resume
	err := row.Scan(&res.ID, &res.UserID, &res.Content, &res.AtsScore, &res.Feedback, &res.CreatedAt, &res.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &res, nil
}

// Upsert overwrites the whole content; there is no field merge or history.
func (r *resumeRepo) Upsert(ctx context.Context, userID, content string) (*domain.Resume, error) {
	query := `
		INSERT INTO resumes (user_id, content, created_at, updated_at)
		VALUES ($1, $2, NOW(), NOW())
		ON CONFLICT (user_id) DO UPDATE
		SET content = EXCLUDED.content,
			updated_at = NOW()
		RETURNING ` + resumeColumns

	res, err := scanResume(r.db.QueryRow(ctx, query, userID, content))
	if err != nil {
		return nil, fmt.Errorf("failed to upsert resume: %w", err)
	}
	return res, nil
}

func (r *resumeRepo) GetByUserID(ctx context.Context, userID string) (*domain.Resume, error) {
	query := `SELECT ` + resumeColumns + ` FROM resumes WHERE user_id = $1`
	res, err := scanResume(r.db.QueryRow(ctx, query, userID))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get resume: %w", err)
	}
	return res, nil
}
