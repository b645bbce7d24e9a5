package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"career-coach-backend/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type assessmentRepo struct {
	db *pgxpool.Pool
}

func NewAssessmentRepository(db *pgxpool.Pool) domain.AssessmentRepository {
	return &assessmentRepo{db: db}
}

func (r *assessmentRepo) Create(ctx context.Context, a *domain.Assessment) error {
	questions, err := json.Marshal(a.Questions)
	if err != nil {
		return fmt.Errorf("encode assessment questions: %w", err)
	}

	err = r.db.QueryRow(ctx, `
		INSERT INTO assessments (user_id, quiz_score, questions, category, improvement_tip, created_at)
		VALUES ($1, $2, $3::jsonb, $4, $5, NOW())
		RETURNING id, created_at
	`, a.UserID, a.QuizScore, string(questions), a.Category, a.ImprovementTip).Scan(&a.ID, &a.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create assessment: %w", err)
	}
	return nil
}

func (r *assessmentRepo) ListByUserID(ctx context.Context, userID string) ([]domain.Assessment, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, user_id, quiz_score, questions, category, improvement_tip, created_at
		FROM assessments
		WHERE user_id = $1
		ORDER BY created_at ASC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list assessments: %w", err)
	}
	defer rows.Close()

	results := []domain.Assessment{}
	for rows.Next() {
		var a domain.Assessment
		var questions []byte
		if err := rows.Scan(&a.ID, &a.UserID, &a.QuizScore, &questions, &a.Category, &a.ImprovementTip, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan assessment row: %w", err)
		}
		if err := json.Unmarshal(questions, &a.Questions); err != nil {
			return nil, fmt.Errorf("decode assessment questions: %w", err)
		}
		results = append(results, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating assessment rows: %w", err)
	}
	return results, nil
}
