package domain

import (
	"context"
	"time"
)

type Resume struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Content   string    `json:"content"` // markdown produced by the resume builder
	AtsScore  *float64  `json:"ats_score,omitempty"`
	Feedback  *string   `json:"feedback,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type SaveResumeRequest struct {
	Content string `json:"content" validate:"max=100000"`
}

type ImproveRequest struct {
	Current string `json:"current" validate:"required,max=5000"`
	Type    string `json:"type" validate:"required,section_type"`
}

type ImproveResult struct {
	Content string `json:"content"`
}

type ResumeRepository interface {
	// Upsert replaces the user's resume content or creates it.
	Upsert(ctx context.Context, userID, content string) (*Resume, error)
	GetByUserID(ctx context.Context, userID string) (*Resume, error)
}

type ResumeUsecase interface {
	SaveResume(ctx context.Context, content string) (*Resume, error)
	// GetResume returns (nil, nil) when the user has not saved a resume yet.
	GetResume(ctx context.Context) (*Resume, error)
	ImproveWithAI(ctx context.Context, req *ImproveRequest) (string, error)
}
