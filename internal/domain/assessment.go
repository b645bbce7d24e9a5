package domain

import (
	"context"
	"time"
)

// QuizQuestion is a generated multiple-choice interview question.
type QuizQuestion struct {
	Question      string   `json:"question" validate:"required"`
	Options       []string `json:"options" validate:"required,min=2,dive,required"`
	CorrectAnswer string   `json:"correct_answer" validate:"required"`
	Explanation   string   `json:"explanation"`
}

// QuestionResult is one answered question as stored with an assessment.
type QuestionResult struct {
	Question    string `json:"question"`
	Answer      string `json:"answer"`
	UserAnswer  string `json:"user_answer"`
	IsCorrect   bool   `json:"is_correct"`
	Explanation string `json:"explanation"`
}

type Assessment struct {
	ID             string           `json:"id"`
	UserID         string           `json:"user_id"`
	QuizScore      float64          `json:"quiz_score"`
	Questions      []QuestionResult `json:"questions"`
	Category       string           `json:"category"`
	ImprovementTip *string          `json:"improvement_tip,omitempty"`
	CreatedAt      time.Time        `json:"created_at"`
}

const AssessmentCategoryTechnical = "Technical"

type SaveAssessmentRequest struct {
	Questions []QuizQuestion `json:"questions" validate:"required,min=1,dive"`
	Answers   []string       `json:"answers" validate:"required"`
}

type AssessmentRepository interface {
	Create(ctx context.Context, a *Assessment) error
	ListByUserID(ctx context.Context, userID string) ([]Assessment, error)
}

type AssessmentUsecase interface {
	GenerateQuiz(ctx context.Context) ([]QuizQuestion, error)
	SaveQuizResult(ctx context.Context, req *SaveAssessmentRequest) (*Assessment, error)
	ListAssessments(ctx context.Context) ([]Assessment, error)
}
