package usecase

import (
	"context"
	"math"
	"strings"
	"time"

	"career-coach-backend/internal/domain"
	"career-coach-backend/internal/llmjson"
	"career-coach-backend/internal/prompt"
	"career-coach-backend/pkg/apperror"
	"career-coach-backend/pkg/logger"

	"github.com/go-playground/validator/v10"
)

type assessmentUsecase struct {
	userRepo       domain.UserRepository
	assessmentRepo domain.AssessmentRepository
	generator      domain.TextGenerator
	cache          domain.ViewCache
	validate       *validator.Validate
}

func NewAssessmentUsecase(
	userRepo domain.UserRepository,
	assessmentRepo domain.AssessmentRepository,
	generator domain.TextGenerator,
	cache domain.ViewCache,
	validate *validator.Validate,
) domain.AssessmentUsecase {
	return &assessmentUsecase{
		userRepo:       userRepo,
		assessmentRepo: assessmentRepo,
		generator:      generator,
		cache:          cache,
		validate:       validate,
	}
}

func (u *assessmentUsecase) GenerateQuiz(ctx context.Context) ([]domain.QuizQuestion, error) {
	user, err := resolveUser(ctx, u.userRepo)
	if err != nil {
		return nil, err
	}
	if !user.IsOnboarded() {
		return nil, apperror.BadRequest("Complete onboarding first")
	}

	p, err := prompt.InterviewQuiz(user.IndustryLabel(), user.Skills)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	raw, err := u.generator.Generate(ctx, p)
	if err != nil {
		logger.Log.Error("Error generating quiz", "user_id", user.ID, "error", err)
		return nil, apperror.ProviderFailure("Failed to generate quiz questions", err)
	}

	questions, err := llmjson.ParseQuiz(raw)
	if err != nil {
		logger.Log.Error("Malformed quiz output", "user_id", user.ID, "error", err)
		return nil, apperror.ProviderFailure("Failed to generate quiz questions", err)
	}
	return questions, nil
}

// SaveQuizResult grades the answers, stores the attempt and attaches an
// improvement tip when something was answered wrong.
func (u *assessmentUsecase) SaveQuizResult(ctx context.Context, req *domain.SaveAssessmentRequest) (*domain.Assessment, error) {
	extID, err := externalID(ctx)
	if err != nil {
		return nil, err
	}
	if err := validateStruct(u.validate, req); err != nil {
		return nil, err
	}
	if len(req.Answers) != len(req.Questions) {
		return nil, apperror.BadRequest("Validation failed: answers must match questions")
	}

	user, err := resolveUser(ctx, u.userRepo)
	if err != nil {
		return nil, err
	}

	results, score := grade(req.Questions, req.Answers)

	assessment := &domain.Assessment{
		UserID:    user.ID,
		QuizScore: score,
		Questions: results,
		Category:  domain.AssessmentCategoryTechnical,
	}

	var wrong []domain.QuestionResult
	for _, r := range results {
		if !r.IsCorrect {
			wrong = append(wrong, r)
		}
	}
	if len(wrong) > 0 {
		if tip := u.improvementTip(ctx, user, wrong); tip != "" {
			assessment.ImprovementTip = &tip
		}
	}

	if err := u.assessmentRepo.Create(ctx, assessment); err != nil {
		logger.Log.Error("Error saving quiz result", "user_id", user.ID, "error", err)
		return nil, apperror.SaveFailed("Failed to save quiz result", err)
	}

	invalidateViews(ctx, u.cache, extID, domain.ViewInterview)
	return assessment, nil
}

func (u *assessmentUsecase) improvementTip(ctx context.Context, user *domain.User, wrong []domain.QuestionResult) string {
	industry := user.IndustryLabel()
	if industry == "" {
		industry = fallbackIndustry
	}
	p, err := prompt.ImprovementTip(industry, wrong)
	if err != nil {
		logger.Log.Warn("Failed to render improvement tip prompt", "error", err)
		return ""
	}
	tip, err := u.generator.Generate(ctx, p)
	if err != nil {
		logger.Log.Warn("Error generating improvement tip", "user_id", user.ID, "error", err)
		return ""
	}
	return strings.TrimSpace(tip)
}

func (u *assessmentUsecase) ListAssessments(ctx context.Context) ([]domain.Assessment, error) {
	extID, err := externalID(ctx)
	if err != nil {
		return nil, err
	}

	var cached []domain.Assessment
	if loadView(ctx, u.cache, extID, domain.ViewInterview, &cached) {
		return cached, nil
	}

	readAt := time.Now()
	user, err := resolveUser(ctx, u.userRepo)
	if err != nil {
		return nil, err
	}

	list, err := u.assessmentRepo.ListByUserID(ctx, user.ID)
	if err != nil {
		return nil, apperror.StoreFailure("Failed to load assessments", err)
	}
	if list == nil {
		list = []domain.Assessment{}
	}

	storeView(ctx, u.cache, extID, domain.ViewInterview, list, readAt)
	return list, nil
}

// grade compares answers by exact match and returns the score as a percentage.
func grade(questions []domain.QuizQuestion, answers []string) ([]domain.QuestionResult, float64) {
	results := make([]domain.QuestionResult, len(questions))
	correct := 0
	for i, q := range questions {
		ok := answers[i] == q.CorrectAnswer
		if ok {
			correct++
		}
		results[i] = domain.QuestionResult{
			Question:    q.Question,
			Answer:      q.CorrectAnswer,
			UserAnswer:  answers[i],
			IsCorrect:   ok,
			Explanation: q.Explanation,
		}
	}
	score := float64(correct) / float64(len(questions)) * 100
	return results, math.Round(score*100) / 100
}
