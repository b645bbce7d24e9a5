package domain

import (
	"context"
	"time"
)

// ProfileUpdateRequest is the payload of the onboarding form and of later profile edits.
type ProfileUpdateRequest struct {
	Industry   string   `json:"industry" validate:"required,industry_label"`
	Experience int      `json:"experience" validate:"gte=0,lte=60"`
	Skills     []string `json:"skills" validate:"max=50,dive,required,max=100"`
	Bio        string   `json:"bio" validate:"max=2000,no_emoji"`
}

type ProfileUpdateResult struct {
	User            *User            `json:"user"`
	IndustryInsight *IndustryInsight `json:"industry_insight"`
}

// OnboardingStatus reports whether the user has completed onboarding
type OnboardingStatus struct {
	IsOnboarded bool `json:"is_onboarded"`
}

type OnboardingRepository interface {
	// UpdateProfile ensures the insight row for req.Industry exists and updates the
	// user in one transaction. Returns ErrIndustryConflict if a concurrent
	// transaction inserted the same industry first.
	UpdateProfile(ctx context.Context, userID string, req *ProfileUpdateRequest, now time.Time) (*ProfileUpdateResult, error)
}

type OnboardingUsecase interface {
	UpdateProfile(ctx context.Context, req *ProfileUpdateRequest) (*ProfileUpdateResult, error)
	GetOnboardingStatus(ctx context.Context) (*OnboardingStatus, error)
	GetProfile(ctx context.Context) (*User, error)
}
