package domain

import (
	"context"
	"time"
)

// TextGenerator is the external generative-text provider.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Logical view paths invalidated after writes.
const (
	ViewProfile    = "/profile"
	ViewOnboarding = "/onboarding"
	ViewInsights   = "/insights"
	ViewResume     = "/resume"
	ViewInterview  = "/interview"
)

// ViewCache holds rendered per-user views keyed by the caller's external ID.
type ViewCache interface {
	Load(ctx context.Context, userID, path string, out any) (bool, error)
	// Store drops value if the view was invalidated at or after readAt.
	Store(ctx context.Context, userID, path string, value any, readAt time.Time) error
	InvalidatePath(ctx context.Context, userID, path string) error
	// InvalidateAll marks path stale for every user.
	InvalidateAll(ctx context.Context, path string) error
}
