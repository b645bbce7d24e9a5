package usecase

import "context"

type HealthUsecase interface {
	Check(ctx context.Context) map[string]string
}

// Pinger reports whether a backing service is reachable.
type Pinger func(ctx context.Context) error

type healthUsecase struct {
	checks map[string]Pinger
}

// NewHealthUsecase builds a health check over the named dependencies.
// A nil Pinger marks that dependency as disabled.
func NewHealthUsecase(checks map[string]Pinger) HealthUsecase {
	return &healthUsecase{checks: checks}
}

func (u *healthUsecase) Check(ctx context.Context) map[string]string {
	result := map[string]string{
		"status": "ok",
	}
	for name, ping := range u.checks {
		switch {
		case ping == nil:
			result[name] = "disabled"
		case ping(ctx) != nil:
			result[name] = "unavailable"
			result["status"] = "degraded"
		default:
			result[name] = "ok"
		}
	}
	return result
}
