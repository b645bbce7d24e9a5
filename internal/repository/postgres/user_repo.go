package postgres

import (
	"context"
	"errors"
	"fmt"

	"career-coach-backend/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

type userRepo struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) domain.UserRepository {
	return &userRepo{db: db}
}

func (r *userRepo) Create(ctx context.Context, user *domain.User) error {
	query := `INSERT INTO users (external_id, email, skills, bio, created_at, updated_at)
              VALUES ($1, $2, $3, $4, NOW(), NOW())
              RETURNING ` + userColumns

	if user.Skills == nil {
		user.Skills = []string{}
	}
	created, err := scanUser(r.db.QueryRow(ctx, query, user.ExternalID, user.Email, pq.Array(user.Skills), user.Bio))
	if err != nil {
		if isUniqueViolation(err, "users_external_id_key") {
			return domain.ErrUserExists
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	*user = *created
	return nil
}

func (r *userRepo) GetByExternalID(ctx context.Context, externalID string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE external_id = $1`
	user, err := scanUser(r.db.QueryRow(ctx, query, externalID))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get user by external id: %w", err)
	}
	return user, nil
}
