package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

type profileRepository struct {
	db *sqlx.DB
}

func NewProfileRepository(db *sqlx.DB) ProfileRepository {
	return &profileRepository{db: db}
}

// GetRole returns the stored role, or "" when the profile has none set.
func (r *profileRepository) GetRole(ctx context.Context, userID string) (string, error) {
	query := `SELECT role FROM profiles WHERE id = $1`

	var role sql.NullString
	err := r.db.GetContext(ctx, &role, query, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", fmt.Errorf("профиль пользователя %s: %w", userID, ErrNotFound)
		}
		return "", fmt.Errorf("ошибка при получении роли: %w", err)
	}

	return role.String, nil
}

func (r *profileRepository) Create(ctx context.Context, userID, role string) error {
	query := `INSERT INTO profiles (id, role) VALUES ($1, $2) ON CONFLICT (id) DO NOTHING`

	if _, err := r.db.ExecContext(ctx, query, userID, role); err != nil {
		return fmt.Errorf("ошибка при создании профиля: %w", err)
	}

	return nil
}
