package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"voiceunheard/internal/models"
)

type directoryRepository struct {
	db *sqlx.DB
}

func NewDirectoryRepository(db *sqlx.DB) DirectoryRepository {
	return &directoryRepository{db: db}
}

func (r *directoryRepository) ListResources(ctx context.Context) ([]models.Resource, error) {
	query := `SELECT * FROM resources ORDER BY created_at DESC`

	resources := []models.Resource{}
	if err := r.db.SelectContext(ctx, &resources, query); err != nil {
		return nil, fmt.Errorf("ошибка при получении ресурсов: %w", err)
	}

	return resources, nil
}

func (r *directoryRepository) ListHelplines(ctx context.Context) ([]models.Helpline, error) {
	query := `SELECT * FROM helplines ORDER BY created_at DESC`

	helplines := []models.Helpline{}
	if err := r.db.SelectContext(ctx, &helplines, query); err != nil {
		return nil, fmt.Errorf("ошибка при получении линий помощи: %w", err)
	}

	return helplines, nil
}

func (r *directoryRepository) GetHelpline(ctx context.Context, helplineID string) (*models.Helpline, error) {
	query := `SELECT * FROM helplines WHERE id = $1`

	var helpline models.Helpline
	err := r.db.GetContext(ctx, &helpline, query, helplineID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("линия помощи с ID %s: %w", helplineID, ErrNotFound)
		}
		return nil, fmt.Errorf("ошибка при получении линии помощи: %w", err)
	}

	return &helpline, nil
}
