package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// RequiredTables are the tables the client reads and writes.
var RequiredTables = []string{"posts", "comments", "profiles", "users", "resources", "helplines"}

type schemaRepository struct {
	db *sqlx.DB
}

func NewSchemaRepository(db *sqlx.DB) SchemaRepository {
	return &schemaRepository{db: db}
}

func (r *schemaRepository) CountTables(ctx context.Context) (int, error) {
	var count int

	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM information_schema.tables WHERE table_schema = 'public'`)
	if err != nil {
		return 0, fmt.Errorf("ошибка при подсчёте таблиц базы данных: %w", err)
	}

	return count, nil
}

// MissingTables returns the required tables absent from the public schema.
func (r *schemaRepository) MissingTables(ctx context.Context) ([]string, error) {
	query, args, err := sqlx.In(`SELECT table_name FROM information_schema.tables WHERE table_schema = 'public' AND table_name IN (?)`, RequiredTables)
	if err != nil {
		return nil, fmt.Errorf("ошибка при построении запроса: %w", err)
	}

	var present []string
	if err := r.db.SelectContext(ctx, &present, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("ошибка при проверке схемы: %w", err)
	}

	found := make(map[string]bool, len(present))
	for _, name := range present {
		found[name] = true
	}

	var missing []string
	for _, name := range RequiredTables {
		if !found[name] {
			missing = append(missing, name)
		}
	}
	return missing, nil
}
