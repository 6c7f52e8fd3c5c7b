package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileRepository_GetRole(t *testing.T) {
	query := `SELECT role FROM profiles WHERE id = $1`

	t.Run("Роль модератора", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewProfileRepository(db)

		mock.ExpectQuery(query).
			WithArgs("u1").
			WillReturnRows(sqlmock.NewRows([]string{"role"}).AddRow("moderator"))

		role, err := repo.GetRole(context.Background(), "u1")

		require.NoError(t, err)
		assert.Equal(t, "moderator", role)
	})

	t.Run("Роль не задана", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewProfileRepository(db)

		mock.ExpectQuery(query).
			WithArgs("u1").
			WillReturnRows(sqlmock.NewRows([]string{"role"}).AddRow(nil))

		role, err := repo.GetRole(context.Background(), "u1")

		require.NoError(t, err)
		assert.Empty(t, role)
	})

	t.Run("Профиль отсутствует", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewProfileRepository(db)

		mock.ExpectQuery(query).
			WithArgs("u1").
			WillReturnError(sql.ErrNoRows)

		_, err := repo.GetRole(context.Background(), "u1")

		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestDirectoryRepository(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewDirectoryRepository(db)
	ctx := context.Background()

	mock.ExpectQuery(`SELECT * FROM resources ORDER BY created_at DESC`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "description", "url", "image_url", "type", "created_at"}).
			AddRow("r1", "Know your rights", "Guide", "https://example.org", nil, "Guide", time.Now()))

	mock.ExpectQuery(`SELECT * FROM helplines WHERE id = $1`).
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	resources, err := repo.ListResources(ctx)
	require.NoError(t, err)
	require.Len(t, resources, 1)
	assert.Equal(t, "Know your rights", resources[0].Title)

	_, err = repo.GetHelpline(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}
