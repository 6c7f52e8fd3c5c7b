package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"voiceunheard/internal/models"
)

type commentRepository struct {
	db *sqlx.DB
}

func NewCommentRepository(db *sqlx.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) ListByStory(ctx context.Context, storyID string) ([]models.Comment, error) {
	query := `SELECT * FROM comments WHERE post_id = $1 ORDER BY created_at ASC`

	comments := []models.Comment{}
	if err := r.db.SelectContext(ctx, &comments, query, storyID); err != nil {
		return nil, fmt.Errorf("ошибка при получении комментариев: %w", err)
	}

	return comments, nil
}

func (r *commentRepository) GetByID(ctx context.Context, commentID string) (*models.Comment, error) {
	query := `SELECT * FROM comments WHERE id = $1`

	var comment models.Comment
	err := r.db.GetContext(ctx, &comment, query, commentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("комментарий с ID %s: %w", commentID, ErrNotFound)
		}
		return nil, fmt.Errorf("ошибка при получении комментария: %w", err)
	}

	return &comment, nil
}

func (r *commentRepository) Create(ctx context.Context, comment *models.Comment) (*models.Comment, error) {
	query := `
		INSERT INTO comments (id, post_id, content, user_id, creator_device_id, created_at)
		VALUES (:id, :post_id, :content, :user_id, :creator_device_id, :created_at)
	`

	created := *comment
	if created.ID == "" {
		created.ID = uuid.New().String()
	}

	if created.CreatedAt.IsZero() {
		created.CreatedAt = time.Now()
	}

	if _, err := r.db.NamedExecContext(ctx, query, &created); err != nil {
		return nil, fmt.Errorf("ошибка при создании комментария: %w", err)
	}

	return &created, nil
}

// DeleteOwned removes the comment only when it was created from deviceID.
// It reports false when nothing matched both conditions.
func (r *commentRepository) DeleteOwned(ctx context.Context, commentID, deviceID string) (bool, error) {
	query := `DELETE FROM comments WHERE id = $1 AND creator_device_id = $2`

	result, err := r.db.ExecContext(ctx, query, commentID, deviceID)
	if err != nil {
		return false, fmt.Errorf("ошибка при удалении комментария: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("ошибка при проверке удаленных строк: %w", err)
	}

	return rowsAffected > 0, nil
}

type storyCommentCount struct {
	PostID string `db:"post_id"`
	Count  int    `db:"count"`
}

// CountByStories counts comments for many stories in one round-trip.
// Stories without comments are absent from the map.
func (r *commentRepository) CountByStories(ctx context.Context, storyIDs []string) (map[string]int, error) {
	counts := make(map[string]int, len(storyIDs))
	if len(storyIDs) == 0 {
		return counts, nil
	}

	query, args, err := sqlx.In(`SELECT post_id, COUNT(*) AS count FROM comments WHERE post_id IN (?) GROUP BY post_id`, storyIDs)
	if err != nil {
		return nil, fmt.Errorf("ошибка при построении запроса подсчёта: %w", err)
	}

	var rows []storyCommentCount
	if err := r.db.SelectContext(ctx, &rows, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("ошибка при подсчёте комментариев: %w", err)
	}

	for _, row := range rows {
		counts[row.PostID] = row.Count
	}

	return counts, nil
}

func (r *commentRepository) ListByUser(ctx context.Context, userID string, limit int) ([]models.Comment, error) {
	query := `SELECT * FROM comments WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2`

	comments := []models.Comment{}
	if err := r.db.SelectContext(ctx, &comments, query, userID, limit); err != nil {
		return nil, fmt.Errorf("ошибка при получении комментариев пользователя: %w", err)
	}

	return comments, nil
}

func (r *commentRepository) CountByUser(ctx context.Context, userID string) (int, error) {
	query := `SELECT COUNT(*) FROM comments WHERE user_id = $1`

	var count int
	if err := r.db.GetContext(ctx, &count, query, userID); err != nil {
		return 0, fmt.Errorf("ошибка при подсчёте комментариев пользователя: %w", err)
	}

	return count, nil
}
