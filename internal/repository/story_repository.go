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

type storyRepository struct {
	db *sqlx.DB
}

func NewStoryRepository(db *sqlx.DB) StoryRepository {
	return &storyRepository{db: db}
}

func (r *storyRepository) ListApproved(ctx context.Context, categories []string, order Order) ([]models.Story, error) {
	query := `SELECT * FROM posts WHERE is_approved = TRUE`
	var args []interface{}

	if len(categories) > 0 {
		inQuery, inArgs, err := sqlx.In(query+` AND category IN (?)`, categories)
		if err != nil {
			return nil, fmt.Errorf("ошибка при построении фильтра категорий: %w", err)
		}
		query = r.db.Rebind(inQuery)
		args = inArgs
	}

	switch order {
	case OrderByLikes:
		query += ` ORDER BY likes_count DESC`
	default:
		query += ` ORDER BY created_at DESC`
	}

	stories := []models.Story{}
	if err := r.db.SelectContext(ctx, &stories, query, args...); err != nil {
		return nil, fmt.Errorf("ошибка при получении одобренных историй: %w", err)
	}

	return stories, nil
}

func (r *storyRepository) ListPending(ctx context.Context) ([]models.Story, error) {
	query := `SELECT * FROM posts WHERE is_approved = FALSE ORDER BY created_at DESC`

	stories := []models.Story{}
	if err := r.db.SelectContext(ctx, &stories, query); err != nil {
		return nil, fmt.Errorf("ошибка при получении историй на модерации: %w", err)
	}

	return stories, nil
}

func (r *storyRepository) GetByID(ctx context.Context, storyID string) (*models.Story, error) {
	query := `SELECT * FROM posts WHERE id = $1`

	var story models.Story
	err := r.db.GetContext(ctx, &story, query, storyID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("история с ID %s: %w", storyID, ErrNotFound)
		}
		return nil, fmt.Errorf("ошибка при получении истории: %w", err)
	}

	return &story, nil
}

func (r *storyRepository) Create(ctx context.Context, story *models.Story) error {
	query := `
		INSERT INTO posts
		(id, user_id, title, content, category, is_approved, is_verified, likes_count,
		 image_url, location, author_name, author_avatar_url, created_at)
		VALUES
		(:id, :user_id, :title, :content, :category, :is_approved, :is_verified, :likes_count,
		 :image_url, :location, :author_name, :author_avatar_url, :created_at)
	`

	if story.ID == "" {
		story.ID = uuid.New().String()
	}

	if story.CreatedAt.IsZero() {
		story.CreatedAt = time.Now()
	}

	if _, err := r.db.NamedExecContext(ctx, query, story); err != nil {
		return fmt.Errorf("ошибка при создании истории: %w", err)
	}

	return nil
}

func (r *storyRepository) SetLikes(ctx context.Context, storyID string, likes int) error {
	query := `UPDATE posts SET likes_count = $1 WHERE id = $2`

	result, err := r.db.ExecContext(ctx, query, likes, storyID)
	if err != nil {
		return fmt.Errorf("ошибка при обновлении счётчика лайков: %w", err)
	}

	return expectRows(result, storyID)
}

// AdjustLikes applies delta on the server and never lets the counter go below zero.
func (r *storyRepository) AdjustLikes(ctx context.Context, storyID string, delta int) (int, error) {
	query := `UPDATE posts SET likes_count = GREATEST(likes_count + $1, 0) WHERE id = $2 RETURNING likes_count`

	var likes int
	err := r.db.GetContext(ctx, &likes, query, delta, storyID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, fmt.Errorf("история с ID %s: %w", storyID, ErrNotFound)
		}
		return 0, fmt.Errorf("ошибка при изменении счётчика лайков: %w", err)
	}

	return likes, nil
}

func (r *storyRepository) Approve(ctx context.Context, storyID string) error {
	query := `UPDATE posts SET is_approved = TRUE WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, storyID)
	if err != nil {
		return fmt.Errorf("ошибка при одобрении истории: %w", err)
	}

	return expectRows(result, storyID)
}

func (r *storyRepository) Delete(ctx context.Context, storyID string) error {
	query := `DELETE FROM posts WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, storyID)
	if err != nil {
		return fmt.Errorf("ошибка при удалении истории: %w", err)
	}

	return expectRows(result, storyID)
}

func (r *storyRepository) SetVerified(ctx context.Context, storyID string, verified bool) error {
	query := `UPDATE posts SET is_verified = $1 WHERE id = $2`

	result, err := r.db.ExecContext(ctx, query, verified, storyID)
	if err != nil {
		return fmt.Errorf("ошибка при изменении статуса проверки: %w", err)
	}

	return expectRows(result, storyID)
}

func (r *storyRepository) CountPending(ctx context.Context) (int, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM posts WHERE is_approved = FALSE`)
}

func (r *storyRepository) CountApproved(ctx context.Context) (int, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM posts WHERE is_approved = TRUE`)
}

func (r *storyRepository) CountApprovedSince(ctx context.Context, since time.Time) (int, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM posts WHERE is_approved = TRUE AND created_at >= $1`, since)
}

func (r *storyRepository) ApprovedCategories(ctx context.Context) ([]string, error) {
	query := `SELECT COALESCE(category, '') FROM posts WHERE is_approved = TRUE`

	categories := []string{}
	if err := r.db.SelectContext(ctx, &categories, query); err != nil {
		return nil, fmt.Errorf("ошибка при получении категорий: %w", err)
	}

	return categories, nil
}

func (r *storyRepository) ListByUser(ctx context.Context, userID string, limit int) ([]models.Story, error) {
	query := `SELECT * FROM posts WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2`

	stories := []models.Story{}
	if err := r.db.SelectContext(ctx, &stories, query, userID, limit); err != nil {
		return nil, fmt.Errorf("ошибка при получении историй пользователя: %w", err)
	}

	return stories, nil
}

func (r *storyRepository) CountByUser(ctx context.Context, userID string) (int, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM posts WHERE user_id = $1`, userID)
}

func (r *storyRepository) count(ctx context.Context, query string, args ...interface{}) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, query, args...); err != nil {
		return 0, fmt.Errorf("ошибка при подсчёте историй: %w", err)
	}
	return count, nil
}

func expectRows(result sql.Result, id string) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("ошибка при проверке изменённых строк: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("запись с ID %s: %w", id, ErrNotFound)
	}

	return nil
}
