package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"voiceunheard/internal/models"
)

var ErrNotFound = errors.New("запись не найдена")

// Order selects how approved stories come back from the store.
type Order int

const (
	OrderByCreated Order = iota
	OrderByLikes
)

type StoryRepository interface {
	ListApproved(ctx context.Context, categories []string, order Order) ([]models.Story, error)
	ListPending(ctx context.Context) ([]models.Story, error)
	GetByID(ctx context.Context, storyID string) (*models.Story, error)
	Create(ctx context.Context, story *models.Story) error
	SetLikes(ctx context.Context, storyID string, likes int) error
	AdjustLikes(ctx context.Context, storyID string, delta int) (int, error)
	Approve(ctx context.Context, storyID string) error
	Delete(ctx context.Context, storyID string) error
	SetVerified(ctx context.Context, storyID string, verified bool) error
	CountPending(ctx context.Context) (int, error)
	CountApproved(ctx context.Context) (int, error)
	CountApprovedSince(ctx context.Context, since time.Time) (int, error)
	ApprovedCategories(ctx context.Context) ([]string, error)
	ListByUser(ctx context.Context, userID string, limit int) ([]models.Story, error)
	CountByUser(ctx context.Context, userID string) (int, error)
}

type CommentRepository interface {
	ListByStory(ctx context.Context, storyID string) ([]models.Comment, error)
	GetByID(ctx context.Context, commentID string) (*models.Comment, error)
	Create(ctx context.Context, comment *models.Comment) (*models.Comment, error)
	DeleteOwned(ctx context.Context, commentID, deviceID string) (bool, error)
	CountByStories(ctx context.Context, storyIDs []string) (map[string]int, error)
	ListByUser(ctx context.Context, userID string, limit int) ([]models.Comment, error)
	CountByUser(ctx context.Context, userID string) (int, error)
}

type ProfileRepository interface {
	GetRole(ctx context.Context, userID string) (string, error)
	Create(ctx context.Context, userID, role string) error
}

type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User, password string) error
	GetUserByID(ctx context.Context, userID string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	VerifyPassword(ctx context.Context, email, password string) (*models.User, error)
	UpdateRefreshToken(ctx context.Context, userID, refreshToken string, expiryTime time.Time) error
	GetUserByRefreshToken(ctx context.Context, refreshToken string) (*models.User, error)
}

type DirectoryRepository interface {
	ListResources(ctx context.Context) ([]models.Resource, error)
	ListHelplines(ctx context.Context) ([]models.Helpline, error)
	GetHelpline(ctx context.Context, helplineID string) (*models.Helpline, error)
}

type SchemaRepository interface {
	CountTables(ctx context.Context) (int, error)
	MissingTables(ctx context.Context) ([]string, error)
}

type Repository struct {
	Schema    SchemaRepository
	Story     StoryRepository
	Comment   CommentRepository
	Profile   ProfileRepository
	User      UserRepository
	Directory DirectoryRepository
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{
		Schema:    NewSchemaRepository(db),
		Story:     NewStoryRepository(db),
		Comment:   NewCommentRepository(db),
		Profile:   NewProfileRepository(db),
		User:      NewUserRepository(db),
		Directory: NewDirectoryRepository(db),
	}
}
