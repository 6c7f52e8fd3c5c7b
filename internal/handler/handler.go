package handlers

import (
	"github.com/go-playground/validator/v10"

	"voiceunheard/internal/config"
	"voiceunheard/internal/repository"
	"voiceunheard/internal/service"
)

// HealthChecker reports whether the remote store is reachable.
type HealthChecker interface {
	HealthCheck() error
}

type Handlers struct {
	SessionService    service.SessionService
	DeviceService     service.DeviceService
	LikeService       service.LikeService
	FeedService       service.FeedService
	CommentService    service.CommentService
	StoryService      service.StoryService
	ModerationService service.ModerationService
	DirectoryService  service.DirectoryService
	ProfileService    service.ProfileService
	SchemaRepo        repository.SchemaRepository
	Health            HealthChecker
	Cfg               *config.Config
	Validate          *validator.Validate
}

func NewHandlers(repo *repository.Repository, services *service.Service, health HealthChecker, cfg *config.Config) *Handlers {
	return &Handlers{
		SchemaRepo:        repo.Schema,
		SessionService:    services.Session,
		DeviceService:     services.Device,
		LikeService:       services.Like,
		FeedService:       services.Feed,
		CommentService:    services.Comment,
		StoryService:      services.Story,
		ModerationService: services.Moderation,
		DirectoryService:  services.Directory,
		ProfileService:    services.Profile,
		Health:            health,
		Cfg:               cfg,
		Validate:          validator.New(),
	}
}
