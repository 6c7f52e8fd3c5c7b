package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"voiceunheard/internal/category"
	"voiceunheard/internal/device"
	"voiceunheard/internal/models"
	"voiceunheard/internal/repository"
	"voiceunheard/internal/state"
	"voiceunheard/internal/storage"
)

const (
	AnonymousName   = "Anonymous"
	AnonymousAvatar = "https://api.dicebear.com/7.x/abstract/png?seed=anonymous"
	memberName      = "Community Member"
	initialsAvatar  = "https://api.dicebear.com/7.x/initials/png?seed="
)

type SubmitStoryRequest struct {
	Title    string `json:"title" validate:"required"`
	Content  string `json:"content" validate:"required"`
	Category string `json:"category"`
	Location string `json:"location"`
	// ImageBase64 is the inline encoding returned by the photo picker.
	ImageBase64 string `json:"imageBase64"`
}

type StoryService interface {
	SubmitStory(ctx context.Context, req SubmitStoryRequest) (*models.Story, error)
}

type storyService struct {
	storyRepo repository.StoryRepository
	storage   storage.Storage
	store     *state.Store
	pending   PendingCounter
}

func NewStoryService(storyRepo repository.StoryRepository, storage storage.Storage, store *state.Store, pending PendingCounter) StoryService {
	return &storyService{
		storyRepo: storyRepo,
		storage:   storage,
		store:     store,
		pending:   pending,
	}
}

// SubmitStory queues a story for moderation. An attached image is uploaded
// first; if that fails nothing is inserted.
func (s *storyService) SubmitStory(ctx context.Context, req SubmitStoryRequest) (*models.Story, error) {
	title := strings.TrimSpace(req.Title)
	content := strings.TrimSpace(req.Content)
	if title == "" || content == "" {
		return nil, fmt.Errorf("%w: заголовок и текст обязательны", ErrValidation)
	}

	story := &models.Story{
		Title:    title,
		Content:  content,
		Category: strings.TrimSpace(req.Category),
	}
	if story.Category == "" {
		story.Category = category.Default
	}
	if loc := strings.TrimSpace(req.Location); loc != "" {
		story.Location = &loc
	}

	var objectName string
	if req.ImageBase64 != "" {
		data, err := device.DecodeImage(req.ImageBase64)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrValidation, err)
		}
		var url string
		objectName, url, err = s.storage.UploadEvidence(ctx, data)
		if err != nil {
			return nil, fmt.Errorf("ошибка загрузки изображения: %w", err)
		}
		story.ImageURL = &url
	}

	snap := s.store.Snapshot()
	name, avatar := Author(snap.Session)
	story.AuthorName = &name
	story.AuthorAvatarURL = &avatar
	if userID := snap.UserID(); userID != "" {
		story.UserID = &userID
	}

	if err := s.storyRepo.Create(ctx, story); err != nil {
		if objectName != "" {
			if delErr := s.storage.DeleteObject(ctx, objectName); delErr != nil {
				slog.Warn("[StoryService] orphaned evidence left in bucket",
					slog.String("object", objectName),
					slog.Any("error", delErr))
			}
		}
		return nil, fmt.Errorf("ошибка отправки истории: %w", err)
	}

	slog.Info("[StoryService] story submitted for review",
		slog.String("story_id", story.ID),
		slog.String("category", story.Category))

	if snap.IsModerator() && s.pending != nil {
		s.pending.RefreshPendingCount(ctx)
	}
	return story, nil
}

// Author derives the display name and avatar a new story is published under.
func Author(session *models.Session) (string, string) {
	if session == nil || session.UserID == "" {
		return AnonymousName, AnonymousAvatar
	}

	name, _, _ := strings.Cut(session.Email, "@")
	if name == "" {
		name = memberName
	}
	return name, initialsAvatar + session.UserID
}
