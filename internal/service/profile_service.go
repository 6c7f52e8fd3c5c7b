package service

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"voiceunheard/internal/models"
	"voiceunheard/internal/repository"
	"voiceunheard/internal/state"
)

const profileListLimit = 20

type ProfileService interface {
	Load(ctx context.Context) (*models.Profile, error)
}

type profileService struct {
	storyRepo   repository.StoryRepository
	commentRepo repository.CommentRepository
	store       *state.Store
}

func NewProfileService(storyRepo repository.StoryRepository, commentRepo repository.CommentRepository, store *state.Store) ProfileService {
	return &profileService{
		storyRepo:   storyRepo,
		commentRepo: commentRepo,
		store:       store,
	}
}

// Load gathers the signed-in user's activity. Each part is independent and
// degrades to zero or empty on failure.
func (s *profileService) Load(ctx context.Context) (*models.Profile, error) {
	userID := s.store.Snapshot().UserID()
	if userID == "" {
		return nil, ErrNotSignedIn
	}

	profile := &models.Profile{
		Stories:  []models.Story{},
		Comments: []models.Comment{},
	}

	var g errgroup.Group
	g.Go(func() error {
		if n, err := s.storyRepo.CountByUser(ctx, userID); err != nil {
			logProfileMiss("stories count", err)
		} else {
			profile.Stats.PostsCount = n
		}
		return nil
	})
	g.Go(func() error {
		if n, err := s.commentRepo.CountByUser(ctx, userID); err != nil {
			logProfileMiss("comments count", err)
		} else {
			profile.Stats.CommentsCount = n
		}
		return nil
	})
	g.Go(func() error {
		if list, err := s.storyRepo.ListByUser(ctx, userID, profileListLimit); err != nil {
			logProfileMiss("stories", err)
		} else if list != nil {
			profile.Stories = list
		}
		return nil
	})
	g.Go(func() error {
		if list, err := s.commentRepo.ListByUser(ctx, userID, profileListLimit); err != nil {
			logProfileMiss("comments", err)
		} else if list != nil {
			profile.Comments = list
		}
		return nil
	})
	_ = g.Wait()

	return profile, nil
}

func logProfileMiss(part string, err error) {
	slog.Warn("[ProfileService] part unavailable", slog.String("part", part), slog.Any("error", err))
}
