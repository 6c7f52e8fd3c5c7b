package service

import (
	"context"
	"fmt"
	"log/slog"

	"voiceunheard/internal/config"
	"voiceunheard/internal/localstore"
	"voiceunheard/internal/repository"
	"voiceunheard/internal/state"
)

type LikeService interface {
	ToggleLike(ctx context.Context, storyID string) (state.State, error)
}

type likeService struct {
	storyRepo repository.StoryRepository
	identity  *localstore.IdentityStore
	store     *state.Store
	mode      string
}

func NewLikeService(storyRepo repository.StoryRepository, identity *localstore.IdentityStore, store *state.Store, cfg *config.Config) LikeService {
	return &likeService{
		storyRepo: storyRepo,
		identity:  identity,
		store:     store,
		mode:      cfg.LikeMode,
	}
}

// ToggleLike applies the like locally, then confirms it remotely. If the
// remote write fails the local membership and counter are put back.
func (s *likeService) ToggleLike(ctx context.Context, storyID string) (state.State, error) {
	var (
		toggle state.LikeToggle
		err    error
	)
	optimistic := s.store.Update(func(st state.State) state.State {
		var next state.State
		next, toggle, err = state.ToggleLike(st, storyID)
		return next
	})
	if err != nil {
		return optimistic, err
	}
	s.persist(ctx, optimistic.Liked)

	if remoteErr := s.write(ctx, toggle); remoteErr != nil {
		reverted := s.store.Update(func(st state.State) state.State {
			return state.RevertLike(st, toggle)
		})
		s.persist(ctx, reverted.Liked)

		slog.Warn("[LikeService] like rolled back",
			slog.String("story_id", storyID),
			slog.Any("error", remoteErr))
		return reverted, fmt.Errorf("ошибка обновления лайка: %w", remoteErr)
	}

	return optimistic, nil
}

func (s *likeService) write(ctx context.Context, t state.LikeToggle) error {
	if s.mode == config.LikeModeAbsolute {
		return s.storyRepo.SetLikes(ctx, t.StoryID, t.NewLikes)
	}

	delta := 1
	if !t.NowLiked {
		delta = -1
	}
	serverLikes, err := s.storyRepo.AdjustLikes(ctx, t.StoryID, delta)
	if err != nil {
		return err
	}
	// the displayed counter stays at prior ±1 even when other devices moved it
	if serverLikes != t.NewLikes {
		slog.Debug("[LikeService] server like count differs from local",
			slog.String("story_id", t.StoryID),
			slog.Int("local", t.NewLikes),
			slog.Int("server", serverLikes))
	}
	return nil
}

func (s *likeService) persist(ctx context.Context, liked map[string]bool) {
	if err := s.identity.SaveLikedSet(ctx, liked); err != nil {
		slog.Warn("[LikeService] liked set not persisted", slog.Any("error", err))
	}
}
