package service

import (
	"context"
	"fmt"
	"log/slog"

	"voiceunheard/internal/category"
	"voiceunheard/internal/models"
	"voiceunheard/internal/repository"
	"voiceunheard/internal/state"
)

type ModerationService interface {
	Approve(ctx context.Context, storyID string) (state.State, error)
	Reject(ctx context.Context, storyID string) (state.State, error)
	ToggleVerify(ctx context.Context, storyID string) (state.State, error)
}

type moderationService struct {
	storyRepo repository.StoryRepository
	feed      FeedService
	store     *state.Store
}

func NewModerationService(storyRepo repository.StoryRepository, feed FeedService, store *state.Store) ModerationService {
	return &moderationService{
		storyRepo: storyRepo,
		feed:      feed,
		store:     store,
	}
}

func (s *moderationService) Approve(ctx context.Context, storyID string) (state.State, error) {
	if !s.store.Snapshot().IsModerator() {
		return s.store.Snapshot(), ErrForbidden
	}

	snap := s.store.Snapshot()
	if err := s.storyRepo.Approve(ctx, storyID); err != nil {
		return snap, fmt.Errorf("ошибка одобрения истории: %w", err)
	}
	slog.Info("[ModerationService] story approved", slog.String("story_id", storyID))

	s.reloadQueue(ctx)
	// the feed only changes when the story belongs to the active filter
	if queued, ok := snap.FindQueued(storyID); !ok || category.Matches(snap.Filter, queued.Category) {
		if _, err := s.feed.LoadFeed(ctx, ""); err != nil {
			slog.Warn("[ModerationService] feed not refreshed", slog.Any("error", err))
		}
	}
	s.feed.RefreshPendingCount(ctx)

	return s.store.Snapshot(), nil
}

func (s *moderationService) Reject(ctx context.Context, storyID string) (state.State, error) {
	if !s.store.Snapshot().IsModerator() {
		return s.store.Snapshot(), ErrForbidden
	}

	if err := s.storyRepo.Delete(ctx, storyID); err != nil {
		return s.store.Snapshot(), fmt.Errorf("ошибка отклонения истории: %w", err)
	}
	slog.Info("[ModerationService] story rejected", slog.String("story_id", storyID))

	s.reloadQueue(ctx)
	s.feed.RefreshPendingCount(ctx)

	return s.store.Snapshot(), nil
}

// ToggleVerify flips the credibility flag relative to the loaded copy of the story.
func (s *moderationService) ToggleVerify(ctx context.Context, storyID string) (state.State, error) {
	snap := s.store.Snapshot()
	if !snap.IsModerator() {
		return snap, ErrForbidden
	}

	story, ok := snap.FindQueued(storyID)
	if !ok {
		story, ok = snap.FindStory(storyID)
	}
	if !ok {
		stored, err := s.storyRepo.GetByID(ctx, storyID)
		if err != nil {
			return snap, fmt.Errorf("ошибка получения истории: %w", err)
		}
		story = *stored
	}

	verified := !story.IsVerified
	if err := s.storyRepo.SetVerified(ctx, storyID, verified); err != nil {
		return snap, fmt.Errorf("ошибка смены статуса проверки: %w", err)
	}
	s.store.Update(func(st state.State) state.State {
		return state.SetVerified(st, storyID, verified)
	})

	s.reloadQueue(ctx)
	if s.store.Snapshot().Tab == models.TabFeed {
		if _, err := s.feed.LoadFeed(ctx, ""); err != nil {
			slog.Warn("[ModerationService] feed not refreshed", slog.Any("error", err))
		}
	}

	return s.store.Snapshot(), nil
}

func (s *moderationService) reloadQueue(ctx context.Context) {
	if _, err := s.feed.LoadModerationQueue(ctx); err != nil {
		slog.Warn("[ModerationService] queue not refreshed", slog.Any("error", err))
	}
}
