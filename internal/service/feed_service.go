package service

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"voiceunheard/internal/category"
	"voiceunheard/internal/models"
	"voiceunheard/internal/repository"
	"voiceunheard/internal/state"
)

type FeedService interface {
	LoadFeed(ctx context.Context, filter string) (state.State, error)
	Refresh(ctx context.Context) (state.State, error)
	LoadStats(ctx context.Context) models.ImpactStats
	LoadModerationQueue(ctx context.Context) (state.State, error)
	RefreshPendingCount(ctx context.Context) int
}

type feedService struct {
	storyRepo   repository.StoryRepository
	commentRepo repository.CommentRepository
	store       *state.Store
	now         func() time.Time
}

func NewFeedService(storyRepo repository.StoryRepository, commentRepo repository.CommentRepository, store *state.Store) FeedService {
	return &feedService{
		storyRepo:   storyRepo,
		commentRepo: commentRepo,
		store:       store,
		now:         time.Now,
	}
}

// LoadFeed fetches the approved stories for filter, attaches comment counts
// and commits the result unless a newer load started meanwhile. On failure
// the previous feed stays in place.
func (s *feedService) LoadFeed(ctx context.Context, filter string) (state.State, error) {
	if filter == "" {
		filter = s.store.Snapshot().Filter
	}

	var generation uint64
	s.store.Update(func(st state.State) state.State {
		var next state.State
		next, generation = state.BeginFeedLoad(st)
		return next
	})

	var (
		stories []models.Story
		err     error
	)
	if category.IsTrending(filter) {
		stories, err = s.storyRepo.ListApproved(ctx, nil, repository.OrderByLikes)
	} else {
		stories, err = s.storyRepo.ListApproved(ctx, category.Accepted(filter), repository.OrderByCreated)
	}
	if err != nil {
		return s.store.Snapshot(), fmt.Errorf("ошибка загрузки ленты: %w", err)
	}

	s.attachCommentCounts(ctx, stories)
	if category.IsTrending(filter) {
		RankTrending(stories)
	}

	committed := false
	next := s.store.Update(func(st state.State) state.State {
		var out state.State
		out, committed = state.CommitFeed(st, generation, filter, stories)
		return out
	})
	if !committed {
		slog.Debug("[FeedService] stale feed response dropped",
			slog.String("filter", filter),
			slog.Uint64("generation", generation))
	}

	return next, nil
}

// attachCommentCounts fills CommentsCount in place from one grouped query.
// Counts are advisory: on failure every story shows zero.
func (s *feedService) attachCommentCounts(ctx context.Context, stories []models.Story) {
	if len(stories) == 0 {
		return
	}

	ids := make([]string, len(stories))
	for i := range stories {
		ids[i] = stories[i].ID
	}

	counts, err := s.commentRepo.CountByStories(ctx, ids)
	if err != nil {
		slog.Warn("[FeedService] comment counts unavailable", slog.Any("error", err))
		counts = nil
	}
	for i := range stories {
		stories[i].CommentsCount = counts[stories[i].ID]
	}
}

// RankTrending orders verified stories first, then by likes descending.
// Equal keys keep their incoming order.
func RankTrending(stories []models.Story) {
	sort.SliceStable(stories, func(i, j int) bool {
		a, b := stories[i], stories[j]
		if a.IsVerified != b.IsVerified {
			return a.IsVerified
		}
		return a.LikesCount > b.LikesCount
	})
}

// Refresh reloads the current feed and the impact stats side by side.
func (s *feedService) Refresh(ctx context.Context) (state.State, error) {
	filter := s.store.Snapshot().Filter

	var g errgroup.Group
	g.Go(func() error {
		_, err := s.LoadFeed(ctx, filter)
		return err
	})
	g.Go(func() error {
		s.LoadStats(ctx)
		return nil
	})

	err := g.Wait()
	return s.store.Snapshot(), err
}

func (s *feedService) LoadStats(ctx context.Context) models.ImpactStats {
	var (
		total      int
		categories []string
		today      int
	)

	midnight := startOfDay(s.now())

	var g errgroup.Group
	g.Go(func() error {
		n, err := s.storyRepo.CountApproved(ctx)
		if err != nil {
			slog.Warn("[FeedService] total count unavailable", slog.Any("error", err))
			return nil
		}
		total = n
		return nil
	})
	g.Go(func() error {
		list, err := s.storyRepo.ApprovedCategories(ctx)
		if err != nil {
			slog.Warn("[FeedService] categories unavailable", slog.Any("error", err))
			return nil
		}
		categories = list
		return nil
	})
	g.Go(func() error {
		n, err := s.storyRepo.CountApprovedSince(ctx, midnight)
		if err != nil {
			slog.Warn("[FeedService] today count unavailable", slog.Any("error", err))
			return nil
		}
		today = n
		return nil
	})
	_ = g.Wait()

	stats := models.ImpactStats{
		TotalVoices: total,
		TopCategory: TopCategory(categories),
		TodayCount:  today,
	}
	s.store.Update(func(st state.State) state.State {
		return state.SetStats(st, stats)
	})
	return stats
}

// TopCategory returns the most frequent category, counting blanks as Other.
// Ties go to the category seen first. With no stories it returns "None".
func TopCategory(categories []string) string {
	counts := make(map[string]int, len(categories))
	order := make([]string, 0, len(categories))
	for _, c := range categories {
		if c == "" {
			c = category.Other
		}
		if counts[c] == 0 {
			order = append(order, c)
		}
		counts[c]++
	}

	top, best := "None", 0
	for _, c := range order {
		if counts[c] > best {
			top, best = c, counts[c]
		}
	}
	return top
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func (s *feedService) LoadModerationQueue(ctx context.Context) (state.State, error) {
	if !s.store.Snapshot().IsModerator() {
		return s.store.Snapshot(), ErrForbidden
	}

	stories, err := s.storyRepo.ListPending(ctx)
	if err != nil {
		return s.store.Snapshot(), fmt.Errorf("ошибка загрузки очереди модерации: %w", err)
	}
	s.attachCommentCounts(ctx, stories)

	s.store.Update(func(st state.State) state.State {
		return state.SetAdminQueue(st, stories)
	})
	s.RefreshPendingCount(ctx)

	return s.store.Snapshot(), nil
}

// RefreshPendingCount keeps the previous badge value when the count fails.
func (s *feedService) RefreshPendingCount(ctx context.Context) int {
	count, err := s.storyRepo.CountPending(ctx)
	if err != nil {
		slog.Warn("[FeedService] pending count unavailable", slog.Any("error", err))
		return s.store.Snapshot().PendingCount
	}
	s.store.Update(func(st state.State) state.State {
		return state.SetPendingCount(st, count)
	})
	return count
}
