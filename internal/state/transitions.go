package state

import (
	"voiceunheard/internal/models"
)

// ToggleLike flips membership of the story in the liked set and moves its
// counter by one, never below zero.
func ToggleLike(s State, storyID string) (State, LikeToggle, error) {
	i := indexOf(s.Feed, storyID)
	if i < 0 {
		return s, LikeToggle{}, ErrStoryNotLoaded
	}

	t := LikeToggle{
		StoryID:    storyID,
		WasLiked:   s.Liked[storyID],
		PriorLikes: s.Feed[i].LikesCount,
	}
	t.NowLiked = !t.WasLiked
	if t.NowLiked {
		t.NewLikes = t.PriorLikes + 1
	} else {
		t.NewLikes = max(t.PriorLikes-1, 0)
	}

	return applyLike(s, storyID, t.NowLiked, t.NewLikes), t, nil
}

// RevertLike puts back the membership and counter a ToggleLike replaced.
func RevertLike(s State, t LikeToggle) State {
	return applyLike(s, t.StoryID, t.WasLiked, t.PriorLikes)
}

func applyLike(s State, storyID string, liked bool, likes int) State {
	next := s
	next.Liked = cloneLiked(s.Liked)
	if liked {
		next.Liked[storyID] = true
	} else {
		delete(next.Liked, storyID)
	}

	if i := indexOf(s.Feed, storyID); i >= 0 {
		next.Feed = cloneStories(s.Feed)
		next.Feed[i].LikesCount = likes
	}
	return next
}

func SetLiked(s State, liked map[string]bool) State {
	next := s
	next.Liked = cloneLiked(liked)
	return next
}

// BeginFeedLoad starts a new feed load and returns its generation.
// Only the load holding the latest generation may commit.
func BeginFeedLoad(s State) (State, uint64) {
	next := s
	next.FeedGeneration = s.FeedGeneration + 1
	return next, next.FeedGeneration
}

// CommitFeed installs a loaded feed unless a newer load has started since.
func CommitFeed(s State, generation uint64, filter string, stories []models.Story) (State, bool) {
	if generation != s.FeedGeneration {
		return s, false
	}
	next := s
	next.Filter = filter
	next.Feed = cloneStories(stories)
	return next, true
}

func SetAdminQueue(s State, stories []models.Story) State {
	next := s
	next.AdminQueue = cloneStories(stories)
	return next
}

func SetPendingCount(s State, count int) State {
	next := s
	next.PendingCount = count
	return next
}

func SetStats(s State, stats models.ImpactStats) State {
	next := s
	next.Stats = stats
	return next
}

// SetVerified updates the credibility flag wherever the story is loaded.
func SetVerified(s State, storyID string, verified bool) State {
	next := s
	if i := indexOf(s.AdminQueue, storyID); i >= 0 {
		next.AdminQueue = cloneStories(s.AdminQueue)
		next.AdminQueue[i].IsVerified = verified
	}
	if i := indexOf(s.Feed, storyID); i >= 0 {
		next.Feed = cloneStories(s.Feed)
		next.Feed[i].IsVerified = verified
	}
	return next
}

func SetComments(s State, storyID string, comments []models.Comment) State {
	next := s
	next.Comments = cloneComments(s.Comments)
	list := make([]models.Comment, len(comments))
	copy(list, comments)
	next.Comments[storyID] = list
	return next
}

// AddComment appends a confirmed comment and bumps the story's comment count.
func AddComment(s State, comment models.Comment) State {
	next := s
	next.Comments = cloneComments(s.Comments)
	prev := s.Comments[comment.PostID]
	list := make([]models.Comment, len(prev), len(prev)+1)
	copy(list, prev)
	next.Comments[comment.PostID] = append(list, comment)

	if i := indexOf(s.Feed, comment.PostID); i >= 0 {
		next.Feed = cloneStories(s.Feed)
		next.Feed[i].CommentsCount++
	}
	return next
}

// RemoveComment drops a deleted comment and lowers the story's comment count, floored at zero.
func RemoveComment(s State, storyID, commentID string) State {
	next := s
	next.Comments = cloneComments(s.Comments)
	prev := s.Comments[storyID]
	list := make([]models.Comment, 0, len(prev))
	for _, c := range prev {
		if c.ID != commentID {
			list = append(list, c)
		}
	}
	next.Comments[storyID] = list

	if i := indexOf(s.Feed, storyID); i >= 0 {
		next.Feed = cloneStories(s.Feed)
		next.Feed[i].CommentsCount = max(next.Feed[i].CommentsCount-1, 0)
	}
	return next
}

// SetSession installs the session and its resolved role. Without a session
// the role drops to none and the view returns to the feed.
func SetSession(s State, session *models.Session, role models.Role) State {
	next := s
	if session == nil {
		next.Session = nil
		next.Role = models.RoleNone
		next.Tab = models.TabFeed
		next.AdminQueue = nil
		next.PendingCount = 0
		return next
	}

	sess := *session
	next.Session = &sess
	next.Role = role
	if role != models.RoleModerator && s.Tab == models.TabAdmin {
		next.Tab = models.TabFeed
	}
	return next
}

// SetTab switches the active view. The admin view requires the moderator role.
func SetTab(s State, tab models.Tab) (State, bool) {
	if tab == models.TabAdmin && !s.IsModerator() {
		return s, false
	}
	next := s
	next.Tab = tab
	return next, true
}

func SetDevice(s State, deviceID string, introShown bool) State {
	next := s
	next.DeviceID = deviceID
	next.IntroShown = introShown
	return next
}

func MarkIntroShown(s State) State {
	next := s
	next.IntroShown = true
	return next
}
