// Package state holds the client's application state as one immutable value.
// Every transition is a pure function returning a new State; the maps and
// slices of a State handed out by Store must be treated as read-only.
package state

import (
	"errors"

	"voiceunheard/internal/models"
)

var ErrStoryNotLoaded = errors.New("история не загружена в ленту")

type State struct {
	DeviceID     string                      `json:"deviceId"`
	IntroShown   bool                        `json:"introShown"`
	Session      *models.Session             `json:"session,omitempty"`
	Role         models.Role                 `json:"role"`
	Tab          models.Tab                  `json:"tab"`
	Filter       string                      `json:"filter"`
	Feed         []models.Story              `json:"feed"`
	Liked        map[string]bool             `json:"liked"`
	Comments     map[string][]models.Comment `json:"-"`
	Stats        models.ImpactStats          `json:"stats"`
	AdminQueue   []models.Story              `json:"adminQueue"`
	PendingCount int                         `json:"pendingCount"`

	// FeedGeneration identifies the most recently started feed load.
	FeedGeneration uint64 `json:"-"`
}

func Initial() State {
	return State{
		Role:     models.RoleNone,
		Tab:      models.TabFeed,
		Filter:   "Trending",
		Liked:    map[string]bool{},
		Comments: map[string][]models.Comment{},
	}
}

// LikeToggle records the values a like toggle replaced so it can be undone.
type LikeToggle struct {
	StoryID    string
	WasLiked   bool
	PriorLikes int
	NowLiked   bool
	NewLikes   int
}

func (s State) UserID() string {
	if s.Session == nil {
		return ""
	}
	return s.Session.UserID
}

func (s State) IsModerator() bool {
	return s.Session != nil && s.Role == models.RoleModerator
}

func (s State) FindStory(storyID string) (models.Story, bool) {
	if i := indexOf(s.Feed, storyID); i >= 0 {
		return s.Feed[i], true
	}
	return models.Story{}, false
}

func (s State) FindQueued(storyID string) (models.Story, bool) {
	if i := indexOf(s.AdminQueue, storyID); i >= 0 {
		return s.AdminQueue[i], true
	}
	return models.Story{}, false
}

func (s State) FindComment(storyID, commentID string) (models.Comment, bool) {
	for _, c := range s.Comments[storyID] {
		if c.ID == commentID {
			return c, true
		}
	}
	return models.Comment{}, false
}

func indexOf(stories []models.Story, storyID string) int {
	for i := range stories {
		if stories[i].ID == storyID {
			return i
		}
	}
	return -1
}

func cloneStories(stories []models.Story) []models.Story {
	if stories == nil {
		return nil
	}
	out := make([]models.Story, len(stories))
	copy(out, stories)
	return out
}

func cloneLiked(liked map[string]bool) map[string]bool {
	out := make(map[string]bool, len(liked))
	for id, ok := range liked {
		if ok {
			out[id] = true
		}
	}
	return out
}

func cloneComments(comments map[string][]models.Comment) map[string][]models.Comment {
	out := make(map[string][]models.Comment, len(comments))
	for id, list := range comments {
		out[id] = list
	}
	return out
}
