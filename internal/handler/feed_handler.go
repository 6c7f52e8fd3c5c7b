package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"voiceunheard/internal/category"
	"voiceunheard/internal/models"
	"voiceunheard/internal/state"
)

type FeedResponse struct {
	Filter  string         `json:"filter"`
	Filters []string       `json:"filters"`
	Stories []models.Story `json:"stories"`
	Liked   []string       `json:"liked"`
}

type LikeResponse struct {
	StoryID    string `json:"storyId"`
	Liked      bool   `json:"liked"`
	LikesCount int    `json:"likesCount"`
}

func feedResponse(st state.State) FeedResponse {
	stories := st.Feed
	if stories == nil {
		stories = []models.Story{}
	}
	liked := make([]string, 0, len(st.Liked))
	for _, s := range stories {
		if st.Liked[s.ID] {
			liked = append(liked, s.ID)
		}
	}
	return FeedResponse{
		Filter:  st.Filter,
		Filters: category.Filters(),
		Stories: stories,
		Liked:   liked,
	}
}

func (h *Handlers) GetFeed(w http.ResponseWriter, r *http.Request) {
	st, err := h.FeedService.LoadFeed(r.Context(), r.URL.Query().Get("category"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeSuccess(w, feedResponse(st), http.StatusOK)
}

func (h *Handlers) RefreshFeed(w http.ResponseWriter, r *http.Request) {
	st, err := h.FeedService.Refresh(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeSuccess(w, struct {
		FeedResponse
		Stats models.ImpactStats `json:"stats"`
	}{feedResponse(st), st.Stats}, http.StatusOK)
}

func (h *Handlers) GetStats(w http.ResponseWriter, r *http.Request) {
	writeSuccess(w, h.FeedService.LoadStats(r.Context()), http.StatusOK)
}

func (h *Handlers) ToggleLike(w http.ResponseWriter, r *http.Request) {
	storyID := mux.Vars(r)["id"]

	st, err := h.LikeService.ToggleLike(r.Context(), storyID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	story, _ := st.FindStory(storyID)
	writeSuccess(w, LikeResponse{
		StoryID:    storyID,
		Liked:      st.Liked[storyID],
		LikesCount: story.LikesCount,
	}, http.StatusOK)
}
