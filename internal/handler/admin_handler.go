package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"voiceunheard/internal/models"
	"voiceunheard/internal/state"
)

type QueueResponse struct {
	Stories      []models.Story `json:"stories"`
	PendingCount int            `json:"pendingCount"`
}

func queueResponse(st state.State) QueueResponse {
	stories := st.AdminQueue
	if stories == nil {
		stories = []models.Story{}
	}
	return QueueResponse{Stories: stories, PendingCount: st.PendingCount}
}

func (h *Handlers) GetQueue(w http.ResponseWriter, r *http.Request) {
	st, err := h.FeedService.LoadModerationQueue(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeSuccess(w, queueResponse(st), http.StatusOK)
}

func (h *Handlers) ApproveStory(w http.ResponseWriter, r *http.Request) {
	st, err := h.ModerationService.Approve(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeSuccess(w, queueResponse(st), http.StatusOK)
}

func (h *Handlers) RejectStory(w http.ResponseWriter, r *http.Request) {
	st, err := h.ModerationService.Reject(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeSuccess(w, queueResponse(st), http.StatusOK)
}

func (h *Handlers) ToggleVerify(w http.ResponseWriter, r *http.Request) {
	st, err := h.ModerationService.ToggleVerify(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeSuccess(w, queueResponse(st), http.StatusOK)
}
