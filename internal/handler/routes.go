package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
)

// Routes registers the public surface. Moderation routes are registered
// separately so the caller can gate them.
func (h *Handlers) Routes(r *mux.Router) {
	r.HandleFunc("/health", h.HealthHandler).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/bootstrap", h.Bootstrap).Methods(http.MethodGet)
	api.HandleFunc("/intro/complete", h.CompleteIntro).Methods(http.MethodPost)
	api.HandleFunc("/device/location", h.DescribeLocation).Methods(http.MethodPost)

	api.HandleFunc("/auth/signin", h.SignIn).Methods(http.MethodPost)
	api.HandleFunc("/auth/signup", h.SignUp).Methods(http.MethodPost)
	api.HandleFunc("/auth/signout", h.SignOut).Methods(http.MethodPost)
	api.HandleFunc("/session", h.GetSession).Methods(http.MethodGet)
	api.HandleFunc("/view", h.SetView).Methods(http.MethodPut)

	api.HandleFunc("/feed", h.GetFeed).Methods(http.MethodGet)
	api.HandleFunc("/feed/refresh", h.RefreshFeed).Methods(http.MethodPost)
	api.HandleFunc("/stats", h.GetStats).Methods(http.MethodGet)

	api.HandleFunc("/categories", h.GetSubmissionCategories).Methods(http.MethodGet)
	api.HandleFunc("/stories", h.SubmitStory).Methods(http.MethodPost)
	api.HandleFunc("/stories/{id}/like", h.ToggleLike).Methods(http.MethodPost)
	api.HandleFunc("/stories/{id}/comments", h.GetComments).Methods(http.MethodGet)
	api.HandleFunc("/stories/{id}/comments", h.SubmitComment).Methods(http.MethodPost)
	api.HandleFunc("/stories/{id}/comments/{commentId}", h.DeleteComment).Methods(http.MethodDelete)

	api.HandleFunc("/resources", h.GetResources).Methods(http.MethodGet)
	api.HandleFunc("/helplines", h.GetHelplines).Methods(http.MethodGet)
	api.HandleFunc("/helplines/{id}/action", h.HelplineAction).Methods(http.MethodGet)
	api.HandleFunc("/profile", h.GetProfile).Methods(http.MethodGet)
}

// AdminRoutes registers the moderation surface on an already gated router.
func (h *Handlers) AdminRoutes(admin *mux.Router) {
	admin.HandleFunc("/queue", h.GetQueue).Methods(http.MethodGet)
	admin.HandleFunc("/stories/{id}/approve", h.ApproveStory).Methods(http.MethodPost)
	admin.HandleFunc("/stories/{id}", h.RejectStory).Methods(http.MethodDelete)
	admin.HandleFunc("/stories/{id}/verify", h.ToggleVerify).Methods(http.MethodPost)
}
