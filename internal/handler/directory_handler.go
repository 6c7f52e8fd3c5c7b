package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
)

func (h *Handlers) GetResources(w http.ResponseWriter, r *http.Request) {
	resources, err := h.DirectoryService.Resources(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeSuccess(w, resources, http.StatusOK)
}

func (h *Handlers) GetHelplines(w http.ResponseWriter, r *http.Request) {
	helplines, err := h.DirectoryService.Helplines(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeSuccess(w, helplines, http.StatusOK)
}

func (h *Handlers) HelplineAction(w http.ResponseWriter, r *http.Request) {
	url, err := h.DirectoryService.HelplineAction(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeSuccess(w, map[string]string{"url": url}, http.StatusOK)
}

func (h *Handlers) GetProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := h.ProfileService.Load(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeSuccess(w, profile, http.StatusOK)
}
