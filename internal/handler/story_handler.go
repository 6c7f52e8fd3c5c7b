package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/dustin/go-humanize"
	"github.com/gorilla/mux"

	"voiceunheard/internal/category"
	"voiceunheard/internal/service"
)

type CommentRequest struct {
	Content string `json:"content" validate:"required"`
}

func (h *Handlers) SubmitStory(w http.ResponseWriter, r *http.Request) {
	limit := h.Cfg.MaxUploadSize
	r.Body = http.MaxBytesReader(w, r.Body, limit)

	var req service.SubmitStoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			WriteError(w, fmt.Sprintf("Размер запроса превышает %s", humanize.IBytes(uint64(limit))), http.StatusRequestEntityTooLarge)
			return
		}
		WriteError(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, "Заголовок и текст обязательны", http.StatusBadRequest)
		return
	}

	story, err := h.StoryService.SubmitStory(r.Context(), req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeSuccess(w, story, http.StatusCreated)
}

func (h *Handlers) GetSubmissionCategories(w http.ResponseWriter, r *http.Request) {
	writeSuccess(w, map[string][]string{"categories": category.SubmissionCategories()}, http.StatusOK)
}

func (h *Handlers) GetComments(w http.ResponseWriter, r *http.Request) {
	comments, err := h.CommentService.LoadComments(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeSuccess(w, comments, http.StatusOK)
}

func (h *Handlers) SubmitComment(w http.ResponseWriter, r *http.Request) {
	var req CommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}
	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, "Комментарий не может быть пустым", http.StatusBadRequest)
		return
	}

	comment, err := h.CommentService.SubmitComment(r.Context(), mux.Vars(r)["id"], req.Content)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeSuccess(w, comment, http.StatusCreated)
}

func (h *Handlers) DeleteComment(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	if err := h.CommentService.DeleteComment(r.Context(), vars["id"], vars["commentId"]); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
