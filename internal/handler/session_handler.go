package handlers

import (
	"encoding/json"
	"net/http"

	"voiceunheard/internal/device"
	"voiceunheard/internal/models"
	"voiceunheard/internal/state"
)

type CredentialsRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type ViewRequest struct {
	Tab models.Tab `json:"tab" validate:"required,oneof=feed speak admin learn help profile"`
}

type SessionResponse struct {
	Session      *models.Session `json:"session"`
	Role         models.Role     `json:"role"`
	Tab          models.Tab      `json:"tab"`
	PendingCount int             `json:"pendingCount"`
}

type BootstrapResponse struct {
	DeviceID   string          `json:"deviceId"`
	IntroShown bool            `json:"introShown"`
	Liked      []string        `json:"liked"`
	Session    SessionResponse `json:"session"`
}

func sessionResponse(st state.State) SessionResponse {
	return SessionResponse{
		Session:      st.Session,
		Role:         st.Role,
		Tab:          st.Tab,
		PendingCount: st.PendingCount,
	}
}

type HealthResponse struct {
	Status  string   `json:"status"`
	Tables  int      `json:"tables"`
	Missing []string `json:"missing,omitempty"`
}

func (h *Handlers) HealthHandler(w http.ResponseWriter, r *http.Request) {
	if err := h.Health.HealthCheck(); err != nil {
		WriteError(w, "База данных недоступна", http.StatusServiceUnavailable)
		return
	}

	count, err := h.SchemaRepo.CountTables(r.Context())
	if err != nil {
		WriteError(w, err.Error(), http.StatusServiceUnavailable)
		return
	}

	missing, err := h.SchemaRepo.MissingTables(r.Context())
	if err != nil {
		WriteError(w, err.Error(), http.StatusServiceUnavailable)
		return
	}
	if len(missing) > 0 {
		writeSuccess(w, HealthResponse{Status: "degraded", Tables: count, Missing: missing}, http.StatusServiceUnavailable)
		return
	}

	writeSuccess(w, HealthResponse{Status: "ok", Tables: count}, http.StatusOK)
}

func (h *Handlers) Bootstrap(w http.ResponseWriter, r *http.Request) {
	st, err := h.DeviceService.Bootstrap(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	liked := make([]string, 0, len(st.Liked))
	for id := range st.Liked {
		liked = append(liked, id)
	}

	writeSuccess(w, BootstrapResponse{
		DeviceID:   st.DeviceID,
		IntroShown: st.IntroShown,
		Liked:      liked,
		Session:    sessionResponse(h.SessionService.Current(r.Context())),
	}, http.StatusOK)
}

func (h *Handlers) CompleteIntro(w http.ResponseWriter, r *http.Request) {
	st, err := h.DeviceService.CompleteIntroduction(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeSuccess(w, map[string]bool{"introShown": st.IntroShown}, http.StatusOK)
}

func (h *Handlers) DescribeLocation(w http.ResponseWriter, r *http.Request) {
	var req device.Placemark
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}

	location, err := h.DeviceService.DescribeLocation(req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeSuccess(w, map[string]string{"location": location}, http.StatusOK)
}

func (h *Handlers) decodeCredentials(w http.ResponseWriter, r *http.Request) (CredentialsRequest, bool) {
	var req CredentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Неверный формат запроса", http.StatusBadRequest)
		return req, false
	}
	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, "Неверный email или пароль короче 6 символов", http.StatusBadRequest)
		return req, false
	}
	return req, true
}

func (h *Handlers) SignIn(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeCredentials(w, r)
	if !ok {
		return
	}

	st, err := h.SessionService.SignIn(r.Context(), req.Email, req.Password)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeSuccess(w, sessionResponse(st), http.StatusOK)
}

func (h *Handlers) SignUp(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeCredentials(w, r)
	if !ok {
		return
	}

	st, err := h.SessionService.SignUp(r.Context(), req.Email, req.Password)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeSuccess(w, sessionResponse(st), http.StatusCreated)
}

func (h *Handlers) SignOut(w http.ResponseWriter, r *http.Request) {
	st, err := h.SessionService.SignOut(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeSuccess(w, sessionResponse(st), http.StatusOK)
}

func (h *Handlers) GetSession(w http.ResponseWriter, r *http.Request) {
	writeSuccess(w, sessionResponse(h.SessionService.Current(r.Context())), http.StatusOK)
}

func (h *Handlers) SetView(w http.ResponseWriter, r *http.Request) {
	var req ViewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}
	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, "Неизвестная вкладка", http.StatusBadRequest)
		return
	}

	st, err := h.SessionService.SetView(req.Tab)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeSuccess(w, sessionResponse(st), http.StatusOK)
}
