package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"voiceunheard/internal/device"
	"voiceunheard/internal/service"
)

// ErrorResponse - стандартный ответ с ошибкой
type ErrorResponse struct {
	Error string `json:"error"`
}

// WriteError - универсальная функция для отправки ошибок
func WriteError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(ErrorResponse{Error: message})
}

// writeSuccess - функция для успешных ответов
func writeSuccess(w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

// writeServiceError maps a service error onto its HTTP status.
func writeServiceError(w http.ResponseWriter, err error) {
	status := StatusFor(err)
	if status >= http.StatusInternalServerError {
		slog.Error("[Handler] remote operation failed", slog.Any("error", err))
	}
	WriteError(w, err.Error(), status)
}

func StatusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrValidation), errors.Is(err, device.ErrBadImage):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrNotSignedIn):
		return http.StatusUnauthorized
	case errors.Is(err, service.ErrForbidden),
		errors.Is(err, service.ErrNotCommentOwner),
		errors.Is(err, service.ErrPermissionDenied):
		return http.StatusForbidden
	case errors.Is(err, service.ErrStoryNotLoaded), errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrDeviceIDMissing):
		return http.StatusPreconditionFailed
	case errors.Is(err, service.ErrUnknownAction), errors.Is(err, service.ErrContactMissing):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusBadGateway
	}
}
