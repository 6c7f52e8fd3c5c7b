package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	handlers "voiceunheard/internal/handler"
)

type Middleware func(http.Handler) http.Handler

// ModeratorChecker reports the role resolved for the current session.
type ModeratorChecker interface {
	IsModerator(ctx context.Context) bool
}

// ModeratorOnly rejects requests unless the current session belongs to a moderator.
func ModeratorOnly(checker ModeratorChecker) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !checker.IsModerator(r.Context()) {
				handlers.WriteError(w, "Доступ запрещен. Требуется роль модератора", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func CORSMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		level := slog.LevelInfo
		if rec.status >= http.StatusInternalServerError {
			level = slog.LevelError
		}
		slog.Log(r.Context(), level, "[HTTP] request",
			slog.String("method", r.Method),
			slog.String("uri", r.RequestURI),
			slog.Int("status", rec.status),
			slog.Duration("duration", time.Since(start)))
	})
}

func Chain(h http.Handler, middlewares ...Middleware) http.Handler {
	for _, m := range middlewares {
		h = m(h)
	}
	return h
}
