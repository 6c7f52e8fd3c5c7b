package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"

	"voiceunheard/cmd/app"
	"voiceunheard/internal/config"
	handlers "voiceunheard/internal/handler"
	"voiceunheard/internal/logging"
	"voiceunheard/internal/middleware"
)

func main() {
	// setting up config
	cfg := config.LoadConfig()
	logging.InitLogger(cfg.LogLevel)

	if cfg.JWTSecretKey == "" {
		slog.Error("JWT_SECRET_KEY не установлен в .env файле")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, repo, services, closeApp, err := app.App(ctx, cfg)
	if err != nil {
		slog.Error("Не удалось запустить приложение", slog.Any("error", err))
		os.Exit(1)
	}
	defer closeApp()

	if _, err := services.Device.Bootstrap(ctx); err != nil {
		slog.Error("Не удалось получить идентификатор устройства", slog.Any("error", err))
		os.Exit(1)
	}
	if err := services.Session.Start(ctx); err != nil {
		slog.Warn("Сессия не восстановлена", slog.Any("error", err))
	}

	handler := handlers.NewHandlers(repo, services, db, cfg)

	// setting up routes
	router := mux.NewRouter()

	admin := router.PathPrefix("/api/admin").Subrouter()
	admin.Use(mux.MiddlewareFunc(middleware.ModeratorOnly(services.Session)))
	handler.AdminRoutes(admin)

	handler.Routes(router)

	handlerChain := middleware.Chain(
		router,
		middleware.CORSMiddleware,
		middleware.LoggingMiddleware,
	)

	// Starting the server
	addr := fmt.Sprintf(":%d", cfg.ServerPort)
	server := &http.Server{
		Addr:              addr,
		Handler:           handlerChain,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		server.Shutdown(shutdownCtx)
	}()

	slog.Info("Сервер запущен",
		slog.String("addr", addr),
		slog.String("db", cfg.DB.DbNAME),
		slog.String("like_mode", cfg.LikeMode))

	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("Ошибка запуска сервера", slog.Any("error", err))
		os.Exit(1)
	}
}
