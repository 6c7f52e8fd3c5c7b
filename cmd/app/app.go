package app

import (
	"context"
	"fmt"
	"log/slog"

	"voiceunheard/internal/config"
	"voiceunheard/internal/database"
	"voiceunheard/internal/localstore"
	"voiceunheard/internal/repository"
	"voiceunheard/internal/service"
	"voiceunheard/internal/state"
	"voiceunheard/internal/storage"
)

const redisKeyPrefix = "voiceunheard:device:"

// App wires the remote store, the evidence bucket and the device-local
// state into the service layer. The returned closer releases all of them.
func App(ctx context.Context, cfg *config.Config) (*database.DB, *repository.Repository, *service.Service, func(), error) {
	// connection DB
	db, err := database.ConnectDB(cfg)
	if err != nil {
		return nil, nil, nil, nil, fmt.Errorf("не удалось подключиться к БД: %w", err)
	}

	// connection MinIO
	minioClient, err := storage.NewMinIOClient(ctx, cfg.MinIO)
	if err != nil {
		db.CloseDB()
		return nil, nil, nil, nil, fmt.Errorf("не удалось инициализировать MinIO: %w", err)
	}

	kv, closeKV, err := openLocalStore(cfg.Local)
	if err != nil {
		db.CloseDB()
		return nil, nil, nil, nil, fmt.Errorf("не удалось открыть локальное хранилище: %w", err)
	}

	// enabling dependencies
	repo := repository.NewRepository(db.DB)
	store := state.NewStore(state.Initial())
	services := service.NewService(repo, cfg, minioClient, kv, store)

	closer := func() {
		if err := closeKV(); err != nil {
			slog.Warn("[App] local store not closed", slog.Any("error", err))
		}
		if err := db.CloseDB(); err != nil {
			slog.Warn("[App] database not closed", slog.Any("error", err))
		}
	}

	return db, repo, services, closer, nil
}

func openLocalStore(cfg config.Local) (localstore.KV, func() error, error) {
	if cfg.Backend == "redis" {
		kv, err := localstore.NewRedisKV(cfg.RedisURL, redisKeyPrefix)
		if err != nil {
			return nil, nil, err
		}
		slog.Info("[App] device state in redis", slog.String("url", cfg.RedisURL))
		return kv, kv.Close, nil
	}

	kv, err := localstore.NewFileKV(cfg.StatePath)
	if err != nil {
		return nil, nil, err
	}
	slog.Info("[App] device state on disk", slog.String("path", cfg.StatePath))
	return kv, func() error { return nil }, nil
}
