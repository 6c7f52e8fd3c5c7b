package localstore

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/google/uuid"
)

// IdentityStore owns the device identity, the introduction flag and the liked set.
type IdentityStore struct {
	kv    KV
	newID func() string

	// guards the read-then-create of the device id
	mu sync.Mutex
}

func NewIdentityStore(kv KV) *IdentityStore {
	return &IdentityStore{
		kv:    kv,
		newID: func() string { return uuid.New().String() },
	}
}

// GetOrCreateDeviceID returns the installation's id, generating and persisting
// a random UUID on first use. An id that failed to persist is never returned.
func (s *IdentityStore) GetOrCreateDeviceID(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, ok, err := s.kv.Get(ctx, KeyDeviceID)
	if err != nil {
		return "", fmt.Errorf("ошибка чтения идентификатора устройства: %w", err)
	}
	if ok && id != "" {
		return id, nil
	}

	id = s.newID()
	if err := s.kv.Set(ctx, KeyDeviceID, id); err != nil {
		return "", fmt.Errorf("ошибка сохранения идентификатора устройства: %w", err)
	}

	slog.Info("[LocalStore] device id created", slog.String("device_id", id))
	return id, nil
}

// HasCompletedIntroduction defaults to false on any read problem so the
// introduction is shown again rather than skipped.
func (s *IdentityStore) HasCompletedIntroduction(ctx context.Context) bool {
	value, ok, err := s.kv.Get(ctx, KeyIntroShown)
	if err != nil {
		slog.Warn("[LocalStore] intro flag read failed", slog.Any("error", err))
		return false
	}
	return ok && value == "true"
}

func (s *IdentityStore) MarkIntroductionComplete(ctx context.Context) error {
	return s.kv.Set(ctx, KeyIntroShown, "true")
}

func (s *IdentityStore) LoadLikedSet(ctx context.Context) map[string]bool {
	liked := make(map[string]bool)

	raw, ok, err := s.kv.Get(ctx, KeyLikedPosts)
	if err != nil {
		slog.Warn("[LocalStore] liked set read failed", slog.Any("error", err))
		return liked
	}
	if !ok || raw == "" {
		return liked
	}

	var ids []string
	if err := json.Unmarshal([]byte(raw), &ids); err != nil {
		slog.Warn("[LocalStore] liked set is corrupt, starting empty", slog.Any("error", err))
		return liked
	}
	for _, id := range ids {
		liked[id] = true
	}
	return liked
}

func (s *IdentityStore) SaveLikedSet(ctx context.Context, liked map[string]bool) error {
	ids := make([]string, 0, len(liked))
	for id, ok := range liked {
		if ok {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)

	raw, err := json.Marshal(ids)
	if err != nil {
		return fmt.Errorf("ошибка сериализации лайков: %w", err)
	}
	return s.kv.Set(ctx, KeyLikedPosts, string(raw))
}
