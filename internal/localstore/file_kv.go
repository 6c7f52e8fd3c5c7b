package localstore

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// FileKV keeps all slots in one JSON object on disk and rewrites the file on every change.
type FileKV struct {
	path string
	mu   sync.RWMutex
	data map[string]string
}

func NewFileKV(path string) (*FileKV, error) {
	kv := &FileKV{
		path: path,
		data: make(map[string]string),
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("ошибка создания каталога состояния: %w", err)
	}
	if err := kv.load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("ошибка чтения файла состояния: %w", err)
	}

	return kv, nil
}

var _ KV = (*FileKV)(nil)

func (s *FileKV) load() error {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return err
	}
	if len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, &s.data); err != nil {
		return err
	}
	if s.data == nil {
		s.data = make(map[string]string)
	}
	return nil
}

func (s *FileKV) save() error {
	raw, err := json.MarshalIndent(s.data, "", "  ")
	if err != nil {
		return err
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}

func (s *FileKV) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.data[key]
	return value, ok, nil
}

func (s *FileKV) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, had := s.data[key]
	s.data[key] = value
	if err := s.save(); err != nil {
		if had {
			s.data[key] = prev
		} else {
			delete(s.data, key)
		}
		return fmt.Errorf("ошибка записи %s: %w", key, err)
	}
	return nil
}

func (s *FileKV) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, had := s.data[key]
	if !had {
		return nil
	}
	delete(s.data, key)
	if err := s.save(); err != nil {
		s.data[key] = prev
		return fmt.Errorf("ошибка удаления %s: %w", key, err)
	}
	return nil
}
