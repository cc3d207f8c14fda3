package localstore

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"trading-journal/pkg/apperror"

	"github.com/patrickmn/go-cache"
)

// Config holds the local store settings.
type Config struct {
	// Path of the snapshot file. Empty keeps the store in memory only.
	Path string
	// MaxBytes caps the total size of stored values. Zero means unlimited.
	MaxBytes int
}

// Store is a small durable key-value store: values live in a go-cache
// instance and every write rewrites a snapshot file.
type Store struct {
	mu    sync.Mutex
	cache *cache.Cache
	cfg   Config
}

// Open creates a Store, loading the snapshot file if it exists.
func Open(cfg Config) (*Store, error) {
	s := &Store{
		cache: cache.New(cache.NoExpiration, 0),
		cfg:   cfg,
	}
	if cfg.Path == "" {
		return s, nil
	}
	if err := os.MkdirAll(filepath.Dir(cfg.Path), 0o755); err != nil {
		return nil, fmt.Errorf("create store directory: %w", err)
	}
	if _, err := os.Stat(cfg.Path); err == nil {
		if err := s.cache.LoadFile(cfg.Path); err != nil {
			return nil, fmt.Errorf("load store snapshot: %w", err)
		}
	}
	return s, nil
}

// Get returns the value stored under key.
func (s *Store) Get(_ context.Context, key string) ([]byte, bool, error) {
	v, ok := s.cache.Get(key)
	if !ok {
		return nil, false, nil
	}
	str, ok := v.(string)
	if !ok {
		return nil, false, fmt.Errorf("unexpected value type %T for key %s", v, key)
	}
	return []byte(str), true, nil
}

// Set stores value under key and persists the snapshot.
func (s *Store) Set(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cfg.MaxBytes > 0 && s.sizeWith(key, len(value)) > s.cfg.MaxBytes {
		return apperror.ErrStorageQuotaExceeded
	}

	prev, hadPrev := s.cache.Get(key)
	s.cache.Set(key, string(value), cache.NoExpiration)
	if err := s.persist(); err != nil {
		if hadPrev {
			s.cache.Set(key, prev, cache.NoExpiration)
		} else {
			s.cache.Delete(key)
		}
		return err
	}
	return nil
}

// Delete removes key and persists the snapshot.
func (s *Store) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cache.Delete(key)
	return s.persist()
}

// Size returns the total number of bytes held in values.
func (s *Store) Size() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sizeWith("", 0)
}

func (s *Store) sizeWith(key string, newLen int) int {
	total := newLen
	for k, item := range s.cache.Items() {
		if k == key {
			continue
		}
		if str, ok := item.Object.(string); ok {
			total += len(str)
		}
	}
	return total
}

func (s *Store) persist() error {
	if s.cfg.Path == "" {
		return nil
	}
	tmp, err := os.CreateTemp(filepath.Dir(s.cfg.Path), ".localstore-*")
	if err != nil {
		return fmt.Errorf("create snapshot: %w", err)
	}
	if err := s.cache.Save(tmp); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), s.cfg.Path)
}
