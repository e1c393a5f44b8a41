package tokenstore

import (
	"context"
	"sync"

	"github.com/jrsteele09/skillshare-client/session"
)

var _ session.TokenRepo = (*MemoryStore)(nil)

// MemoryStore keeps the token in process memory only.
type MemoryStore struct {
	items map[string]string
	key   string
	lock  sync.RWMutex
}

func NewMemory(cfg Config) *MemoryStore {
	return &MemoryStore{
		items: make(map[string]string),
		key:   storageKey(cfg.Namespace),
	}
}

func (s *MemoryStore) Get(_ context.Context) (string, bool, error) {
	s.lock.RLock()
	defer s.lock.RUnlock()
	token, ok := s.items[s.key]
	return token, ok, nil
}

func (s *MemoryStore) Set(_ context.Context, token string) error {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.items[s.key] = token
	return nil
}

func (s *MemoryStore) Delete(_ context.Context) error {
	s.lock.Lock()
	defer s.lock.Unlock()
	delete(s.items, s.key)
	return nil
}

func (s *MemoryStore) Close(_ context.Context) error {
	return nil
}
