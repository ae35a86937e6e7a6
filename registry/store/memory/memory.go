// Package memory backs the registry store with a plain in-process map.
// No eviction beyond TTL expiry; meant for tests, tools and small
// single-process deployments that don't want a cache dependency.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/unkn0wn-root/bitpack/registry/store"
)

type entry struct {
	value   []byte
	expires time.Time // zero means no expiry
}

type Store struct {
	mu sync.RWMutex
	m  map[string]entry
}

var _ store.Store = (*Store)(nil)

func New() *Store {
	return &Store{m: make(map[string]entry)}
}

func (s *Store) Get(_ context.Context, key string) ([]byte, bool, error) {
	s.mu.RLock()
	e, ok := s.m[key]
	s.mu.RUnlock()
	if !ok {
		return nil, false, nil
	}
	if !e.expires.IsZero() && time.Now().After(e.expires) {
		s.mu.Lock()
		// re-check under the write lock; a Set may have raced in
		if cur, ok := s.m[key]; ok && cur.expires.Equal(e.expires) {
			delete(s.m, key)
		}
		s.mu.Unlock()
		return nil, false, nil
	}
	return e.value, true, nil
}

func (s *Store) Set(_ context.Context, key string, value []byte, ttl time.Duration) (bool, error) {
	e := entry{value: append([]byte(nil), value...)}
	if ttl > 0 {
		e.expires = time.Now().Add(ttl)
	}
	s.mu.Lock()
	s.m[key] = e
	s.mu.Unlock()
	return true, nil
}

func (s *Store) Del(_ context.Context, key string) error {
	s.mu.Lock()
	delete(s.m, key)
	s.mu.Unlock()
	return nil
}

func (s *Store) Close(context.Context) error {
	s.mu.Lock()
	s.m = make(map[string]entry)
	s.mu.Unlock()
	return nil
}
