package versions

import (
	"context"
	"sync"
)

// Local keeps version counters in-process (default). The zero value via
// NewLocal is ready to use.
type Local struct {
	mu   sync.RWMutex
	vers map[string]uint64
}

var _ Counter = (*Local)(nil)

func NewLocal() *Local {
	return &Local{vers: make(map[string]uint64)}
}

func (s *Local) Current(_ context.Context, name string) (uint64, error) {
	s.mu.RLock()
	v := s.vers[name] // zero value (0) if missing
	s.mu.RUnlock()
	return v, nil
}

func (s *Local) Bump(_ context.Context, name string) (uint64, error) {
	s.mu.Lock()
	s.vers[name]++
	v := s.vers[name]
	s.mu.Unlock()
	return v, nil
}

func (s *Local) Close(context.Context) error { return nil }
