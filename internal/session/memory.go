package session

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// MemoryStore keeps sessions in-process. Suitable for single-instance
// deployments and tests.
type MemoryStore struct {
	cache *gocache.Cache
	ttl   time.Duration
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		cache: gocache.New(ttl, 2*ttl),
		ttl:   ttl,
	}
}

func (s *MemoryStore) Create(_ context.Context, p Principal) (string, error) {
	token, err := newToken()
	if err != nil {
		return "", err
	}
	s.cache.Set(token, p, s.ttl)
	return token, nil
}

func (s *MemoryStore) Get(_ context.Context, token string) (*Principal, error) {
	v, found := s.cache.Get(token)
	if !found {
		return nil, ErrNoSession
	}
	p, ok := v.(Principal)
	if !ok {
		return nil, ErrNoSession
	}

	// Sliding expiry: activity keeps the session alive.
	s.cache.Set(token, p, s.ttl)
	return &p, nil
}

func (s *MemoryStore) Delete(_ context.Context, token string) error {
	s.cache.Delete(token)
	return nil
}
