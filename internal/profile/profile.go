// Package profile stores the user profile slice the form engine reads for
// autofill. Account management itself (registration, credentials) lives
// outside this module; this is the read-mostly projection it publishes.
package profile

import (
	"context"
	"sync"

	"oppform/internal/form/ports"
	id "oppform/pkg/domain"
	"oppform/pkg/platform/sentinel"
)

// Store is the profile persistence contract. Find returns
// sentinel.ErrNotFound for unknown users, satisfying ports.ProfileDirectory.
type Store interface {
	Upsert(ctx context.Context, p *ports.Profile) error
	Find(ctx context.Context, userID id.UserID) (*ports.Profile, error)
}

// InMemoryStore keeps profiles in process memory.
type InMemoryStore struct {
	mu       sync.RWMutex
	profiles map[id.UserID]*ports.Profile
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{profiles: make(map[id.UserID]*ports.Profile)}
}

func (s *InMemoryStore) Upsert(_ context.Context, p *ports.Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := clone(p)
	s.profiles[p.UserID] = cp
	return nil
}

func (s *InMemoryStore) Find(_ context.Context, userID id.UserID) (*ports.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.profiles[userID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return clone(p), nil
}

func clone(p *ports.Profile) *ports.Profile {
	cp := *p
	if p.Birthday != nil {
		b := *p.Birthday
		cp.Birthday = &b
	}
	if p.IsMale != nil {
		m := *p.IsMale
		cp.IsMale = &m
	}
	if p.CVFileID != nil {
		f := *p.CVFileID
		cp.CVFileID = &f
	}
	return &cp
}
