// Package schema persists OpportunityForm aggregates keyed by the listing
// they belong to.
package schema

import (
	"context"
	"sync"

	"oppform/internal/form/models"
	id "oppform/pkg/domain"
	"oppform/pkg/platform/sentinel"
)

// InMemoryStore keeps forms in process memory. Doubles as the test fake.
type InMemoryStore struct {
	mu    sync.RWMutex
	forms map[id.OpportunityID]*models.OpportunityForm
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{forms: make(map[id.OpportunityID]*models.OpportunityForm)}
}

// Create stores a new form. Fails with ErrConflict when the listing already
// has one: a listing owns at most one form, updates go through Save.
func (s *InMemoryStore) Create(_ context.Context, form *models.OpportunityForm) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.forms[form.OpportunityID]; exists {
		return sentinel.ErrConflict
	}
	s.forms[form.OpportunityID] = form.Clone()
	return nil
}

func (s *InMemoryStore) FindBySubject(_ context.Context, oppID id.OpportunityID) (*models.OpportunityForm, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	form, ok := s.forms[oppID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return form.Clone(), nil
}

// Save replaces a stored form wholesale. Last writer wins; the version
// counter is not a write fence.
func (s *InMemoryStore) Save(_ context.Context, form *models.OpportunityForm) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.forms[form.OpportunityID]; !exists {
		return sentinel.ErrNotFound
	}
	s.forms[form.OpportunityID] = form.Clone()
	return nil
}

func (s *InMemoryStore) Delete(_ context.Context, oppID id.OpportunityID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.forms[oppID]; !exists {
		return sentinel.ErrNotFound
	}
	delete(s.forms, oppID)
	return nil
}
