// Package response persists stored form responses. Responses are
// append-only: a user re-submitting adds a new record, nothing is edited.
package response

import (
	"context"
	"sort"
	"sync"

	"oppform/internal/form/models"
	id "oppform/pkg/domain"
)

// InMemoryStore keeps responses in process memory. Doubles as the test fake.
type InMemoryStore struct {
	mu        sync.RWMutex
	responses map[id.ResponseID]*models.FormResponse
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{responses: make(map[id.ResponseID]*models.FormResponse)}
}

func (s *InMemoryStore) Insert(_ context.Context, r *models.FormResponse) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.responses[r.ID] = r.Clone()
	return nil
}

// ListByUser returns the user's responses for one listing, oldest first.
func (s *InMemoryStore) ListByUser(_ context.Context, oppID id.OpportunityID, userID id.UserID) ([]*models.FormResponse, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*models.FormResponse
	for _, r := range s.responses {
		if r.OpportunityID == oppID && r.UserID == userID {
			out = append(out, r.Clone())
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

// CountBySubject reports how many responses a listing's form has received.
func (s *InMemoryStore) CountBySubject(_ context.Context, oppID id.OpportunityID) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	count := 0
	for _, r := range s.responses {
		if r.OpportunityID == oppID {
			count++
		}
	}
	return count, nil
}
