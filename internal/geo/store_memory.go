package geo

import (
	"context"
	"sort"
	"sync"

	id "oppform/pkg/domain"
	"oppform/pkg/platform/sentinel"
	"oppform/pkg/transstring"
)

// InMemoryStore keeps the country catalog in process memory. Used in tests
// and in deployments without PostgreSQL configured.
type InMemoryStore struct {
	mu        sync.RWMutex
	countries map[id.CountryID]*Country
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{countries: make(map[id.CountryID]*Country)}
}

func (s *InMemoryStore) Insert(_ context.Context, country *Country) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.countries[country.ID]; exists {
		return sentinel.ErrConflict
	}
	cp := *country
	s.countries[country.ID] = &cp
	return nil
}

func (s *InMemoryStore) FindByID(_ context.Context, countryID id.CountryID) (*Country, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	country, ok := s.countries[countryID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	cp := *country
	return &cp, nil
}

func (s *InMemoryStore) List(_ context.Context) ([]*Country, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*Country, 0, len(s.countries))
	for _, country := range s.countries {
		cp := *country
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Name.Resolve(transstring.LanguageEnglish) < out[j].Name.Resolve(transstring.LanguageEnglish)
	})
	return out, nil
}

func (s *InMemoryStore) Exists(_ context.Context, countryID id.CountryID) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.countries[countryID]
	return ok, nil
}
