package storage

import (
	"context"
	"sync"

	id "oppform/pkg/domain"
	"oppform/pkg/platform/sentinel"
)

// InMemoryStore keeps file metadata in process memory.
type InMemoryStore struct {
	mu    sync.RWMutex
	files map[id.FileID]*FileMeta
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{files: make(map[id.FileID]*FileMeta)}
}

func (s *InMemoryStore) Insert(_ context.Context, meta *FileMeta) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.files[meta.ID]; exists {
		return sentinel.ErrConflict
	}
	cp := *meta
	s.files[meta.ID] = &cp
	return nil
}

func (s *InMemoryStore) FindByID(_ context.Context, fileID id.FileID) (*FileMeta, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	meta, ok := s.files[fileID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	cp := *meta
	return &cp, nil
}
