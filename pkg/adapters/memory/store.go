package memory

import (
	"context"
	"sync"

	"github.com/ratchetworks/ratchet/pkg/domain"
	"github.com/ratchetworks/ratchet/pkg/ports"
)

// SubjectStore implements ports.SubjectStore in memory.
// Safe for concurrent use.
type SubjectStore struct {
	mu       sync.RWMutex
	subjects map[string]ports.Subject
}

// NewSubjectStore creates an empty in-memory subject store.
func NewSubjectStore() *SubjectStore {
	return &SubjectStore{
		subjects: make(map[string]ports.Subject),
	}
}

// Put registers a subject under the given id, replacing any previous one.
func (s *SubjectStore) Put(id string, subject ports.Subject) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subjects[id] = subject
}

// Get retrieves a subject by id.
func (s *SubjectStore) Get(ctx context.Context, id string) (ports.Subject, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	subject, ok := s.subjects[id]
	if !ok {
		return nil, domain.ErrSubjectNotFound
	}
	return subject, nil
}

// Delete removes a subject.
func (s *SubjectStore) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.subjects, id)
}
