package qbank

import (
	"context"
	"sync"
	"time"
)

// SubjectStore persists subject documents. Save is conditional on the
// version the document carried when loaded; a concurrent writer makes the
// save fail with ErrVersionConflict instead of silently winning.
type SubjectStore interface {
	Get(ctx context.Context, name string) (*Subject, error)
	GetByID(ctx context.Context, id string) (*Subject, error)
	GetByTopicID(ctx context.Context, topicID string) (*Subject, error)
	List(ctx context.Context) ([]SubjectSummary, error)
	Create(ctx context.Context, s *Subject) error
	Save(ctx context.Context, s *Subject) error
	Delete(ctx context.Context, name string) error
	DeleteByID(ctx context.Context, id string) error
}

// MemoryStore is an in-memory SubjectStore used in tests and local
// development. It enforces the same versioning contract as the production
// store and hands out deep clones so callers never alias stored state.
type MemoryStore struct {
	subjects map[string]*Subject // keyed by subject name
	mu       sync.RWMutex
}

// NewMemoryStore creates an empty in-memory subject store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{subjects: make(map[string]*Subject)}
}

func (s *MemoryStore) Get(_ context.Context, name string) (*Subject, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	subject, ok := s.subjects[name]
	if !ok {
		return nil, ErrSubjectNotFound
	}
	return subject.Clone(), nil
}

func (s *MemoryStore) GetByID(_ context.Context, id string) (*Subject, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, subject := range s.subjects {
		if subject.ID == id {
			return subject.Clone(), nil
		}
	}
	return nil, ErrSubjectNotFound
}

func (s *MemoryStore) GetByTopicID(_ context.Context, topicID string) (*Subject, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, subject := range s.subjects {
		for _, topic := range subject.Topics {
			if topic.ID == topicID {
				return subject.Clone(), nil
			}
		}
	}
	return nil, ErrTopicNotFound
}

func (s *MemoryStore) List(_ context.Context) ([]SubjectSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]SubjectSummary, 0, len(s.subjects))
	for _, subject := range s.subjects {
		out = append(out, summarize(subject))
	}
	return out, nil
}

func (s *MemoryStore) Create(_ context.Context, subject *Subject) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.subjects[subject.Name]; ok {
		return ErrSubjectExists
	}
	if subject.ID == "" {
		subject.ID = NewID()
	}
	now := time.Now()
	if subject.CreatedAt.IsZero() {
		subject.CreatedAt = now
	}
	if subject.UpdatedAt.IsZero() {
		subject.UpdatedAt = now
	}
	subject.Version = 1
	s.subjects[subject.Name] = subject.Clone()
	return nil
}

func (s *MemoryStore) Save(_ context.Context, subject *Subject) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.subjects[subject.Name]
	if !ok {
		return ErrSubjectNotFound
	}
	if stored.Version != subject.Version {
		return ErrVersionConflict
	}
	subject.Version++
	s.subjects[subject.Name] = subject.Clone()
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.subjects[name]; !ok {
		return ErrSubjectNotFound
	}
	delete(s.subjects, name)
	return nil
}

func (s *MemoryStore) DeleteByID(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for name, subject := range s.subjects {
		if subject.ID == id {
			delete(s.subjects, name)
			return nil
		}
	}
	return ErrSubjectNotFound
}

func summarize(s *Subject) SubjectSummary {
	summary := SubjectSummary{ID: s.ID, Name: s.Name, Topics: make([]TopicSummary, len(s.Topics))}
	for i, t := range s.Topics {
		ts := TopicSummary{ID: t.ID, Name: t.Name, Units: make([]UnitSummary, len(t.Units))}
		for j, u := range t.Units {
			ts.Units[j] = UnitSummary{Name: u.Name}
		}
		summary.Topics[i] = ts
	}
	return summary
}
