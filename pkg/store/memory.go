package store

import (
	"cmp"
	"context"
	"slices"
	"sync"
	"time"

	"github.com/matzehuels/seatchart/pkg/chart"
)

// MemoryStore keeps charts in process memory.
type MemoryStore struct {
	mu     sync.RWMutex
	charts map[string][]byte
	now    func() time.Time
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{charts: make(map[string][]byte), now: func() time.Time { return time.Now().UTC() }}
}

func (s *MemoryStore) Save(ctx context.Context, doc *chart.Document) (string, error) {
	if err := prepare(doc, s.now()); err != nil {
		return "", err
	}
	data, err := chart.Marshal(doc)
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.charts[doc.ID] = data
	return doc.ID, nil
}

func (s *MemoryStore) Get(ctx context.Context, id string) (*chart.Document, error) {
	s.mu.RLock()
	data, ok := s.charts[id]
	s.mu.RUnlock()
	if !ok {
		return nil, NotFound(id)
	}
	return chart.Unmarshal(data)
}

func (s *MemoryStore) List(ctx context.Context, n int) ([]Summary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	summaries := make([]Summary, 0, len(s.charts))
	for _, data := range s.charts {
		doc, err := chart.Unmarshal(data)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, Summarize(doc))
	}
	sortNewestFirst(summaries)
	return limit(summaries, n), nil
}

func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.charts[id]; !ok {
		return NotFound(id)
	}
	delete(s.charts, id)
	return nil
}

func (s *MemoryStore) Close() error { return nil }

func sortNewestFirst(summaries []Summary) {
	slices.SortFunc(summaries, func(a, b Summary) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
}

var _ Store = (*MemoryStore)(nil)
