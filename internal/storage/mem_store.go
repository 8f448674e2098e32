package storage

import (
	"context"
	"sort"
	"sync"
	"time"

	"cosmos-newsdesk/internal/model"
)

// MemStore is an in-memory Store for tests and throwaway runs. Safe for
// concurrent use.
type MemStore struct {
	mu        sync.Mutex
	nextID    int64
	items     map[int64]model.NewsItem
	headlines []string
	expiresAt time.Time
}

func NewMemStore() *MemStore {
	return &MemStore{items: make(map[int64]model.NewsItem)}
}

func (s *MemStore) CreateNews(_ context.Context, item model.NewsItem) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	item.ID = s.nextID
	s.items[item.ID] = item
	return item.ID, nil
}

func (s *MemStore) GetNews(_ context.Context, id int64) (model.NewsItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	it, ok := s.items[id]
	if !ok {
		return model.NewsItem{}, ErrNotFound
	}
	return it, nil
}

func (s *MemStore) ListNews(_ context.Context, limit int) ([]model.NewsItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.NewsItem, 0, len(s.items))
	for _, it := range s.items {
		out = append(out, it)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *MemStore) DeleteNews(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[id]; !ok {
		return ErrNotFound
	}
	delete(s.items, id)
	return nil
}

func (s *MemStore) SetTrustedHeadlines(_ context.Context, headlines []string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.headlines = append([]string(nil), headlines...)
	s.expiresAt = time.Now().Add(ttl)
	return nil
}

func (s *MemStore) TrustedHeadlines(_ context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if time.Now().After(s.expiresAt) {
		return nil, nil
	}
	return append([]string(nil), s.headlines...), nil
}

func (s *MemStore) Close() error { return nil }
