package server

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"heroes/internal/hero"

	"github.com/samber/lo"
)

// MemoryStore keeps heroes in memory, ordered by id.
type MemoryStore struct {
	mu     sync.RWMutex
	heroes []hero.Hero
}

// Ensure MemoryStore implements Store.
var _ Store = (*MemoryStore)(nil)

// NewMemoryStore creates a store holding a copy of seed.
func NewMemoryStore(seed []hero.Hero) *MemoryStore {
	heroes := slices.Clone(seed)
	slices.SortFunc(heroes, func(a, b hero.Hero) int { return a.ID - b.ID })
	return &MemoryStore{heroes: heroes}
}

func (s *MemoryStore) List(ctx context.Context) ([]hero.Hero, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.heroes), nil
}

func (s *MemoryStore) Get(ctx context.Context, id int) (hero.Hero, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	h, ok := lo.Find(s.heroes, func(h hero.Hero) bool { return h.ID == id })
	if !ok {
		return hero.Hero{}, fmt.Errorf("hero %d: %w", id, ErrNotFound)
	}
	return h, nil
}

func (s *MemoryStore) Search(ctx context.Context, name string) ([]hero.Hero, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return lo.Filter(s.heroes, func(h hero.Hero, _ int) bool { return nameMatches(h, name) }), nil
}

func (s *MemoryStore) Create(ctx context.Context, name string) (hero.Hero, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	h := hero.Hero{ID: nextID(s.heroes), Name: name}
	s.heroes = append(s.heroes, h)
	return h, nil
}

func (s *MemoryStore) Update(ctx context.Context, h hero.Hero) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, idx, ok := lo.FindIndexOf(s.heroes, func(x hero.Hero) bool { return x.ID == h.ID })
	if !ok {
		return fmt.Errorf("hero %d: %w", h.ID, ErrNotFound)
	}
	s.heroes[idx] = h
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := slices.IndexFunc(s.heroes, func(x hero.Hero) bool { return x.ID == id })
	if idx < 0 {
		return fmt.Errorf("hero %d: %w", id, ErrNotFound)
	}
	s.heroes = slices.Delete(s.heroes, idx, idx+1)
	return nil
}

// Close is a no-op.
func (s *MemoryStore) Close() error { return nil }
