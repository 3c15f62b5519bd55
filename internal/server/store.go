// Package server implements the mock heroes REST API the client talks to.
package server

import (
	"context"
	"errors"
	"strings"

	"heroes/internal/hero"
)

// ErrNotFound is returned by stores for unknown ids.
var ErrNotFound = errors.New("hero not found")

// Store persists heroes. Implementations assign ids on Create as max(id)+1, starting at 11.
type Store interface {
	List(ctx context.Context) ([]hero.Hero, error)
	Get(ctx context.Context, id int) (hero.Hero, error)
	// Search returns heroes whose name contains name, ignoring case.
	Search(ctx context.Context, name string) ([]hero.Hero, error)
	Create(ctx context.Context, name string) (hero.Hero, error)
	Update(ctx context.Context, h hero.Hero) error
	Delete(ctx context.Context, id int) error
	Close() error
}

// firstID is the id given to the first hero of an empty store.
const firstID = 11

// DefaultHeroes seeds a fresh store.
func DefaultHeroes() []hero.Hero {
	return []hero.Hero{
		{ID: 11, Name: "Mr. Nice"},
		{ID: 12, Name: "Narco"},
		{ID: 13, Name: "Bombasto"},
		{ID: 14, Name: "Celeritas"},
		{ID: 15, Name: "Magneta"},
		{ID: 16, Name: "RubberMan"},
		{ID: 17, Name: "Dynama"},
		{ID: 18, Name: "Dr IQ"},
		{ID: 19, Name: "Magma"},
		{ID: 20, Name: "Tornado"},
	}
}

func nameMatches(h hero.Hero, name string) bool {
	return strings.Contains(strings.ToLower(h.Name), strings.ToLower(name))
}

func nextID(heroes []hero.Hero) int {
	id := firstID - 1
	for _, h := range heroes {
		id = max(id, h.ID)
	}
	return id + 1
}
