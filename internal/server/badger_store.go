package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"heroes/internal/hero"

	"github.com/dgraph-io/badger/v4"
)

const keyPrefix = "hero/"

// BadgerStore persists heroes in a badger database, one key per hero.
// Keys are zero-padded ids so iteration order is id order.
type BadgerStore struct {
	db *badger.DB
	// mu serialises Create so id assignment cannot race.
	mu sync.Mutex
}

// Ensure BadgerStore implements Store.
var _ Store = (*BadgerStore)(nil)

// OpenBadgerStore opens (or creates) the database at path and seeds it when empty.
// An empty path opens an in-memory database.
func OpenBadgerStore(path string, seed []hero.Hero) (*BadgerStore, error) {
	opts := badger.DefaultOptions(path).WithLoggingLevel(badger.WARNING)
	if path == "" {
		opts = opts.WithInMemory(true)
	}
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger at %q: %w", path, err)
	}
	s := &BadgerStore{db: db}
	if err := s.seed(seed); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func heroKey(id int) []byte {
	return []byte(fmt.Sprintf("%s%010d", keyPrefix, id))
}

func (s *BadgerStore) seed(heroes []hero.Hero) error {
	existing, err := s.List(context.Background())
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}
	return s.db.Update(func(txn *badger.Txn) error {
		for _, h := range heroes {
			if err := putHero(txn, h); err != nil {
				return err
			}
		}
		return nil
	})
}

func putHero(txn *badger.Txn, h hero.Hero) error {
	data, err := json.Marshal(h)
	if err != nil {
		return fmt.Errorf("encode hero %d: %w", h.ID, err)
	}
	return txn.Set(heroKey(h.ID), data)
}

func getHero(txn *badger.Txn, id int) (hero.Hero, error) {
	item, err := txn.Get(heroKey(id))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return hero.Hero{}, fmt.Errorf("hero %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return hero.Hero{}, err
	}
	var h hero.Hero
	err = item.Value(func(val []byte) error {
		return json.Unmarshal(val, &h)
	})
	return h, err
}

// scan calls fn for every hero in id order.
func scan(txn *badger.Txn, fn func(hero.Hero)) error {
	it := txn.NewIterator(badger.DefaultIteratorOptions)
	defer it.Close()
	prefix := []byte(keyPrefix)
	for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
		var h hero.Hero
		if err := it.Item().Value(func(val []byte) error {
			return json.Unmarshal(val, &h)
		}); err != nil {
			return fmt.Errorf("decode %s: %w", it.Item().Key(), err)
		}
		fn(h)
	}
	return nil
}

// lastID returns the highest stored id, or firstID-1 when empty.
func lastID(txn *badger.Txn) (int, error) {
	opts := badger.DefaultIteratorOptions
	opts.PrefetchValues = false
	opts.Reverse = true
	it := txn.NewIterator(opts)
	defer it.Close()
	prefix := []byte(keyPrefix)
	// Reverse iteration seeks to the last key <= seek key.
	it.Seek(append([]byte(keyPrefix), 0xff))
	if !it.ValidForPrefix(prefix) {
		return firstID - 1, nil
	}
	id, err := strconv.Atoi(strings.TrimPrefix(string(it.Item().Key()), keyPrefix))
	if err != nil {
		return 0, fmt.Errorf("parse key %q: %w", it.Item().Key(), err)
	}
	return max(id, firstID-1), nil
}

func (s *BadgerStore) List(ctx context.Context) ([]hero.Hero, error) {
	heroes := []hero.Hero{}
	err := s.db.View(func(txn *badger.Txn) error {
		return scan(txn, func(h hero.Hero) { heroes = append(heroes, h) })
	})
	return heroes, err
}

func (s *BadgerStore) Get(ctx context.Context, id int) (hero.Hero, error) {
	var h hero.Hero
	err := s.db.View(func(txn *badger.Txn) error {
		var err error
		h, err = getHero(txn, id)
		return err
	})
	return h, err
}

func (s *BadgerStore) Search(ctx context.Context, name string) ([]hero.Hero, error) {
	heroes := []hero.Hero{}
	err := s.db.View(func(txn *badger.Txn) error {
		return scan(txn, func(h hero.Hero) {
			if nameMatches(h, name) {
				heroes = append(heroes, h)
			}
		})
	})
	return heroes, err
}

func (s *BadgerStore) Create(ctx context.Context, name string) (hero.Hero, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var h hero.Hero
	err := s.db.Update(func(txn *badger.Txn) error {
		id, err := lastID(txn)
		if err != nil {
			return err
		}
		h = hero.Hero{ID: id + 1, Name: name}
		return putHero(txn, h)
	})
	return h, err
}

func (s *BadgerStore) Update(ctx context.Context, h hero.Hero) error {
	return s.db.Update(func(txn *badger.Txn) error {
		if _, err := getHero(txn, h.ID); err != nil {
			return err
		}
		return putHero(txn, h)
	})
}

func (s *BadgerStore) Delete(ctx context.Context, id int) error {
	return s.db.Update(func(txn *badger.Txn) error {
		if _, err := getHero(txn, id); err != nil {
			return err
		}
		return txn.Delete(heroKey(id))
	})
}

// Close closes the database.
func (s *BadgerStore) Close() error {
	return s.db.Close()
}
