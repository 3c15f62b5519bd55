package hero

import "github.com/samber/lo"

// Roster is the ordered list of heroes a view displays, keyed by ID.
// It is owned by a single view and is not safe for concurrent use.
type Roster struct {
	heroes []Hero
}

// NewRoster creates a roster from heroes. Later duplicates of an ID replace earlier ones.
func NewRoster(heroes []Hero) *Roster {
	r := &Roster{}
	for _, h := range heroes {
		r.Append(h)
	}
	return r
}

// Append adds h at the end. If h.ID is already present the existing entry is replaced in place.
func (r *Roster) Append(h Hero) {
	if r.Replace(h) {
		return
	}
	r.heroes = append(r.heroes, h)
}

// Replace swaps the entry with h.ID for h. Returns false if no entry has that ID.
func (r *Roster) Replace(h Hero) bool {
	_, idx, ok := lo.FindIndexOf(r.heroes, func(x Hero) bool { return x.ID == h.ID })
	if !ok {
		return false
	}
	r.heroes[idx] = h
	return true
}

// Remove drops the entry with id. Returns false if it was not present.
func (r *Roster) Remove(id int) bool {
	before := len(r.heroes)
	r.heroes = lo.Reject(r.heroes, func(x Hero, _ int) bool { return x.ID == id })
	return len(r.heroes) != before
}

// Get returns the hero with id.
func (r *Roster) Get(id int) (Hero, bool) {
	return lo.Find(r.heroes, func(x Hero) bool { return x.ID == id })
}

// Contains reports whether a hero with id is present.
func (r *Roster) Contains(id int) bool {
	_, ok := r.Get(id)
	return ok
}

// Len returns the number of heroes.
func (r *Roster) Len() int {
	return len(r.heroes)
}

// Heroes returns a copy of the heroes in display order.
func (r *Roster) Heroes() []Hero {
	out := make([]Hero, len(r.heroes))
	copy(out, r.heroes)
	return out
}

// Top returns the dashboard selection: the 2nd through 5th heroes.
func (r *Roster) Top() []Hero {
	if len(r.heroes) <= 1 {
		return nil
	}
	end := min(len(r.heroes), 5)
	out := make([]Hero, end-1)
	copy(out, r.heroes[1:end])
	return out
}
