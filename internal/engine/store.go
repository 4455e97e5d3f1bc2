package engine

import "github.com/piwi3910/PillBoard/internal/model"

// IDGenerator hands out monotonically increasing pill ids.
type IDGenerator struct {
	next model.PillID
}

// NewIDGenerator returns a generator whose first id is seed. Seeds below 1
// start at 1 so that model.NoPill is never issued.
func NewIDGenerator(seed model.PillID) *IDGenerator {
	if seed < 1 {
		seed = 1
	}
	return &IDGenerator{next: seed}
}

// Next returns a fresh id.
func (g *IDGenerator) Next() model.PillID {
	id := g.next
	g.next++
	return id
}

// Store is the ordered pill sequence. Later pills paint on top.
// All mutation goes through Update so every reader sees a complete sequence.
type Store struct {
	pills []model.Pill
	ids   *IDGenerator
}

// NewStore creates an empty store that draws ids from ids.
func NewStore(ids *IDGenerator) *Store {
	if ids == nil {
		ids = NewIDGenerator(1)
	}
	return &Store{ids: ids}
}

// Pills returns a copy of the current sequence.
func (s *Store) Pills() []model.Pill {
	return copyPills(s.pills)
}

// Len returns the number of pills.
func (s *Store) Len() int {
	return len(s.pills)
}

// Find returns the pill with the given id.
func (s *Store) Find(id model.PillID) (model.Pill, bool) {
	for _, p := range s.pills {
		if p.ID == id {
			return p, true
		}
	}
	return model.Pill{}, false
}

// IDs exposes the store's id generator so transforms can mint new pills.
func (s *Store) IDs() *IDGenerator {
	return s.ids
}

// Update replaces the sequence with fn(current). fn receives a copy and may
// return it modified or a brand new slice.
func (s *Store) Update(fn func([]model.Pill) []model.Pill) {
	s.pills = copyPills(fn(copyPills(s.pills)))
}

// Append adds a pill at the top of the paint order.
func (s *Store) Append(p model.Pill) {
	s.Update(func(pills []model.Pill) []model.Pill {
		return append(pills, p)
	})
}

// Reset empties the store. The id generator keeps counting.
func (s *Store) Reset() {
	s.Update(func([]model.Pill) []model.Pill { return nil })
}

func copyPills(pills []model.Pill) []model.Pill {
	if pills == nil {
		return nil
	}
	cp := make([]model.Pill, len(pills))
	copy(cp, pills)
	return cp
}
