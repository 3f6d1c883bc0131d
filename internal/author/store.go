// Package author holds the author record type and the ordered in-memory
// store that owns them.
package author

// Store is an ordered, mutable collection of authors.
//
// Store does no locking and no validation: callers serialise access and are
// responsible for id uniqueness.
type Store struct {
	authors []*Author
}

// NewStore creates a store holding the given authors in order.
func NewStore(seed []*Author) *Store {
	authors := make([]*Author, 0, len(seed))
	authors = append(authors, seed...)
	return &Store{authors: authors}
}

// List returns all authors in insertion order.
// The returned slice is a copy; the authors are not.
func (s *Store) List() []*Author {
	result := make([]*Author, len(s.authors))
	copy(result, s.authors)
	return result
}

// Len returns the number of authors.
func (s *Store) Len() int {
	return len(s.authors)
}

// At returns the author at position i, or nil if i is out of range.
func (s *Store) At(i int) *Author {
	if i < 0 || i >= len(s.authors) {
		return nil
	}
	return s.authors[i]
}

// FindByID returns the first author whose id equals id, along with its
// position. ok is false when no author matches.
func (s *Store) FindByID(id string) (a *Author, index int, ok bool) {
	for i, candidate := range s.authors {
		if candidate.ID == id {
			return candidate, i, true
		}
	}
	return nil, -1, false
}

// Append adds an author at the end and returns it.
func (s *Store) Append(a *Author) *Author {
	s.authors = append(s.authors, a)
	return a
}

// ReplaceAt overwrites the author at position i.
// Out of range positions are ignored.
func (s *Store) ReplaceAt(i int, a *Author) {
	if i < 0 || i >= len(s.authors) {
		return
	}
	s.authors[i] = a
}

// RemoveAt deletes the author at position i, shifting later authors down.
// Out of range positions are ignored.
func (s *Store) RemoveAt(i int) {
	if i < 0 || i >= len(s.authors) {
		return
	}
	copy(s.authors[i:], s.authors[i+1:])
	s.authors[len(s.authors)-1] = nil
	s.authors = s.authors[:len(s.authors)-1]
}
