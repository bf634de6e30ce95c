package store

import (
	"errors"
	"fmt"

	"github.com/hupe1980/prost/quantization"
)

// Dim is the row width of the code matrix.
const Dim = quantization.CodeLength

// ErrMisaligned is returned when identifier and code columns disagree.
var ErrMisaligned = errors.New("store: identifiers and codes are misaligned")

// Store is an index-aligned list of (identifier, fingerprint) pairs.
//
// A Store is not safe for concurrent mutation; once built it is read-only and
// may be shared by any number of searchers.
type Store struct {
	ids   []string
	codes []int8
}

// New returns an empty store with room for capacity entries.
func New(capacity int) *Store {
	return &Store{
		ids:   make([]string, 0, capacity),
		codes: make([]int8, 0, capacity*Dim),
	}
}

// FromColumns builds a store over existing columns without copying them.
// len(codes) must equal len(ids)*Dim.
func FromColumns(ids []string, codes []int8) (*Store, error) {
	if len(codes) != len(ids)*Dim {
		return nil, fmt.Errorf("%w: %d identifiers, %d code values", ErrMisaligned, len(ids), len(codes))
	}
	return &Store{ids: ids, codes: codes}, nil
}

// Append adds an entry at the end of the store.
func (s *Store) Append(id string, fp quantization.Fingerprint) {
	s.ids = append(s.ids, id)
	s.codes = append(s.codes, fp[:]...)
}

// Len returns the number of entries.
func (s *Store) Len() int {
	if s == nil {
		return 0
	}
	return len(s.ids)
}

// ID returns the identifier at index i.
func (s *Store) ID(i int) string { return s.ids[i] }

// IDs returns the identifier column. The slice must not be modified.
func (s *Store) IDs() []string { return s.ids }

// Code returns the code row at index i, sharing the store's memory.
func (s *Store) Code(i int) []int8 {
	off := i * Dim
	return s.codes[off : off+Dim : off+Dim]
}

// Codes returns the flat code matrix. The slice must not be modified.
func (s *Store) Codes() []int8 { return s.codes }

// Fingerprint returns a copy of the fingerprint at index i.
func (s *Store) Fingerprint(i int) quantization.Fingerprint {
	return quantization.FromSlice(s.Code(i))
}

// Merge concatenates stores in argument order.
//
// No de-duplication happens: an identifier present in two inputs appears
// twice in the result. Nil stores are skipped.
func Merge(stores ...*Store) *Store {
	total := 0
	for _, s := range stores {
		total += s.Len()
	}

	out := New(total)
	for _, s := range stores {
		if s == nil {
			continue
		}
		out.ids = append(out.ids, s.ids...)
		out.codes = append(out.codes, s.codes...)
	}
	return out
}

// Split cuts the store into consecutive parts of at most size entries.
// A non-positive size returns the store itself as the only part.
func (s *Store) Split(size int) []*Store {
	if size <= 0 || s.Len() <= size {
		return []*Store{s}
	}

	parts := make([]*Store, 0, (s.Len()+size-1)/size)
	for start := 0; start < s.Len(); start += size {
		end := min(start+size, s.Len())
		parts = append(parts, &Store{
			ids:   s.ids[start:end:end],
			codes: s.codes[start*Dim : end*Dim : end*Dim],
		})
	}
	return parts
}
