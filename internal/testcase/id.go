package testcase

import "fmt"

// IDSet tracks identifiers assigned so far in one validation pass. The set
// grows monotonically during the pass; callers serialize writes to one
// collection.
type IDSet map[string]struct{}

// NewIDSet seeds a set from already-existing cases (e.g. when an edge-case
// batch extends an LLM batch).
func NewIDSet(ids ...string) IDSet {
	s := make(IDSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

// Has reports whether id is taken.
func (s IDSet) Has(id string) bool {
	_, ok := s[id]
	return ok
}

// Add marks id as taken.
func (s IDSet) Add(id string) { s[id] = struct{}{} }

// EnsureUniqueID returns candidate unchanged if free, otherwise the first
// free "candidate-n" with n ascending from 1. Deterministic for a given
// candidate and set; does not mutate the set.
func EnsureUniqueID(candidate string, taken IDSet) string {
	if !taken.Has(candidate) {
		return candidate
	}
	for n := 1; ; n++ {
		id := fmt.Sprintf("%s-%d", candidate, n)
		if !taken.Has(id) {
			return id
		}
	}
}
