// Package sparse provides a sparse set of small integers with O(1) insert,
// membership testing, and clear. It is used by automaton/nfa to track
// worklists of state IDs during epsilon-closure and subset construction,
// where the universe of possible IDs (the NFA's state count) is known
// ahead of time and re-used across many closure computations.
package sparse

// Set holds a collection of uint32 values drawn from [0, capacity). It
// maintains a sparse array (index -> position in dense, for O(1)
// membership) alongside a dense array (for O(1) iteration), the classic
// Briggs & Torczon sparse set.
type Set struct {
	sparse []uint32
	dense  []uint32
}

// New creates an empty Set over the universe [0, capacity).
func New(capacity uint32) *Set {
	return &Set{
		sparse: make([]uint32, capacity),
		dense:  make([]uint32, 0, capacity),
	}
}

// Insert adds v to the set. A duplicate insert is a no-op. Insert panics if
// v is outside the set's declared capacity, the same contract the teacher's
// sparse set uses for its byte-class worklists.
func (s *Set) Insert(v uint32) {
	if s.Contains(v) {
		return
	}
	s.sparse[v] = uint32(len(s.dense))
	s.dense = append(s.dense, v)
}

// Contains reports whether v is currently in the set.
func (s *Set) Contains(v uint32) bool {
	if int(v) >= len(s.sparse) {
		return false
	}
	idx := s.sparse[v]
	return int(idx) < len(s.dense) && s.dense[idx] == v
}

// Clear empties the set in O(1) time without reallocating.
func (s *Set) Clear() {
	s.dense = s.dense[:0]
}

// Len returns the number of elements currently in the set.
func (s *Set) Len() int {
	return len(s.dense)
}

// IsEmpty reports whether the set has no elements.
func (s *Set) IsEmpty() bool {
	return len(s.dense) == 0
}

// Values returns the set's elements in insertion order. The returned slice
// aliases the set's internal storage and is only valid until the next
// mutation.
func (s *Set) Values() []uint32 {
	return s.dense
}

// Each calls f once for every element currently in the set, in insertion
// order. f must not mutate the set.
func (s *Set) Each(f func(uint32)) {
	for _, v := range s.dense {
		f(v)
	}
}
