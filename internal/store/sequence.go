package store

import "sync"

// Sequence hands out monotonically increasing identifiers. Uniqueness is a
// property of the counter, not of clock resolution, so two ids generated in
// the same instant can never collide.
type Sequence struct {
	mu   sync.Mutex
	last int64
}

// NewSequence returns a sequence whose next value is last+1.
func NewSequence(last int64) *Sequence {
	return &Sequence{last: last}
}

// Next returns the next identifier.
func (s *Sequence) Next() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.last++
	return s.last
}
