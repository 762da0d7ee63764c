package refresh

import (
	"sync"
	"sync/atomic"
)

// sequence numbers a target's requests so that a response older than the
// latest issued request is dropped instead of overwriting newer content.
type sequence struct {
	latest atomic.Uint64
	mu     sync.Mutex
}

// begin issues the number for a new request.
func (s *sequence) begin() uint64 {
	return s.latest.Add(1)
}

// apply runs render unless a newer request has been issued since n. It
// reports whether render ran.
func (s *sequence) apply(n uint64, render func()) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if n < s.latest.Load() {
		return false
	}
	render()
	return true
}
