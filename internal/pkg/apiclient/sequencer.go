package apiclient

import "sync"

// Sequencer drops responses that arrive after a newer request was issued.
type Sequencer struct {
	mu     sync.Mutex
	latest uint64
}

// Ticket identifies one issued request.
type Ticket uint64

// Next issues a ticket newer than every previous one.
func (s *Sequencer) Next() Ticket {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.latest++
	return Ticket(s.latest)
}

// IsLatest reports whether t is still the newest ticket.
func (s *Sequencer) IsLatest(t Ticket) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return uint64(t) == s.latest
}

// Apply runs fn only while t is the newest ticket and reports whether it ran.
func (s *Sequencer) Apply(t Ticket, fn func()) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if uint64(t) != s.latest {
		return false
	}
	fn()
	return true
}
