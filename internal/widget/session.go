package widget

import "sync"

// Session guards hydration against stale writes: each navigation begins a
// new epoch, and fragments produced under an older epoch are dropped
// instead of being written into a container the user already navigated
// away from.
type Session struct {
	mu    sync.Mutex
	epoch int64
}

// Begin starts a new navigation epoch, invalidating all in-flight
// hydrations, and returns the token for the new one.
func (s *Session) Begin() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.epoch++
	return s.epoch
}

// Valid reports whether token still identifies the active epoch.
func (s *Session) Valid(token int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.epoch == token
}
