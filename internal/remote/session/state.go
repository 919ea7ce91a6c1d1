// Package session tracks the authentication state shared by the remote store backends.
package session

import "sync"

// State holds whether an admin is signed in and fans out changes to subscribers.
type State struct {
	mu          sync.Mutex
	identity    string
	subscribers map[int]func(bool)
	nextID      int
}

// Identity returns the signed-in account, or "" when signed out
func (s *State) Identity() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.identity
}

// Authenticated reports whether someone is signed in
func (s *State) Authenticated() bool {
	return s.Identity() != ""
}

// Set records the signed-in account ("" signs out) and notifies subscribers
// when the authenticated state flips.
func (s *State) Set(identity string) {
	s.mu.Lock()
	was := s.identity != ""
	s.identity = identity
	now := identity != ""
	var fns []func(bool)
	if was != now {
		for _, fn := range s.subscribers {
			fns = append(fns, fn)
		}
	}
	s.mu.Unlock()

	// Callbacks run outside the lock so they may query the state
	for _, fn := range fns {
		fn(now)
	}
}

// Subscribe registers fn and returns a function that removes it
func (s *State) Subscribe(fn func(bool)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.subscribers == nil {
		s.subscribers = make(map[int]func(bool))
	}
	id := s.nextID
	s.nextID++
	s.subscribers[id] = fn
	return func() {
		s.mu.Lock()
		delete(s.subscribers, id)
		s.mu.Unlock()
	}
}
