// Package session tracks whether the client is authenticated and lets other
// components observe the transitions. The gateway flips it to logged out when
// a credential refresh fails; the REPL and services read and watch it.
package session

import (
	"sync"
)

type Status string

const (
	StatusLoggedOut Status = "logged_out"
	StatusLoggedIn  Status = "logged_in"
)

// Event is delivered to subscribers on every status change.
type Event struct {
	Status Status
	// Reason is set when the transition to logged out was forced by an error.
	Reason error
}

// State is the application-wide authentication state. The zero value is not
// usable; use New.
type State struct {
	mu     sync.RWMutex
	status Status
	subs   map[int]chan Event
	nextID int
}

func New(initial Status) *State {
	if initial == "" {
		initial = StatusLoggedOut
	}
	return &State{status: initial, subs: make(map[int]chan Event)}
}

func (s *State) Status() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status
}

func (s *State) LoggedIn() bool {
	return s.Status() == StatusLoggedIn
}

func (s *State) MarkLoggedIn() {
	s.transition(Event{Status: StatusLoggedIn})
}

// MarkLoggedOut records a logout; reason is nil for a user-initiated one.
func (s *State) MarkLoggedOut(reason error) {
	s.transition(Event{Status: StatusLoggedOut, Reason: reason})
}

// Subscribe returns a channel of future transitions and a cancel func that
// closes it. Slow subscribers miss events rather than block the sender.
func (s *State) Subscribe() (<-chan Event, func()) {
	ch := make(chan Event, 4)

	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = ch
	s.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.subs, id)
			s.mu.Unlock()
			close(ch)
		})
	}
	return ch, cancel
}

func (s *State) transition(ev Event) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.status == ev.Status {
		return
	}
	s.status = ev.Status

	for _, ch := range s.subs {
		select {
		case ch <- ev:
		default:
		}
	}
}
