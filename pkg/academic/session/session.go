package session

import (
	"sync"

	mapset "github.com/deckarep/golang-set/v2"

	"github.com/athapong/academicworld-mcp/pkg/academic/metrics"
)

// DefaultID is used when a caller supplies no session identifier
const DefaultID = "default"

// Selection is the faculty member a session last looked up
type Selection struct {
	FacultyID   interface{}
	FacultyName string
}

type state struct {
	selection *Selection
	tokens    mapset.Set[string]
}

// Store keeps per-session dashboard state keyed by session identifier
type Store struct {
	mu       sync.Mutex
	sessions map[string]*state
}

// New creates an empty store
func New() *Store {
	return &Store{sessions: make(map[string]*state)}
}

func normalizeID(id string) string {
	if id == "" {
		return DefaultID
	}
	return id
}

// lookup returns the session's state without creating it
func (s *Store) lookup(id string) (*state, bool) {
	st, ok := s.sessions[normalizeID(id)]
	return st, ok
}

// get returns the session's state, creating it on first write
func (s *Store) get(id string) *state {
	id = normalizeID(id)
	st, ok := s.sessions[id]
	if !ok {
		st = &state{tokens: mapset.NewThreadUnsafeSet[string]()}
		s.sessions[id] = st
	}
	return st
}

// Select replaces the session's faculty selection
func (s *Store) Select(id string, sel Selection) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.get(id)
	if st.selection == nil {
		metrics.SelectedSessions.Inc()
	}
	st.selection = &sel
}

// Selected returns the session's faculty selection, if any
func (s *Store) Selected(id string) (Selection, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.lookup(id)
	if !ok || st.selection == nil {
		return Selection{}, false
	}
	return *st.selection, true
}

// ClaimToken records a submission token and reports whether it was new to the session
func (s *Store) ClaimToken(id, token string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.get(id).tokens.Add(token)
}

// ReleaseToken forgets a token so a failed submission can be retried
func (s *Store) ReleaseToken(id, token string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if st, ok := s.lookup(id); ok {
		st.tokens.Remove(token)
	}
}

// Len reports how many sessions hold state
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.sessions)
}

// Forget drops all state of a session
func (s *Store) Forget(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id = normalizeID(id)
	if st, ok := s.sessions[id]; ok {
		if st.selection != nil {
			metrics.SelectedSessions.Dec()
		}
		delete(s.sessions, id)
	}
}
