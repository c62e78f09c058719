package services

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// SessionState is a step of the processing lifecycle. Transitions are
// strictly sequential; DOWNLOADED and FAILED are terminal.
type SessionState string

const (
	StateUploaded   SessionState = "UPLOADED"
	StateParsed     SessionState = "PARSED"
	StateMatched    SessionState = "MATCHED"
	StateCosted     SessionState = "COSTED"
	StateFinalized  SessionState = "FINALIZED"
	StateDownloaded SessionState = "DOWNLOADED"
	StateFailed     SessionState = "FAILED"
)

// successor maps each state to the only state it may advance to.
var successor = map[SessionState]SessionState{
	StateUploaded:  StateParsed,
	StateParsed:    StateMatched,
	StateMatched:   StateCosted,
	StateCosted:    StateFinalized,
	StateFinalized: StateDownloaded,
}

// Session owns one uploaded workbook for the duration of its processing.
// All state access goes through the mutex so two callers can never advance
// the same session concurrently.
type Session struct {
	mu sync.Mutex

	ID        string
	Filename  string
	CreatedAt time.Time

	state    SessionState
	workbook []byte // uploaded source, read-only after creation
	output   []byte // finalized workbook bytes

	Results []SheetResult
}

func NewSession(filename string, workbook []byte) *Session {
	return &Session{
		ID:        uuid.NewString(),
		Filename:  filename,
		CreatedAt: time.Now(),
		state:     StateUploaded,
		workbook:  workbook,
	}
}

// State returns the current lifecycle state.
func (s *Session) State() SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Advance moves the session to next, which must be the exact successor of
// the current state. Skipping, revisiting and leaving a terminal state are
// all rejected.
func (s *Session) Advance(next SessionState) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if successor[s.state] != next {
		return fmt.Errorf("invalid transition %s -> %s", s.state, next)
	}
	s.state = next
	return nil
}

// Fail moves the session to FAILED from any non-terminal state.
func (s *Session) Fail() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateDownloaded || s.state == StateFailed {
		return fmt.Errorf("cannot fail terminal state %s", s.state)
	}
	s.state = StateFailed
	return nil
}

// Workbook returns the uploaded source bytes.
func (s *Session) Workbook() []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.workbook
}

// SetOutput stores the finalized workbook bytes.
func (s *Session) SetOutput(b []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.output = b
}

// Output returns the finalized workbook bytes, or nil before finalization.
func (s *Session) Output() []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.output
}

// SessionStore is an in-memory session registry keyed by session id.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[string]*Session
}

func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[string]*Session)}
}

func (st *SessionStore) Put(s *Session) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.sessions[s.ID] = s
}

func (st *SessionStore) Get(id string) (*Session, bool) {
	st.mu.Lock()
	defer st.mu.Unlock()
	s, ok := st.sessions[id]
	return s, ok
}

func (st *SessionStore) Delete(id string) {
	st.mu.Lock()
	defer st.mu.Unlock()
	delete(st.sessions, id)
}

func (st *SessionStore) Len() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.sessions)
}
