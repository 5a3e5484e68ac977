// Package session owns the per-submission lifecycle: Idle → Loading →
// {Result, Error}, one active session at a time. A new submission supersedes
// any prior non-terminal session; the superseded network call may still
// complete, but its result is discarded by the session-ID guard.
package session

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"truthguard-bot/api/internal/view"
)

type State int

const (
	Idle State = iota
	Loading
	Result
	Error
)

func (s State) String() string {
	switch s {
	case Loading:
		return "loading"
	case Result:
		return "result"
	case Error:
		return "error"
	default:
		return "idle"
	}
}

type Modality string

const (
	ModalityText  Modality = "text"
	ModalityImage Modality = "image"
)

// ErrBusy: a submission of the same modality is already loading; resubmission
// is re-enabled once a terminal state is reached.
var ErrBusy = errors.New("analysis already in progress")

// Session is client-local and never persisted. It transitions exactly once
// into a terminal state.
type Session struct {
	ID        uuid.UUID
	Modality  Modality
	StartedAt time.Time

	State  State
	Result *view.ResultViewModel

	// Error state: ErrMessage is for the user, cause stays diagnostic-only.
	ErrMessage string
	cause      error
}

func (s *Session) Cause() error { return s.cause }

// Tracker holds at most one active session plus the last terminal session per
// modality (tab switches are non-destructive).
type Tracker struct {
	mu     sync.Mutex
	active *Session
	last   map[Modality]*Session
	now    func() time.Time
}

func NewTracker() *Tracker {
	return &Tracker{last: make(map[Modality]*Session), now: time.Now}
}

// Begin starts a Loading session. Same-modality submission while a session is
// still loading is refused with ErrBusy; any other pending session is simply
// superseded (no queuing) — its late result will fail the ID guard.
func (t *Tracker) Begin(m Modality) (*Session, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.active != nil && t.active.State == Loading && t.active.Modality == m {
		return nil, ErrBusy
	}
	s := &Session{
		ID:        uuid.New(),
		Modality:  m,
		StartedAt: t.now(),
		State:     Loading,
	}
	t.active = s
	return s, nil
}

// Resolve moves the session with the given ID into Result. Returns false if
// that session is no longer the active one (stale response, discarded).
func (t *Tracker) Resolve(id uuid.UUID, vm view.ResultViewModel) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.guard(id) {
		return false
	}
	t.active.State = Result
	t.active.Result = &vm
	t.last[t.active.Modality] = t.active
	return true
}

// Fail moves the session with the given ID into Error. Same staleness rules
// as Resolve. The Error state is cleared only by a new submission.
func (t *Tracker) Fail(id uuid.UUID, userMsg string, cause error) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.guard(id) {
		return false
	}
	t.active.State = Error
	t.active.ErrMessage = userMsg
	t.active.cause = cause
	t.last[t.active.Modality] = t.active
	return true
}

func (t *Tracker) guard(id uuid.UUID) bool {
	return t.active != nil && t.active.State == Loading && t.active.ID == id
}

// Active returns the current session, or nil when idle.
func (t *Tracker) Active() *Session {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.active
}

// State reports the machine's current state (Idle when nothing submitted yet).
func (t *Tracker) State() State {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.active == nil {
		return Idle
	}
	return t.active.State
}

// Last returns the most recent terminal session for a modality, if any.
func (t *Tracker) Last(m Modality) *Session {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.last[m]
}
