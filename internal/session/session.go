// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package session holds the ephemeral state of one import: its progress,
// its user-facing log and the stage it is in. Presentation layers observe
// a Session; nothing here is persisted.
package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Level is the severity of a log entry.
type Level string

const (
	LevelInfo    Level = "info"
	LevelSuccess Level = "success"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

// Entry is one user-facing log line.
type Entry struct {
	Level   Level
	Message string
	Time    time.Time
}

// State is a stage of the import state machine.
type State int

const (
	StateIdle State = iota
	StateExtracting
	StateFetching
	StateDownloading
	StateWritingNote
	StateDone
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateExtracting:
		return "extracting"
	case StateFetching:
		return "fetching"
	case StateDownloading:
		return "downloading"
	case StateWritingNote:
		return "writing-note"
	case StateDone:
		return "done"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Terminal reports whether no further transitions are possible.
func (s State) Terminal() bool {
	return s == StateDone || s == StateFailed
}

// Observer is notified synchronously of every change to a Session.
// Implementations must not call back into the Session.
type Observer interface {
	ProgressChanged(percent float64)
	Logged(e Entry)
	StateChanged(s State)
}

// Session is the mutable record of one import.
type Session struct {
	ID string

	mu        sync.Mutex
	progress  float64
	entries   []Entry
	state     State
	observers []Observer
	now       func() time.Time
}

// New creates an idle session with a fresh ID.
func New(observers ...Observer) *Session {
	return &Session{
		ID:        uuid.NewString(),
		observers: observers,
		now:       time.Now,
	}
}

// SetProgress records a progress value, clamped to [0, 100].
func (s *Session) SetProgress(percent float64) {
	percent = max(0, min(percent, 100))
	s.mu.Lock()
	s.progress = percent
	obs := s.observers
	s.mu.Unlock()
	for _, o := range obs {
		o.ProgressChanged(percent)
	}
}

// Progress returns the current progress value.
func (s *Session) Progress() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.progress
}

// Log appends an entry.
func (s *Session) Log(level Level, message string) {
	s.mu.Lock()
	e := Entry{Level: level, Message: message, Time: s.now()}
	s.entries = append(s.entries, e)
	obs := s.observers
	s.mu.Unlock()
	for _, o := range obs {
		o.Logged(e)
	}
}

// Info, Warn, Success and Error are shorthands for Log.
func (s *Session) Info(message string)    { s.Log(LevelInfo, message) }
func (s *Session) Warn(message string)    { s.Log(LevelWarning, message) }
func (s *Session) Success(message string) { s.Log(LevelSuccess, message) }
func (s *Session) Error(message string)   { s.Log(LevelError, message) }

// Entries returns a copy of the log in insertion order.
func (s *Session) Entries() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Reset clears progress and log for a new attempt in the same dialog.
func (s *Session) Reset() {
	s.mu.Lock()
	s.entries = nil
	s.state = StateIdle
	s.mu.Unlock()
	s.SetProgress(0)
}

// SetState moves the session to state.
func (s *Session) SetState(state State) {
	s.mu.Lock()
	s.state = state
	obs := s.observers
	s.mu.Unlock()
	for _, o := range obs {
		o.StateChanged(state)
	}
}

// State returns the current stage.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}
