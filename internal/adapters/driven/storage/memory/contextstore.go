// Package memory provides in-memory implementations of driven port
// interfaces: the conversation context store and a freelancer repository
// used for development and tests.
package memory

import (
	"sync"

	"github.com/talenthive-labs/matchengine/internal/core/domain"
	"github.com/talenthive-labs/matchengine/internal/core/ports/driven"
)

// Ensure ContextStore implements the interface.
var _ driven.ContextStore = (*ContextStore)(nil)

// ContextStore is the in-memory per-user conversation window.
//
// Each user's window has its own mutex, so appends for the same user
// serialize while different users never block each other. The outer map
// lock is held only long enough to find or create a window. Windows live
// for the process lifetime; this is a soft cache, not chat history of record.
type ContextStore struct {
	mu       sync.RWMutex
	windows  map[string]*window
	maxTurns int
}

// window is one user's bounded turn history.
type window struct {
	mu    sync.Mutex
	turns []domain.Turn
}

// NewContextStore creates a context store with the standard window size.
func NewContextStore() *ContextStore {
	return &ContextStore{
		windows:  make(map[string]*window),
		maxTurns: domain.MaxContextTurns,
	}
}

// Append adds a turn to the user's window, evicting the oldest turn when the
// window is full. The window is created lazily on first append.
func (s *ContextStore) Append(userID string, role domain.Role, text string) {
	w := s.windowFor(userID)

	w.mu.Lock()
	defer w.mu.Unlock()

	w.turns = append(w.turns, domain.Turn{Role: role, Content: text})
	if len(w.turns) > s.maxTurns {
		// FIFO eviction; shift rather than re-slice so the backing array
		// does not grow without bound.
		copy(w.turns, w.turns[len(w.turns)-s.maxTurns:])
		w.turns = w.turns[:s.maxTurns]
	}
}

// History returns a copy of the user's window in order, oldest first.
func (s *ContextStore) History(userID string) []domain.Turn {
	s.mu.RLock()
	w, ok := s.windows[userID]
	s.mu.RUnlock()
	if !ok {
		return []domain.Turn{}
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	out := make([]domain.Turn, len(w.turns))
	copy(out, w.turns)
	return out
}

// Len returns the number of turns currently stored for the user.
func (s *ContextStore) Len(userID string) int {
	s.mu.RLock()
	w, ok := s.windows[userID]
	s.mu.RUnlock()
	if !ok {
		return 0
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.turns)
}

// windowFor finds or lazily creates the user's window.
func (s *ContextStore) windowFor(userID string) *window {
	s.mu.RLock()
	w, ok := s.windows[userID]
	s.mu.RUnlock()
	if ok {
		return w
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if w, ok = s.windows[userID]; ok {
		return w
	}
	w = &window{}
	s.windows[userID] = w
	return w
}
