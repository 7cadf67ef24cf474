package driven

import "github.com/talenthive-labs/matchengine/internal/core/domain"

// ContextStore keeps the bounded per-user conversation window.
//
// Concurrency contract: appends for the same user serialize (no lost
// updates, no interleaved turn order); operations for different users are
// independent and must not block each other.
//
// The store is a process-lifetime soft cache, not chat history of record.
// A restart clears all context, which is acceptable; durable chat history
// lives with the external persistence collaborator.
type ContextStore interface {
	// Append adds a turn to the user's window, evicting the oldest turn
	// first when the window is at domain.MaxContextTurns.
	// The window is created lazily on first append.
	Append(userID string, role domain.Role, text string)

	// History returns a copy of the user's window in order, oldest first.
	// Returns an empty slice for unknown users.
	History(userID string) []domain.Turn

	// Len returns the number of turns currently stored for the user.
	Len(userID string) int
}
