package domain

// Role identifies the author of a conversation turn.
type Role string

// Conversation roles.
const (
	// RoleUser is a message authored by the end user.
	RoleUser Role = "user"

	// RoleAssistant is a message authored by the engine on behalf of a model.
	RoleAssistant Role = "assistant"

	// RoleSystem is an instruction turn, never stored in user context.
	RoleSystem Role = "system"
)

// IsValid returns true if the role is recognised.
func (r Role) IsValid() bool {
	switch r {
	case RoleUser, RoleAssistant, RoleSystem:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (r Role) String() string {
	return string(r)
}

// MaxContextTurns is the per-user conversation window size. Appending beyond
// this evicts the oldest turn (FIFO); relative order is otherwise preserved.
const MaxContextTurns = 10

// Turn is a single message in a per-user conversation window.
type Turn struct {
	// Role is the author of the turn.
	Role Role

	// Content is the message text.
	Content string
}
