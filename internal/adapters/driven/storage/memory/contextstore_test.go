package memory

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talenthive-labs/matchengine/internal/core/domain"
)

func TestContextStoreAppendAndHistory(t *testing.T) {
	s := NewContextStore()

	s.Append("u1", domain.RoleUser, "hello")
	s.Append("u1", domain.RoleAssistant, "hi there")

	history := s.History("u1")
	require.Len(t, history, 2)
	assert.Equal(t, domain.RoleUser, history[0].Role)
	assert.Equal(t, "hello", history[0].Content)
	assert.Equal(t, domain.RoleAssistant, history[1].Role)
	assert.Equal(t, "hi there", history[1].Content)
	assert.Equal(t, 2, s.Len("u1"))
}

func TestContextStoreEvictsOldestBeyondWindow(t *testing.T) {
	s := NewContextStore()

	for i := 0; i < 15; i++ {
		s.Append("u1", domain.RoleUser, fmt.Sprintf("turn-%d", i))
	}

	history := s.History("u1")
	require.Len(t, history, domain.MaxContextTurns)

	// Exactly the last ten turns, oldest first.
	for i, turn := range history {
		assert.Equal(t, fmt.Sprintf("turn-%d", i+5), turn.Content)
	}
}

func TestContextStoreUsersAreIndependent(t *testing.T) {
	s := NewContextStore()

	s.Append("alice", domain.RoleUser, "from alice")
	s.Append("bob", domain.RoleUser, "from bob")

	require.Len(t, s.History("alice"), 1)
	require.Len(t, s.History("bob"), 1)
	assert.Equal(t, "from alice", s.History("alice")[0].Content)
	assert.Equal(t, "from bob", s.History("bob")[0].Content)
}

func TestContextStoreUnknownUser(t *testing.T) {
	s := NewContextStore()

	assert.Empty(t, s.History("nobody"))
	assert.Zero(t, s.Len("nobody"))
}

func TestContextStoreHistoryReturnsCopy(t *testing.T) {
	s := NewContextStore()
	s.Append("u1", domain.RoleUser, "original")

	history := s.History("u1")
	history[0].Content = "mutated"

	assert.Equal(t, "original", s.History("u1")[0].Content)
}

func TestContextStoreConcurrentAppends(t *testing.T) {
	s := NewContextStore()

	const writers = 8
	const perWriter = 25

	var wg sync.WaitGroup
	for w := 0; w < writers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			user := fmt.Sprintf("user-%d", w%2)
			for i := 0; i < perWriter; i++ {
				s.Append(user, domain.RoleUser, "msg")
				s.History(user)
			}
		}(w)
	}
	wg.Wait()

	// Both users saturated their windows; nothing lost, nothing leaked.
	assert.Equal(t, domain.MaxContextTurns, s.Len("user-0"))
	assert.Equal(t, domain.MaxContextTurns, s.Len("user-1"))
}
