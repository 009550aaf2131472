package services

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionHistoryOrdering(t *testing.T) {
	store := NewMemorySessionStore(0)

	store.Append("s1",
		Turn{Role: RoleUser, Text: "How much vacation do I get?"},
		Turn{Role: RoleModel, Text: "Two weeks per year."},
	)
	store.Append("s1", Turn{Role: RoleUser, Text: "Can I carry it over?"})

	history := store.History("s1")
	require.Len(t, history, 3)
	assert.Equal(t, RoleUser, history[0].Role)
	assert.Equal(t, "Two weeks per year.", history[1].Text)
	assert.Equal(t, "Can I carry it over?", history[2].Text)
}

func TestSessionIsolation(t *testing.T) {
	store := NewMemorySessionStore(0)

	store.Append("alice-session", Turn{Role: RoleUser, Text: "question a"})
	store.Append("bob-session", Turn{Role: RoleUser, Text: "question b"})

	assert.Len(t, store.History("alice-session"), 1)
	assert.Len(t, store.History("bob-session"), 1)
	assert.Equal(t, "question a", store.History("alice-session")[0].Text)
	assert.Nil(t, store.History("never-seen"))
}

func TestSessionHistoryReturnsCopy(t *testing.T) {
	store := NewMemorySessionStore(0)
	store.Append("s1", Turn{Role: RoleUser, Text: "original"})

	history := store.History("s1")
	history[0].Text = "mutated"

	assert.Equal(t, "original", store.History("s1")[0].Text)
}

func TestSessionClear(t *testing.T) {
	store := NewMemorySessionStore(0)
	store.Append("s1", Turn{Role: RoleUser, Text: "hello"})

	store.Clear("s1")

	assert.Nil(t, store.History("s1"))
}

func TestSessionConcurrentFirstAccess(t *testing.T) {
	store := NewMemorySessionStore(0)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			store.GetOrCreate("shared")
			store.Append("shared", Turn{Role: RoleUser, Text: "q"})
		}()
	}
	wg.Wait()

	assert.Len(t, store.History("shared"), 50)
}

func TestSessionEviction(t *testing.T) {
	store := NewMemorySessionStore(10 * time.Millisecond)
	store.Append("stale", Turn{Role: RoleUser, Text: "old"})

	time.Sleep(30 * time.Millisecond)
	store.evictExpired()

	assert.Nil(t, store.History("stale"))
}

func TestSessionEvictionKeepsActive(t *testing.T) {
	store := NewMemorySessionStore(time.Hour)
	store.Append("active", Turn{Role: RoleUser, Text: "recent"})

	store.evictExpired()

	assert.Len(t, store.History("active"), 1)
}
