package services

import (
	"context"
	"sync"
	"time"
)

// Turn roles, matching what the completion provider expects.
const (
	RoleUser  = "user"
	RoleModel = "model"
)

// Turn is one message in a conversation.
type Turn struct {
	Role string
	Text string
}

// SessionStore keeps per-session conversation history. Implementations must
// be safe for concurrent first-access of new session keys; a single session
// is only ever driven by one caller at a time.
type SessionStore interface {
	// GetOrCreate ensures a history exists for the session ID.
	GetOrCreate(id string)

	// Append adds turns to the session's history, creating it if needed.
	Append(id string, turns ...Turn)

	// History returns a copy of the session's ordered turns.
	History(id string) []Turn

	// Clear drops the session's history.
	Clear(id string)
}

type sessionEntry struct {
	turns    []Turn
	lastSeen time.Time
}

// MemorySessionStore is the in-process SessionStore. With ttl == 0 histories
// live for the process lifetime.
type MemorySessionStore struct {
	mu       sync.Mutex
	sessions map[string]*sessionEntry
	ttl      time.Duration
}

// NewMemorySessionStore creates an in-memory session store. A positive ttl
// makes idle sessions eligible for eviction; run StartEviction to sweep them.
func NewMemorySessionStore(ttl time.Duration) *MemorySessionStore {
	return &MemorySessionStore{
		sessions: make(map[string]*sessionEntry),
		ttl:      ttl,
	}
}

func (s *MemorySessionStore) GetOrCreate(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entry(id)
}

func (s *MemorySessionStore) Append(id string, turns ...Turn) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry := s.entry(id)
	entry.turns = append(entry.turns, turns...)
	entry.lastSeen = time.Now()
}

func (s *MemorySessionStore) History(id string) []Turn {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.sessions[id]
	if !ok {
		return nil
	}
	entry.lastSeen = time.Now()
	history := make([]Turn, len(entry.turns))
	copy(history, entry.turns)
	return history
}

func (s *MemorySessionStore) Clear(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
}

// entry returns the session entry, creating it on first access. Caller holds
// the lock.
func (s *MemorySessionStore) entry(id string) *sessionEntry {
	if e, ok := s.sessions[id]; ok {
		return e
	}
	e := &sessionEntry{lastSeen: time.Now()}
	s.sessions[id] = e
	return e
}

// StartEviction sweeps idle sessions every interval until the context is
// cancelled. No-op when the store has no TTL configured.
func (s *MemorySessionStore) StartEviction(ctx context.Context, interval time.Duration) {
	if s.ttl <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			s.evictExpired()
		case <-ctx.Done():
			return
		}
	}
}

func (s *MemorySessionStore) evictExpired() {
	cutoff := time.Now().Add(-s.ttl)
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, entry := range s.sessions {
		if entry.lastSeen.Before(cutoff) {
			delete(s.sessions, id)
		}
	}
}
