package app

import "sync"

// Presence is the injected presence service: the in-memory mapping from a
// user identifier to its live session. State is intentionally lost on
// restart; everyone is offline until they reconnect.
type Presence interface {
	// Register store s as the live session for its user. Last connect wins;
	// the superseded session (if any) is returned and stays open.
	Register(s *ChatSession) *ChatSession
	// Unregister remove s only if it is still the registered session for its
	// user, so a stale disconnect cannot evict a newer connection.
	Unregister(s *ChatSession) bool
	// Lookup return the live session for userID
	Lookup(userID string) (*ChatSession, bool)
	// Online report whether userID has a live session
	Online(userID string) bool
	// Broadcast push one frame to every live session
	Broadcast(data []byte)
}

// PresenceHub mutex-guarded presence table, safe under concurrent
// register/unregister/lookup from many connection goroutines
type PresenceHub struct {
	mu       sync.RWMutex
	sessions map[string]*ChatSession
}

// NewPresenceHub create an empty PresenceHub
func NewPresenceHub() *PresenceHub {
	return &PresenceHub{
		sessions: make(map[string]*ChatSession),
	}
}

// Register store s under its user id, replacing any prior session
func (h *PresenceHub) Register(s *ChatSession) *ChatSession {
	h.mu.Lock()
	defer h.mu.Unlock()

	prev := h.sessions[s.UserID]
	h.sessions[s.UserID] = s
	if prev == s {
		return nil
	}
	return prev
}

// Unregister remove s if it is still the registered handle for its user
func (h *PresenceHub) Unregister(s *ChatSession) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	if cur, ok := h.sessions[s.UserID]; ok && cur == s {
		delete(h.sessions, s.UserID)
		return true
	}
	return false
}

// Lookup return the live session for userID
func (h *PresenceHub) Lookup(userID string) (*ChatSession, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	s, ok := h.sessions[userID]
	return s, ok
}

// Online report whether userID currently has a live session
func (h *PresenceHub) Online(userID string) bool {
	_, ok := h.Lookup(userID)
	return ok
}

// Count number of live sessions
func (h *PresenceHub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.sessions)
}

// Broadcast push data to every live session. A session whose outbound queue
// is full is treated as stalled and closed outside the lock, since its Close
// re-enters the hub through Unregister.
func (h *PresenceHub) Broadcast(data []byte) {
	h.mu.RLock()
	var stalled []*ChatSession
	for _, s := range h.sessions {
		if !s.Push(data) {
			stalled = append(stalled, s)
		}
	}
	h.mu.RUnlock()

	for _, s := range stalled {
		s.Close()
	}
}
