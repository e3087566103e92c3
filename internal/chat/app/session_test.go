package app

import (
	"encoding/json"
	"testing"
	"time"

	"study_portal_service/internal/chat/domain"
	"study_portal_service/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recvPresence pop the next queued frame from sess and decode it as a
// presence event
func recvPresence(t *testing.T, sess *ChatSession) domain.PresenceEvent {
	t.Helper()
	select {
	case data := <-sess.send:
		var ev domain.PresenceEvent
		require.NoError(t, json.Unmarshal(data, &ev))
		return ev
	case <-time.After(time.Second):
		t.Fatal("no frame queued on session")
		return domain.PresenceEvent{}
	}
}

func TestChatSession_Authenticate(t *testing.T) {
	logger.SetNewNop()
	hub := NewPresenceHub()

	watcher := NewChatSession(hub, newFakeConn())
	require.True(t, watcher.Authenticate("u0", "Watcher"))
	recvPresence(t, watcher) // its own user-online

	sess := NewChatSession(hub, newFakeConn())

	t.Run("registers and broadcasts online", func(t *testing.T) {
		require.True(t, sess.Authenticate("u1", "Alice"))
		assert.Equal(t, StateAuthenticated, sess.State())

		// Registered before the broadcast: by the time the watcher sees the
		// event the user is already visible in the presence table.
		assert.True(t, hub.Online("u1"))

		ev := recvPresence(t, watcher)
		assert.Equal(t, string(domain.UserOnline), ev.Event)
		assert.Equal(t, "u1", ev.UserID)
		assert.Equal(t, "Alice", ev.DisplayName)
	})

	t.Run("second authenticate rejected", func(t *testing.T) {
		assert.False(t, sess.Authenticate("u1", "Alice"))
	})

	t.Run("closed session rejected", func(t *testing.T) {
		closed := NewChatSession(hub, newFakeConn())
		closed.Close()
		assert.False(t, closed.Authenticate("u2", "Bob"))
		assert.False(t, hub.Online("u2"))
	})
}

func TestChatSession_CloseBroadcastsOfflineOnce(t *testing.T) {
	logger.SetNewNop()
	hub := NewPresenceHub()

	watcher := NewChatSession(hub, newFakeConn())
	require.True(t, watcher.Authenticate("u0", "Watcher"))
	recvPresence(t, watcher)

	sess := NewChatSession(hub, newFakeConn())
	require.True(t, sess.Authenticate("u1", "Alice"))
	recvPresence(t, watcher)

	sess.Close()
	sess.Close()

	assert.Equal(t, StateClosed, sess.State())
	assert.False(t, hub.Online("u1"))

	ev := recvPresence(t, watcher)
	assert.Equal(t, string(domain.UserOffline), ev.Event)
	assert.Equal(t, "u1", ev.UserID)

	// Second Close queued nothing.
	select {
	case data := <-watcher.send:
		t.Fatalf("unexpected extra frame: %s", data)
	default:
	}
}

func TestChatSession_CloseBeforeAuthenticateIsSilent(t *testing.T) {
	logger.SetNewNop()
	hub := NewPresenceHub()

	watcher := NewChatSession(hub, newFakeConn())
	require.True(t, watcher.Authenticate("u0", "Watcher"))
	recvPresence(t, watcher)

	sess := NewChatSession(hub, newFakeConn())
	sess.Close()

	select {
	case data := <-watcher.send:
		t.Fatalf("unexpected frame: %s", data)
	default:
	}
}

func TestChatSession_DuplicateLoginKeepsNewerSession(t *testing.T) {
	logger.SetNewNop()
	hub := NewPresenceHub()

	old := NewChatSession(hub, newFakeConn())
	require.True(t, old.Authenticate("u1", "Alice"))

	replacement := NewChatSession(hub, newFakeConn())
	require.True(t, replacement.Authenticate("u1", "Alice"))

	got, ok := hub.Lookup("u1")
	require.True(t, ok)
	assert.Same(t, replacement, got)

	// Closing the orphaned session must not evict the replacement.
	old.Close()
	got, ok = hub.Lookup("u1")
	require.True(t, ok)
	assert.Same(t, replacement, got)
}

func TestChatSession_Push(t *testing.T) {
	logger.SetNewNop()
	hub := NewPresenceHub()

	t.Run("enqueues", func(t *testing.T) {
		sess := NewChatSession(hub, newFakeConn())
		assert.True(t, sess.Push([]byte("x")))
		assert.Equal(t, []byte("x"), <-sess.send)
	})

	t.Run("full queue rejected", func(t *testing.T) {
		sess := NewChatSession(hub, newFakeConn())
		for i := 0; i < sendQueueSize; i++ {
			require.True(t, sess.Push([]byte("x")))
		}
		assert.False(t, sess.Push([]byte("overflow")))
	})

	t.Run("closed session rejected", func(t *testing.T) {
		sess := NewChatSession(hub, newFakeConn())
		sess.Close()
		assert.False(t, sess.Push([]byte("x")))
	})
}

func TestChatSession_WritePump(t *testing.T) {
	logger.SetNewNop()
	hub := NewPresenceHub()

	conn := newFakeConn()
	sess := NewChatSession(hub, conn)
	go sess.WritePump()

	require.True(t, sess.Push([]byte("first")))
	require.True(t, sess.Push([]byte("second")))

	assert.Equal(t, []byte("first"), <-conn.written)
	assert.Equal(t, []byte("second"), <-conn.written)

	// A write error after the peer vanished closes the session.
	conn.Close()
	require.True(t, sess.Push([]byte("third")))
	assert.Eventually(t, func() bool {
		return sess.State() == StateClosed
	}, time.Second, 10*time.Millisecond)
}
