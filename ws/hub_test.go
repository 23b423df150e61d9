// ws/hub_test.go
package ws

import (
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeConn records written events. When stall is set, WriteJSON parks
// until the channel is closed, simulating a client that stopped reading.
type fakeConn struct {
	mu     sync.Mutex
	events []Event
	closed bool
	stall  chan struct{}
}

func (c *fakeConn) WriteJSON(v any) error {
	if c.stall != nil {
		<-c.stall
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, v.(Event))
	return nil
}

func (c *fakeConn) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	return nil
}

func (c *fakeConn) written() []Event {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Event(nil), c.events...)
}

func (c *fakeConn) isClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

func (h *Hub) connCount(userID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[userID])
}

func TestPublishScopedToOwner(t *testing.T) {
	hub := NewHub(zerolog.Nop())
	alice := &fakeConn{}
	bob := &fakeConn{}
	hub.Register("alice-id", alice)
	hub.Register("bob-id", bob)

	hub.Publish("alice-id", "note_created", map[string]string{"id": "abc"})

	require.Eventually(t, func() bool {
		return len(alice.written()) == 1
	}, time.Second, 5*time.Millisecond)

	got := alice.written()[0]
	assert.Equal(t, "note_created", got.Type)
	assert.Empty(t, bob.written())
}

func TestPublishToAllOfUsersConnections(t *testing.T) {
	hub := NewHub(zerolog.Nop())
	first := &fakeConn{}
	second := &fakeConn{}
	hub.Register("alice-id", first)
	hub.Register("alice-id", second)

	hub.Publish("alice-id", "folder_deleted", map[string]string{"id": "abc"})

	require.Eventually(t, func() bool {
		return len(first.written()) == 1 && len(second.written()) == 1
	}, time.Second, 5*time.Millisecond)
}

func TestUnregisterClosesConnAndCleansUp(t *testing.T) {
	hub := NewHub(zerolog.Nop())
	conn := &fakeConn{}
	hub.Register("alice-id", conn)
	require.Equal(t, 1, hub.connCount("alice-id"))

	hub.Unregister("alice-id", conn)

	assert.Equal(t, 0, hub.connCount("alice-id"))
	require.Eventually(t, conn.isClosed, time.Second, 5*time.Millisecond)

	// Unregistering twice is a no-op.
	hub.Unregister("alice-id", conn)

	// Publishing to a user with no connections is a no-op too.
	hub.Publish("alice-id", "note_created", nil)
}

// A connection that stops reading must not stall publishers: once its
// queue is full the hub drops it and later publishes proceed.
func TestPublishDoesNotBlockOnStalledClient(t *testing.T) {
	hub := NewHub(zerolog.Nop())
	stalled := &fakeConn{stall: make(chan struct{})}
	defer close(stalled.stall)
	healthy := &fakeConn{}
	hub.Register("alice-id", stalled)
	hub.Register("bob-id", healthy)

	done := make(chan struct{})
	go func() {
		defer close(done)
		// One event parks in WriteJSON, sendBuffer more fill the queue,
		// and the next publish finds it full and drops the client.
		for i := 0; i < sendBuffer+2; i++ {
			hub.Publish("alice-id", "note_updated", nil)
		}
		hub.Publish("bob-id", "note_created", nil)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("publish blocked on a stalled client")
	}

	assert.Equal(t, 0, hub.connCount("alice-id"))
	require.Eventually(t, func() bool {
		return len(healthy.written()) == 1
	}, time.Second, 5*time.Millisecond)
}
