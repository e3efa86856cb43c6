package sse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func receive(t *testing.T, ch <-chan Event) (Event, bool) {
	t.Helper()
	select {
	case e, ok := <-ch:
		return e, ok
	default:
		return Event{}, false
	}
}

func TestHub_TopicsAndUsers(t *testing.T) {
	h := NewHub()

	aliceAll, cleanupA := h.Subscribe("alice")
	defer cleanupA()
	aliceLogo, cleanupL := h.Subscribe("alice", TopicLogoUpdated)
	defer cleanupL()
	bob, cleanupB := h.Subscribe("bob", TopicProfileUpdated)
	defer cleanupB()

	assert.Equal(t, 2, h.SubscriberCount("alice"))
	assert.Equal(t, 3, h.TotalSubscribers())

	h.Publish(Event{Topic: TopicProfileUpdated, UserID: "alice", Data: ProfileUpdated{UserID: "alice", Name: "Alice"}})

	e, ok := receive(t, aliceAll)
	require.True(t, ok)
	assert.Equal(t, "Alice", e.Data.(ProfileUpdated).Name)
	_, ok = receive(t, aliceLogo)
	assert.False(t, ok)
	_, ok = receive(t, bob)
	assert.False(t, ok)

	h.Publish(Event{Topic: TopicLogoUpdated, Data: LogoUpdated{Expanded: "a.png"}})

	_, ok = receive(t, aliceAll)
	assert.True(t, ok)
	_, ok = receive(t, aliceLogo)
	assert.True(t, ok)
	_, ok = receive(t, bob)
	assert.False(t, ok)
}

func TestHub_PublishNeverBlocks(t *testing.T) {
	h := NewHub()
	ch, cleanup := h.Subscribe("alice", TopicLogoUpdated)
	defer cleanup()

	for i := 0; i < 50; i++ {
		h.Publish(Event{Topic: TopicLogoUpdated})
	}
	assert.Len(t, ch, cap(ch))
}

func TestHub_CleanupIsIdempotent(t *testing.T) {
	h := NewHub()
	ch, cleanup := h.Subscribe("alice")

	cleanup()
	cleanup()

	_, open := <-ch
	assert.False(t, open)
	assert.Equal(t, 0, h.TotalSubscribers())

	h.Publish(Event{Topic: TopicLogoUpdated})
}
