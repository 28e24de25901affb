package notify

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHub_PublishNeverBlocks(t *testing.T) {
	// Run is deliberately not started, so the broadcast buffer fills up and
	// Publish has to take the non-blocking path.
	hub := NewHub()

	for i := 0; i < cap(hub.broadcast); i++ {
		assert.NoError(t, hub.Publish(EventIdeaCreated, i))
	}

	err := hub.Publish(EventIdeaCreated, "overflow")
	assert.ErrorIs(t, err, ErrQueueFull)
}

func TestHub_PublishDeliversToRunLoop(t *testing.T) {
	hub := NewHub()

	assert.NoError(t, hub.Publish(EventIdeaUpdated, map[string]string{"id": "abc"}))

	ev := <-hub.broadcast
	assert.Equal(t, EventIdeaUpdated, ev.Event)
}
