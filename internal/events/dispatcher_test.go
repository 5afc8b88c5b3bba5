package events_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/employee-records/internal/events"
)

func TestDispatcherDeliversToSubscribers(t *testing.T) {
	dispatcher := events.NewInMemoryDispatcher()

	var received []events.Event
	dispatcher.Subscribe(events.EventLoginSucceeded, func(_ context.Context, event events.Event) error {
		received = append(received, event)
		return nil
	})
	dispatcher.Subscribe(events.EventLoginFailed, func(_ context.Context, event events.Event) error {
		t.Fatal("handler for other event type must not fire")
		return nil
	})

	err := dispatcher.Publish(context.Background(), events.Event{
		ID:      "evt-1",
		Type:    events.EventLoginSucceeded,
		Subject: "alice",
	})
	require.NoError(t, err)
	require.Len(t, received, 1)
	assert.Equal(t, "alice", received[0].Subject)
}

func TestDispatcherHandlerErrorDoesNotStopDelivery(t *testing.T) {
	dispatcher := events.NewInMemoryDispatcher()

	secondFired := false
	dispatcher.Subscribe(events.EventLoginFailed, func(context.Context, events.Event) error {
		return errors.New("boom")
	})
	dispatcher.Subscribe(events.EventLoginFailed, func(context.Context, events.Event) error {
		secondFired = true
		return nil
	})

	err := dispatcher.Publish(context.Background(), events.Event{Type: events.EventLoginFailed})
	require.NoError(t, err)
	assert.True(t, secondFired)
}
