package eventbus_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recruitment-hub/internal/domain"
	"recruitment-hub/internal/eventbus"
)

func receive[T any](t *testing.T, ch <-chan T) T {
	t.Helper()
	select {
	case v, ok := <-ch:
		require.True(t, ok, "channel closed")
		return v
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for value")
	}
	var zero T
	return zero
}

func assertClosed[T any](t *testing.T, ch <-chan T) {
	t.Helper()
	deadline := time.After(time.Second)
	for {
		select {
		case _, ok := <-ch:
			if !ok {
				return
			}
		case <-deadline:
			t.Fatal("channel was not closed")
		}
	}
}

func TestBus_PublishSubscribe(t *testing.T) {
	bus := eventbus.New()
	defer bus.Close()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	t.Run("Delivers In Publish Order", func(t *testing.T) {
		events, err := bus.Subscribe(ctx, domain.TopicApplicationCreated)
		require.NoError(t, err)

		var ids []uuid.UUID
		for i := 0; i < 5; i++ {
			id := uuid.New()
			ids = append(ids, id)
			require.NoError(t, bus.Publish(ctx, domain.TopicApplicationCreated, domain.Application{ID: id}))
		}

		for _, id := range ids {
			event := receive(t, events)
			assert.Equal(t, domain.TopicApplicationCreated, event.Topic)
			assert.Equal(t, bus.ID(), event.Origin)
			assert.Equal(t, id, event.Payload.(domain.Application).ID)
		}
	})

	t.Run("Topics Are Independent", func(t *testing.T) {
		created, err := bus.Subscribe(ctx, domain.TopicApplicationCreated)
		require.NoError(t, err)

		require.NoError(t, bus.Publish(ctx, domain.TopicInterviewScheduled, domain.Interview{ID: uuid.New()}))

		select {
		case e := <-created:
			t.Fatalf("unexpected event on %s", e.Topic)
		case <-time.After(50 * time.Millisecond):
		}
	})

	t.Run("No Replay For Late Subscribers", func(t *testing.T) {
		require.NoError(t, bus.Publish(ctx, domain.TopicNotificationReceived, domain.Notification{ID: uuid.New()}))

		late, err := bus.Subscribe(ctx, domain.TopicNotificationReceived)
		require.NoError(t, err)

		select {
		case <-late:
			t.Fatal("late subscriber received an earlier event")
		case <-time.After(50 * time.Millisecond):
		}
	})

	t.Run("Unknown Topic", func(t *testing.T) {
		_, err := bus.Subscribe(ctx, domain.EventTopic("nope"))
		assert.ErrorIs(t, err, eventbus.ErrUnknownTopic)

		err = bus.Publish(ctx, domain.EventTopic("nope"), nil)
		assert.ErrorIs(t, err, eventbus.ErrUnknownTopic)
	})
}

func TestBus_FullBufferDropsEvents(t *testing.T) {
	bus := eventbus.New(eventbus.WithBufferSize(2))
	defer bus.Close()
	ctx := context.Background()

	slow, err := bus.Subscribe(ctx, domain.TopicApplicationStatusChanged)
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		require.NoError(t, bus.Publish(ctx, domain.TopicApplicationStatusChanged, domain.Application{ID: uuid.New()}))
	}

	assert.Len(t, slow, 2)
}

func TestBus_CancelReleasesSubscription(t *testing.T) {
	bus := eventbus.New()
	defer bus.Close()

	ctx, cancel := context.WithCancel(context.Background())
	events, err := bus.Subscribe(ctx, domain.TopicInterviewScheduled)
	require.NoError(t, err)
	assert.Equal(t, 1, bus.SubscriberCount(domain.TopicInterviewScheduled))

	cancel()

	assertClosed(t, events)
	assert.Eventually(t, func() bool {
		return bus.SubscriberCount(domain.TopicInterviewScheduled) == 0
	}, time.Second, 10*time.Millisecond)
}

func TestBus_Close(t *testing.T) {
	bus := eventbus.New()
	ctx := context.Background()

	events, err := bus.Subscribe(ctx, domain.TopicApplicationCreated)
	require.NoError(t, err)

	bus.Close()
	assertClosed(t, events)

	assert.ErrorIs(t, bus.Publish(ctx, domain.TopicApplicationCreated, domain.Application{}), eventbus.ErrClosed)
	_, err = bus.Subscribe(ctx, domain.TopicApplicationCreated)
	assert.ErrorIs(t, err, eventbus.ErrClosed)

	// second close is a no-op
	bus.Close()
}
