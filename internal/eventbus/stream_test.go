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

func TestFilter_IsolatesRecipients(t *testing.T) {
	bus := eventbus.New()
	defer bus.Close()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	alice, bob := uuid.New(), uuid.New()

	subscribe := func(recipient uuid.UUID) <-chan domain.Notification {
		events, err := bus.Subscribe(ctx, domain.TopicNotificationReceived)
		require.NoError(t, err)
		return eventbus.Filter(ctx, eventbus.Payloads[domain.Notification](ctx, events), func(n domain.Notification) bool {
			return n.RecipientID == recipient
		})
	}

	aliceStream := subscribe(alice)
	bobStream := subscribe(bob)

	require.NoError(t, bus.Publish(ctx, domain.TopicNotificationReceived, domain.Notification{ID: uuid.New(), RecipientID: alice, Title: "for alice"}))
	require.NoError(t, bus.Publish(ctx, domain.TopicNotificationReceived, domain.Notification{ID: uuid.New(), RecipientID: bob, Title: "for bob"}))

	assert.Equal(t, "for alice", receive(t, aliceStream).Title)
	assert.Equal(t, "for bob", receive(t, bobStream).Title)

	select {
	case n := <-aliceStream:
		t.Fatalf("alice received %q", n.Title)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestPayloads_SkipsOtherTypes(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	in := make(chan eventbus.Event, 3)
	in <- eventbus.Event{Payload: "not an application"}
	in <- eventbus.Event{Payload: domain.Application{Status: domain.ApplicationOffered}}
	close(in)

	out := eventbus.Payloads[domain.Application](ctx, in)

	assert.Equal(t, domain.ApplicationOffered, receive(t, out).Status)
	assertClosed(t, out)
}

func TestMap(t *testing.T) {
	ctx := context.Background()

	in := make(chan int, 2)
	in <- 2
	in <- 3
	close(in)

	out := eventbus.Map(ctx, in, func(v int) int { return v * v })

	assert.Equal(t, 4, receive(t, out))
	assert.Equal(t, 9, receive(t, out))
	assertClosed(t, out)
}

func TestStages_StopOnCancel(t *testing.T) {
	bus := eventbus.New()
	defer bus.Close()

	ctx, cancel := context.WithCancel(context.Background())
	events, err := bus.Subscribe(ctx, domain.TopicApplicationCreated)
	require.NoError(t, err)

	out := eventbus.Filter(ctx, eventbus.Payloads[domain.Application](ctx, events), func(domain.Application) bool { return true })

	cancel()

	assertClosed(t, out)
	assert.Eventually(t, func() bool {
		return bus.SubscriberCount(domain.TopicApplicationCreated) == 0
	}, time.Second, 10*time.Millisecond)
}
