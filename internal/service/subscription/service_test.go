package subscription_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recruitment-hub/internal/access"
	"recruitment-hub/internal/domain"
	"recruitment-hub/internal/eventbus"
	"recruitment-hub/internal/service/subscription"
)

func next[T any](t *testing.T, ch <-chan T) T {
	t.Helper()
	select {
	case v, ok := <-ch:
		require.True(t, ok, "stream closed")
		return v
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
	}
	var zero T
	return zero
}

func assertQuiet[T any](t *testing.T, ch <-chan T) {
	t.Helper()
	select {
	case v, ok := <-ch:
		if ok {
			t.Fatalf("unexpected event %+v", v)
		}
	case <-time.After(50 * time.Millisecond):
	}
}

func TestSubscriptionService_ApplicationCreated(t *testing.T) {
	bus := eventbus.New()
	defer bus.Close()
	svc := subscription.NewService(bus, access.MustNewGate())
	hr := &domain.Account{ID: uuid.New(), Role: domain.RoleHR}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	vacancyA, vacancyB := uuid.New(), uuid.New()
	scoped, err := svc.ApplicationCreated(ctx, hr, &vacancyA)
	require.NoError(t, err)
	all, err := svc.ApplicationCreated(ctx, hr, nil)
	require.NoError(t, err)

	first := domain.Application{ID: uuid.New(), VacancyID: vacancyB}
	second := domain.Application{ID: uuid.New(), VacancyID: vacancyA}
	require.NoError(t, bus.Publish(ctx, domain.TopicApplicationCreated, first))
	require.NoError(t, bus.Publish(ctx, domain.TopicApplicationCreated, second))

	assert.Equal(t, second.ID, next(t, scoped).ID)
	assertQuiet(t, scoped)

	assert.Equal(t, first.ID, next(t, all).ID)
	assert.Equal(t, second.ID, next(t, all).ID)
}

func TestSubscriptionService_StatusAndInterviewFilters(t *testing.T) {
	bus := eventbus.New()
	defer bus.Close()
	svc := subscription.NewService(bus, access.MustNewGate())
	candidate := &domain.Account{ID: uuid.New(), Role: domain.RoleCandidate}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	statuses, err := svc.ApplicationStatusUpdated(ctx, candidate, &candidate.ID)
	require.NoError(t, err)
	appID := uuid.New()
	interviews, err := svc.InterviewScheduled(ctx, candidate, &appID)
	require.NoError(t, err)

	require.NoError(t, bus.Publish(ctx, domain.TopicApplicationStatusChanged, domain.Application{CandidateID: uuid.New()}))
	require.NoError(t, bus.Publish(ctx, domain.TopicApplicationStatusChanged, domain.Application{CandidateID: candidate.ID, Status: domain.ApplicationOffered}))
	require.NoError(t, bus.Publish(ctx, domain.TopicInterviewScheduled, domain.Interview{ApplicationID: appID}))

	assert.Equal(t, domain.ApplicationOffered, next(t, statuses).Status)
	assert.Equal(t, appID, next(t, interviews).ApplicationID)
}

func TestSubscriptionService_NotificationReceived(t *testing.T) {
	bus := eventbus.New()
	defer bus.Close()
	svc := subscription.NewService(bus, access.MustNewGate())
	me := &domain.Account{ID: uuid.New(), Role: domain.RoleCandidate}

	t.Run("Own Stream", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		notes, err := svc.NotificationReceived(ctx, me, me.ID)
		require.NoError(t, err)

		require.NoError(t, bus.Publish(ctx, domain.TopicNotificationReceived, domain.Notification{RecipientID: uuid.New(), Title: "other"}))
		require.NoError(t, bus.Publish(ctx, domain.TopicNotificationReceived, domain.Notification{RecipientID: me.ID, Title: "mine"}))

		assert.Equal(t, "mine", next(t, notes).Title)
	})

	t.Run("Permission Error", func(t *testing.T) {
		_, err := svc.NotificationReceived(context.Background(), me, uuid.New())
		assert.ErrorIs(t, err, domain.ErrForbidden)
		assert.EqualError(t, err, "You can only subscribe to your own notifications")
	})

	t.Run("Missing Recipient", func(t *testing.T) {
		_, err := svc.NotificationReceived(context.Background(), me, uuid.Nil)
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("Unauthenticated", func(t *testing.T) {
		_, err := svc.NotificationReceived(context.Background(), nil, me.ID)
		assert.ErrorIs(t, err, domain.ErrUnauthenticated)
	})
}

func TestSubscriptionService_CancelReleases(t *testing.T) {
	bus := eventbus.New()
	defer bus.Close()
	svc := subscription.NewService(bus, access.MustNewGate())
	hr := &domain.Account{ID: uuid.New(), Role: domain.RoleHR}

	ctx, cancel := context.WithCancel(context.Background())
	stream, err := svc.ApplicationCreated(ctx, hr, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, bus.SubscriberCount(domain.TopicApplicationCreated))

	cancel()

	assert.Eventually(t, func() bool {
		return bus.SubscriberCount(domain.TopicApplicationCreated) == 0
	}, time.Second, 5*time.Millisecond)

	select {
	case _, ok := <-stream:
		assert.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("stream was not closed")
	}
}
