package eventbus

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recruitment-hub/internal/domain"
)

func TestEnvelope_RestoresPayloadTypes(t *testing.T) {
	interview := domain.Interview{
		ID:             uuid.New(),
		ApplicationID:  uuid.New(),
		ScheduledAt:    time.Date(2026, 3, 2, 14, 30, 0, 0, time.UTC),
		Duration:       60,
		Type:           domain.InterviewVideo,
		Status:         domain.InterviewScheduled,
		InterviewerIDs: domain.UUIDArray{uuid.New()},
	}

	data, err := encodeEnvelope(Event{Topic: domain.TopicInterviewScheduled, Payload: interview, Origin: "node-a"})
	require.NoError(t, err)

	event, err := decodeEnvelope(data)
	require.NoError(t, err)

	assert.Equal(t, "node-a", event.Origin)
	assert.Equal(t, domain.TopicInterviewScheduled, event.Topic)
	got, ok := event.Payload.(domain.Interview)
	require.True(t, ok)
	assert.Equal(t, interview.ID, got.ID)
	assert.Equal(t, interview.InterviewerIDs, got.InterviewerIDs)
	assert.True(t, interview.ScheduledAt.Equal(got.ScheduledAt))
}

func TestEnvelope_UnknownTopic(t *testing.T) {
	_, err := decodeEnvelope([]byte(`{"origin":"x","topic":"other","payload":{}}`))
	assert.ErrorIs(t, err, ErrUnknownTopic)
}

func TestRelay_EnqueuesOnlyLocalEvents(t *testing.T) {
	bus := New()
	defer bus.Close()
	relay := &Relay{bus: bus, queue: make(chan Event, 4)}

	relay.enqueue(Event{Topic: domain.TopicApplicationCreated, Origin: bus.ID()})
	assert.Empty(t, relay.queue, "not running yet")

	relay.running.Store(true)
	relay.enqueue(Event{Topic: domain.TopicApplicationCreated, Origin: bus.ID()})
	relay.enqueue(Event{Topic: domain.TopicApplicationCreated, Origin: "elsewhere"})

	assert.Len(t, relay.queue, 1)
}
