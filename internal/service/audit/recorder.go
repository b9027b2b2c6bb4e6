package audit

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"recruitment-hub/internal/domain"
	"recruitment-hub/internal/eventbus"
	"recruitment-hub/internal/repository"
)

const (
	ActionApplicationCreated       = "APPLICATION_CREATED"
	ActionApplicationStatusChanged = "APPLICATION_STATUS_CHANGED"
	ActionInterviewScheduled       = "INTERVIEW_SCHEDULED"
)

var recordedTopics = []domain.EventTopic{
	domain.TopicApplicationCreated,
	domain.TopicApplicationStatusChanged,
	domain.TopicInterviewScheduled,
}

// Recorder turns bus events into audit rows. With an origin set, events relayed
// from other instances are skipped so each event is recorded once.
type Recorder struct {
	bus       eventbus.Subscriber
	auditRepo repository.AuditLogRepository
	origin    string
}

func NewRecorder(bus eventbus.Subscriber, auditRepo repository.AuditLogRepository, origin string) *Recorder {
	return &Recorder{
		bus:       bus,
		auditRepo: auditRepo,
		origin:    origin,
	}
}

// Run blocks until ctx is cancelled or the bus closes.
func (r *Recorder) Run(ctx context.Context) error {
	streams := make([]<-chan eventbus.Event, 0, len(recordedTopics))
	for _, topic := range recordedTopics {
		ch, err := r.bus.Subscribe(ctx, topic)
		if err != nil {
			return fmt.Errorf("failed to subscribe to %s: %w", topic, err)
		}
		streams = append(streams, ch)
	}

	merged := merge(ctx, streams...)
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-merged:
			if !ok {
				return nil
			}
			if r.origin != "" && event.Origin != r.origin {
				continue
			}
			if err := r.Record(ctx, event); err != nil {
				log.Error().Err(err).Str("topic", string(event.Topic)).Msg("failed to record audit log")
			}
		}
	}
}

func (r *Recorder) Record(ctx context.Context, event eventbus.Event) error {
	entry, err := entryFor(event)
	if err != nil {
		return err
	}
	return r.auditRepo.Create(ctx, entry)
}

func entryFor(event eventbus.Event) (*domain.AuditLog, error) {
	entry := &domain.AuditLog{ID: uuid.New()}
	var details map[string]any

	switch p := event.Payload.(type) {
	case domain.Application:
		entry.EntityType = domain.EntityApplication
		entry.EntityID = p.ID
		details = map[string]any{"vacancy_id": p.VacancyID, "status": p.Status}
		if event.Topic == domain.TopicApplicationCreated {
			entry.Action = ActionApplicationCreated
			candidate := p.CandidateID
			entry.ActorID = &candidate
		} else {
			entry.Action = ActionApplicationStatusChanged
			details["candidate_id"] = p.CandidateID
		}
	case domain.Interview:
		entry.Action = ActionInterviewScheduled
		entry.EntityType = domain.EntityInterview
		entry.EntityID = p.ID
		details = map[string]any{
			"application_id": p.ApplicationID,
			"scheduled_at":   p.ScheduledAt,
			"type":           p.Type,
		}
	default:
		return nil, fmt.Errorf("no audit mapping for %s payload %T", event.Topic, event.Payload)
	}

	raw, err := json.Marshal(details)
	if err != nil {
		return nil, fmt.Errorf("failed to encode audit details: %w", err)
	}
	entry.Details = raw
	return entry, nil
}

func merge(ctx context.Context, streams ...<-chan eventbus.Event) <-chan eventbus.Event {
	out := make(chan eventbus.Event)
	done := make(chan struct{}, len(streams))

	for _, ch := range streams {
		go func(ch <-chan eventbus.Event) {
			defer func() { done <- struct{}{} }()
			for event := range ch {
				select {
				case out <- event:
				case <-ctx.Done():
					return
				}
			}
		}(ch)
	}

	go func() {
		for range streams {
			<-done
		}
		close(out)
	}()

	return out
}
