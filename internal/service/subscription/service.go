package subscription

import (
	"context"

	"github.com/google/uuid"

	"recruitment-hub/internal/access"
	"recruitment-hub/internal/domain"
	"recruitment-hub/internal/eventbus"
)

var (
	ErrRecipientRequired = domain.NewValidationError("Recipient ID is required")
	ErrNotOwnStream      = domain.NewForbiddenError("You can only subscribe to your own notifications")
)

// Service opens live, filtered views of the event bus. Every stream ends when
// ctx is cancelled or the bus closes, and the bus subscription is released.
type Service interface {
	ApplicationCreated(ctx context.Context, caller *domain.Account, vacancyID *uuid.UUID) (<-chan domain.Application, error)
	ApplicationStatusUpdated(ctx context.Context, caller *domain.Account, candidateID *uuid.UUID) (<-chan domain.Application, error)
	InterviewScheduled(ctx context.Context, caller *domain.Account, applicationID *uuid.UUID) (<-chan domain.Interview, error)
	NotificationReceived(ctx context.Context, caller *domain.Account, recipientID uuid.UUID) (<-chan domain.Notification, error)
}

type service struct {
	bus  eventbus.Subscriber
	gate access.Gate
}

func NewService(bus eventbus.Subscriber, gate access.Gate) Service {
	return &service{
		bus:  bus,
		gate: gate,
	}
}

func (s *service) ApplicationCreated(ctx context.Context, caller *domain.Account, vacancyID *uuid.UUID) (<-chan domain.Application, error) {
	return stream(ctx, s, caller, domain.TopicApplicationCreated, matchID(vacancyID, func(a domain.Application) uuid.UUID {
		return a.VacancyID
	}))
}

func (s *service) ApplicationStatusUpdated(ctx context.Context, caller *domain.Account, candidateID *uuid.UUID) (<-chan domain.Application, error) {
	return stream(ctx, s, caller, domain.TopicApplicationStatusChanged, matchID(candidateID, func(a domain.Application) uuid.UUID {
		return a.CandidateID
	}))
}

func (s *service) InterviewScheduled(ctx context.Context, caller *domain.Account, applicationID *uuid.UUID) (<-chan domain.Interview, error) {
	return stream(ctx, s, caller, domain.TopicInterviewScheduled, matchID(applicationID, func(i domain.Interview) uuid.UUID {
		return i.ApplicationID
	}))
}

func (s *service) NotificationReceived(ctx context.Context, caller *domain.Account, recipientID uuid.UUID) (<-chan domain.Notification, error) {
	if err := s.gate.RequireAuthenticated(caller); err != nil {
		return nil, err
	}
	if recipientID == uuid.Nil {
		return nil, ErrRecipientRequired
	}
	if recipientID != caller.ID {
		return nil, ErrNotOwnStream
	}
	return stream(ctx, s, caller, domain.TopicNotificationReceived, matchID(&recipientID, func(n domain.Notification) uuid.UUID {
		return n.RecipientID
	}))
}

func stream[T any](ctx context.Context, s *service, caller *domain.Account, topic domain.EventTopic, keep func(T) bool) (<-chan T, error) {
	if err := s.gate.Authorize(caller, access.ResourceSubscription, access.ActionRead); err != nil {
		return nil, err
	}

	events, err := s.bus.Subscribe(ctx, topic)
	if err != nil {
		return nil, err
	}

	payloads := eventbus.Payloads[T](ctx, events)
	if keep == nil {
		return payloads, nil
	}
	return eventbus.Filter(ctx, payloads, keep), nil
}

// matchID returns nil when want is nil, leaving the stream unfiltered.
func matchID[T any](want *uuid.UUID, field func(T) uuid.UUID) func(T) bool {
	if want == nil {
		return nil
	}
	id := *want
	return func(v T) bool {
		return field(v) == id
	}
}
