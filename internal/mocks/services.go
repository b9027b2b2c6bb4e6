package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"recruitment-hub/internal/domain"
)

type EmailService struct {
	mock.Mock
}

func (m *EmailService) SendWelcomeEmail(ctx context.Context, toEmail, fullName string) error {
	args := m.Called(ctx, toEmail, fullName)
	return args.Error(0)
}

func (m *EmailService) SendNotificationEmail(ctx context.Context, toEmail, recipientName, title, message string) error {
	args := m.Called(ctx, toEmail, recipientName, title, message)
	return args.Error(0)
}

type NotificationService struct {
	mock.Mock
}

func (m *NotificationService) List(ctx context.Context, caller *domain.Account, unreadOnly bool, params domain.OffsetParams) ([]domain.Notification, error) {
	args := m.Called(ctx, caller, unreadOnly, params)
	return args.Get(0).([]domain.Notification), args.Error(1)
}

func (m *NotificationService) Count(ctx context.Context, caller *domain.Account) (*domain.NotificationCount, error) {
	args := m.Called(ctx, caller)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.NotificationCount), args.Error(1)
}

func (m *NotificationService) MarkAsRead(ctx context.Context, caller *domain.Account, id uuid.UUID) (*domain.Notification, error) {
	args := m.Called(ctx, caller, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Notification), args.Error(1)
}

func (m *NotificationService) MarkAllAsRead(ctx context.Context, caller *domain.Account) (int64, error) {
	args := m.Called(ctx, caller)
	return args.Get(0).(int64), args.Error(1)
}

func (m *NotificationService) Delete(ctx context.Context, caller *domain.Account, id uuid.UUID) error {
	args := m.Called(ctx, caller, id)
	return args.Error(0)
}

func (m *NotificationService) NotifyApplicationReceived(ctx context.Context, app *domain.Application, vacancy *domain.Vacancy, candidate *domain.Account) error {
	args := m.Called(ctx, app, vacancy, candidate)
	return args.Error(0)
}

func (m *NotificationService) NotifyApplicationStatusUpdated(ctx context.Context, app *domain.Application, vacancy *domain.Vacancy) error {
	args := m.Called(ctx, app, vacancy)
	return args.Error(0)
}

func (m *NotificationService) NotifyInterviewScheduled(ctx context.Context, interview *domain.Interview, app *domain.Application, vacancy *domain.Vacancy) error {
	args := m.Called(ctx, interview, app, vacancy)
	return args.Error(0)
}

// Publisher records published events.
type Publisher struct {
	mock.Mock
}

func (m *Publisher) Publish(ctx context.Context, topic domain.EventTopic, payload any) error {
	args := m.Called(ctx, topic, payload)
	return args.Error(0)
}
