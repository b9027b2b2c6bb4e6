package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"recruitment-hub/internal/domain"
)

type AccountRepository struct {
	mock.Mock
}

func (m *AccountRepository) Create(ctx context.Context, account *domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *AccountRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Account, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *AccountRepository) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *AccountRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *AccountRepository) Update(ctx context.Context, account *domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *AccountRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *AccountRepository) List(ctx context.Context, filter domain.AccountFilter, params domain.OffsetParams) ([]domain.Account, error) {
	args := m.Called(ctx, filter, params)
	return args.Get(0).([]domain.Account), args.Error(1)
}

type VacancyRepository struct {
	mock.Mock
}

func (m *VacancyRepository) Create(ctx context.Context, vacancy *domain.Vacancy) error {
	args := m.Called(ctx, vacancy)
	return args.Error(0)
}

func (m *VacancyRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Vacancy, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Vacancy), args.Error(1)
}

func (m *VacancyRepository) Update(ctx context.Context, vacancy *domain.Vacancy) error {
	args := m.Called(ctx, vacancy)
	return args.Error(0)
}

func (m *VacancyRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *VacancyRepository) List(ctx context.Context, filter domain.VacancyFilter, params domain.PaginationParams) ([]domain.Vacancy, int64, error) {
	args := m.Called(ctx, filter, params)
	return args.Get(0).([]domain.Vacancy), args.Get(1).(int64), args.Error(2)
}

func (m *VacancyRepository) Count(ctx context.Context, filter domain.VacancyFilter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

type ApplicationRepository struct {
	mock.Mock
}

func (m *ApplicationRepository) Create(ctx context.Context, app *domain.Application) error {
	args := m.Called(ctx, app)
	return args.Error(0)
}

func (m *ApplicationRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Application, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Application), args.Error(1)
}

func (m *ApplicationRepository) GetActive(ctx context.Context, vacancyID, candidateID uuid.UUID) (*domain.Application, error) {
	args := m.Called(ctx, vacancyID, candidateID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Application), args.Error(1)
}

func (m *ApplicationRepository) Update(ctx context.Context, app *domain.Application) error {
	args := m.Called(ctx, app)
	return args.Error(0)
}

func (m *ApplicationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *ApplicationRepository) List(ctx context.Context, filter domain.ApplicationFilter, params domain.PaginationParams) ([]domain.Application, int64, error) {
	args := m.Called(ctx, filter, params)
	return args.Get(0).([]domain.Application), args.Get(1).(int64), args.Error(2)
}

func (m *ApplicationRepository) Count(ctx context.Context, filter domain.ApplicationFilter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

type InterviewRepository struct {
	mock.Mock
}

func (m *InterviewRepository) Create(ctx context.Context, interview *domain.Interview) error {
	args := m.Called(ctx, interview)
	return args.Error(0)
}

func (m *InterviewRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Interview, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Interview), args.Error(1)
}

func (m *InterviewRepository) Update(ctx context.Context, interview *domain.Interview) error {
	args := m.Called(ctx, interview)
	return args.Error(0)
}

func (m *InterviewRepository) List(ctx context.Context, filter domain.InterviewFilter) ([]domain.Interview, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]domain.Interview), args.Error(1)
}

func (m *InterviewRepository) Count(ctx context.Context, filter domain.InterviewFilter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

type FeedbackRepository struct {
	mock.Mock
}

func (m *FeedbackRepository) Create(ctx context.Context, feedback *domain.Feedback) error {
	args := m.Called(ctx, feedback)
	return args.Error(0)
}

func (m *FeedbackRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Feedback, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Feedback), args.Error(1)
}

func (m *FeedbackRepository) GetByAuthor(ctx context.Context, interviewID, authorID uuid.UUID) (*domain.Feedback, error) {
	args := m.Called(ctx, interviewID, authorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Feedback), args.Error(1)
}

func (m *FeedbackRepository) Update(ctx context.Context, feedback *domain.Feedback) error {
	args := m.Called(ctx, feedback)
	return args.Error(0)
}

func (m *FeedbackRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *FeedbackRepository) ListByInterview(ctx context.Context, interviewID uuid.UUID) ([]domain.Feedback, error) {
	args := m.Called(ctx, interviewID)
	return args.Get(0).([]domain.Feedback), args.Error(1)
}

func (m *FeedbackRepository) AverageRating(ctx context.Context, interviewID uuid.UUID) (float64, error) {
	args := m.Called(ctx, interviewID)
	return args.Get(0).(float64), args.Error(1)
}

type NotificationRepository struct {
	mock.Mock
}

func (m *NotificationRepository) Create(ctx context.Context, notif *domain.Notification) error {
	args := m.Called(ctx, notif)
	return args.Error(0)
}

func (m *NotificationRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Notification, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Notification), args.Error(1)
}

func (m *NotificationRepository) ListByRecipient(ctx context.Context, recipientID uuid.UUID, unreadOnly bool, params domain.OffsetParams) ([]domain.Notification, error) {
	args := m.Called(ctx, recipientID, unreadOnly, params)
	return args.Get(0).([]domain.Notification), args.Error(1)
}

func (m *NotificationRepository) MarkAsRead(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *NotificationRepository) MarkAllAsRead(ctx context.Context, recipientID uuid.UUID) (int64, error) {
	args := m.Called(ctx, recipientID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *NotificationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *NotificationRepository) Count(ctx context.Context, recipientID uuid.UUID) (*domain.NotificationCount, error) {
	args := m.Called(ctx, recipientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.NotificationCount), args.Error(1)
}

type AuditLogRepository struct {
	mock.Mock
}

func (m *AuditLogRepository) Create(ctx context.Context, log *domain.AuditLog) error {
	args := m.Called(ctx, log)
	return args.Error(0)
}

func (m *AuditLogRepository) ListRecent(ctx context.Context, limit int) ([]domain.AuditLog, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]domain.AuditLog), args.Error(1)
}
