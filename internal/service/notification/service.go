package notification

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"recruitment-hub/internal/access"
	"recruitment-hub/internal/domain"
	"recruitment-hub/internal/eventbus"
	"recruitment-hub/internal/pkg/i18n"
	"recruitment-hub/internal/repository"
	"recruitment-hub/internal/service/email"
)

// InterviewTimeLayout renders interview dates in notification messages.
const InterviewTimeLayout = "Mon, Jan 2, 03:04 PM"

var (
	ErrNotificationNotFound = domain.NewNotFoundError("Notification")
	ErrNotOwnNotification   = domain.NewForbiddenError("You can only modify your own notifications")
	ErrDeleteNotOwn         = domain.NewForbiddenError("You can only delete your own notifications")
)

type Service interface {
	List(ctx context.Context, caller *domain.Account, unreadOnly bool, params domain.OffsetParams) ([]domain.Notification, error)
	Count(ctx context.Context, caller *domain.Account) (*domain.NotificationCount, error)
	MarkAsRead(ctx context.Context, caller *domain.Account, id uuid.UUID) (*domain.Notification, error)
	MarkAllAsRead(ctx context.Context, caller *domain.Account) (int64, error)
	Delete(ctx context.Context, caller *domain.Account, id uuid.UUID) error

	NotifyApplicationReceived(ctx context.Context, app *domain.Application, vacancy *domain.Vacancy, candidate *domain.Account) error
	NotifyApplicationStatusUpdated(ctx context.Context, app *domain.Application, vacancy *domain.Vacancy) error
	NotifyInterviewScheduled(ctx context.Context, interview *domain.Interview, app *domain.Application, vacancy *domain.Vacancy) error
}

type service struct {
	notifRepo   repository.NotificationRepository
	accountRepo repository.AccountRepository
	publisher   eventbus.Publisher
	emailSvc    email.Service
	gate        access.Gate
	locale      string
	location    *time.Location
}

func NewService(
	notifRepo repository.NotificationRepository,
	accountRepo repository.AccountRepository,
	publisher eventbus.Publisher,
	emailSvc email.Service,
	gate access.Gate,
	location *time.Location,
) Service {
	if location == nil {
		location = time.UTC
	}
	return &service{
		notifRepo:   notifRepo,
		accountRepo: accountRepo,
		publisher:   publisher,
		emailSvc:    emailSvc,
		gate:        gate,
		locale:      i18n.DefaultLocale,
		location:    location,
	}
}

func (s *service) List(ctx context.Context, caller *domain.Account, unreadOnly bool, params domain.OffsetParams) ([]domain.Notification, error) {
	if err := s.gate.Authorize(caller, access.ResourceNotification, access.ActionList); err != nil {
		return nil, err
	}
	params.Clamp(domain.DefaultNotificationLimit, domain.MaxNotificationLimit)
	return s.notifRepo.ListByRecipient(ctx, caller.ID, unreadOnly, params)
}

func (s *service) Count(ctx context.Context, caller *domain.Account) (*domain.NotificationCount, error) {
	if err := s.gate.Authorize(caller, access.ResourceNotification, access.ActionList); err != nil {
		return nil, err
	}
	return s.notifRepo.Count(ctx, caller.ID)
}

func (s *service) MarkAsRead(ctx context.Context, caller *domain.Account, id uuid.UUID) (*domain.Notification, error) {
	if err := s.gate.Authorize(caller, access.ResourceNotification, access.ActionUpdate); err != nil {
		return nil, err
	}

	notif, err := s.notifRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if notif == nil {
		return nil, ErrNotificationNotFound
	}
	if notif.RecipientID != caller.ID {
		return nil, ErrNotOwnNotification
	}

	if !notif.Read {
		if err := s.notifRepo.MarkAsRead(ctx, id); err != nil {
			return nil, err
		}
		notif.Read = true
	}
	return notif, nil
}

func (s *service) MarkAllAsRead(ctx context.Context, caller *domain.Account) (int64, error) {
	if err := s.gate.Authorize(caller, access.ResourceNotification, access.ActionUpdate); err != nil {
		return 0, err
	}
	return s.notifRepo.MarkAllAsRead(ctx, caller.ID)
}

func (s *service) Delete(ctx context.Context, caller *domain.Account, id uuid.UUID) error {
	if err := s.gate.Authorize(caller, access.ResourceNotification, access.ActionDelete); err != nil {
		return err
	}

	notif, err := s.notifRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if notif == nil {
		return ErrNotificationNotFound
	}
	if notif.RecipientID != caller.ID {
		return ErrDeleteNotOwn
	}
	return s.notifRepo.Delete(ctx, id)
}

// NotifyApplicationReceived tells the vacancy owner about a new application.
// Nothing is created when the owner no longer exists.
func (s *service) NotifyApplicationReceived(ctx context.Context, app *domain.Application, vacancy *domain.Vacancy, candidate *domain.Account) error {
	owner, err := s.accountRepo.GetByID(ctx, vacancy.CreatedBy)
	if err != nil {
		return fmt.Errorf("failed to get vacancy owner: %w", err)
	}
	if owner == nil {
		return nil
	}

	name := i18n.Translate(s.locale, "NOTIFICATION.FALLBACK_CANDIDATE")
	if candidate != nil && candidate.FirstName != "" {
		name = candidate.FullName()
	}

	notif := &domain.Notification{
		ID:                   uuid.New(),
		RecipientID:          owner.ID,
		Type:                 domain.NotifApplicationReceived,
		Title:                i18n.Translate(s.locale, "NOTIFICATION.APPLICATION_RECEIVED_TITLE"),
		Message:              i18n.Format(s.locale, "NOTIFICATION.APPLICATION_RECEIVED_MESSAGE", name, vacancy.Title),
		RelatedApplicationID: &app.ID,
		RelatedVacancyID:     &vacancy.ID,
	}
	return s.deliver(ctx, notif, owner)
}

func (s *service) NotifyApplicationStatusUpdated(ctx context.Context, app *domain.Application, vacancy *domain.Vacancy) error {
	title := i18n.Translate(s.locale, "NOTIFICATION.FALLBACK_POSITION")
	if vacancy != nil {
		title = vacancy.Title
	}
	label := i18n.Translate(s.locale, "APPLICATION_STATUS."+string(app.Status))

	notif := &domain.Notification{
		ID:                   uuid.New(),
		RecipientID:          app.CandidateID,
		Type:                 domain.NotifApplicationStatusUpdated,
		Title:                i18n.Translate(s.locale, "NOTIFICATION.APPLICATION_STATUS_UPDATED_TITLE"),
		Message:              i18n.Format(s.locale, "NOTIFICATION.APPLICATION_STATUS_UPDATED_MESSAGE", title, label),
		RelatedApplicationID: &app.ID,
		RelatedVacancyID:     &app.VacancyID,
	}
	return s.deliver(ctx, notif, s.recipient(ctx, app.CandidateID))
}

func (s *service) NotifyInterviewScheduled(ctx context.Context, interview *domain.Interview, app *domain.Application, vacancy *domain.Vacancy) error {
	title := i18n.Translate(s.locale, "NOTIFICATION.FALLBACK_APPLICATION")
	if vacancy != nil {
		title = vacancy.Title
	}
	when := interview.ScheduledAt.In(s.location).Format(InterviewTimeLayout)

	notif := &domain.Notification{
		ID:                   uuid.New(),
		RecipientID:          app.CandidateID,
		Type:                 domain.NotifInterviewScheduled,
		Title:                i18n.Translate(s.locale, "NOTIFICATION.INTERVIEW_SCHEDULED_TITLE"),
		Message:              i18n.Format(s.locale, "NOTIFICATION.INTERVIEW_SCHEDULED_MESSAGE", title, when),
		RelatedApplicationID: &app.ID,
		RelatedVacancyID:     &app.VacancyID,
		RelatedInterviewID:   &interview.ID,
	}
	return s.deliver(ctx, notif, s.recipient(ctx, app.CandidateID))
}

func (s *service) recipient(ctx context.Context, id uuid.UUID) *domain.Account {
	account, err := s.accountRepo.GetByID(ctx, id)
	if err != nil {
		log.Warn().Err(err).Str("account_id", id.String()).Msg("failed to load notification recipient")
		return nil
	}
	return account
}

// deliver persists notif, publishes it, then mails a copy in the background.
func (s *service) deliver(ctx context.Context, notif *domain.Notification, recipient *domain.Account) error {
	if err := s.notifRepo.Create(ctx, notif); err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}

	if err := s.publisher.Publish(ctx, domain.TopicNotificationReceived, *notif); err != nil {
		log.Warn().Err(err).Str("notification_id", notif.ID.String()).Msg("failed to publish notification")
	}

	if s.emailSvc != nil && recipient != nil && recipient.Email != "" {
		go func(toEmail, name, title, message string) {
			if err := s.emailSvc.SendNotificationEmail(context.Background(), toEmail, name, title, message); err != nil {
				log.Error().Err(err).Str("to", toEmail).Msg("failed to send notification email")
			}
		}(recipient.Email, recipient.FullName(), notif.Title, notif.Message)
	}

	return nil
}
