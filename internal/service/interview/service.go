package interview

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"recruitment-hub/internal/access"
	"recruitment-hub/internal/domain"
	"recruitment-hub/internal/eventbus"
	"recruitment-hub/internal/repository"
	"recruitment-hub/internal/service/notification"
)

var (
	ErrInterviewNotFound   = domain.NewNotFoundError("Interview")
	ErrApplicationNotFound = domain.NewNotFoundError("Application")
	ErrInvalidDate         = domain.NewValidationError("Invalid date format")
)

type Service interface {
	Schedule(ctx context.Context, caller *domain.Account, input domain.ScheduleInterviewInput) (*domain.Interview, error)
	Update(ctx context.Context, caller *domain.Account, id uuid.UUID, input domain.UpdateInterviewInput) (*domain.Interview, error)
	Cancel(ctx context.Context, caller *domain.Account, id uuid.UUID) (*domain.Interview, error)
	GetByID(ctx context.Context, caller *domain.Account, id uuid.UUID) (*domain.Interview, error)
	List(ctx context.Context, caller *domain.Account, applicationID *uuid.UUID) ([]domain.Interview, error)
	ListMine(ctx context.Context, caller *domain.Account) ([]domain.Interview, error)
	SetNotificationService(notifSvc notification.Service)
}

type service struct {
	interviewRepo repository.InterviewRepository
	appRepo       repository.ApplicationRepository
	vacancyRepo   repository.VacancyRepository
	publisher     eventbus.Publisher
	gate          access.Gate
	notifSvc      notification.Service
}

func NewService(
	interviewRepo repository.InterviewRepository,
	appRepo repository.ApplicationRepository,
	vacancyRepo repository.VacancyRepository,
	publisher eventbus.Publisher,
	gate access.Gate,
) Service {
	return &service{
		interviewRepo: interviewRepo,
		appRepo:       appRepo,
		vacancyRepo:   vacancyRepo,
		publisher:     publisher,
		gate:          gate,
	}
}

func (s *service) SetNotificationService(notifSvc notification.Service) {
	s.notifSvc = notifSvc
}

// Schedule books an interview for an application and moves the application to
// the INTERVIEW stage whatever its current status is.
func (s *service) Schedule(ctx context.Context, caller *domain.Account, input domain.ScheduleInterviewInput) (*domain.Interview, error) {
	if err := s.gate.Authorize(caller, access.ResourceInterview, access.ActionCreate); err != nil {
		return nil, err
	}
	if err := domain.Validate(input); err != nil {
		return nil, err
	}
	scheduledAt, err := parseScheduledAt(input.ScheduledAt)
	if err != nil {
		return nil, err
	}

	app, err := s.appRepo.GetByID(ctx, input.ApplicationID)
	if err != nil {
		return nil, err
	}
	if app == nil {
		return nil, ErrApplicationNotFound
	}

	if app.Status != domain.ApplicationInterview {
		log.Info().
			Str("application_id", app.ID.String()).
			Str("from", string(app.Status)).
			Msg("moving application to interview stage")
	}
	app.Status = domain.ApplicationInterview
	if err := s.appRepo.Update(ctx, app); err != nil {
		return nil, err
	}

	interview := &domain.Interview{
		ID:             uuid.New(),
		ApplicationID:  app.ID,
		ScheduledAt:    scheduledAt,
		Duration:       input.Duration,
		Type:           input.Type,
		Location:       strings.TrimSpace(input.Location),
		Status:         domain.InterviewScheduled,
		InterviewerIDs: domain.UUIDArray(input.InterviewerIDs),
		Notes:          input.Notes,
	}
	if err := s.interviewRepo.Create(ctx, interview); err != nil {
		return nil, err
	}

	if err := s.publisher.Publish(ctx, domain.TopicInterviewScheduled, *interview); err != nil {
		log.Warn().Err(err).Str("interview_id", interview.ID.String()).Msg("failed to publish interview event")
	}

	if s.notifSvc != nil {
		vacancy, err := s.vacancyRepo.GetByID(ctx, app.VacancyID)
		if err != nil {
			log.Warn().Err(err).Str("vacancy_id", app.VacancyID.String()).Msg("failed to load vacancy for notification")
		}
		if err := s.notifSvc.NotifyInterviewScheduled(ctx, interview, app, vacancy); err != nil {
			log.Error().Err(err).Str("interview_id", interview.ID.String()).Msg("failed to notify candidate")
		}
	}

	return interview, nil
}

func (s *service) Update(ctx context.Context, caller *domain.Account, id uuid.UUID, input domain.UpdateInterviewInput) (*domain.Interview, error) {
	if err := s.gate.Authorize(caller, access.ResourceInterview, access.ActionUpdate); err != nil {
		return nil, err
	}
	if err := domain.Validate(input); err != nil {
		return nil, err
	}

	interview, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.ScheduledAt != nil {
		scheduledAt, err := parseScheduledAt(*input.ScheduledAt)
		if err != nil {
			return nil, err
		}
		interview.ScheduledAt = scheduledAt
	}
	if input.Duration != nil {
		interview.Duration = *input.Duration
	}
	if input.Type != nil {
		interview.Type = *input.Type
	}
	if input.Location != nil {
		interview.Location = strings.TrimSpace(*input.Location)
	}
	if input.Status != nil {
		interview.Status = *input.Status
	}
	if input.InterviewerIDs != nil {
		interview.InterviewerIDs = domain.UUIDArray(input.InterviewerIDs)
	}
	if input.Notes != nil {
		interview.Notes = *input.Notes
	}

	if err := s.interviewRepo.Update(ctx, interview); err != nil {
		return nil, err
	}
	return interview, nil
}

func (s *service) Cancel(ctx context.Context, caller *domain.Account, id uuid.UUID) (*domain.Interview, error) {
	if err := s.gate.Authorize(caller, access.ResourceInterview, access.ActionCancel); err != nil {
		return nil, err
	}

	interview, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	interview.Status = domain.InterviewCancelled
	if err := s.interviewRepo.Update(ctx, interview); err != nil {
		return nil, err
	}

	log.Info().Str("interview_id", id.String()).Str("cancelled_by", caller.ID.String()).Msg("interview cancelled")
	return interview, nil
}

func (s *service) GetByID(ctx context.Context, caller *domain.Account, id uuid.UUID) (*domain.Interview, error) {
	if err := s.gate.Authorize(caller, access.ResourceInterview, access.ActionRead); err != nil {
		return nil, err
	}
	return s.find(ctx, id)
}

func (s *service) List(ctx context.Context, caller *domain.Account, applicationID *uuid.UUID) ([]domain.Interview, error) {
	if err := s.gate.Authorize(caller, access.ResourceInterview, access.ActionList); err != nil {
		return nil, err
	}
	return s.interviewRepo.List(ctx, domain.InterviewFilter{ApplicationID: applicationID})
}

// ListMine returns the SCHEDULED interviews an HR caller sits on, or every
// interview attached to a candidate's applications.
func (s *service) ListMine(ctx context.Context, caller *domain.Account) ([]domain.Interview, error) {
	if err := s.gate.Authorize(caller, access.ResourceInterview, access.ActionListMine); err != nil {
		return nil, err
	}

	filter := domain.InterviewFilter{CandidateID: &caller.ID}
	if caller.IsHR() {
		scheduled := domain.InterviewScheduled
		filter = domain.InterviewFilter{InterviewerID: &caller.ID, Status: &scheduled}
	}
	return s.interviewRepo.List(ctx, filter)
}

func (s *service) find(ctx context.Context, id uuid.UUID) (*domain.Interview, error) {
	interview, err := s.interviewRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if interview == nil {
		return nil, ErrInterviewNotFound
	}
	return interview, nil
}

func parseScheduledAt(value string) (time.Time, error) {
	t, err := time.Parse(domain.ScheduledAtLayout, value)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return t.UTC(), nil
}
