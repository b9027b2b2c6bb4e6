package application

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"recruitment-hub/internal/access"
	"recruitment-hub/internal/domain"
	"recruitment-hub/internal/eventbus"
	"recruitment-hub/internal/repository"
	"recruitment-hub/internal/service/notification"
)

var (
	ErrApplicationNotFound = domain.NewNotFoundError("Application")
	ErrVacancyNotFound     = domain.NewNotFoundError("Vacancy")
	ErrAlreadyApplied      = domain.NewConflictError("You have already applied to this vacancy")
	ErrWithdrawNotOwner    = domain.NewForbiddenError("You can only withdraw your own applications")
	ErrViewNotOwner        = domain.NewForbiddenError("You can only view your own applications")
)

type Service interface {
	Apply(ctx context.Context, caller *domain.Account, input domain.ApplyInput) (*domain.Application, error)
	Update(ctx context.Context, caller *domain.Account, id uuid.UUID, input domain.UpdateApplicationInput) (*domain.Application, error)
	Withdraw(ctx context.Context, caller *domain.Account, id uuid.UUID) error
	GetByID(ctx context.Context, caller *domain.Account, id uuid.UUID) (*domain.Application, error)
	List(ctx context.Context, caller *domain.Account, filter domain.ApplicationFilter, params domain.PaginationParams) (domain.PaginatedResponse[domain.Application], error)
	ListMine(ctx context.Context, caller *domain.Account, params domain.PaginationParams) (domain.PaginatedResponse[domain.Application], error)
	SetNotificationService(notifSvc notification.Service)
}

type service struct {
	appRepo     repository.ApplicationRepository
	vacancyRepo repository.VacancyRepository
	publisher   eventbus.Publisher
	gate        access.Gate
	notifSvc    notification.Service
}

func NewService(
	appRepo repository.ApplicationRepository,
	vacancyRepo repository.VacancyRepository,
	publisher eventbus.Publisher,
	gate access.Gate,
) Service {
	return &service{
		appRepo:     appRepo,
		vacancyRepo: vacancyRepo,
		publisher:   publisher,
		gate:        gate,
	}
}

func (s *service) SetNotificationService(notifSvc notification.Service) {
	s.notifSvc = notifSvc
}

// Apply records a candidate's application to an open vacancy, then announces
// it on the bus and notifies the vacancy owner.
func (s *service) Apply(ctx context.Context, caller *domain.Account, input domain.ApplyInput) (*domain.Application, error) {
	if err := s.gate.Authorize(caller, access.ResourceApplication, access.ActionCreate); err != nil {
		return nil, err
	}
	if err := domain.Validate(input); err != nil {
		return nil, err
	}

	vacancy, err := s.vacancyRepo.GetByID(ctx, input.VacancyID)
	if err != nil {
		return nil, err
	}
	if vacancy == nil || !vacancy.IsOpen() {
		return nil, ErrVacancyNotFound
	}

	existing, err := s.appRepo.GetActive(ctx, vacancy.ID, caller.ID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrAlreadyApplied
	}

	app := &domain.Application{
		ID:          uuid.New(),
		VacancyID:   vacancy.ID,
		CandidateID: caller.ID,
		Status:      domain.ApplicationPending,
		CoverLetter: strings.TrimSpace(input.CoverLetter),
		Resume:      strings.TrimSpace(input.Resume),
	}

	if err := s.appRepo.Create(ctx, app); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return nil, ErrAlreadyApplied
		}
		return nil, err
	}

	s.publish(ctx, domain.TopicApplicationCreated, *app)

	if s.notifSvc != nil {
		if err := s.notifSvc.NotifyApplicationReceived(ctx, app, vacancy, caller); err != nil {
			log.Error().Err(err).Str("application_id", app.ID.String()).Msg("failed to notify vacancy owner")
		}
	}

	return app, nil
}

// Update changes status and notes. Any status may follow any other; only a
// real status change is announced and notified.
func (s *service) Update(ctx context.Context, caller *domain.Account, id uuid.UUID, input domain.UpdateApplicationInput) (*domain.Application, error) {
	if err := s.gate.Authorize(caller, access.ResourceApplication, access.ActionUpdate); err != nil {
		return nil, err
	}
	if err := domain.Validate(input); err != nil {
		return nil, err
	}

	app, err := s.appRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if app == nil {
		return nil, ErrApplicationNotFound
	}

	previous := app.Status
	if input.Status != nil {
		app.Status = *input.Status
	}
	if input.Notes != nil {
		app.Notes = *input.Notes
	}

	if err := s.appRepo.Update(ctx, app); err != nil {
		return nil, err
	}

	if input.Status == nil || *input.Status == previous {
		return app, nil
	}

	log.Info().
		Str("application_id", app.ID.String()).
		Str("from", string(previous)).
		Str("to", string(app.Status)).
		Msg("application status changed")

	s.publish(ctx, domain.TopicApplicationStatusChanged, *app)

	if s.notifSvc != nil {
		vacancy, err := s.vacancyRepo.GetByID(ctx, app.VacancyID)
		if err != nil {
			log.Warn().Err(err).Str("vacancy_id", app.VacancyID.String()).Msg("failed to load vacancy for notification")
		}
		if err := s.notifSvc.NotifyApplicationStatusUpdated(ctx, app, vacancy); err != nil {
			log.Error().Err(err).Str("application_id", app.ID.String()).Msg("failed to notify candidate")
		}
	}

	return app, nil
}

func (s *service) Withdraw(ctx context.Context, caller *domain.Account, id uuid.UUID) error {
	if err := s.gate.Authorize(caller, access.ResourceApplication, access.ActionDelete); err != nil {
		return err
	}

	app, err := s.appRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if app == nil {
		return ErrApplicationNotFound
	}
	if app.CandidateID != caller.ID {
		return ErrWithdrawNotOwner
	}

	return s.appRepo.Delete(ctx, id)
}

func (s *service) GetByID(ctx context.Context, caller *domain.Account, id uuid.UUID) (*domain.Application, error) {
	if err := s.gate.Authorize(caller, access.ResourceApplication, access.ActionRead); err != nil {
		return nil, err
	}

	app, err := s.appRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if app == nil {
		return nil, ErrApplicationNotFound
	}
	if caller.IsCandidate() && app.CandidateID != caller.ID {
		return nil, ErrViewNotOwner
	}
	return app, nil
}

func (s *service) List(ctx context.Context, caller *domain.Account, filter domain.ApplicationFilter, params domain.PaginationParams) (domain.PaginatedResponse[domain.Application], error) {
	if err := s.gate.Authorize(caller, access.ResourceApplication, access.ActionList); err != nil {
		return domain.PaginatedResponse[domain.Application]{}, err
	}
	params.Validate()

	apps, total, err := s.appRepo.List(ctx, filter, params)
	if err != nil {
		return domain.PaginatedResponse[domain.Application]{}, err
	}
	return domain.NewPaginatedResponse(apps, params, total), nil
}

func (s *service) ListMine(ctx context.Context, caller *domain.Account, params domain.PaginationParams) (domain.PaginatedResponse[domain.Application], error) {
	if err := s.gate.Authorize(caller, access.ResourceApplication, access.ActionListMine); err != nil {
		return domain.PaginatedResponse[domain.Application]{}, err
	}
	params.Validate()

	apps, total, err := s.appRepo.List(ctx, domain.ApplicationFilter{CandidateID: &caller.ID}, params)
	if err != nil {
		return domain.PaginatedResponse[domain.Application]{}, err
	}
	return domain.NewPaginatedResponse(apps, params, total), nil
}

func (s *service) publish(ctx context.Context, topic domain.EventTopic, payload any) {
	if err := s.publisher.Publish(ctx, topic, payload); err != nil {
		log.Warn().Err(err).Str("topic", string(topic)).Msg("failed to publish event")
	}
}
