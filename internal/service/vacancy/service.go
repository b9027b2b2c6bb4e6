package vacancy

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"recruitment-hub/internal/access"
	"recruitment-hub/internal/domain"
	"recruitment-hub/internal/repository"
)

var (
	ErrVacancyNotFound = domain.NewNotFoundError("Vacancy")
	ErrUpdateNotOwner  = domain.NewForbiddenError("You can only update your own vacancies")
	ErrDeleteNotOwner  = domain.NewForbiddenError("You can only delete your own vacancies")
)

type Service interface {
	Create(ctx context.Context, caller *domain.Account, input domain.CreateVacancyInput) (*domain.Vacancy, error)
	Update(ctx context.Context, caller *domain.Account, id uuid.UUID, input domain.UpdateVacancyInput) (*domain.Vacancy, error)
	Delete(ctx context.Context, caller *domain.Account, id uuid.UUID) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Vacancy, error)
	List(ctx context.Context, filter domain.VacancyFilter, params domain.PaginationParams) (domain.PaginatedResponse[domain.Vacancy], error)
	ListMine(ctx context.Context, caller *domain.Account, params domain.PaginationParams) (domain.PaginatedResponse[domain.Vacancy], error)
}

type service struct {
	vacancyRepo repository.VacancyRepository
	gate        access.Gate
}

func NewService(vacancyRepo repository.VacancyRepository, gate access.Gate) Service {
	return &service{
		vacancyRepo: vacancyRepo,
		gate:        gate,
	}
}

func (s *service) Create(ctx context.Context, caller *domain.Account, input domain.CreateVacancyInput) (*domain.Vacancy, error) {
	if err := s.gate.Authorize(caller, access.ResourceVacancy, access.ActionCreate); err != nil {
		return nil, err
	}
	if err := domain.Validate(input); err != nil {
		return nil, err
	}

	status := domain.VacancyDraft
	if input.Status != nil {
		status = *input.Status
	}

	vacancy := &domain.Vacancy{
		ID:           uuid.New(),
		Title:        strings.TrimSpace(input.Title),
		Description:  input.Description,
		Requirements: input.Requirements,
		Salary:       input.Salary,
		Location:     strings.TrimSpace(input.Location),
		Type:         input.Type,
		Status:       status,
		Department:   strings.TrimSpace(input.Department),
		CreatedBy:    caller.ID,
	}

	if err := s.vacancyRepo.Create(ctx, vacancy); err != nil {
		return nil, err
	}

	log.Info().Str("vacancy_id", vacancy.ID.String()).Str("created_by", caller.ID.String()).Msg("vacancy created")
	return vacancy, nil
}

func (s *service) Update(ctx context.Context, caller *domain.Account, id uuid.UUID, input domain.UpdateVacancyInput) (*domain.Vacancy, error) {
	if err := s.gate.Authorize(caller, access.ResourceVacancy, access.ActionUpdate); err != nil {
		return nil, err
	}
	if err := domain.Validate(input); err != nil {
		return nil, err
	}

	vacancy, err := s.vacancyRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if vacancy == nil {
		return nil, ErrVacancyNotFound
	}
	if vacancy.CreatedBy != caller.ID {
		return nil, ErrUpdateNotOwner
	}

	if input.Title != nil {
		vacancy.Title = strings.TrimSpace(*input.Title)
	}
	if input.Description != nil {
		vacancy.Description = *input.Description
	}
	if input.Requirements != nil {
		vacancy.Requirements = input.Requirements
	}
	if input.Salary != nil {
		vacancy.Salary = *input.Salary
	}
	if input.Location != nil {
		vacancy.Location = strings.TrimSpace(*input.Location)
	}
	if input.Type != nil {
		vacancy.Type = *input.Type
	}
	if input.Status != nil {
		vacancy.Status = *input.Status
	}
	if input.Department != nil {
		vacancy.Department = strings.TrimSpace(*input.Department)
	}

	if err := s.vacancyRepo.Update(ctx, vacancy); err != nil {
		return nil, err
	}
	return vacancy, nil
}

func (s *service) Delete(ctx context.Context, caller *domain.Account, id uuid.UUID) error {
	if err := s.gate.Authorize(caller, access.ResourceVacancy, access.ActionDelete); err != nil {
		return err
	}

	vacancy, err := s.vacancyRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if vacancy == nil {
		return ErrVacancyNotFound
	}
	if vacancy.CreatedBy != caller.ID {
		return ErrDeleteNotOwner
	}

	return s.vacancyRepo.Delete(ctx, id)
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*domain.Vacancy, error) {
	vacancy, err := s.vacancyRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if vacancy == nil {
		return nil, ErrVacancyNotFound
	}
	return vacancy, nil
}

// List is the public listing. Without an explicit status only OPEN vacancies are shown.
func (s *service) List(ctx context.Context, filter domain.VacancyFilter, params domain.PaginationParams) (domain.PaginatedResponse[domain.Vacancy], error) {
	params.Validate()
	if filter.Status == nil {
		open := domain.VacancyOpen
		filter.Status = &open
	}

	vacancies, total, err := s.vacancyRepo.List(ctx, filter, params)
	if err != nil {
		return domain.PaginatedResponse[domain.Vacancy]{}, err
	}
	return domain.NewPaginatedResponse(vacancies, params, total), nil
}

func (s *service) ListMine(ctx context.Context, caller *domain.Account, params domain.PaginationParams) (domain.PaginatedResponse[domain.Vacancy], error) {
	if err := s.gate.Authorize(caller, access.ResourceVacancy, access.ActionListMine); err != nil {
		return domain.PaginatedResponse[domain.Vacancy]{}, err
	}
	params.Validate()

	vacancies, total, err := s.vacancyRepo.List(ctx, domain.VacancyFilter{CreatedBy: &caller.ID}, params)
	if err != nil {
		return domain.PaginatedResponse[domain.Vacancy]{}, err
	}
	return domain.NewPaginatedResponse(vacancies, params, total), nil
}
