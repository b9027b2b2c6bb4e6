package account

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"recruitment-hub/internal/access"
	"recruitment-hub/internal/domain"
	"recruitment-hub/internal/repository"
)

const (
	DefaultListLimit = 20
	MaxListLimit     = 100
)

var ErrAccountNotFound = domain.NewNotFoundError("User")

type Service interface {
	Me(ctx context.Context, caller *domain.Account) (*domain.Account, error)
	GetByID(ctx context.Context, caller *domain.Account, id uuid.UUID) (*domain.Account, error)
	List(ctx context.Context, caller *domain.Account, filter domain.AccountFilter, params domain.OffsetParams) ([]domain.Account, error)
	Update(ctx context.Context, caller *domain.Account, input domain.UpdateAccountInput) (*domain.Account, error)
	Delete(ctx context.Context, caller *domain.Account) error
}

type service struct {
	accountRepo repository.AccountRepository
	gate        access.Gate
}

func NewService(accountRepo repository.AccountRepository, gate access.Gate) Service {
	return &service{
		accountRepo: accountRepo,
		gate:        gate,
	}
}

func (s *service) Me(ctx context.Context, caller *domain.Account) (*domain.Account, error) {
	if err := s.gate.RequireAuthenticated(caller); err != nil {
		return nil, err
	}
	return s.GetByID(ctx, caller, caller.ID)
}

func (s *service) GetByID(ctx context.Context, caller *domain.Account, id uuid.UUID) (*domain.Account, error) {
	if err := s.gate.Authorize(caller, access.ResourceAccount, access.ActionRead); err != nil {
		return nil, err
	}

	account, err := s.accountRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, ErrAccountNotFound
	}
	return account, nil
}

func (s *service) List(ctx context.Context, caller *domain.Account, filter domain.AccountFilter, params domain.OffsetParams) ([]domain.Account, error) {
	if err := s.gate.Authorize(caller, access.ResourceAccount, access.ActionList); err != nil {
		return nil, err
	}
	params.Clamp(DefaultListLimit, MaxListLimit)
	filter.Search = strings.TrimSpace(filter.Search)
	return s.accountRepo.List(ctx, filter, params)
}

// Update edits the caller's own profile. Email and role are fixed at registration.
func (s *service) Update(ctx context.Context, caller *domain.Account, input domain.UpdateAccountInput) (*domain.Account, error) {
	if err := s.gate.Authorize(caller, access.ResourceAccount, access.ActionUpdate); err != nil {
		return nil, err
	}
	if err := domain.Validate(input); err != nil {
		return nil, err
	}

	account, err := s.accountRepo.GetByID(ctx, caller.ID)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, ErrAccountNotFound
	}

	if input.FirstName != nil {
		account.FirstName = strings.TrimSpace(*input.FirstName)
	}
	if input.LastName != nil {
		account.LastName = strings.TrimSpace(*input.LastName)
	}
	if input.Phone != nil {
		account.Phone = input.Phone
	}
	if input.Avatar != nil {
		account.Avatar = input.Avatar
	}
	if input.Skills != nil {
		account.Skills = input.Skills
	}
	if input.Company != nil {
		account.Company = input.Company
	}
	if input.Position != nil {
		account.Position = input.Position
	}

	if err := s.accountRepo.Update(ctx, account); err != nil {
		return nil, err
	}
	return account, nil
}

func (s *service) Delete(ctx context.Context, caller *domain.Account) error {
	if err := s.gate.Authorize(caller, access.ResourceAccount, access.ActionDelete); err != nil {
		return err
	}
	if err := s.accountRepo.Delete(ctx, caller.ID); err != nil {
		return err
	}

	log.Info().Str("account_id", caller.ID.String()).Msg("account deleted")
	return nil
}
