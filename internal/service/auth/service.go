package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"recruitment-hub/internal/config"
	"recruitment-hub/internal/domain"
	"recruitment-hub/internal/repository"
	"recruitment-hub/internal/service/email"
)

var (
	ErrInvalidCredentials = domain.NewUnauthenticatedError("Invalid email or password")
	ErrEmailExists        = domain.NewConflictError("Email already registered")
	ErrInvalidToken       = domain.NewUnauthenticatedError("Invalid or expired token")
	ErrAccountNotFound    = domain.NewUnauthenticatedError("Account no longer exists")
)

type Service interface {
	Register(ctx context.Context, input domain.RegisterInput) (*domain.AuthPayload, error)
	Login(ctx context.Context, input domain.LoginInput) (*domain.AuthPayload, error)
	ValidateToken(token string) (*Claims, error)
	Authenticate(ctx context.Context, token string) (*domain.Account, error)
}

type Claims struct {
	AccountID uuid.UUID   `json:"account_id"`
	Email     string      `json:"email"`
	Role      domain.Role `json:"role"`
	jwt.RegisteredClaims
}

type service struct {
	accountRepo  repository.AccountRepository
	emailService email.Service
	cfg          *config.Config
}

func NewService(accountRepo repository.AccountRepository, emailService email.Service, cfg *config.Config) Service {
	return &service{
		accountRepo:  accountRepo,
		emailService: emailService,
		cfg:          cfg,
	}
}

func (s *service) Register(ctx context.Context, input domain.RegisterInput) (*domain.AuthPayload, error) {
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	if err := domain.Validate(input); err != nil {
		return nil, err
	}

	exists, err := s.accountRepo.ExistsByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailExists
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), s.bcryptCost())
	if err != nil {
		return nil, err
	}

	account := &domain.Account{
		ID:           uuid.New(),
		Email:        input.Email,
		PasswordHash: string(hashedPassword),
		FirstName:    strings.TrimSpace(input.FirstName),
		LastName:     strings.TrimSpace(input.LastName),
		Role:         input.Role,
		Phone:        input.Phone,
		Skills:       input.Skills,
		Company:      input.Company,
		Position:     input.Position,
	}

	if err := s.accountRepo.Create(ctx, account); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return nil, ErrEmailExists
		}
		return nil, err
	}

	token, err := s.issueToken(account)
	if err != nil {
		return nil, err
	}

	go func() {
		if err := s.emailService.SendWelcomeEmail(context.Background(), account.Email, account.FullName()); err != nil {
			log.Error().Err(err).Str("account_id", account.ID.String()).Msg("failed to send welcome email")
		}
	}()

	log.Info().Str("account_id", account.ID.String()).Str("role", string(account.Role)).Msg("account registered")
	return &domain.AuthPayload{Token: token, Account: account}, nil
}

func (s *service) Login(ctx context.Context, input domain.LoginInput) (*domain.AuthPayload, error) {
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	if err := domain.Validate(input); err != nil {
		return nil, err
	}

	account, err := s.accountRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(input.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.issueToken(account)
	if err != nil {
		return nil, err
	}
	return &domain.AuthPayload{Token: token, Account: account}, nil
}

func (s *service) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.cfg.JWTSecret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// Authenticate resolves a bearer token to the live account it was issued for.
// Tokens of soft-deleted accounts stop working immediately.
func (s *service) Authenticate(ctx context.Context, tokenString string) (*domain.Account, error) {
	claims, err := s.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}

	account, err := s.accountRepo.GetByID(ctx, claims.AccountID)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, ErrAccountNotFound
	}
	return account, nil
}

func (s *service) issueToken(account *domain.Account) (string, error) {
	now := time.Now()
	claims := &Claims{
		AccountID: account.ID,
		Email:     account.Email,
		Role:      account.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.JWTExpiry)),
			IssuedAt:  jwt.NewNumericDate(now),
			Subject:   account.ID.String(),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.JWTSecret))
}

func (s *service) bcryptCost() int {
	if s.cfg.BcryptCost < bcrypt.MinCost || s.cfg.BcryptCost > bcrypt.MaxCost {
		return bcrypt.DefaultCost
	}
	return s.cfg.BcryptCost
}
