package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"recruitment-hub/internal/config"
	"recruitment-hub/internal/domain"
	"recruitment-hub/internal/mocks"
	"recruitment-hub/internal/service/auth"
)

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:  "test-secret",
		JWTExpiry:  time.Hour,
		BcryptCost: bcrypt.MinCost,
	}
}

func TestAuthService_Register(t *testing.T) {
	ctx := context.Background()
	input := domain.RegisterInput{
		Email:     "  Jane.Doe@Example.com ",
		Password:  "secret123",
		FirstName: "Jane",
		LastName:  "Doe",
		Role:      domain.RoleCandidate,
	}

	t.Run("Success", func(t *testing.T) {
		accountRepo := new(mocks.AccountRepository)
		emailSvc := new(mocks.EmailService)
		svc := auth.NewService(accountRepo, emailSvc, testConfig())
		welcomed := make(chan struct{})

		accountRepo.On("ExistsByEmail", ctx, "jane.doe@example.com").Return(false, nil).Once()
		accountRepo.On("Create", ctx, mock.MatchedBy(func(a *domain.Account) bool {
			return a.Email == "jane.doe@example.com" && a.PasswordHash != "secret123" && a.Role == domain.RoleCandidate
		})).Return(nil).Once()
		emailSvc.On("SendWelcomeEmail", mock.Anything, "jane.doe@example.com", "Jane Doe").
			Run(func(mock.Arguments) { close(welcomed) }).Return(nil).Once()

		payload, err := svc.Register(ctx, input)

		require.NoError(t, err)
		assert.NotEmpty(t, payload.Token)
		assert.Equal(t, "jane.doe@example.com", payload.Account.Email)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(payload.Account.PasswordHash), []byte("secret123")))

		claims, err := svc.ValidateToken(payload.Token)
		require.NoError(t, err)
		assert.Equal(t, payload.Account.ID, claims.AccountID)
		assert.Equal(t, domain.RoleCandidate, claims.Role)

		select {
		case <-welcomed:
		case <-time.After(time.Second):
			t.Fatal("welcome email was not sent")
		}
	})

	t.Run("Email Taken", func(t *testing.T) {
		accountRepo := new(mocks.AccountRepository)
		svc := auth.NewService(accountRepo, new(mocks.EmailService), testConfig())
		accountRepo.On("ExistsByEmail", ctx, "jane.doe@example.com").Return(true, nil).Once()

		_, err := svc.Register(ctx, input)

		assert.ErrorIs(t, err, domain.ErrConflict)
		assert.EqualError(t, err, "Email already registered")
		accountRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Validation Error", func(t *testing.T) {
		svc := auth.NewService(new(mocks.AccountRepository), new(mocks.EmailService), testConfig())
		bad := input
		bad.Email = "not-an-email"
		bad.Password = "123"

		_, err := svc.Register(ctx, bad)
		assert.EqualError(t, err, "Invalid email format, Password must be at least 6 characters")
	})
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()
	hash, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	require.NoError(t, err)
	account := &domain.Account{ID: uuid.New(), Email: "hr@example.com", PasswordHash: string(hash), Role: domain.RoleHR}

	t.Run("Success", func(t *testing.T) {
		accountRepo := new(mocks.AccountRepository)
		svc := auth.NewService(accountRepo, new(mocks.EmailService), testConfig())
		accountRepo.On("GetByEmail", ctx, "hr@example.com").Return(account, nil).Once()
		accountRepo.On("GetByID", ctx, account.ID).Return(account, nil).Once()

		payload, err := svc.Login(ctx, domain.LoginInput{Email: "HR@example.com", Password: "secret123"})
		require.NoError(t, err)

		got, err := svc.Authenticate(ctx, payload.Token)
		require.NoError(t, err)
		assert.Equal(t, account.ID, got.ID)
	})

	t.Run("Wrong Password", func(t *testing.T) {
		accountRepo := new(mocks.AccountRepository)
		svc := auth.NewService(accountRepo, new(mocks.EmailService), testConfig())
		accountRepo.On("GetByEmail", ctx, "hr@example.com").Return(account, nil).Once()

		_, err := svc.Login(ctx, domain.LoginInput{Email: "hr@example.com", Password: "wrong"})
		assert.ErrorIs(t, err, domain.ErrUnauthenticated)
		assert.EqualError(t, err, "Invalid email or password")
	})

	t.Run("Unknown Email", func(t *testing.T) {
		accountRepo := new(mocks.AccountRepository)
		svc := auth.NewService(accountRepo, new(mocks.EmailService), testConfig())
		accountRepo.On("GetByEmail", ctx, "nobody@example.com").Return(nil, nil).Once()

		_, err := svc.Login(ctx, domain.LoginInput{Email: "nobody@example.com", Password: "whatever"})
		assert.EqualError(t, err, "Invalid email or password")
	})
}

func TestAuthService_ValidateToken(t *testing.T) {
	svc := auth.NewService(new(mocks.AccountRepository), new(mocks.EmailService), testConfig())

	sign := func(secret string, expires time.Time) string {
		claims := &auth.Claims{
			AccountID:        uuid.New(),
			RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(expires)},
		}
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
		require.NoError(t, err)
		return token
	}

	t.Run("Expired", func(t *testing.T) {
		_, err := svc.ValidateToken(sign("test-secret", time.Now().Add(-time.Minute)))
		assert.ErrorIs(t, err, domain.ErrUnauthenticated)
	})

	t.Run("Wrong Secret", func(t *testing.T) {
		_, err := svc.ValidateToken(sign("other-secret", time.Now().Add(time.Hour)))
		assert.ErrorIs(t, err, domain.ErrUnauthenticated)
	})

	t.Run("Garbage", func(t *testing.T) {
		_, err := svc.ValidateToken("not.a.token")
		assert.EqualError(t, err, "Invalid or expired token")
	})
}
