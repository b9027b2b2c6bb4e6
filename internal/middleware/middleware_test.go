package middleware_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"recruitment-hub/internal/access"
	"recruitment-hub/internal/domain"
	"recruitment-hub/internal/middleware"
	"recruitment-hub/internal/pkg/ratelimit"
	"recruitment-hub/internal/service/auth"
)

type mockAuthService struct {
	mock.Mock
}

func (m *mockAuthService) Register(ctx context.Context, input domain.RegisterInput) (*domain.AuthPayload, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AuthPayload), args.Error(1)
}

func (m *mockAuthService) Login(ctx context.Context, input domain.LoginInput) (*domain.AuthPayload, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AuthPayload), args.Error(1)
}

func (m *mockAuthService) ValidateToken(token string) (*auth.Claims, error) {
	args := m.Called(token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auth.Claims), args.Error(1)
}

func (m *mockAuthService) Authenticate(ctx context.Context, token string) (*domain.Account, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func newApp() *fiber.App {
	return fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler})
}

func decodeError(t *testing.T, resp *http.Response) middleware.ErrorResponse {
	t.Helper()
	defer resp.Body.Close()
	var body middleware.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

func TestErrorHandler(t *testing.T) {
	cases := []struct {
		name    string
		err     error
		status  int
		code    string
		message string
	}{
		{"unauthenticated", domain.NewUnauthenticatedError("You must be logged in"), http.StatusUnauthorized, "UNAUTHENTICATED", "You must be logged in"},
		{"forbidden", domain.NewForbiddenError("nope"), http.StatusForbidden, "FORBIDDEN", "nope"},
		{"not found", domain.NewNotFoundError("Vacancy"), http.StatusNotFound, "NOT_FOUND", "Vacancy not found"},
		{"validation", domain.NewValidationError("Title is required"), http.StatusBadRequest, "VALIDATION_ERROR", "Title is required"},
		{"conflict", domain.NewConflictError("Email already registered"), http.StatusConflict, "CONFLICT", "Email already registered"},
		{"wrapped domain error", errors.Join(errors.New("context"), domain.NewNotFoundError("Interview")), http.StatusNotFound, "NOT_FOUND", "Interview not found"},
		{"fiber error", middleware.BadRequest("Invalid vacancy ID"), http.StatusBadRequest, "BAD_REQUEST", "Invalid vacancy ID"},
		{"rate limited", fiber.NewError(fiber.StatusTooManyRequests, "slow down"), http.StatusTooManyRequests, "TOO_MANY_REQUESTS", "slow down"},
		{"unknown error is hidden", errors.New("pq: connection refused"), http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			app := newApp()
			app.Get("/", func(c *fiber.Ctx) error { return tc.err })

			resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
			require.NoError(t, err)
			assert.Equal(t, tc.status, resp.StatusCode)

			body := decodeError(t, resp)
			assert.Equal(t, tc.code, body.Code)
			assert.Equal(t, tc.message, body.Message)
			assert.NotEmpty(t, body.TraceID)
		})
	}
}

func TestAuthRequired(t *testing.T) {
	account := &domain.Account{ID: uuid.New(), Role: domain.RoleHR}

	setup := func(authService auth.Service) *fiber.App {
		app := newApp()
		app.Get("/me", middleware.AuthRequired(authService), func(c *fiber.Ctx) error {
			return c.JSON(middleware.GetCurrentAccount(c))
		})
		return app
	}

	t.Run("valid bearer token", func(t *testing.T) {
		authService := new(mockAuthService)
		authService.On("Authenticate", mock.Anything, "good").Return(account, nil)

		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer good")
		resp, err := setup(authService).Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		authService.AssertExpectations(t)
	})

	t.Run("missing header", func(t *testing.T) {
		resp, err := setup(new(mockAuthService)).Test(httptest.NewRequest(http.MethodGet, "/me", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("wrong scheme", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Basic abc")
		resp, err := setup(new(mockAuthService)).Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		assert.Equal(t, "Invalid authorization header format", decodeError(t, resp).Message)
	})

	t.Run("rejected token", func(t *testing.T) {
		authService := new(mockAuthService)
		authService.On("Authenticate", mock.Anything, "bad").Return(nil, auth.ErrInvalidToken)

		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer bad")
		resp, err := setup(authService).Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}

func TestStreamAuth(t *testing.T) {
	account := &domain.Account{ID: uuid.New(), Role: domain.RoleCandidate}
	authService := new(mockAuthService)
	authService.On("Authenticate", mock.Anything, "stream-token").Return(account, nil)

	app := newApp()
	app.Get("/events", middleware.StreamAuth(authService), func(c *fiber.Ctx) error {
		return c.SendString(middleware.GetCurrentAccount(c).ID.String())
	})

	t.Run("token from query", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/events?token=stream-token", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("token from header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/events", nil)
		req.Header.Set("Authorization", "Bearer stream-token")
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("no token", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/events", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}

func TestRequireRole(t *testing.T) {
	gate := access.MustNewGate()

	setup := func(account *domain.Account) *fiber.App {
		app := newApp()
		app.Use(func(c *fiber.Ctx) error {
			if account != nil {
				c.Locals(middleware.AccountContextKey, account)
			}
			return c.Next()
		})
		app.Post("/vacancies", middleware.RequireRole(gate, domain.RoleHR), func(c *fiber.Ctx) error {
			return c.SendStatus(http.StatusCreated)
		})
		return app
	}

	t.Run("allowed role", func(t *testing.T) {
		resp, err := setup(&domain.Account{ID: uuid.New(), Role: domain.RoleHR}).Test(httptest.NewRequest(http.MethodPost, "/vacancies", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusCreated, resp.StatusCode)
	})

	t.Run("other role", func(t *testing.T) {
		resp, err := setup(&domain.Account{ID: uuid.New(), Role: domain.RoleCandidate}).Test(httptest.NewRequest(http.MethodPost, "/vacancies", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
		assert.Equal(t, "This action requires one of these roles: HR", decodeError(t, resp).Message)
	})

	t.Run("anonymous", func(t *testing.T) {
		resp, err := setup(nil).Test(httptest.NewRequest(http.MethodPost, "/vacancies", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}

func TestRateLimit(t *testing.T) {
	app := newApp()
	app.Post("/login", middleware.RateLimit(ratelimit.NewLocalLimiter(2, time.Minute)), func(c *fiber.Ctx) error {
		return c.SendStatus(http.StatusOK)
	})

	for i := 0; i < 2; i++ {
		resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/login", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	}

	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/login", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	assert.Equal(t, "TOO_MANY_REQUESTS", decodeError(t, resp).Code)
}
