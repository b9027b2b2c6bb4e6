package handler

import (
	"bufio"
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"recruitment-hub/internal/access"
	"recruitment-hub/internal/domain"
	"recruitment-hub/internal/middleware"
	"recruitment-hub/internal/mocks"
	"recruitment-hub/internal/service/vacancy"
)

func newTestApp(account *domain.Account) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler})
	app.Use(func(c *fiber.Ctx) error {
		if account != nil {
			c.Locals(middleware.AccountContextKey, account)
		}
		return c.Next()
	})
	return app
}

func TestVacancyHandler(t *testing.T) {
	hr := &domain.Account{ID: uuid.New(), Role: domain.RoleHR}

	setup := func(account *domain.Account) (*fiber.App, *mocks.VacancyRepository) {
		repo := new(mocks.VacancyRepository)
		h := NewVacancyHandler(vacancy.NewService(repo, access.MustNewGate()))

		app := newTestApp(account)
		app.Get("/vacancies", h.List)
		app.Get("/vacancies/:id", h.GetByID)
		app.Post("/vacancies", h.Create)
		return app, repo
	}

	t.Run("list defaults to open vacancies", func(t *testing.T) {
		app, repo := setup(nil)
		repo.On("List", mock.Anything, mock.MatchedBy(func(f domain.VacancyFilter) bool {
			return f.Status != nil && *f.Status == domain.VacancyOpen && f.Department == "Engineering"
		}), domain.PaginationParams{Page: 2, Limit: 5}).
			Return([]domain.Vacancy{{ID: uuid.New(), Title: "Backend"}}, int64(6), nil)

		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/vacancies?department=Engineering&page=2&limit=5", nil))
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var body domain.PaginatedResponse[domain.Vacancy]
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Len(t, body.Data, 1)
		assert.EqualValues(t, 6, body.Total)
		assert.Equal(t, 2, body.TotalPages)
		repo.AssertExpectations(t)
	})

	t.Run("list rejects unknown status", func(t *testing.T) {
		app, _ := setup(nil)
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/vacancies?status=ARCHIVED", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("get with malformed id", func(t *testing.T) {
		app, _ := setup(nil)
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/vacancies/not-a-uuid", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("get missing vacancy", func(t *testing.T) {
		app, repo := setup(nil)
		id := uuid.New()
		repo.On("GetByID", mock.Anything, id).Return(nil, nil)

		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/vacancies/"+id.String(), nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("create", func(t *testing.T) {
		app, repo := setup(hr)
		repo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Vacancy")).Return(nil)

		payload, _ := json.Marshal(domain.CreateVacancyInput{
			Title:        "  Backend Engineer ",
			Description:  "Build things",
			Requirements: []string{"Go"},
			Salary:       domain.Salary{Min: 10, Max: 20, Currency: "USD"},
			Location:     "Remote",
			Type:         domain.VacancyRemote,
			Department:   "Engineering",
		})
		req := httptest.NewRequest(http.MethodPost, "/vacancies", bytes.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")

		resp, err := app.Test(req)
		require.NoError(t, err)
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		var created domain.Vacancy
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
		assert.Equal(t, "Backend Engineer", created.Title)
		assert.Equal(t, domain.VacancyDraft, created.Status)
	})

	t.Run("create with malformed body", func(t *testing.T) {
		app, _ := setup(hr)
		req := httptest.NewRequest(http.MethodPost, "/vacancies", strings.NewReader("{"))
		req.Header.Set("Content-Type", "application/json")

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("create as anonymous", func(t *testing.T) {
		app, _ := setup(nil)
		req := httptest.NewRequest(http.MethodPost, "/vacancies", strings.NewReader("{}"))
		req.Header.Set("Content-Type", "application/json")

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}

func TestFeedbackHandler_ListRequiresInterview(t *testing.T) {
	app := newTestApp(&domain.Account{ID: uuid.New(), Role: domain.RoleHR})
	app.Get("/feedback", NewFeedbackHandler(nil).List)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/feedback", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/feedback?interview_id=nope", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestWriteEvent(t *testing.T) {
	var buf bytes.Buffer
	w := bufio.NewWriter(&buf)

	payload := domain.Notification{ID: uuid.New(), Title: "Interview Scheduled"}
	require.NoError(t, writeEvent(w, "notificationReceived", payload))

	frame := buf.String()
	assert.True(t, strings.HasPrefix(frame, "event: notificationReceived\ndata: {"))
	assert.True(t, strings.HasSuffix(frame, "}\n\n"))
	assert.Contains(t, frame, payload.ID.String())
}

func TestPaginationParams(t *testing.T) {
	app := fiber.New()
	var got domain.PaginationParams
	app.Get("/", func(c *fiber.Ctx) error {
		got = getPaginationParams(c)
		return nil
	})

	_, err := app.Test(httptest.NewRequest(http.MethodGet, "/?page=0&limit=500", nil))
	require.NoError(t, err)
	assert.Equal(t, 1, got.Page)
	assert.Equal(t, domain.MaxPageLimit, got.Limit)
}
