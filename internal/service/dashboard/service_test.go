package dashboard_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"recruitment-hub/internal/access"
	"recruitment-hub/internal/domain"
	"recruitment-hub/internal/mocks"
	"recruitment-hub/internal/service/dashboard"
)

func TestDashboardService_GetStats(t *testing.T) {
	ctx := context.Background()
	gate := access.MustNewGate()

	t.Run("HR", func(t *testing.T) {
		vacancyRepo := new(mocks.VacancyRepository)
		appRepo := new(mocks.ApplicationRepository)
		interviewRepo := new(mocks.InterviewRepository)
		svc := dashboard.NewService(vacancyRepo, appRepo, interviewRepo, gate, nil, 0)
		hr := &domain.Account{ID: uuid.New(), Role: domain.RoleHR}

		vacancyRepo.On("Count", ctx, mock.MatchedBy(func(f domain.VacancyFilter) bool {
			return *f.CreatedBy == hr.ID && f.Status == nil
		})).Return(int64(4), nil).Once()
		vacancyRepo.On("Count", ctx, mock.MatchedBy(func(f domain.VacancyFilter) bool {
			return *f.CreatedBy == hr.ID && f.Status != nil && *f.Status == domain.VacancyOpen
		})).Return(int64(3), nil).Once()
		appRepo.On("Count", ctx, domain.ApplicationFilter{}).Return(int64(12), nil).Once()
		appRepo.On("Count", ctx, mock.MatchedBy(func(f domain.ApplicationFilter) bool {
			return f.Status != nil && *f.Status == domain.ApplicationPending && f.CandidateID == nil
		})).Return(int64(5), nil).Once()
		interviewRepo.On("Count", ctx, mock.MatchedBy(func(f domain.InterviewFilter) bool {
			return *f.InterviewerID == hr.ID && *f.Status == domain.InterviewScheduled && f.ScheduledAfter != nil
		})).Return(int64(2), nil).Once()

		stats, err := svc.GetStats(ctx, hr)

		require.NoError(t, err)
		assert.Equal(t, &dashboard.Stats{
			TotalVacancies:      4,
			OpenVacancies:       3,
			TotalApplications:   12,
			PendingApplications: 5,
			ScheduledInterviews: 2,
		}, stats)
	})

	t.Run("Candidate", func(t *testing.T) {
		vacancyRepo := new(mocks.VacancyRepository)
		appRepo := new(mocks.ApplicationRepository)
		interviewRepo := new(mocks.InterviewRepository)
		svc := dashboard.NewService(vacancyRepo, appRepo, interviewRepo, gate, nil, 0)
		candidate := &domain.Account{ID: uuid.New(), Role: domain.RoleCandidate}

		vacancyRepo.On("Count", ctx, mock.MatchedBy(func(f domain.VacancyFilter) bool {
			return f.CreatedBy == nil && *f.Status == domain.VacancyOpen
		})).Return(int64(9), nil).Once()
		appRepo.On("Count", ctx, mock.MatchedBy(func(f domain.ApplicationFilter) bool {
			return *f.CandidateID == candidate.ID && f.Status == nil
		})).Return(int64(2), nil).Once()
		appRepo.On("Count", ctx, mock.MatchedBy(func(f domain.ApplicationFilter) bool {
			return *f.CandidateID == candidate.ID && f.Status != nil
		})).Return(int64(1), nil).Once()
		interviewRepo.On("Count", ctx, mock.MatchedBy(func(f domain.InterviewFilter) bool {
			return *f.CandidateID == candidate.ID && f.InterviewerID == nil
		})).Return(int64(1), nil).Once()

		stats, err := svc.GetStats(ctx, candidate)

		require.NoError(t, err)
		assert.Equal(t, int64(9), stats.TotalVacancies)
		assert.Equal(t, int64(9), stats.OpenVacancies)
		assert.Equal(t, int64(2), stats.TotalApplications)
		assert.Equal(t, int64(1), stats.PendingApplications)
		assert.Equal(t, int64(1), stats.ScheduledInterviews)
	})

	t.Run("Unauthenticated", func(t *testing.T) {
		svc := dashboard.NewService(new(mocks.VacancyRepository), new(mocks.ApplicationRepository), new(mocks.InterviewRepository), gate, nil, 0)
		_, err := svc.GetStats(ctx, nil)
		assert.ErrorIs(t, err, domain.ErrUnauthenticated)
	})
}
