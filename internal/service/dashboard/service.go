package dashboard

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"recruitment-hub/internal/access"
	"recruitment-hub/internal/domain"
	"recruitment-hub/internal/repository"
)

const DefaultCacheTTL = time.Minute

type Stats struct {
	TotalVacancies      int64 `json:"total_vacancies"`
	OpenVacancies       int64 `json:"open_vacancies"`
	TotalApplications   int64 `json:"total_applications"`
	PendingApplications int64 `json:"pending_applications"`
	ScheduledInterviews int64 `json:"scheduled_interviews"`
}

type Service interface {
	GetStats(ctx context.Context, caller *domain.Account) (*Stats, error)
}

type service struct {
	vacancyRepo   repository.VacancyRepository
	appRepo       repository.ApplicationRepository
	interviewRepo repository.InterviewRepository
	gate          access.Gate
	redis         *redis.Client
	ttl           time.Duration
	now           func() time.Time
}

func NewService(
	vacancyRepo repository.VacancyRepository,
	appRepo repository.ApplicationRepository,
	interviewRepo repository.InterviewRepository,
	gate access.Gate,
	redis *redis.Client,
	ttl time.Duration,
) Service {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &service{
		vacancyRepo:   vacancyRepo,
		appRepo:       appRepo,
		interviewRepo: interviewRepo,
		gate:          gate,
		redis:         redis,
		ttl:           ttl,
		now:           time.Now,
	}
}

func cacheKey(accountID fmt.Stringer) string {
	return "dashboard:stats:" + accountID.String()
}

// GetStats is computed per caller: HR sees their own vacancies and every
// application, a candidate sees the open market and their own applications.
func (s *service) GetStats(ctx context.Context, caller *domain.Account) (*Stats, error) {
	if err := s.gate.Authorize(caller, access.ResourceDashboard, access.ActionRead); err != nil {
		return nil, err
	}

	key := cacheKey(caller.ID)
	if s.redis != nil {
		if cached, err := s.redis.Get(ctx, key).Result(); err == nil {
			var stats Stats
			if json.Unmarshal([]byte(cached), &stats) == nil {
				return &stats, nil
			}
		}
	}

	var (
		stats *Stats
		err   error
	)
	if caller.IsHR() {
		stats, err = s.hrStats(ctx, caller)
	} else {
		stats, err = s.candidateStats(ctx, caller)
	}
	if err != nil {
		return nil, err
	}

	if s.redis != nil {
		if statsJSON, err := json.Marshal(stats); err == nil {
			if err := s.redis.Set(ctx, key, statsJSON, s.ttl).Err(); err != nil {
				log.Warn().Err(err).Str("key", key).Msg("failed to cache dashboard stats")
			}
		}
	}

	return stats, nil
}

func (s *service) hrStats(ctx context.Context, caller *domain.Account) (*Stats, error) {
	open := domain.VacancyOpen
	pending := domain.ApplicationPending
	scheduled := domain.InterviewScheduled
	now := s.now()

	totalVacancies, err := s.vacancyRepo.Count(ctx, domain.VacancyFilter{CreatedBy: &caller.ID})
	if err != nil {
		return nil, err
	}
	openVacancies, err := s.vacancyRepo.Count(ctx, domain.VacancyFilter{CreatedBy: &caller.ID, Status: &open})
	if err != nil {
		return nil, err
	}
	totalApps, err := s.appRepo.Count(ctx, domain.ApplicationFilter{})
	if err != nil {
		return nil, err
	}
	pendingApps, err := s.appRepo.Count(ctx, domain.ApplicationFilter{Status: &pending})
	if err != nil {
		return nil, err
	}
	interviews, err := s.interviewRepo.Count(ctx, domain.InterviewFilter{
		InterviewerID:  &caller.ID,
		Status:         &scheduled,
		ScheduledAfter: &now,
	})
	if err != nil {
		return nil, err
	}

	return &Stats{
		TotalVacancies:      totalVacancies,
		OpenVacancies:       openVacancies,
		TotalApplications:   totalApps,
		PendingApplications: pendingApps,
		ScheduledInterviews: interviews,
	}, nil
}

func (s *service) candidateStats(ctx context.Context, caller *domain.Account) (*Stats, error) {
	open := domain.VacancyOpen
	pending := domain.ApplicationPending
	scheduled := domain.InterviewScheduled
	now := s.now()

	openVacancies, err := s.vacancyRepo.Count(ctx, domain.VacancyFilter{Status: &open})
	if err != nil {
		return nil, err
	}
	totalApps, err := s.appRepo.Count(ctx, domain.ApplicationFilter{CandidateID: &caller.ID})
	if err != nil {
		return nil, err
	}
	pendingApps, err := s.appRepo.Count(ctx, domain.ApplicationFilter{CandidateID: &caller.ID, Status: &pending})
	if err != nil {
		return nil, err
	}
	interviews, err := s.interviewRepo.Count(ctx, domain.InterviewFilter{
		CandidateID:    &caller.ID,
		Status:         &scheduled,
		ScheduledAfter: &now,
	})
	if err != nil {
		return nil, err
	}

	return &Stats{
		TotalVacancies:      openVacancies,
		OpenVacancies:       openVacancies,
		TotalApplications:   totalApps,
		PendingApplications: pendingApps,
		ScheduledInterviews: interviews,
	}, nil
}
