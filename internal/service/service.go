package service

import (
	"github.com/minio/minio-go/v7"
	"github.com/redis/go-redis/v9"

	"recruitment-hub/internal/access"
	"recruitment-hub/internal/config"
	"recruitment-hub/internal/eventbus"
	"recruitment-hub/internal/repository"
	"recruitment-hub/internal/service/account"
	"recruitment-hub/internal/service/application"
	"recruitment-hub/internal/service/audit"
	"recruitment-hub/internal/service/auth"
	"recruitment-hub/internal/service/dashboard"
	"recruitment-hub/internal/service/email"
	"recruitment-hub/internal/service/feedback"
	"recruitment-hub/internal/service/interview"
	"recruitment-hub/internal/service/notification"
	"recruitment-hub/internal/service/resume"
	"recruitment-hub/internal/service/subscription"
	"recruitment-hub/internal/service/vacancy"
)

type Services struct {
	Auth         auth.Service
	Account      account.Service
	Vacancy      vacancy.Service
	Application  application.Service
	Interview    interview.Service
	Feedback     feedback.Service
	Notification notification.Service
	Dashboard    dashboard.Service
	Resume       resume.Service
	Audit        audit.Service
	Subscription subscription.Service
	Email        email.Service
}

func NewServices(
	repos *repository.Repositories,
	bus *eventbus.Bus,
	gate access.Gate,
	redis *redis.Client,
	minioClient *minio.Client,
	cfg *config.Config,
) *Services {
	emailService := email.NewService(cfg)
	authService := auth.NewService(repos.Account, emailService, cfg)
	accountService := account.NewService(repos.Account, gate)
	vacancyService := vacancy.NewService(repos.Vacancy, gate)

	notificationService := notification.NewService(repos.Notification, repos.Account, bus, emailService, gate, cfg.Location())

	applicationService := application.NewService(repos.Application, repos.Vacancy, bus, gate)
	applicationService.SetNotificationService(notificationService)

	interviewService := interview.NewService(repos.Interview, repos.Application, repos.Vacancy, bus, gate)
	interviewService.SetNotificationService(notificationService)

	return &Services{
		Auth:         authService,
		Account:      accountService,
		Vacancy:      vacancyService,
		Application:  applicationService,
		Interview:    interviewService,
		Feedback:     feedback.NewService(repos.Feedback, repos.Interview, gate),
		Notification: notificationService,
		Dashboard:    dashboard.NewService(repos.Vacancy, repos.Application, repos.Interview, gate, redis, cfg.DashboardCacheTTL),
		Resume:       resume.NewService(minioClient, cfg, gate),
		Audit:        audit.NewService(repos.AuditLog, gate),
		Subscription: subscription.NewService(bus, gate),
		Email:        emailService,
	}
}
