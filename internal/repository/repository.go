package repository

import (
	"github.com/jmoiron/sqlx"
)

type Repositories struct {
	Account      AccountRepository
	Vacancy      VacancyRepository
	Application  ApplicationRepository
	Interview    InterviewRepository
	Feedback     FeedbackRepository
	Notification NotificationRepository
	AuditLog     AuditLogRepository
}

func NewRepositories(db *sqlx.DB) *Repositories {
	return &Repositories{
		Account:      NewAccountRepository(db),
		Vacancy:      NewVacancyRepository(db),
		Application:  NewApplicationRepository(db),
		Interview:    NewInterviewRepository(db),
		Feedback:     NewFeedbackRepository(db),
		Notification: NewNotificationRepository(db),
		AuditLog:     NewAuditLogRepository(db),
	}
}
