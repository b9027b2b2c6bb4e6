package domain

import (
	"time"

	"github.com/google/uuid"
)

type Notification struct {
	ID                   uuid.UUID        `json:"id" db:"id"`
	RecipientID          uuid.UUID        `json:"recipient_id" db:"recipient_id"`
	Type                 NotificationType `json:"type" db:"type"`
	Title                string           `json:"title" db:"title"`
	Message              string           `json:"message" db:"message"`
	Read                 bool             `json:"read" db:"is_read"`
	RelatedApplicationID *uuid.UUID       `json:"related_application_id,omitempty" db:"related_application_id"`
	RelatedVacancyID     *uuid.UUID       `json:"related_vacancy_id,omitempty" db:"related_vacancy_id"`
	RelatedInterviewID   *uuid.UUID       `json:"related_interview_id,omitempty" db:"related_interview_id"`
	IsDeleted            bool             `json:"-" db:"is_deleted"`
	CreatedAt            time.Time        `json:"created_at" db:"created_at"`
	UpdatedAt            time.Time        `json:"updated_at" db:"updated_at"`
}

type NotificationType string

const (
	NotifApplicationReceived      NotificationType = "APPLICATION_RECEIVED"
	NotifApplicationStatusUpdated NotificationType = "APPLICATION_STATUS_UPDATED"
	NotifInterviewScheduled       NotificationType = "INTERVIEW_SCHEDULED"
	NotifInterviewReminder        NotificationType = "INTERVIEW_REMINDER"
	NotifFeedbackReceived         NotificationType = "FEEDBACK_RECEIVED"
)

type NotificationCount struct {
	Total  int64 `json:"total" db:"total"`
	Unread int64 `json:"unread" db:"unread"`
}

const (
	DefaultNotificationLimit = 20
	MaxNotificationLimit     = 50
)
