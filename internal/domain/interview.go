package domain

import (
	"database/sql/driver"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type InterviewStatus string

const (
	InterviewScheduled InterviewStatus = "SCHEDULED"
	InterviewCompleted InterviewStatus = "COMPLETED"
	InterviewCancelled InterviewStatus = "CANCELLED"
)

type InterviewType string

const (
	InterviewPhone  InterviewType = "PHONE"
	InterviewVideo  InterviewType = "VIDEO"
	InterviewOnsite InterviewType = "ONSITE"
)

// ScheduledAtLayout is the accepted wire format for interview timestamps.
const ScheduledAtLayout = time.RFC3339

// UUIDArray maps a uuid[] column through pq's text array codec.
type UUIDArray []uuid.UUID

func (a UUIDArray) Value() (driver.Value, error) {
	strs := make(pq.StringArray, len(a))
	for i, id := range a {
		strs[i] = id.String()
	}
	return strs.Value()
}

func (a *UUIDArray) Scan(src any) error {
	var strs pq.StringArray
	if err := strs.Scan(src); err != nil {
		return err
	}
	ids := make(UUIDArray, 0, len(strs))
	for _, s := range strs {
		id, err := uuid.Parse(s)
		if err != nil {
			return err
		}
		ids = append(ids, id)
	}
	*a = ids
	return nil
}

func (a UUIDArray) Contains(id uuid.UUID) bool {
	for _, v := range a {
		if v == id {
			return true
		}
	}
	return false
}

type Interview struct {
	ID             uuid.UUID       `json:"id" db:"id"`
	ApplicationID  uuid.UUID       `json:"application_id" db:"application_id"`
	ScheduledAt    time.Time       `json:"scheduled_at" db:"scheduled_at"`
	Duration       int             `json:"duration" db:"duration"`
	Type           InterviewType   `json:"type" db:"type"`
	Location       string          `json:"location" db:"location"`
	Status         InterviewStatus `json:"status" db:"status"`
	InterviewerIDs UUIDArray       `json:"interviewer_ids" db:"interviewer_ids"`
	Notes          string          `json:"notes" db:"notes"`
	IsDeleted      bool            `json:"-" db:"is_deleted"`
	CreatedAt      time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at" db:"updated_at"`
}

func (i *Interview) HasInterviewer(accountID uuid.UUID) bool {
	return i.InterviewerIDs.Contains(accountID)
}

type ScheduleInterviewInput struct {
	ApplicationID  uuid.UUID     `json:"application_id" validate:"required"`
	ScheduledAt    string        `json:"scheduled_at" validate:"required,datetime=2006-01-02T15:04:05Z07:00"`
	Duration       int           `json:"duration" validate:"gte=15,lte=480"`
	Type           InterviewType `json:"type" validate:"required,oneof=PHONE VIDEO ONSITE"`
	Location       string        `json:"location" validate:"required,max=500"`
	InterviewerIDs []uuid.UUID   `json:"interviewer_ids" validate:"required,min=1"`
	Notes          string        `json:"notes,omitempty" validate:"max=2000"`
}

type UpdateInterviewInput struct {
	ScheduledAt    *string          `json:"scheduled_at,omitempty" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
	Duration       *int             `json:"duration,omitempty" validate:"omitempty,gte=15,lte=480"`
	Type           *InterviewType   `json:"type,omitempty" validate:"omitempty,oneof=PHONE VIDEO ONSITE"`
	Location       *string          `json:"location,omitempty" validate:"omitempty,min=1,max=500"`
	Status         *InterviewStatus `json:"status,omitempty" validate:"omitempty,oneof=SCHEDULED COMPLETED CANCELLED"`
	InterviewerIDs []uuid.UUID      `json:"interviewer_ids,omitempty" validate:"omitempty,min=1"`
	Notes          *string          `json:"notes,omitempty" validate:"omitempty,max=2000"`
}

type InterviewFilter struct {
	ApplicationID  *uuid.UUID
	InterviewerID  *uuid.UUID
	CandidateID    *uuid.UUID
	Status         *InterviewStatus
	ScheduledAfter *time.Time
}
