package domain

import (
	"time"

	"github.com/google/uuid"
)

type ApplicationStatus string

const (
	ApplicationPending   ApplicationStatus = "PENDING"
	ApplicationReviewing ApplicationStatus = "REVIEWING"
	ApplicationInterview ApplicationStatus = "INTERVIEW"
	ApplicationOffered   ApplicationStatus = "OFFERED"
	ApplicationRejected  ApplicationStatus = "REJECTED"
	ApplicationAccepted  ApplicationStatus = "ACCEPTED"
)

func (s ApplicationStatus) IsValid() bool {
	switch s {
	case ApplicationPending, ApplicationReviewing, ApplicationInterview,
		ApplicationOffered, ApplicationRejected, ApplicationAccepted:
		return true
	default:
		return false
	}
}

// Application links one candidate to one vacancy. Status changes are not
// restricted: any status can be set from any other.
type Application struct {
	ID          uuid.UUID         `json:"id" db:"id"`
	VacancyID   uuid.UUID         `json:"vacancy_id" db:"vacancy_id"`
	CandidateID uuid.UUID         `json:"candidate_id" db:"candidate_id"`
	Status      ApplicationStatus `json:"status" db:"status"`
	CoverLetter string            `json:"cover_letter" db:"cover_letter"`
	Resume      string            `json:"resume" db:"resume"`
	Notes       string            `json:"notes" db:"notes"`
	AppliedAt   time.Time         `json:"applied_at" db:"applied_at"`
	IsDeleted   bool              `json:"-" db:"is_deleted"`
	CreatedAt   time.Time         `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at" db:"updated_at"`
}

type ApplyInput struct {
	VacancyID   uuid.UUID `json:"vacancy_id" validate:"required"`
	CoverLetter string    `json:"cover_letter,omitempty" validate:"max=5000"`
	Resume      string    `json:"resume" validate:"required"`
}

type UpdateApplicationInput struct {
	Status *ApplicationStatus `json:"status,omitempty" validate:"omitempty,oneof=PENDING REVIEWING INTERVIEW OFFERED REJECTED ACCEPTED"`
	Notes  *string            `json:"notes,omitempty" validate:"omitempty,max=2000"`
}

type ApplicationFilter struct {
	VacancyID   *uuid.UUID
	CandidateID *uuid.UUID
	Status      *ApplicationStatus
}
