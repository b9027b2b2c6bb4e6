package domain

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type VacancyStatus string

const (
	VacancyOpen   VacancyStatus = "OPEN"
	VacancyClosed VacancyStatus = "CLOSED"
	VacancyDraft  VacancyStatus = "DRAFT"
)

func (s VacancyStatus) IsValid() bool {
	switch s {
	case VacancyOpen, VacancyClosed, VacancyDraft:
		return true
	default:
		return false
	}
}

type VacancyType string

const (
	VacancyFullTime VacancyType = "FULL_TIME"
	VacancyPartTime VacancyType = "PART_TIME"
	VacancyContract VacancyType = "CONTRACT"
	VacancyRemote   VacancyType = "REMOTE"
)

func (t VacancyType) IsValid() bool {
	switch t {
	case VacancyFullTime, VacancyPartTime, VacancyContract, VacancyRemote:
		return true
	default:
		return false
	}
}

// Salary is stored as a single JSONB column.
type Salary struct {
	Min      float64 `json:"min" validate:"gte=0"`
	Max      float64 `json:"max" validate:"gte=0"`
	Currency string  `json:"currency" validate:"len=3"`
}

func (s Salary) Value() (driver.Value, error) {
	return json.Marshal(s)
}

func (s *Salary) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*s = Salary{}
		return nil
	case []byte:
		return json.Unmarshal(v, s)
	case string:
		return json.Unmarshal([]byte(v), s)
	default:
		return errors.New("unsupported salary column type")
	}
}

// Vacancy is a job posting. Only OPEN vacancies accept applications.
type Vacancy struct {
	ID               uuid.UUID      `json:"id" db:"id"`
	Title            string         `json:"title" db:"title"`
	Description      string         `json:"description" db:"description"`
	Requirements     pq.StringArray `json:"requirements" db:"requirements"`
	Salary           Salary         `json:"salary" db:"salary"`
	Location         string         `json:"location" db:"location"`
	Type             VacancyType    `json:"type" db:"type"`
	Status           VacancyStatus  `json:"status" db:"status"`
	Department       string         `json:"department" db:"department"`
	CreatedBy        uuid.UUID      `json:"created_by" db:"created_by"`
	ApplicationCount int64          `json:"application_count" db:"application_count"`
	IsDeleted        bool           `json:"-" db:"is_deleted"`
	CreatedAt        time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at" db:"updated_at"`
}

func (v *Vacancy) IsOpen() bool {
	return v.Status == VacancyOpen
}

type CreateVacancyInput struct {
	Title        string         `json:"title" validate:"required,max=200"`
	Description  string         `json:"description" validate:"required,max=10000"`
	Requirements []string       `json:"requirements" validate:"required,min=1"`
	Salary       Salary         `json:"salary"`
	Location     string         `json:"location" validate:"required,max=200"`
	Type         VacancyType    `json:"type" validate:"required,oneof=FULL_TIME PART_TIME CONTRACT REMOTE"`
	Department   string         `json:"department" validate:"required,max=100"`
	Status       *VacancyStatus `json:"status,omitempty" validate:"omitempty,oneof=OPEN CLOSED DRAFT"`
}

type UpdateVacancyInput struct {
	Title        *string        `json:"title,omitempty" validate:"omitempty,min=1,max=200"`
	Description  *string        `json:"description,omitempty" validate:"omitempty,min=1,max=10000"`
	Requirements []string       `json:"requirements,omitempty" validate:"omitempty,min=1"`
	Salary       *Salary        `json:"salary,omitempty"`
	Location     *string        `json:"location,omitempty" validate:"omitempty,min=1,max=200"`
	Type         *VacancyType   `json:"type,omitempty" validate:"omitempty,oneof=FULL_TIME PART_TIME CONTRACT REMOTE"`
	Status       *VacancyStatus `json:"status,omitempty" validate:"omitempty,oneof=OPEN CLOSED DRAFT"`
	Department   *string        `json:"department,omitempty" validate:"omitempty,min=1,max=100"`
}

type VacancyFilter struct {
	Status     *VacancyStatus
	Type       *VacancyType
	Department string
	Search     string
	CreatedBy  *uuid.UUID
}
