package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type Role string

const (
	RoleHR        Role = "HR"
	RoleCandidate Role = "CANDIDATE"
)

func AllRoles() []Role {
	return []Role{RoleHR, RoleCandidate}
}

func (r Role) IsValid() bool {
	switch r {
	case RoleHR, RoleCandidate:
		return true
	default:
		return false
	}
}

type Account struct {
	ID           uuid.UUID      `json:"id" db:"id"`
	Email        string         `json:"email" db:"email"`
	PasswordHash string         `json:"-" db:"password_hash"`
	FirstName    string         `json:"first_name" db:"first_name"`
	LastName     string         `json:"last_name" db:"last_name"`
	Role         Role           `json:"role" db:"role"`
	Phone        *string        `json:"phone,omitempty" db:"phone"`
	Avatar       *string        `json:"avatar,omitempty" db:"avatar"`
	Skills       pq.StringArray `json:"skills" db:"skills"`
	Company      *string        `json:"company,omitempty" db:"company"`
	Position     *string        `json:"position,omitempty" db:"position"`
	IsDeleted    bool           `json:"-" db:"is_deleted"`
	CreatedAt    time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at" db:"updated_at"`
}

func (a *Account) FullName() string {
	return a.FirstName + " " + a.LastName
}

func (a *Account) IsHR() bool {
	return a.Role == RoleHR
}

func (a *Account) IsCandidate() bool {
	return a.Role == RoleCandidate
}

func (a Account) MarshalJSON() ([]byte, error) {
	type account Account
	return json.Marshal(struct {
		account
		FullName string `json:"full_name"`
	}{
		account:  account(a),
		FullName: a.FullName(),
	})
}

type RegisterInput struct {
	Email     string   `json:"email" validate:"required,email"`
	Password  string   `json:"password" validate:"required,min=6"`
	FirstName string   `json:"first_name" validate:"required,max=50"`
	LastName  string   `json:"last_name" validate:"required,max=50"`
	Role      Role     `json:"role" validate:"required,oneof=HR CANDIDATE"`
	Phone     *string  `json:"phone,omitempty"`
	Skills    []string `json:"skills,omitempty"`
	Company   *string  `json:"company,omitempty"`
	Position  *string  `json:"position,omitempty"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type UpdateAccountInput struct {
	FirstName *string  `json:"first_name,omitempty" validate:"omitempty,min=1,max=50"`
	LastName  *string  `json:"last_name,omitempty" validate:"omitempty,min=1,max=50"`
	Phone     *string  `json:"phone,omitempty"`
	Avatar    *string  `json:"avatar,omitempty" validate:"omitempty,url_or_empty"`
	Skills    []string `json:"skills,omitempty"`
	Company   *string  `json:"company,omitempty"`
	Position  *string  `json:"position,omitempty"`
}

type AccountFilter struct {
	Role   *Role
	Search string
}

type AuthPayload struct {
	Token   string   `json:"token"`
	Account *Account `json:"user"`
}
