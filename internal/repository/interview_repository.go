package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"recruitment-hub/internal/domain"
)

type InterviewRepository interface {
	Create(ctx context.Context, interview *domain.Interview) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Interview, error)
	Update(ctx context.Context, interview *domain.Interview) error
	List(ctx context.Context, filter domain.InterviewFilter) ([]domain.Interview, error)
	Count(ctx context.Context, filter domain.InterviewFilter) (int64, error)
}

type interviewRepository struct {
	db *sqlx.DB
}

func NewInterviewRepository(db *sqlx.DB) InterviewRepository {
	return &interviewRepository{db: db}
}

func (r *interviewRepository) Create(ctx context.Context, interview *domain.Interview) error {
	query := `
		INSERT INTO interviews (id, application_id, scheduled_at, duration, type, location, status, interviewer_ids, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at, updated_at`

	return r.db.QueryRowxContext(ctx, query,
		interview.ID, interview.ApplicationID, interview.ScheduledAt, interview.Duration, interview.Type,
		interview.Location, interview.Status, interview.InterviewerIDs, interview.Notes,
	).Scan(&interview.CreatedAt, &interview.UpdatedAt)
}

func (r *interviewRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Interview, error) {
	var interview domain.Interview
	query := `SELECT * FROM interviews WHERE id = $1 AND NOT is_deleted`

	err := r.db.GetContext(ctx, &interview, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &interview, nil
}

func (r *interviewRepository) Update(ctx context.Context, interview *domain.Interview) error {
	query := `
		UPDATE interviews
		SET scheduled_at = $2, duration = $3, type = $4, location = $5, status = $6,
			interviewer_ids = $7, notes = $8, updated_at = NOW()
		WHERE id = $1 AND NOT is_deleted
		RETURNING updated_at`

	err := r.db.QueryRowxContext(ctx, query,
		interview.ID, interview.ScheduledAt, interview.Duration, interview.Type, interview.Location,
		interview.Status, interview.InterviewerIDs, interview.Notes,
	).Scan(&interview.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.NewNotFoundError("Interview")
	}
	return err
}

func (r *interviewRepository) List(ctx context.Context, filter domain.InterviewFilter) ([]domain.Interview, error) {
	cond := interviewConditions(filter)
	query := `SELECT * FROM interviews` + cond.where() + ` ORDER BY scheduled_at ASC`

	interviews := []domain.Interview{}
	err := r.db.SelectContext(ctx, &interviews, query, cond.args...)
	return interviews, err
}

func (r *interviewRepository) Count(ctx context.Context, filter domain.InterviewFilter) (int64, error) {
	cond := interviewConditions(filter)

	var total int64
	err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM interviews`+cond.where(), cond.args...)
	return total, err
}

func interviewConditions(filter domain.InterviewFilter) *conditions {
	cond := newConditions("NOT is_deleted")
	if filter.ApplicationID != nil {
		cond.add("application_id = $%d", *filter.ApplicationID)
	}
	if filter.InterviewerID != nil {
		cond.add("$%d = ANY(interviewer_ids)", *filter.InterviewerID)
	}
	if filter.CandidateID != nil {
		cond.add("application_id IN (SELECT id FROM applications WHERE candidate_id = $%d AND NOT is_deleted)", *filter.CandidateID)
	}
	if filter.Status != nil {
		cond.add("status = $%d", *filter.Status)
	}
	if filter.ScheduledAfter != nil {
		cond.add("scheduled_at >= $%d", *filter.ScheduledAfter)
	}
	return cond
}
