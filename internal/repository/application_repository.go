package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"recruitment-hub/internal/domain"
)

type ApplicationRepository interface {
	Create(ctx context.Context, app *domain.Application) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Application, error)
	GetActive(ctx context.Context, vacancyID, candidateID uuid.UUID) (*domain.Application, error)
	Update(ctx context.Context, app *domain.Application) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filter domain.ApplicationFilter, params domain.PaginationParams) ([]domain.Application, int64, error)
	Count(ctx context.Context, filter domain.ApplicationFilter) (int64, error)
}

type applicationRepository struct {
	db *sqlx.DB
}

func NewApplicationRepository(db *sqlx.DB) ApplicationRepository {
	return &applicationRepository{db: db}
}

func (r *applicationRepository) Create(ctx context.Context, app *domain.Application) error {
	query := `
		INSERT INTO applications (id, vacancy_id, candidate_id, status, cover_letter, resume, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING applied_at, created_at, updated_at`

	err := r.db.QueryRowxContext(ctx, query,
		app.ID, app.VacancyID, app.CandidateID, app.Status, app.CoverLetter, app.Resume, app.Notes,
	).Scan(&app.AppliedAt, &app.CreatedAt, &app.UpdatedAt)
	return translateError(err)
}

func (r *applicationRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Application, error) {
	var app domain.Application
	query := `SELECT * FROM applications WHERE id = $1 AND NOT is_deleted`

	err := r.db.GetContext(ctx, &app, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &app, nil
}

func (r *applicationRepository) GetActive(ctx context.Context, vacancyID, candidateID uuid.UUID) (*domain.Application, error) {
	var app domain.Application
	query := `SELECT * FROM applications WHERE vacancy_id = $1 AND candidate_id = $2 AND NOT is_deleted`

	err := r.db.GetContext(ctx, &app, query, vacancyID, candidateID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &app, nil
}

func (r *applicationRepository) Update(ctx context.Context, app *domain.Application) error {
	query := `
		UPDATE applications
		SET status = $2, notes = $3, updated_at = NOW()
		WHERE id = $1 AND NOT is_deleted
		RETURNING updated_at`

	err := r.db.QueryRowxContext(ctx, query, app.ID, app.Status, app.Notes).Scan(&app.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.NewNotFoundError("Application")
	}
	return err
}

func (r *applicationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE applications SET is_deleted = TRUE, updated_at = NOW() WHERE id = $1 AND NOT is_deleted`
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}

func (r *applicationRepository) List(ctx context.Context, filter domain.ApplicationFilter, params domain.PaginationParams) ([]domain.Application, int64, error) {
	cond := applicationConditions(filter)

	var total int64
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM applications`+cond.where(), cond.args...); err != nil {
		return nil, 0, err
	}

	limitClause, args := cond.page(params.Limit, params.Offset())
	query := `SELECT * FROM applications` + cond.where() + ` ORDER BY applied_at DESC` + limitClause

	apps := []domain.Application{}
	err := r.db.SelectContext(ctx, &apps, query, args...)
	return apps, total, err
}

func (r *applicationRepository) Count(ctx context.Context, filter domain.ApplicationFilter) (int64, error) {
	cond := applicationConditions(filter)

	var total int64
	err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM applications`+cond.where(), cond.args...)
	return total, err
}

func applicationConditions(filter domain.ApplicationFilter) *conditions {
	cond := newConditions("NOT is_deleted")
	if filter.VacancyID != nil {
		cond.add("vacancy_id = $%d", *filter.VacancyID)
	}
	if filter.CandidateID != nil {
		cond.add("candidate_id = $%d", *filter.CandidateID)
	}
	if filter.Status != nil {
		cond.add("status = $%d", *filter.Status)
	}
	return cond
}
