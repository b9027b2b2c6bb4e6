package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"recruitment-hub/internal/domain"
)

type VacancyRepository interface {
	Create(ctx context.Context, vacancy *domain.Vacancy) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Vacancy, error)
	Update(ctx context.Context, vacancy *domain.Vacancy) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filter domain.VacancyFilter, params domain.PaginationParams) ([]domain.Vacancy, int64, error)
	Count(ctx context.Context, filter domain.VacancyFilter) (int64, error)
}

type vacancyRepository struct {
	db *sqlx.DB
}

func NewVacancyRepository(db *sqlx.DB) VacancyRepository {
	return &vacancyRepository{db: db}
}

const vacancyColumns = `v.*,
	(SELECT COUNT(*) FROM applications a WHERE a.vacancy_id = v.id AND NOT a.is_deleted) AS application_count`

func (r *vacancyRepository) Create(ctx context.Context, vacancy *domain.Vacancy) error {
	query := `
		INSERT INTO vacancies (id, title, description, requirements, salary, location, type, status, department, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING created_at, updated_at`

	return r.db.QueryRowxContext(ctx, query,
		vacancy.ID, vacancy.Title, vacancy.Description, vacancy.Requirements, vacancy.Salary,
		vacancy.Location, vacancy.Type, vacancy.Status, vacancy.Department, vacancy.CreatedBy,
	).Scan(&vacancy.CreatedAt, &vacancy.UpdatedAt)
}

func (r *vacancyRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Vacancy, error) {
	var vacancy domain.Vacancy
	query := `SELECT ` + vacancyColumns + ` FROM vacancies v WHERE v.id = $1 AND NOT v.is_deleted`

	err := r.db.GetContext(ctx, &vacancy, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &vacancy, nil
}

func (r *vacancyRepository) Update(ctx context.Context, vacancy *domain.Vacancy) error {
	query := `
		UPDATE vacancies
		SET title = $2, description = $3, requirements = $4, salary = $5, location = $6,
			type = $7, status = $8, department = $9, updated_at = NOW()
		WHERE id = $1 AND NOT is_deleted
		RETURNING updated_at`

	err := r.db.QueryRowxContext(ctx, query,
		vacancy.ID, vacancy.Title, vacancy.Description, vacancy.Requirements, vacancy.Salary,
		vacancy.Location, vacancy.Type, vacancy.Status, vacancy.Department,
	).Scan(&vacancy.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.NewNotFoundError("Vacancy")
	}
	return err
}

func (r *vacancyRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE vacancies SET is_deleted = TRUE, updated_at = NOW() WHERE id = $1 AND NOT is_deleted`
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}

func (r *vacancyRepository) List(ctx context.Context, filter domain.VacancyFilter, params domain.PaginationParams) ([]domain.Vacancy, int64, error) {
	cond := vacancyConditions(filter)

	var total int64
	countQuery := `SELECT COUNT(*) FROM vacancies v` + cond.where()
	if err := r.db.GetContext(ctx, &total, countQuery, cond.args...); err != nil {
		return nil, 0, err
	}

	limitClause, args := cond.page(params.Limit, params.Offset())
	query := `SELECT ` + vacancyColumns + ` FROM vacancies v` + cond.where() +
		` ORDER BY v.created_at DESC` + limitClause

	vacancies := []domain.Vacancy{}
	err := r.db.SelectContext(ctx, &vacancies, query, args...)
	return vacancies, total, err
}

func (r *vacancyRepository) Count(ctx context.Context, filter domain.VacancyFilter) (int64, error) {
	cond := vacancyConditions(filter)

	var total int64
	err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM vacancies v`+cond.where(), cond.args...)
	return total, err
}

func vacancyConditions(filter domain.VacancyFilter) *conditions {
	cond := newConditions("NOT v.is_deleted")
	if filter.Status != nil {
		cond.add("v.status = $%d", *filter.Status)
	}
	if filter.Type != nil {
		cond.add("v.type = $%d", *filter.Type)
	}
	if filter.Department != "" {
		cond.add("v.department = $%d", filter.Department)
	}
	if filter.CreatedBy != nil {
		cond.add("v.created_by = $%d", *filter.CreatedBy)
	}
	if filter.Search != "" {
		cond.add("(v.title ILIKE $%[1]d OR v.description ILIKE $%[1]d OR v.department ILIKE $%[1]d)", likePattern(filter.Search))
	}
	return cond
}
