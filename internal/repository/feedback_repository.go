package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"recruitment-hub/internal/domain"
)

type FeedbackRepository interface {
	Create(ctx context.Context, feedback *domain.Feedback) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Feedback, error)
	GetByAuthor(ctx context.Context, interviewID, authorID uuid.UUID) (*domain.Feedback, error)
	Update(ctx context.Context, feedback *domain.Feedback) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListByInterview(ctx context.Context, interviewID uuid.UUID) ([]domain.Feedback, error)
	AverageRating(ctx context.Context, interviewID uuid.UUID) (float64, error)
}

type feedbackRepository struct {
	db *sqlx.DB
}

func NewFeedbackRepository(db *sqlx.DB) FeedbackRepository {
	return &feedbackRepository{db: db}
}

func (r *feedbackRepository) Create(ctx context.Context, feedback *domain.Feedback) error {
	query := `
		INSERT INTO feedbacks (id, interview_id, author_id, rating, technical_skills, communication,
			culture_fit, comments, recommendation)
		VALUES (:id, :interview_id, :author_id, :rating, :technical_skills, :communication,
			:culture_fit, :comments, :recommendation)
		RETURNING created_at, updated_at`

	rows, err := r.db.NamedQueryContext(ctx, query, feedback)
	if err != nil {
		return translateError(err)
	}
	defer rows.Close()

	if rows.Next() {
		if err := rows.Scan(&feedback.CreatedAt, &feedback.UpdatedAt); err != nil {
			return err
		}
	}
	return translateError(rows.Err())
}

func (r *feedbackRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Feedback, error) {
	var feedback domain.Feedback
	query := `SELECT * FROM feedbacks WHERE id = $1 AND NOT is_deleted`

	err := r.db.GetContext(ctx, &feedback, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &feedback, nil
}

func (r *feedbackRepository) GetByAuthor(ctx context.Context, interviewID, authorID uuid.UUID) (*domain.Feedback, error) {
	var feedback domain.Feedback
	query := `SELECT * FROM feedbacks WHERE interview_id = $1 AND author_id = $2 AND NOT is_deleted`

	err := r.db.GetContext(ctx, &feedback, query, interviewID, authorID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &feedback, nil
}

func (r *feedbackRepository) Update(ctx context.Context, feedback *domain.Feedback) error {
	query := `
		UPDATE feedbacks
		SET rating = $2, technical_skills = $3, communication = $4, culture_fit = $5,
			comments = $6, recommendation = $7, updated_at = NOW()
		WHERE id = $1 AND NOT is_deleted
		RETURNING updated_at`

	err := r.db.QueryRowxContext(ctx, query,
		feedback.ID, feedback.Rating, feedback.TechnicalSkills, feedback.Communication,
		feedback.CultureFit, feedback.Comments, feedback.Recommendation,
	).Scan(&feedback.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.NewNotFoundError("Feedback")
	}
	return err
}

func (r *feedbackRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE feedbacks SET is_deleted = TRUE, updated_at = NOW() WHERE id = $1 AND NOT is_deleted`
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}

func (r *feedbackRepository) ListByInterview(ctx context.Context, interviewID uuid.UUID) ([]domain.Feedback, error) {
	query := `
		SELECT * FROM feedbacks
		WHERE interview_id = $1 AND NOT is_deleted
		ORDER BY created_at DESC`

	feedbacks := []domain.Feedback{}
	err := r.db.SelectContext(ctx, &feedbacks, query, interviewID)
	return feedbacks, err
}

// AverageRating returns the mean overall rating across live feedback, or 0
// when the interview has none.
func (r *feedbackRepository) AverageRating(ctx context.Context, interviewID uuid.UUID) (float64, error) {
	var avg float64
	query := `SELECT COALESCE(AVG(rating), 0)::float8 FROM feedbacks WHERE interview_id = $1 AND NOT is_deleted`
	err := r.db.GetContext(ctx, &avg, query, interviewID)
	return avg, err
}
