package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"recruitment-hub/internal/domain"
)

type NotificationRepository interface {
	Create(ctx context.Context, notif *domain.Notification) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Notification, error)
	ListByRecipient(ctx context.Context, recipientID uuid.UUID, unreadOnly bool, params domain.OffsetParams) ([]domain.Notification, error)
	MarkAsRead(ctx context.Context, id uuid.UUID) error
	MarkAllAsRead(ctx context.Context, recipientID uuid.UUID) (int64, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context, recipientID uuid.UUID) (*domain.NotificationCount, error)
}

type notificationRepository struct {
	db *sqlx.DB
}

func NewNotificationRepository(db *sqlx.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(ctx context.Context, notif *domain.Notification) error {
	query := `
		INSERT INTO notifications (id, recipient_id, type, title, message, is_read,
			related_application_id, related_vacancy_id, related_interview_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at, updated_at`

	return r.db.QueryRowxContext(ctx, query,
		notif.ID, notif.RecipientID, notif.Type, notif.Title, notif.Message, notif.Read,
		notif.RelatedApplicationID, notif.RelatedVacancyID, notif.RelatedInterviewID,
	).Scan(&notif.CreatedAt, &notif.UpdatedAt)
}

func (r *notificationRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Notification, error) {
	var notif domain.Notification
	query := `SELECT * FROM notifications WHERE id = $1 AND NOT is_deleted`

	err := r.db.GetContext(ctx, &notif, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &notif, nil
}

func (r *notificationRepository) ListByRecipient(ctx context.Context, recipientID uuid.UUID, unreadOnly bool, params domain.OffsetParams) ([]domain.Notification, error) {
	cond := newConditions("NOT is_deleted")
	cond.add("recipient_id = $%d", recipientID)
	if unreadOnly {
		cond.clauses = append(cond.clauses, "NOT is_read")
	}

	limitClause, args := cond.page(params.Limit, params.Offset)
	query := `SELECT * FROM notifications` + cond.where() + ` ORDER BY created_at DESC` + limitClause

	notifications := []domain.Notification{}
	err := r.db.SelectContext(ctx, &notifications, query, args...)
	return notifications, err
}

func (r *notificationRepository) MarkAsRead(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE notifications SET is_read = TRUE, updated_at = NOW() WHERE id = $1 AND NOT is_deleted`
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}

func (r *notificationRepository) MarkAllAsRead(ctx context.Context, recipientID uuid.UUID) (int64, error) {
	query := `
		UPDATE notifications SET is_read = TRUE, updated_at = NOW()
		WHERE recipient_id = $1 AND NOT is_read AND NOT is_deleted`

	result, err := r.db.ExecContext(ctx, query, recipientID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func (r *notificationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE notifications SET is_deleted = TRUE, updated_at = NOW() WHERE id = $1 AND NOT is_deleted`
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}

func (r *notificationRepository) Count(ctx context.Context, recipientID uuid.UUID) (*domain.NotificationCount, error) {
	var count domain.NotificationCount
	query := `
		SELECT COUNT(*) AS total, COUNT(*) FILTER (WHERE NOT is_read) AS unread
		FROM notifications
		WHERE recipient_id = $1 AND NOT is_deleted`

	if err := r.db.GetContext(ctx, &count, query, recipientID); err != nil {
		return nil, err
	}
	return &count, nil
}
