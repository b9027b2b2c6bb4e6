package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"recruitment-hub/internal/domain"
)

type AuditLogRepository interface {
	Create(ctx context.Context, log *domain.AuditLog) error
	ListRecent(ctx context.Context, limit int) ([]domain.AuditLog, error)
}

type auditLogRepository struct {
	db *sqlx.DB
}

func NewAuditLogRepository(db *sqlx.DB) AuditLogRepository {
	return &auditLogRepository{db: db}
}

func (r *auditLogRepository) Create(ctx context.Context, log *domain.AuditLog) error {
	details := log.Details
	if len(details) == 0 {
		details = []byte("{}")
	}

	query := `
		INSERT INTO audit_logs (id, actor_id, action, entity_type, entity_id, details)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at`

	return r.db.QueryRowxContext(ctx, query,
		log.ID, log.ActorID, log.Action, log.EntityType, log.EntityID, []byte(details),
	).Scan(&log.CreatedAt)
}

func (r *auditLogRepository) ListRecent(ctx context.Context, limit int) ([]domain.AuditLog, error) {
	query := `
		SELECT
			al.*,
			CASE WHEN a.id IS NULL THEN NULL ELSE a.first_name || ' ' || a.last_name END AS actor_name
		FROM audit_logs al
		LEFT JOIN accounts a ON al.actor_id = a.id
		ORDER BY al.created_at DESC
		LIMIT $1`

	logs := []domain.AuditLog{}
	err := r.db.SelectContext(ctx, &logs, query, limit)
	return logs, err
}
