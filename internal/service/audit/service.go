package audit

import (
	"context"

	"recruitment-hub/internal/access"
	"recruitment-hub/internal/domain"
	"recruitment-hub/internal/repository"
)

const (
	DefaultRecentLimit = 20
	MaxRecentLimit     = 100
)

type Service interface {
	Recent(ctx context.Context, caller *domain.Account, limit int) ([]domain.AuditLog, error)
}

type service struct {
	auditRepo repository.AuditLogRepository
	gate      access.Gate
}

func NewService(auditRepo repository.AuditLogRepository, gate access.Gate) Service {
	return &service{
		auditRepo: auditRepo,
		gate:      gate,
	}
}

func (s *service) Recent(ctx context.Context, caller *domain.Account, limit int) ([]domain.AuditLog, error) {
	if err := s.gate.Authorize(caller, access.ResourceAudit, access.ActionList); err != nil {
		return nil, err
	}

	params := domain.OffsetParams{Limit: limit}
	params.Clamp(DefaultRecentLimit, MaxRecentLimit)
	return s.auditRepo.ListRecent(ctx, params.Limit)
}
