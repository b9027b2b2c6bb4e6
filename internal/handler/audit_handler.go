package handler

import (
	"github.com/gofiber/fiber/v2"

	"recruitment-hub/internal/domain"
	"recruitment-hub/internal/middleware"
	"recruitment-hub/internal/service/audit"
)

type AuditHandler struct {
	auditService audit.Service
}

func NewAuditHandler(auditService audit.Service) *AuditHandler {
	return &AuditHandler{auditService: auditService}
}

func (h *AuditHandler) Recent(c *fiber.Ctx) error {
	logs, err := h.auditService.Recent(c.UserContext(), middleware.GetCurrentAccount(c), c.QueryInt("limit", audit.DefaultRecentLimit))
	if err != nil {
		return err
	}
	if logs == nil {
		logs = []domain.AuditLog{}
	}

	return c.Status(fiber.StatusOK).JSON(logs)
}
