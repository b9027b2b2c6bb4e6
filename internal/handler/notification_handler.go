package handler

import (
	"github.com/gofiber/fiber/v2"

	"recruitment-hub/internal/domain"
	"recruitment-hub/internal/middleware"
	"recruitment-hub/internal/service/notification"
)

type NotificationHandler struct {
	notifService notification.Service
}

func NewNotificationHandler(notifService notification.Service) *NotificationHandler {
	return &NotificationHandler{notifService: notifService}
}

func (h *NotificationHandler) List(c *fiber.Ctx) error {
	unreadOnly := c.QueryBool("unread_only", false)

	list, err := h.notifService.List(c.UserContext(), middleware.GetCurrentAccount(c), unreadOnly, getOffsetParams(c))
	if err != nil {
		return err
	}
	if list == nil {
		list = []domain.Notification{}
	}

	return c.Status(fiber.StatusOK).JSON(list)
}

func (h *NotificationHandler) Count(c *fiber.Ctx) error {
	count, err := h.notifService.Count(c.UserContext(), middleware.GetCurrentAccount(c))
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(count)
}

func (h *NotificationHandler) MarkAsRead(c *fiber.Ctx) error {
	id, err := parseID(c, "notification")
	if err != nil {
		return err
	}

	notif, err := h.notifService.MarkAsRead(c.UserContext(), middleware.GetCurrentAccount(c), id)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(notif)
}

func (h *NotificationHandler) MarkAllAsRead(c *fiber.Ctx) error {
	modified, err := h.notifService.MarkAllAsRead(c.UserContext(), middleware.GetCurrentAccount(c))
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"modified": modified})
}

func (h *NotificationHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c, "notification")
	if err != nil {
		return err
	}

	if err := h.notifService.Delete(c.UserContext(), middleware.GetCurrentAccount(c), id); err != nil {
		return err
	}

	return c.Status(fiber.StatusNoContent).SendString("")
}
