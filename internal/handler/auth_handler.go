package handler

import (
	"github.com/gofiber/fiber/v2"

	"recruitment-hub/internal/domain"
	"recruitment-hub/internal/service/auth"
)

type AuthHandler struct {
	authService auth.Service
}

func NewAuthHandler(authService auth.Service) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var input domain.RegisterInput
	if err := parseBody(c, &input); err != nil {
		return err
	}

	payload, err := h.authService.Register(c.UserContext(), input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(payload)
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var input domain.LoginInput
	if err := parseBody(c, &input); err != nil {
		return err
	}

	payload, err := h.authService.Login(c.UserContext(), input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(payload)
}
