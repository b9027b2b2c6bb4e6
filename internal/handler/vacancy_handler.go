package handler

import (
	"github.com/gofiber/fiber/v2"

	"recruitment-hub/internal/domain"
	"recruitment-hub/internal/middleware"
	"recruitment-hub/internal/service/vacancy"
)

type VacancyHandler struct {
	vacancyService vacancy.Service
}

func NewVacancyHandler(vacancyService vacancy.Service) *VacancyHandler {
	return &VacancyHandler{vacancyService: vacancyService}
}

func (h *VacancyHandler) List(c *fiber.Ctx) error {
	filter := domain.VacancyFilter{
		Department: c.Query("department"),
		Search:     c.Query("search"),
	}
	if raw := c.Query("status"); raw != "" {
		status := domain.VacancyStatus(raw)
		if !status.IsValid() {
			return middleware.BadRequest("Invalid vacancy status")
		}
		filter.Status = &status
	}
	if raw := c.Query("type"); raw != "" {
		vacancyType := domain.VacancyType(raw)
		if !vacancyType.IsValid() {
			return middleware.BadRequest("Invalid vacancy type")
		}
		filter.Type = &vacancyType
	}

	result, err := h.vacancyService.List(c.UserContext(), filter, getPaginationParams(c))
	if err != nil {
		return err
	}
	return c.JSON(result)
}

func (h *VacancyHandler) ListMine(c *fiber.Ctx) error {
	result, err := h.vacancyService.ListMine(c.UserContext(), middleware.GetCurrentAccount(c), getPaginationParams(c))
	if err != nil {
		return err
	}
	return c.JSON(result)
}

func (h *VacancyHandler) GetByID(c *fiber.Ctx) error {
	id, err := parseID(c, "vacancy")
	if err != nil {
		return err
	}

	v, err := h.vacancyService.GetByID(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(v)
}

func (h *VacancyHandler) Create(c *fiber.Ctx) error {
	var input domain.CreateVacancyInput
	if err := parseBody(c, &input); err != nil {
		return err
	}

	v, err := h.vacancyService.Create(c.UserContext(), middleware.GetCurrentAccount(c), input)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(v)
}

func (h *VacancyHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c, "vacancy")
	if err != nil {
		return err
	}

	var input domain.UpdateVacancyInput
	if err := parseBody(c, &input); err != nil {
		return err
	}

	v, err := h.vacancyService.Update(c.UserContext(), middleware.GetCurrentAccount(c), id, input)
	if err != nil {
		return err
	}
	return c.JSON(v)
}

func (h *VacancyHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c, "vacancy")
	if err != nil {
		return err
	}

	if err := h.vacancyService.Delete(c.UserContext(), middleware.GetCurrentAccount(c), id); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
