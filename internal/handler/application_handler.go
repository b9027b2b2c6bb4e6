package handler

import (
	"github.com/gofiber/fiber/v2"

	"recruitment-hub/internal/domain"
	"recruitment-hub/internal/middleware"
	"recruitment-hub/internal/service/application"
	"recruitment-hub/internal/service/resume"
)

type ApplicationHandler struct {
	appService    application.Service
	resumeService resume.Service
}

func NewApplicationHandler(appService application.Service, resumeService resume.Service) *ApplicationHandler {
	return &ApplicationHandler{
		appService:    appService,
		resumeService: resumeService,
	}
}

func (h *ApplicationHandler) List(c *fiber.Ctx) error {
	var filter domain.ApplicationFilter
	var err error
	if filter.VacancyID, err = optionalQueryID(c, "vacancy_id", "vacancy"); err != nil {
		return err
	}
	if filter.CandidateID, err = optionalQueryID(c, "candidate_id", "candidate"); err != nil {
		return err
	}
	if raw := c.Query("status"); raw != "" {
		status := domain.ApplicationStatus(raw)
		if !status.IsValid() {
			return middleware.BadRequest("Invalid application status")
		}
		filter.Status = &status
	}

	result, err := h.appService.List(c.UserContext(), middleware.GetCurrentAccount(c), filter, getPaginationParams(c))
	if err != nil {
		return err
	}
	return c.JSON(result)
}

func (h *ApplicationHandler) ListMine(c *fiber.Ctx) error {
	result, err := h.appService.ListMine(c.UserContext(), middleware.GetCurrentAccount(c), getPaginationParams(c))
	if err != nil {
		return err
	}
	return c.JSON(result)
}

func (h *ApplicationHandler) GetByID(c *fiber.Ctx) error {
	id, err := parseID(c, "application")
	if err != nil {
		return err
	}

	app, err := h.appService.GetByID(c.UserContext(), middleware.GetCurrentAccount(c), id)
	if err != nil {
		return err
	}
	return c.JSON(app)
}

func (h *ApplicationHandler) Apply(c *fiber.Ctx) error {
	var input domain.ApplyInput
	if err := parseBody(c, &input); err != nil {
		return err
	}

	app, err := h.appService.Apply(c.UserContext(), middleware.GetCurrentAccount(c), input)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(app)
}

func (h *ApplicationHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c, "application")
	if err != nil {
		return err
	}

	var input domain.UpdateApplicationInput
	if err := parseBody(c, &input); err != nil {
		return err
	}

	app, err := h.appService.Update(c.UserContext(), middleware.GetCurrentAccount(c), id, input)
	if err != nil {
		return err
	}
	return c.JSON(app)
}

func (h *ApplicationHandler) Withdraw(c *fiber.Ctx) error {
	id, err := parseID(c, "application")
	if err != nil {
		return err
	}

	if err := h.appService.Withdraw(c.UserContext(), middleware.GetCurrentAccount(c), id); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *ApplicationHandler) UploadResume(c *fiber.Ctx) error {
	file, err := c.FormFile("file")
	if err != nil {
		return middleware.BadRequest("File is required")
	}

	reader, err := file.Open()
	if err != nil {
		return middleware.BadRequest("Failed to read file")
	}
	defer reader.Close()

	upload, err := h.resumeService.Upload(c.UserContext(), middleware.GetCurrentAccount(c), file.Filename, file.Size, reader)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(upload)
}
