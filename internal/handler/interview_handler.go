package handler

import (
	"github.com/gofiber/fiber/v2"

	"recruitment-hub/internal/domain"
	"recruitment-hub/internal/middleware"
	"recruitment-hub/internal/service/feedback"
	"recruitment-hub/internal/service/interview"
)

type InterviewHandler struct {
	interviewService interview.Service
	feedbackService  feedback.Service
}

func NewInterviewHandler(interviewService interview.Service, feedbackService feedback.Service) *InterviewHandler {
	return &InterviewHandler{
		interviewService: interviewService,
		feedbackService:  feedbackService,
	}
}

func (h *InterviewHandler) List(c *fiber.Ctx) error {
	applicationID, err := optionalQueryID(c, "application_id", "application")
	if err != nil {
		return err
	}

	interviews, err := h.interviewService.List(c.UserContext(), middleware.GetCurrentAccount(c), applicationID)
	if err != nil {
		return err
	}
	if interviews == nil {
		interviews = []domain.Interview{}
	}
	return c.JSON(interviews)
}

func (h *InterviewHandler) ListMine(c *fiber.Ctx) error {
	interviews, err := h.interviewService.ListMine(c.UserContext(), middleware.GetCurrentAccount(c))
	if err != nil {
		return err
	}
	if interviews == nil {
		interviews = []domain.Interview{}
	}
	return c.JSON(interviews)
}

func (h *InterviewHandler) GetByID(c *fiber.Ctx) error {
	id, err := parseID(c, "interview")
	if err != nil {
		return err
	}

	iv, err := h.interviewService.GetByID(c.UserContext(), middleware.GetCurrentAccount(c), id)
	if err != nil {
		return err
	}
	return c.JSON(iv)
}

func (h *InterviewHandler) Rating(c *fiber.Ctx) error {
	id, err := parseID(c, "interview")
	if err != nil {
		return err
	}

	summary, err := h.feedbackService.AverageRating(c.UserContext(), middleware.GetCurrentAccount(c), id)
	if err != nil {
		return err
	}
	return c.JSON(summary)
}

func (h *InterviewHandler) Schedule(c *fiber.Ctx) error {
	var input domain.ScheduleInterviewInput
	if err := parseBody(c, &input); err != nil {
		return err
	}

	iv, err := h.interviewService.Schedule(c.UserContext(), middleware.GetCurrentAccount(c), input)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(iv)
}

func (h *InterviewHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c, "interview")
	if err != nil {
		return err
	}

	var input domain.UpdateInterviewInput
	if err := parseBody(c, &input); err != nil {
		return err
	}

	iv, err := h.interviewService.Update(c.UserContext(), middleware.GetCurrentAccount(c), id, input)
	if err != nil {
		return err
	}
	return c.JSON(iv)
}

func (h *InterviewHandler) Cancel(c *fiber.Ctx) error {
	id, err := parseID(c, "interview")
	if err != nil {
		return err
	}

	iv, err := h.interviewService.Cancel(c.UserContext(), middleware.GetCurrentAccount(c), id)
	if err != nil {
		return err
	}
	return c.JSON(iv)
}
