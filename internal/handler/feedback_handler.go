package handler

import (
	"github.com/gofiber/fiber/v2"

	"recruitment-hub/internal/domain"
	"recruitment-hub/internal/middleware"
	"recruitment-hub/internal/service/feedback"
)

type FeedbackHandler struct {
	feedbackService feedback.Service
}

func NewFeedbackHandler(feedbackService feedback.Service) *FeedbackHandler {
	return &FeedbackHandler{feedbackService: feedbackService}
}

func (h *FeedbackHandler) List(c *fiber.Ctx) error {
	interviewID, err := optionalQueryID(c, "interview_id", "interview")
	if err != nil {
		return err
	}
	if interviewID == nil {
		return middleware.BadRequest("Interview ID is required")
	}

	list, err := h.feedbackService.ListByInterview(c.UserContext(), middleware.GetCurrentAccount(c), *interviewID)
	if err != nil {
		return err
	}
	if list == nil {
		list = []domain.Feedback{}
	}
	return c.JSON(list)
}

func (h *FeedbackHandler) GetByID(c *fiber.Ctx) error {
	id, err := parseID(c, "feedback")
	if err != nil {
		return err
	}

	fb, err := h.feedbackService.GetByID(c.UserContext(), middleware.GetCurrentAccount(c), id)
	if err != nil {
		return err
	}
	return c.JSON(fb)
}

func (h *FeedbackHandler) Submit(c *fiber.Ctx) error {
	var input domain.SubmitFeedbackInput
	if err := parseBody(c, &input); err != nil {
		return err
	}

	fb, err := h.feedbackService.Submit(c.UserContext(), middleware.GetCurrentAccount(c), input)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fb)
}

func (h *FeedbackHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c, "feedback")
	if err != nil {
		return err
	}

	var input domain.UpdateFeedbackInput
	if err := parseBody(c, &input); err != nil {
		return err
	}

	fb, err := h.feedbackService.Update(c.UserContext(), middleware.GetCurrentAccount(c), id, input)
	if err != nil {
		return err
	}
	return c.JSON(fb)
}

func (h *FeedbackHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c, "feedback")
	if err != nil {
		return err
	}

	if err := h.feedbackService.Delete(c.UserContext(), middleware.GetCurrentAccount(c), id); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
