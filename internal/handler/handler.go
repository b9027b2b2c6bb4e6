package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"recruitment-hub/internal/domain"
	"recruitment-hub/internal/middleware"
	"recruitment-hub/internal/service"
)

type Handlers struct {
	Auth         *AuthHandler
	Account      *AccountHandler
	Vacancy      *VacancyHandler
	Application  *ApplicationHandler
	Interview    *InterviewHandler
	Feedback     *FeedbackHandler
	Notification *NotificationHandler
	Dashboard    *DashboardHandler
	Audit        *AuditHandler
	Subscription *SubscriptionHandler
}

func NewHandlers(services *service.Services, heartbeat time.Duration) *Handlers {
	return &Handlers{
		Auth:         NewAuthHandler(services.Auth),
		Account:      NewAccountHandler(services.Account),
		Vacancy:      NewVacancyHandler(services.Vacancy),
		Application:  NewApplicationHandler(services.Application, services.Resume),
		Interview:    NewInterviewHandler(services.Interview, services.Feedback),
		Feedback:     NewFeedbackHandler(services.Feedback),
		Notification: NewNotificationHandler(services.Notification),
		Dashboard:    NewDashboardHandler(services.Dashboard),
		Audit:        NewAuditHandler(services.Audit),
		Subscription: NewSubscriptionHandler(services.Subscription, heartbeat),
	}
}

func parseID(c *fiber.Ctx, label string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return uuid.Nil, middleware.BadRequest("Invalid " + label + " ID")
	}
	return id, nil
}

// optionalQueryID reads a uuid query parameter; an absent parameter yields nil.
func optionalQueryID(c *fiber.Ctx, name, label string) (*uuid.UUID, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, middleware.BadRequest("Invalid " + label + " ID")
	}
	return &id, nil
}

func getPaginationParams(c *fiber.Ctx) domain.PaginationParams {
	params := domain.PaginationParams{
		Page:  c.QueryInt("page", 1),
		Limit: c.QueryInt("limit", domain.DefaultPageLimit),
	}
	params.Validate()
	return params
}

func getOffsetParams(c *fiber.Ctx) domain.OffsetParams {
	return domain.OffsetParams{
		Limit:  c.QueryInt("limit", 0),
		Offset: c.QueryInt("offset", 0),
	}
}

func parseBody(c *fiber.Ctx, out any) error {
	if err := c.BodyParser(out); err != nil {
		return middleware.BadRequest("Invalid request body")
	}
	return nil
}
