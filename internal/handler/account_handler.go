package handler

import (
	"github.com/gofiber/fiber/v2"

	"recruitment-hub/internal/domain"
	"recruitment-hub/internal/middleware"
	"recruitment-hub/internal/service/account"
)

type AccountHandler struct {
	accountService account.Service
}

func NewAccountHandler(accountService account.Service) *AccountHandler {
	return &AccountHandler{accountService: accountService}
}

func (h *AccountHandler) Me(c *fiber.Ctx) error {
	me, err := h.accountService.Me(c.UserContext(), middleware.GetCurrentAccount(c))
	if err != nil {
		return err
	}
	return c.JSON(me)
}

func (h *AccountHandler) GetByID(c *fiber.Ctx) error {
	id, err := parseID(c, "user")
	if err != nil {
		return err
	}

	acc, err := h.accountService.GetByID(c.UserContext(), middleware.GetCurrentAccount(c), id)
	if err != nil {
		return err
	}
	return c.JSON(acc)
}

func (h *AccountHandler) List(c *fiber.Ctx) error {
	filter := domain.AccountFilter{Search: c.Query("search")}
	if raw := c.Query("role"); raw != "" {
		role := domain.Role(raw)
		if !role.IsValid() {
			return middleware.BadRequest("Invalid role")
		}
		filter.Role = &role
	}

	accounts, err := h.accountService.List(c.UserContext(), middleware.GetCurrentAccount(c), filter, getOffsetParams(c))
	if err != nil {
		return err
	}
	if accounts == nil {
		accounts = []domain.Account{}
	}
	return c.JSON(accounts)
}

func (h *AccountHandler) Update(c *fiber.Ctx) error {
	var input domain.UpdateAccountInput
	if err := parseBody(c, &input); err != nil {
		return err
	}

	acc, err := h.accountService.Update(c.UserContext(), middleware.GetCurrentAccount(c), input)
	if err != nil {
		return err
	}
	return c.JSON(acc)
}

func (h *AccountHandler) Delete(c *fiber.Ctx) error {
	if err := h.accountService.Delete(c.UserContext(), middleware.GetCurrentAccount(c)); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
