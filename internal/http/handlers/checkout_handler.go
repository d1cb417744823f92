package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "booknest/internal/log"
	"booknest/internal/services"
)

type CheckoutHandler struct {
	Svc *services.CheckoutService
}

func (h *CheckoutHandler) Checkout(c *fiber.Ctx) error {
	u := currentUser(c)
	receipt, err := h.Svc.Checkout(u.ID)
	if err != nil {
		applog.Error(c, "checkout.fail", err, map[string]any{"user": u.ID})
		return fail(c, err)
	}
	applog.Audit(c, "checkout.ok", map[string]any{
		"user": u.ID, "purchase": receipt.PurchaseID, "total": receipt.Total.String(),
	})
	return c.JSON(receipt)
}
