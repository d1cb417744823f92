package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "booknest/internal/log"
	"booknest/internal/services"
	"booknest/internal/validate"
)

type CartHandler struct {
	Cart *services.CartService
}

type addToCartRequest struct {
	BookID string `json:"bookId"`
}

func (h *CartHandler) Add(c *fiber.Ctx) error {
	u := currentUser(c)
	var req addToCartRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	bookID, ok := validate.ID(req.BookID)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "missing bookId"})
	}
	if err := h.Cart.Add(u.ID, bookID); err != nil {
		return fail(c, err)
	}
	applog.Info(c, "cart.add", map[string]any{"user": u.ID, "book": bookID})
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"ok": true})
}

func (h *CartHandler) Remove(c *fiber.Ctx) error {
	u := currentUser(c)
	bookID, ok := validate.ID(c.Params("bookId"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid book id"})
	}
	if err := h.Cart.Remove(u.ID, bookID); err != nil {
		return fail(c, err)
	}
	applog.Info(c, "cart.remove", map[string]any{"user": u.ID, "book": bookID})
	return c.JSON(fiber.Map{"ok": true})
}

func (h *CartHandler) View(c *fiber.Ctx) error {
	u := currentUser(c)
	view, err := h.Cart.View(u.ID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(view)
}
