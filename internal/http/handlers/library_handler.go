package handlers

import (
	"database/sql"
	"errors"

	"github.com/gofiber/fiber/v2"

	"booknest/internal/repos"
	"booknest/internal/services"
	"booknest/internal/validate"
)

type LibraryHandler struct {
	Library   *repos.LibraryRepo
	Purchases *repos.PurchaseRepo
}

func (h *LibraryHandler) List(c *fiber.Ctx) error {
	u := currentUser(c)
	books, err := h.Library.List(u.ID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"books": books})
}

func (h *LibraryHandler) Detail(c *fiber.Ctx) error {
	u := currentUser(c)
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid book id"})
	}
	b, err := h.Library.Get(u.ID, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fail(c, services.ErrNotOwned)
		}
		return fail(c, err)
	}
	return c.JSON(b)
}

func (h *LibraryHandler) History(c *fiber.Ctx) error {
	u := currentUser(c)
	ps, err := h.Purchases.ByUser(u.ID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"purchases": ps})
}
