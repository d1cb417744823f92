package handlers

import (
	"github.com/gofiber/fiber/v2"

	"booknest/internal/services"
	"booknest/internal/validate"
)

type CatalogHandler struct {
	Catalog *services.CatalogService
}

func (h *CatalogHandler) List(c *fiber.Ctx) error {
	if genre := c.Query("genre"); genre != "" {
		g, ok := validate.Q(genre)
		if !ok {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid genre"})
		}
		books, err := h.Catalog.ByGenre(g)
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(fiber.Map{"books": books})
	}
	books, err := h.Catalog.List()
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"books": books})
}

func (h *CatalogHandler) Detail(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid book id"})
	}
	b, err := h.Catalog.Get(id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(b)
}

func (h *CatalogHandler) Search(c *fiber.Ctx) error {
	q, ok := validate.Q(c.Query("q"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid query"})
	}
	books, err := h.Catalog.Search(q)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"books": books})
}

func (h *CatalogHandler) Author(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid author id"})
	}
	a, err := h.Catalog.Author(id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(a)
}
