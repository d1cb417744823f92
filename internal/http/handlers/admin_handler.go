package handlers

import (
	"github.com/gofiber/fiber/v2"

	"booknest/internal/repos"
)

type AdminHandler struct {
	Purchases *repos.PurchaseRepo
	Users     *repos.UserRepo
}

func (h *AdminHandler) Dashboard(c *fiber.Ctx) error {
	purchases, err := h.Purchases.Recent(50)
	if err != nil {
		return err
	}
	users, err := h.Users.List()
	if err != nil {
		return err
	}
	return render(c, "admin", fiber.Map{
		"Purchases": purchases,
		"Users":     users,
	})
}
