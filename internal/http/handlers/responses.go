package handlers

import (
	"database/sql"
	"errors"

	"github.com/gofiber/fiber/v2"

	"booknest/internal/services"
)

// statusFor maps service failure classes onto HTTP statuses. Anything not in
// the taxonomy is a store/network error and stays a 500.
func statusFor(err error) int {
	switch {
	case errors.Is(err, services.ErrNotAuthenticated), errors.Is(err, services.ErrBadCreds):
		return fiber.StatusUnauthorized
	case errors.Is(err, services.ErrDuplicateItem),
		errors.Is(err, services.ErrAlreadyOwned),
		errors.Is(err, services.ErrDownloadBusy):
		return fiber.StatusConflict
	case errors.Is(err, services.ErrInsufficientBalance):
		return fiber.StatusPaymentRequired
	case errors.Is(err, services.ErrEmptyCart):
		return fiber.StatusBadRequest
	case errors.Is(err, services.ErrNotOwned):
		return fiber.StatusForbidden
	case errors.Is(err, sql.ErrNoRows):
		return fiber.StatusNotFound
	case errors.Is(err, services.ErrDownloadFailed):
		return fiber.StatusBadGateway
	}
	return fiber.StatusInternalServerError
}

func fail(c *fiber.Ctx, err error) error {
	return c.Status(statusFor(err)).JSON(fiber.Map{"error": err.Error()})
}
