package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"booknest/internal/domain"
	applog "booknest/internal/log"
	"booknest/internal/services"
)

// bearerToken pulls the JWT from the Authorization header, falling back to
// the cookie the admin pages use.
func bearerToken(c *fiber.Ctx) string {
	h := c.Get("Authorization")
	if strings.HasPrefix(h, "Bearer ") {
		return strings.TrimPrefix(h, "Bearer ")
	}
	return c.Cookies("token")
}

func currentUser(c *fiber.Ctx) *domain.User {
	u, _ := c.Locals("user").(*domain.User)
	return u
}

// RequireUser resolves and attaches the authenticated user, or fails 401.
func RequireUser(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tok := bearerToken(c)
		if tok == "" {
			return fail(c, services.ErrNotAuthenticated)
		}
		u, err := auth.Verify(tok)
		if err != nil {
			return fail(c, services.ErrNotAuthenticated)
		}
		c.Locals("user", u)
		return c.Next()
	}
}

// RequireAdmin guards the server-rendered admin surface.
func RequireAdmin(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tok := bearerToken(c)
		if tok == "" {
			return c.Redirect("/admin/login")
		}
		u, err := auth.Verify(tok)
		if err != nil || u.Role != "ADMIN" {
			applog.Security(c, "access.denied.admin", nil)
			return c.Status(fiber.StatusForbidden).Render("notfound", fiber.Map{"Message": "Access denied"})
		}
		c.Locals("user", u)
		return c.Next()
	}
}
