package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	applog "booknest/internal/log"
	"booknest/internal/services"
	"booknest/internal/validate"
)

type AuthHandler struct {
	Auth *services.AuthService
}

type signupRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Surname  string `json:"surname"`
	Password string `json:"password"`
}

func (h *AuthHandler) SignUp(c *fiber.Ctx) error {
	var req signupRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	email, ok := validate.Email(req.Email)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "please enter a valid email address"})
	}
	name, ok := validate.Name(req.Name)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "name is required"})
	}
	if !validate.Password(req.Password) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "password must be 8+ characters with upper, lower and digit"})
	}
	u, err := h.Auth.SignUp(email, name, strings.TrimSpace(req.Surname), req.Password)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE") {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "an account with this email already exists"})
		}
		return fail(c, err)
	}
	applog.Audit(c, "auth.signup", map[string]any{"user": u.ID})
	return c.Status(fiber.StatusCreated).JSON(u)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	tok, u, err := h.Auth.Login(req.Email, req.Password)
	if err != nil {
		applog.Security(c, "auth.login.fail", map[string]any{"email": req.Email})
		return fail(c, err)
	}
	applog.Audit(c, "auth.login", map[string]any{"user": u.ID})
	return c.JSON(fiber.Map{"token": tok, "user": u})
}

func (h *AuthHandler) Me(c *fiber.Ctx) error {
	return c.JSON(currentUser(c))
}

// LoginForm and LoginWeb back the admin pages; mobile clients use the JSON
// endpoints above.
func (h *AuthHandler) LoginForm(c *fiber.Ctx) error {
	return render(c, "login", fiber.Map{})
}

func (h *AuthHandler) LoginWeb(c *fiber.Ctx) error {
	tok, u, err := h.Auth.Login(c.FormValue("email"), c.FormValue("password"))
	if err != nil {
		applog.Security(c, "auth.login.fail", map[string]any{"email": c.FormValue("email")})
		return c.Status(fiber.StatusUnauthorized).Render("login", fiber.Map{"Err": "Invalid email or password"})
	}
	c.Cookie(&fiber.Cookie{Name: "token", Value: tok, Path: "/", HTTPOnly: true})
	applog.Audit(c, "auth.login", map[string]any{"user": u.ID})
	return c.Redirect("/admin")
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	c.ClearCookie("token")
	return c.Redirect("/admin/login")
}
