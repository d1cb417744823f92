package main

import (
	"io"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	html "github.com/gofiber/template/html/v2"
	"gopkg.in/natefinch/lumberjack.v2"

	"booknest/internal/config"
	"booknest/internal/http/handlers"
	applog "booknest/internal/log"
	"booknest/internal/repos"
)

func main() {
	cfg := config.Load()

	// Stdout plus a rotating file so long-running instances don't fill disk.
	if cfg.LogFile != "" {
		rot := &lumberjack.Logger{
			Filename:   cfg.LogFile,
			MaxSize:    50, // MB
			MaxBackups: 3,
			MaxAge:     7, // days
		}
		log.SetOutput(io.MultiWriter(os.Stdout, rot))
	}

	db, err := repos.OpenDB(cfg.DBDSN)
	if err != nil {
		log.Fatal(err)
	}

	engine := html.New("./web/templates", ".html")

	app := fiber.New(fiber.Config{
		Views: engine,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			applog.Error(c, "server.error", err, nil)
			if strings.HasPrefix(c.Path(), "/admin") {
				if rerr := c.Status(fiber.StatusInternalServerError).Render("notfound", fiber.Map{
					"Message": "Something went wrong. Please try again.",
				}); rerr == nil {
					return nil
				}
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal error"})
		},
	})
	app.Server().MaxRequestBodySize = 1 << 20 // 1 MiB

	// ---------- Middlewares ----------
	app.Use(requestid.New())
	app.Use(logger.New())
	app.Use(helmet.New())
	app.Use(limiter.New(limiter.Config{
		Max:        120,
		Expiration: time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.global.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": "rate limit exceeded, retry soon"})
		},
	}))
	// CSRF protects only the form-posting admin surface; the JSON API is
	// token-authenticated.
	app.Use(csrf.New(csrf.Config{
		KeyLookup:      "form:csrf",
		CookieName:     "csrf_",
		CookieSameSite: "Lax",
		Next: func(c *fiber.Ctx) bool {
			return !strings.HasPrefix(c.Path(), "/admin")
		},
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			applog.Security(c, "csrf.fail", nil)
			return c.Status(fiber.StatusForbidden).Render("notfound", fiber.Map{"Message": "Security check failed. Please refresh and try again."})
		},
	}))
	app.Use(func(c *fiber.Ctx) error {
		if tok := c.Locals("csrf"); tok != nil {
			c.Locals("CSRFToken", tok.(string))
		}
		return c.Next()
	})

	// ---------- App handlers ----------
	deps := handlers.NewDeps(db, cfg)
	defer deps.Watcher.Close()

	api := app.Group("/api/v1")

	// Public catalog
	api.Get("/books", deps.CatalogHandler.List)
	api.Get("/books/:id", deps.CatalogHandler.Detail)
	api.Get("/search", limiter.New(limiter.Config{Max: 20, Expiration: time.Minute}), deps.CatalogHandler.Search)
	api.Get("/authors/:id", deps.CatalogHandler.Author)

	// Auth (login throttled)
	api.Post("/auth/signup", deps.AuthHandler.SignUp)
	api.Post("/auth/login", limiter.New(limiter.Config{
		Max:        5,
		Expiration: 10 * time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.login.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": "too many attempts, please try again later"})
		},
	}), deps.AuthHandler.Login)

	// Authenticated surface
	user := api.Group("", handlers.RequireUser(deps.Auth))
	user.Get("/me", deps.AuthHandler.Me)
	user.Get("/cart", deps.CartHandler.View)
	user.Post("/cart", deps.CartHandler.Add)
	user.Delete("/cart/:bookId", deps.CartHandler.Remove)
	user.Get("/cart/stream", handlers.UpgradeRequired, handlers.CartStream(deps.Cart))
	user.Post("/checkout", deps.CheckoutHandler.Checkout)
	user.Get("/library", deps.LibraryHandler.List)
	user.Get("/library/:id", deps.LibraryHandler.Detail)
	user.Post("/library/:id/download", deps.DownloadHandler.Start)
	user.Get("/library/:id/file", deps.DownloadHandler.File)
	user.Get("/purchases", deps.LibraryHandler.History)

	// Admin (server-rendered)
	app.Get("/admin/login", deps.AuthHandler.LoginForm)
	app.Post("/admin/login", limiter.New(limiter.Config{Max: 5, Expiration: 10 * time.Minute}), deps.AuthHandler.LoginWeb)
	app.Post("/admin/logout", deps.AuthHandler.Logout)
	admin := app.Group("/admin", handlers.RequireAdmin(deps.Auth))
	admin.Get("/", deps.AdminHandler.Dashboard)

	// Health & 404
	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not found"})
	})

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		deps.Watcher.Close()
		_ = app.Shutdown()
	}()

	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
