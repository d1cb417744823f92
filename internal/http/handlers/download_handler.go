package handlers

import (
	"bufio"
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/gofiber/fiber/v2"

	applog "booknest/internal/log"
	"booknest/internal/repos"
	"booknest/internal/services"
	"booknest/internal/validate"
)

type DownloadHandler struct {
	Library    *repos.LibraryRepo
	Downloader *services.Downloader
}

// Start fetches the PDF asset of a purchased book into local storage,
// streaming progress lines (NDJSON) followed by a single terminal line.
func (h *DownloadHandler) Start(c *fiber.Ctx) error {
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

	userID := u.ID
	c.Set(fiber.HeaderContentType, "application/x-ndjson")
	c.Context().SetBodyStreamWriter(func(w *bufio.Writer) {
		enc := json.NewEncoder(w)
		_, err := h.Downloader.Fetch(context.Background(), b.PDFURL, b.Title,
			func(written, expected int64) {
				frac := 0.0
				if expected > 0 {
					frac = float64(written) / float64(expected)
				}
				_ = enc.Encode(fiber.Map{"progress": frac, "written": written, "expected": expected})
				_ = w.Flush()
			})
		if err != nil {
			applog.Error(nil, "download.fail", err, map[string]any{"user": userID, "book": b.ID})
			_ = enc.Encode(fiber.Map{"error": err.Error()})
			_ = w.Flush()
			return
		}
		applog.Info(nil, "download.ok", map[string]any{"user": userID, "book": b.ID})
		_ = enc.Encode(fiber.Map{"done": true, "file": services.SanitizeTitle(b.Title) + ".pdf"})
		_ = w.Flush()
	})
	return nil
}

// File serves a previously downloaded PDF for in-app preview.
func (h *DownloadHandler) File(c *fiber.Ctx) error {
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
	if !h.Downloader.Exists(b.Title) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "asset not downloaded yet"})
	}
	return c.SendFile(h.Downloader.Path(b.Title), true)
}
