package api

import (
	"errors"
	"log/slog"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"feedback-service/internal/qrposter"
	"feedback-service/internal/service"
)

type PosterHandler struct {
	directory service.DirectoryService
	store     *qrposter.Store
}

func NewPosterHandler(directory service.DirectoryService, store *qrposter.Store) *PosterHandler {
	return &PosterHandler{
		directory: directory,
		store:     store,
	}
}

// CreateQRPoster renders the QR code pointing at a site's feedback form,
// stores the PNG and returns a short-lived download link.
func (h *PosterHandler) CreateQRPoster(c *fiber.Ctx) error {
	siteID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid site ID format"})
	}

	site, err := h.directory.GetSite(c.Context(), siteID)
	if err != nil {
		if errors.Is(err, service.ErrSiteNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Site not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not load site"})
	}

	link := qrposter.FeedbackFormURL(os.Getenv("FRONTEND_URL"), site.ID)
	png, err := qrposter.GeneratePNG(link)
	if err != nil {
		slog.ErrorContext(c.UserContext(), "Failed to render QR poster", slog.String("error", err.Error()))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not render QR poster"})
	}

	key := qrposter.ObjectKey(site.ID)
	if err := h.store.Upload(c.Context(), key, png); err != nil {
		slog.ErrorContext(c.UserContext(), "Failed to store QR poster", slog.String("error", err.Error()))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not store QR poster"})
	}

	downloadURL, err := h.store.PresignDownloadURL(c.Context(), key)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not presign poster URL"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"site_id":      site.ID,
		"download_url": downloadURL,
	})
}
