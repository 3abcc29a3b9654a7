package api

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"feedback-service/internal/service"
)

type SiteHandler struct {
	directory service.DirectoryService
	validate  *validator.Validate
}

func NewSiteHandler(directory service.DirectoryService) *SiteHandler {
	return &SiteHandler{
		directory: directory,
		validate:  validator.New(),
	}
}

type SiteRequest struct {
	Location       string `json:"location" validate:"required,min=1,max=120"`
	BranchLocation string `json:"branch_location" validate:"max=120"`
}

func (h *SiteHandler) ListSites(c *fiber.Ctx) error {
	sites, err := h.directory.ListSites(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not list sites"})
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"sites": sites})
}

func (h *SiteHandler) CreateSite(c *fiber.Ctx) error {
	var request SiteRequest
	if err := c.BodyParser(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := h.validate.Struct(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input", "details": err.Error()})
	}

	site, err := h.directory.CreateSite(c.Context(), request.Location, request.BranchLocation)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not create site"})
	}
	return c.Status(fiber.StatusCreated).JSON(site)
}

func (h *SiteHandler) UpdateSite(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid site ID format"})
	}

	var request SiteRequest
	if err := c.BodyParser(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := h.validate.Struct(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input", "details": err.Error()})
	}

	site, err := h.directory.UpdateSite(c.Context(), id, request.Location, request.BranchLocation)
	if err != nil {
		if errors.Is(err, service.ErrSiteNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Site not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not update site"})
	}
	return c.Status(fiber.StatusOK).JSON(site)
}

func (h *SiteHandler) DeleteSite(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid site ID format"})
	}

	if err := h.directory.DeleteSite(c.Context(), id); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not delete site"})
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "Site deleted"})
}

type CanteenRequest struct {
	SiteID string `json:"site_id" validate:"required,uuid4"`
	Name   string `json:"name" validate:"required,min=1,max=120"`
}

func (h *SiteHandler) ListCanteens(c *fiber.Ctx) error {
	siteID, err := uuid.Parse(c.Query("site_id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Missing or invalid site_id"})
	}

	canteens, err := h.directory.ListCanteens(c.Context(), siteID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not list canteens"})
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"canteens": canteens})
}

func (h *SiteHandler) AddCanteen(c *fiber.Ctx) error {
	var request CanteenRequest
	if err := c.BodyParser(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := h.validate.Struct(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input", "details": err.Error()})
	}

	siteID, err := uuid.Parse(request.SiteID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid site ID format"})
	}

	canteen, err := h.directory.AddCanteen(c.Context(), siteID, request.Name)
	if err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.Is(err, service.ErrSiteNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Site not found"})
		case errors.As(err, &pgErr) && pgErr.Code == "23505":
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Canteen already exists for this site"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not add canteen"})
	}
	return c.Status(fiber.StatusCreated).JSON(canteen)
}

func (h *SiteHandler) RemoveCanteen(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid canteen ID format"})
	}

	if err := h.directory.RemoveCanteen(c.Context(), id); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not remove canteen"})
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "Canteen removed"})
}
