package api

import (
	"log/slog"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"feedback-service/internal/events"
	"feedback-service/internal/service"
)

type StatsHandler struct {
	statsService service.StatsService
	hub          *events.LiveStatsHub
}

func NewStatsHandler(statsService service.StatsService, hub *events.LiveStatsHub) *StatsHandler {
	return &StatsHandler{
		statsService: statsService,
		hub:          hub,
	}
}

func siteFilter(c *fiber.Ctx) (*uuid.UUID, error) {
	raw := c.Query("site_id")
	if raw == "" {
		return nil, nil
	}
	parsed, err := uuid.Parse(raw)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

func (h *StatsHandler) QuestionStats(c *fiber.Ctx) error {
	siteID, err := siteFilter(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid site_id"})
	}

	rows, err := h.statsService.QuestionStats(c.Context(), siteID)
	if err != nil {
		slog.ErrorContext(c.UserContext(), "Failed to compute question stats", slog.String("error", err.Error()))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not compute statistics"})
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"questions": rows})
}

func (h *StatsHandler) SiteStats(c *fiber.Ctx) error {
	rows, err := h.statsService.SiteStats(c.Context())
	if err != nil {
		slog.ErrorContext(c.UserContext(), "Failed to compute site stats", slog.String("error", err.Error()))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not compute statistics"})
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"sites": rows})
}

func (h *StatsHandler) QuestionChart(c *fiber.Ctx) error {
	siteID, err := siteFilter(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid site_id"})
	}

	rows, err := h.statsService.QuestionChart(c.Context(), siteID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not compute chart data"})
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"rows": rows})
}

func (h *StatsHandler) SiteChart(c *fiber.Ctx) error {
	rows, err := h.statsService.SiteChart(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not compute chart data"})
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"rows": rows})
}

// LiveStats streams stats snapshots over a websocket. A snapshot arrives
// whenever a new submission lands; there is no interval polling.
func (h *StatsHandler) LiveStats() fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		ch, cancel := h.hub.Subscribe()
		defer cancel()

		// Reads only serve to detect the peer going away.
		done := make(chan struct{})
		go func() {
			defer close(done)
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}()

		for {
			select {
			case payload := <-ch:
				if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
					return
				}
			case <-done:
				return
			}
		}
	})
}
