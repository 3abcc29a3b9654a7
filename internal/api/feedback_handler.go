package api

import (
	"errors"
	"log/slog"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"feedback-service/internal/model"
	"feedback-service/internal/service"
)

type FeedbackHandler struct {
	feedbackService service.FeedbackService
	validate        *validator.Validate
}

func NewFeedbackHandler(feedbackService service.FeedbackService) *FeedbackHandler {
	return &FeedbackHandler{
		feedbackService: feedbackService,
		validate:        validator.New(),
	}
}

type FeedbackResponseRequest struct {
	QuestionID string `json:"question_id" validate:"required,uuid4"`
	Rating     int    `json:"rating" validate:"required,min=1,max=4"`
}

type SubmitFeedbackRequest struct {
	SiteID    string                    `json:"site_id" validate:"required,uuid4"`
	CanteenID string                    `json:"canteen_id" validate:"required,uuid4"`
	Username  *string                   `json:"username,omitempty" validate:"omitempty,max=64"`
	Responses []FeedbackResponseRequest `json:"responses" validate:"required,min=1,dive"`
}

// SubmitFeedback persists one complete form. Unlike the legacy client it
// never reports success on a failed write.
func (h *FeedbackHandler) SubmitFeedback(c *fiber.Ctx) error {
	var request SubmitFeedbackRequest
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
	canteenID, err := uuid.Parse(request.CanteenID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid canteen ID format"})
	}

	responses := make([]model.FeedbackResponse, 0, len(request.Responses))
	for _, r := range request.Responses {
		questionID, err := uuid.Parse(r.QuestionID)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid question ID format"})
		}
		responses = append(responses, model.FeedbackResponse{
			QuestionID: questionID,
			Rating:     model.RatingLevel(r.Rating),
		})
	}

	input := service.SubmitFeedbackInput{
		SiteID:    siteID,
		CanteenID: canteenID,
		Username:  request.Username,
		Responses: responses,
	}

	// A bearer token is optional on this route; when present the identity
	// from the claims wins over the free-text username.
	if userID, err := GetUserIDFromClaims(c); err == nil {
		input.UserID = &userID
		if username := GetUsernameFromClaims(c); username != "" {
			input.Username = &username
		}
	}

	sub, err := h.feedbackService.Submit(c.Context(), input)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrIncompleteSubmission),
			errors.Is(err, service.ErrInvalidRating),
			errors.Is(err, service.ErrUnknownQuestion),
			errors.Is(err, service.ErrCanteenMismatch):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		slog.ErrorContext(c.UserContext(), "Failed to store feedback submission", slog.String("error", err.Error()))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not store feedback"})
	}

	return c.Status(fiber.StatusCreated).JSON(sub)
}

func (h *FeedbackHandler) ListFeedback(c *fiber.Ctx) error {
	var siteID *uuid.UUID
	if raw := c.Query("site_id"); raw != "" {
		parsed, err := uuid.Parse(raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid site_id"})
		}
		siteID = &parsed
	}

	subs, err := h.feedbackService.List(c.Context(), siteID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not list feedback"})
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"feedback": subs})
}
