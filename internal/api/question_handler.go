package api

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"feedback-service/internal/model"
	"feedback-service/internal/service"
)

type QuestionHandler struct {
	questionService service.QuestionService
	validate        *validator.Validate
}

func NewQuestionHandler(questionService service.QuestionService) *QuestionHandler {
	return &QuestionHandler{
		questionService: questionService,
		validate:        validator.New(),
	}
}

type CreateQuestionRequest struct {
	SiteID       string  `json:"site_id" validate:"required,uuid4"`
	QuestionText string  `json:"question_text" validate:"required,min=3,max=300"`
	Emoji        *string `json:"emoji,omitempty" validate:"omitempty,max=16"`
}

type UpdateQuestionRequest struct {
	QuestionText string  `json:"question_text" validate:"required,min=3,max=300"`
	Emoji        *string `json:"emoji,omitempty" validate:"omitempty,max=16"`
	Active       *bool   `json:"active,omitempty"`
}

func (h *QuestionHandler) ListQuestions(c *fiber.Ctx) error {
	siteID, err := uuid.Parse(c.Query("site_id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Missing or invalid site_id"})
	}

	questions, err := h.questionService.ListBySite(c.Context(), siteID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not list questions"})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"questions": questions,
		"ratings":   model.RatingOptions(),
	})
}

func (h *QuestionHandler) CreateQuestion(c *fiber.Ctx) error {
	var request CreateQuestionRequest
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

	question, err := h.questionService.Create(c.Context(), siteID, request.QuestionText, request.Emoji)
	if err != nil {
		if errors.Is(err, service.ErrSiteNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Site not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not create question"})
	}
	return c.Status(fiber.StatusCreated).JSON(question)
}

func (h *QuestionHandler) UpdateQuestion(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid question ID format"})
	}

	var request UpdateQuestionRequest
	if err := c.BodyParser(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := h.validate.Struct(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input", "details": err.Error()})
	}

	question, err := h.questionService.Update(c.Context(), id, request.QuestionText, request.Emoji, request.Active)
	if err != nil {
		if errors.Is(err, service.ErrQuestionNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Question not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not update question"})
	}
	return c.Status(fiber.StatusOK).JSON(question)
}

func (h *QuestionHandler) DeleteQuestion(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid question ID format"})
	}

	if err := h.questionService.Delete(c.Context(), id); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not delete question"})
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "Question deleted"})
}
