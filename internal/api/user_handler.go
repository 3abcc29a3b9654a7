package api

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"feedback-service/internal/service"
)

// UserHandler serves the admin user-management screen.
type UserHandler struct {
	userService service.UserService
	deviceSvc   service.DeviceTokenService
	validate    *validator.Validate
}

func NewUserHandler(userService service.UserService, deviceSvc service.DeviceTokenService) *UserHandler {
	return &UserHandler{
		userService: userService,
		deviceSvc:   deviceSvc,
		validate:    validator.New(),
	}
}

type UpdateUserRequest struct {
	Username string  `json:"username" validate:"required,min=2,max=64"`
	Password *string `json:"password,omitempty" validate:"omitempty,min=8"`
	Role     string  `json:"role" validate:"required,oneof=user admin"`
}

func (h *UserHandler) ListUsers(c *fiber.Ctx) error {
	users, err := h.userService.List(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not list users"})
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"users": users})
}

func (h *UserHandler) UpdateUser(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid user ID format"})
	}

	var request UpdateUserRequest
	if err := c.BodyParser(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := h.validate.Struct(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input", "details": err.Error()})
	}

	user, err := h.userService.Update(c.Context(), id, request.Username, request.Password, request.Role)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not update user"})
	}
	return c.Status(fiber.StatusOK).JSON(user)
}

func (h *UserHandler) DeleteUser(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid user ID format"})
	}

	if err := h.userService.Delete(c.Context(), id); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not delete user"})
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "User deleted"})
}

type RegisterDeviceTokenRequest struct {
	DeviceToken string `json:"device_token" validate:"required,min=8"`
}

func (h *UserHandler) RegisterDeviceToken(c *fiber.Ctx) error {
	userID, err := GetUserIDFromClaims(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid user claims"})
	}

	var request RegisterDeviceTokenRequest
	if err := c.BodyParser(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := h.validate.Struct(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input", "details": err.Error()})
	}

	if err := h.deviceSvc.Register(c.Context(), userID, request.DeviceToken); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not register device token"})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Device token registered"})
}
