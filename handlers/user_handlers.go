package handlers

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"reelplanner/models"
	"reelplanner/storage"
	"reelplanner/utils"
)

// CreateUserRequest defines the body for registering a user record.
type CreateUserRequest struct {
	Username string `json:"username" validate:"required,min=3"`
	Password string `json:"password" validate:"required,min=8"`
}

// CreateUser registers a minimal user record.
func (h *ApplicationHandler) CreateUser(c *fiber.Ctx) error {
	req := new(CreateUserRequest)
	if err := c.BodyParser(req); err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest,
			fmt.Sprintf("Cannot parse user JSON: %v", err))
	}
	if err := h.Validate.Struct(req); err != nil {
		return utils.RespondWithValidationErrors(c, err)
	}

	if _, err := h.Store.GetUserByUsername(c.Context(), req.Username); err == nil {
		return utils.RespondWithError(c, fiber.StatusConflict,
			fmt.Sprintf("Username %q is already taken", req.Username))
	}

	user, err := h.Store.CreateUser(c.Context(), models.User{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		h.Logger.WithError(err).Error("Failed to create user")
		return utils.RespondWithError(c, fiber.StatusInternalServerError, "Could not create user")
	}
	return c.Status(fiber.StatusCreated).JSON(user)
}

// GetUser retrieves a user by id.
func (h *ApplicationHandler) GetUser(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, "Invalid user ID")
	}

	user, err := h.Store.GetUser(c.Context(), id)
	if errors.Is(err, storage.ErrNotFound) {
		return utils.RespondWithError(c, fiber.StatusNotFound,
			fmt.Sprintf("User with ID %d not found", id))
	}
	if err != nil {
		h.Logger.WithError(err).WithField("user_id", id).Error("Failed to fetch user")
		return utils.RespondWithError(c, fiber.StatusInternalServerError, "Could not retrieve user")
	}
	return c.Status(fiber.StatusOK).JSON(user)
}
