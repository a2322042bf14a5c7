package handlers

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"reelplanner/models"
	"reelplanner/storage"
	"reelplanner/utils"
)

// CreateProjectRequest defines the expected request body for creating a
// project. Title, platform, purpose and tone are required; videoLength
// defaults to 15 seconds when omitted.
type CreateProjectRequest struct {
	Title       string  `json:"title" validate:"required"`
	Platform    string  `json:"platform" validate:"required,oneof=reels tiktok shorts"`
	VideoLength int     `json:"videoLength" validate:"omitempty,gt=0"`
	Purpose     string  `json:"purpose" validate:"required"`
	Tone        string  `json:"tone" validate:"required"`
	KeyPhrase   *string `json:"keyPhrase,omitempty"`
	Keyword     *string `json:"keyword,omitempty"`
}

// CreateProject godoc
// @Summary Create a new project
// @Description Creates a new video project from the creative brief.
// @Tags projects
// @Accept  json
// @Produce  json
// @Success 201 {object} models.Project
// @Failure 400 "Malformed body or failed validation"
// @Router /projects [post]
func (h *ApplicationHandler) CreateProject(c *fiber.Ctx) error {
	req := new(CreateProjectRequest)
	if err := c.BodyParser(req); err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest,
			fmt.Sprintf("Cannot parse project JSON: %v", err))
	}
	if err := h.Validate.Struct(req); err != nil {
		return utils.RespondWithValidationErrors(c, err)
	}

	project, err := h.Store.CreateProject(c.Context(), models.Project{
		Title:       req.Title,
		Platform:    req.Platform,
		VideoLength: req.VideoLength,
		Purpose:     req.Purpose,
		Tone:        req.Tone,
		KeyPhrase:   req.KeyPhrase,
		Keyword:     req.Keyword,
	})
	if err != nil {
		h.Logger.WithError(err).Error("Failed to create project")
		return utils.RespondWithError(c, fiber.StatusInternalServerError, "Could not create project")
	}

	h.Logger.WithField("project_id", project.ID).Info("Project created")
	return c.Status(fiber.StatusCreated).JSON(project)
}

// GetProjects godoc
// @Summary List all projects
// @Description Returns every project, newest first.
// @Tags projects
// @Produce  json
// @Success 200 {array} models.Project
// @Router /projects [get]
func (h *ApplicationHandler) GetProjects(c *fiber.Ctx) error {
	projects, err := h.Store.ListProjects(c.Context())
	if err != nil {
		h.Logger.WithError(err).Error("Failed to list projects")
		return utils.RespondWithError(c, fiber.StatusInternalServerError, "Could not retrieve projects")
	}
	return c.Status(fiber.StatusOK).JSON(projects)
}

// GetProject retrieves a specific project by its id.
func (h *ApplicationHandler) GetProject(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, "Invalid project ID")
	}

	project, err := h.Store.GetProject(c.Context(), id)
	if errors.Is(err, storage.ErrNotFound) {
		return utils.RespondWithError(c, fiber.StatusNotFound,
			fmt.Sprintf("Project with ID %d not found", id))
	}
	if err != nil {
		h.Logger.WithError(err).WithField("project_id", id).Error("Failed to fetch project")
		return utils.RespondWithError(c, fiber.StatusInternalServerError, "Could not retrieve project")
	}
	return c.Status(fiber.StatusOK).JSON(project)
}

// UpdateProject applies a partial update. Fields omitted from the body are
// preserved unchanged.
func (h *ApplicationHandler) UpdateProject(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, "Invalid project ID")
	}

	patch := new(models.ProjectPatch)
	if err := c.BodyParser(patch); err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest,
			fmt.Sprintf("Invalid request body: %v", err))
	}
	if patch.Platform != nil {
		switch *patch.Platform {
		case models.PlatformReels, models.PlatformTikTok, models.PlatformShorts:
		default:
			return utils.RespondWithError(c, fiber.StatusBadRequest,
				fmt.Sprintf("Unknown platform %q", *patch.Platform))
		}
	}

	project, err := h.Store.UpdateProject(c.Context(), id, *patch)
	if errors.Is(err, storage.ErrNotFound) {
		return utils.RespondWithError(c, fiber.StatusNotFound,
			fmt.Sprintf("Project with ID %d not found", id))
	}
	if err != nil {
		h.Logger.WithError(err).WithField("project_id", id).Error("Failed to update project")
		return utils.RespondWithError(c, fiber.StatusInternalServerError, "Could not update project")
	}
	return c.Status(fiber.StatusOK).JSON(project)
}

// DeleteProject removes a project. Deletion is irreversible; ids are never
// reused.
func (h *ApplicationHandler) DeleteProject(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, "Invalid project ID")
	}

	existed, err := h.Store.DeleteProject(c.Context(), id)
	if err != nil {
		h.Logger.WithError(err).WithField("project_id", id).Error("Failed to delete project")
		return utils.RespondWithError(c, fiber.StatusInternalServerError, "Could not delete project")
	}
	if !existed {
		return utils.RespondWithError(c, fiber.StatusNotFound,
			fmt.Sprintf("Project with ID %d not found", id))
	}

	h.Logger.WithField("project_id", id).Info("Project deleted")
	return c.SendStatus(fiber.StatusNoContent)
}

func parseID(c *fiber.Ctx, param string) (int, error) {
	return strconv.Atoi(c.Params(param))
}
