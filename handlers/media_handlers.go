package handlers

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"reelplanner/internal/mediagen"
	"reelplanner/models"
	"reelplanner/storage"
	"reelplanner/utils"
)

// GenerateImageRequest is the body for image generation. When ProjectID is
// set, the resulting URL and the imageGenerated flag are persisted onto the
// project in a single patch after success.
type GenerateImageRequest struct {
	Prompt        string  `json:"prompt" validate:"required"`
	AspectRatio   string  `json:"aspectRatio,omitempty"`
	Resolution    string  `json:"resolution,omitempty"`
	BatchSize     int     `json:"batchSize,omitempty" validate:"omitempty,gte=1,lte=4"`
	EnhancePrompt bool    `json:"enhancePrompt,omitempty"`
	StyleStrength float64 `json:"styleStrength,omitempty" validate:"omitempty,gte=0,lte=1"`
	ProjectID     int     `json:"projectId,omitempty" validate:"omitempty,gt=0"`
}

// GenerateImage godoc
// @Summary Generate an image
// @Description Submits an image generation request and waits for the asset URL.
// @Tags media
// @Accept  json
// @Produce  json
// @Success 200 {object} mediagen.Result
// @Failure 422 "Rejected by the provider's content policy"
// @Failure 502 "Provider failed, unreachable or timed out"
// @Router /media/generate-image [post]
func (h *ApplicationHandler) GenerateImage(c *fiber.Ctx) error {
	req := new(GenerateImageRequest)
	if err := c.BodyParser(req); err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest,
			fmt.Sprintf("Cannot parse request JSON: %v", err))
	}
	if err := h.Validate.Struct(req); err != nil {
		return utils.RespondWithValidationErrors(c, err)
	}

	result, err := h.Media.GenerateImage(c.Context(), mediagen.ImageRequest{
		Prompt:        req.Prompt,
		AspectRatio:   req.AspectRatio,
		Resolution:    req.Resolution,
		BatchSize:     req.BatchSize,
		EnhancePrompt: req.EnhancePrompt,
		StyleStrength: req.StyleStrength,
	})
	if err != nil {
		return h.respondMediaError(c, err)
	}

	if req.ProjectID != 0 {
		flag := true
		if err := h.persistAsset(c, req.ProjectID, models.ProjectPatch{
			ImageURL:       &result.URL,
			ImageGenerated: &flag,
		}); err != nil {
			return err
		}
	}
	return c.Status(fiber.StatusOK).JSON(result)
}

// GenerateVideoRequest is the body for image-to-video generation.
type GenerateVideoRequest struct {
	ImageURL  string `json:"imageUrl" validate:"required,url"`
	Prompt    string `json:"prompt,omitempty"`
	Model     string `json:"model,omitempty"`
	ProjectID int    `json:"projectId,omitempty" validate:"omitempty,gt=0"`
}

// GenerateVideo submits an image-to-video request and waits for the asset
// URL, persisting it onto the project when projectId is given.
func (h *ApplicationHandler) GenerateVideo(c *fiber.Ctx) error {
	req := new(GenerateVideoRequest)
	if err := c.BodyParser(req); err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest,
			fmt.Sprintf("Cannot parse request JSON: %v", err))
	}
	if err := h.Validate.Struct(req); err != nil {
		return utils.RespondWithValidationErrors(c, err)
	}

	result, err := h.Media.GenerateVideo(c.Context(), mediagen.VideoRequest{
		ImageURL: req.ImageURL,
		Prompt:   req.Prompt,
		Model:    req.Model,
	})
	if err != nil {
		return h.respondMediaError(c, err)
	}

	if req.ProjectID != 0 {
		flag := true
		if err := h.persistAsset(c, req.ProjectID, models.ProjectPatch{
			VideoURL:       &result.URL,
			VideoGenerated: &flag,
		}); err != nil {
			return err
		}
	}
	return c.Status(fiber.StatusOK).JSON(result)
}

// GetJobStatus performs a single best-effort status probe for an in-flight
// provider job.
func (h *ApplicationHandler) GetJobStatus(c *fiber.Ctx) error {
	jobID := c.Params("jobId")
	if jobID == "" {
		return utils.RespondWithError(c, fiber.StatusBadRequest, "Missing job ID")
	}

	job, err := h.Media.JobStatus(c.Context(), jobID)
	if err != nil {
		return h.respondMediaError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(job)
}

// persistAsset writes the asset URL and its milestone flag as one patch so
// the two never observably diverge in the store.
func (h *ApplicationHandler) persistAsset(c *fiber.Ctx, projectID int, patch models.ProjectPatch) error {
	_, err := h.Store.UpdateProject(c.Context(), projectID, patch)
	if errors.Is(err, storage.ErrNotFound) {
		return utils.RespondWithError(c, fiber.StatusNotFound,
			fmt.Sprintf("Project with ID %d not found", projectID))
	}
	if err != nil {
		h.Logger.WithError(err).WithField("project_id", projectID).Error("Failed to persist generated asset")
		return utils.RespondWithError(c, fiber.StatusInternalServerError,
			"Asset was generated but could not be saved to the project")
	}
	return nil
}

// respondMediaError maps the proxy's failure taxonomy onto HTTP statuses.
// Content-policy rejections get their own status so the UI can message
// them differently from a generic provider failure.
func (h *ApplicationHandler) respondMediaError(c *fiber.Ctx, err error) error {
	h.Logger.WithError(err).Warn("Media generation failed")

	switch {
	case errors.Is(err, mediagen.ErrProviderRejected):
		return utils.RespondWithError(c, fiber.StatusUnprocessableEntity,
			"Generation was rejected by the provider's content policy")
	case errors.Is(err, mediagen.ErrMissingCredentials):
		return utils.RespondWithError(c, fiber.StatusInternalServerError,
			"Media provider credentials are not configured")
	case errors.Is(err, mediagen.ErrTimeout):
		return utils.RespondWithError(c, fiber.StatusBadGateway,
			"Media generation timed out waiting for the provider")
	case errors.Is(err, mediagen.ErrUpstreamUnavailable),
		errors.Is(err, mediagen.ErrProviderFailed),
		errors.Is(err, mediagen.ErrMalformedResponse):
		return utils.RespondWithError(c, fiber.StatusBadGateway,
			fmt.Sprintf("Media generation failed: %v", err))
	default:
		return utils.RespondWithError(c, fiber.StatusInternalServerError,
			fmt.Sprintf("Media generation failed: %v", err))
	}
}
