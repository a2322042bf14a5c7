package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"reelplanner/internal/scriptgen"
	"reelplanner/models"
	"reelplanner/utils"
)

// GenerateScriptRequest is the creative brief for script generation.
type GenerateScriptRequest struct {
	Purpose     string `json:"purpose" validate:"required"`
	Tone        string `json:"tone" validate:"required"`
	KeyPhrase   string `json:"keyPhrase,omitempty"`
	Keyword     string `json:"keyword,omitempty"`
	VideoLength int    `json:"videoLength" validate:"omitempty,gt=0"`
}

// GenerateScript godoc
// @Summary Generate a script and prompts
// @Description Forwards the brief to the LLM and returns title, script and image/video prompts.
// @Tags generation
// @Accept  json
// @Produce  json
// @Success 200 {object} scriptgen.ScriptResult
// @Failure 500 "Upstream model failed or returned unusable content"
// @Router /generate-script [post]
func (h *ApplicationHandler) GenerateScript(c *fiber.Ctx) error {
	req := new(GenerateScriptRequest)
	if err := c.BodyParser(req); err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest,
			fmt.Sprintf("Cannot parse request JSON: %v", err))
	}
	if err := h.Validate.Struct(req); err != nil {
		return utils.RespondWithValidationErrors(c, err)
	}
	if req.VideoLength == 0 {
		req.VideoLength = models.DefaultVideoLength
	}

	result, err := h.Scripts.GenerateScript(c.Context(), scriptgen.ScriptRequest{
		Purpose:     req.Purpose,
		Tone:        req.Tone,
		KeyPhrase:   req.KeyPhrase,
		Keyword:     req.Keyword,
		VideoLength: req.VideoLength,
	})
	if err != nil {
		h.Logger.WithError(err).Error("Script generation failed")
		return utils.RespondWithError(c, fiber.StatusInternalServerError,
			fmt.Sprintf("Script generation failed: %v", err))
	}
	return c.Status(fiber.StatusOK).JSON(result)
}

// EnhancePromptRequest asks for a richer image or video prompt.
type EnhancePromptRequest struct {
	Prompt string `json:"prompt" validate:"required"`
	Type   string `json:"type" validate:"required,oneof=image video"`
}

// EnhancePrompt rewrites a generation prompt with more visual detail.
func (h *ApplicationHandler) EnhancePrompt(c *fiber.Ctx) error {
	req := new(EnhancePromptRequest)
	if err := c.BodyParser(req); err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest,
			fmt.Sprintf("Cannot parse request JSON: %v", err))
	}
	if err := h.Validate.Struct(req); err != nil {
		return utils.RespondWithValidationErrors(c, err)
	}

	enhanced, err := h.Scripts.EnhancePrompt(c.Context(), req.Prompt, req.Type)
	if err != nil {
		h.Logger.WithError(err).Error("Prompt enhancement failed")
		return utils.RespondWithError(c, fiber.StatusInternalServerError,
			fmt.Sprintf("Prompt enhancement failed: %v", err))
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"enhancedPrompt": enhanced})
}
