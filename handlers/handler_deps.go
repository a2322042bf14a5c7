package handlers

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"reelplanner/internal/mediagen"
	"reelplanner/internal/scriptgen"
	"reelplanner/models"
	"reelplanner/storage"
)

// ScriptGenerator defines the operations handlers expect from the LLM
// proxy. Kept as an interface for decoupling and easier testing.
type ScriptGenerator interface {
	GenerateScript(ctx context.Context, req scriptgen.ScriptRequest) (scriptgen.ScriptResult, error)
	EnhancePrompt(ctx context.Context, prompt, kind string) (string, error)
}

// MediaGenerator defines the operations handlers expect from the media
// generation proxy.
type MediaGenerator interface {
	GenerateImage(ctx context.Context, req mediagen.ImageRequest) (mediagen.Result, error)
	GenerateVideo(ctx context.Context, req mediagen.VideoRequest) (mediagen.Result, error)
	JobStatus(ctx context.Context, requestID string) (models.GenerationJob, error)
}

// ApplicationHandler holds shared dependencies for handlers.
type ApplicationHandler struct {
	Store    storage.Store
	Scripts  ScriptGenerator
	Media    MediaGenerator
	Logger   *logrus.Logger
	Validate *validator.Validate
}

// NewApplicationHandler creates an ApplicationHandler with the given
// dependencies.
func NewApplicationHandler(store storage.Store, scripts ScriptGenerator, media MediaGenerator, logger *logrus.Logger) *ApplicationHandler {
	return &ApplicationHandler{
		Store:    store,
		Scripts:  scripts,
		Media:    media,
		Logger:   logger,
		Validate: validator.New(),
	}
}

// RegisterRoutes binds all API routes onto the app.
func (h *ApplicationHandler) RegisterRoutes(app *fiber.App) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status":  "ok",
			"message": "API is healthy",
		})
	})

	api := app.Group("/api")

	api.Get("/projects", h.GetProjects)
	api.Post("/projects", h.CreateProject)
	api.Get("/projects/:id", h.GetProject)
	api.Patch("/projects/:id", h.UpdateProject)
	api.Delete("/projects/:id", h.DeleteProject)

	api.Post("/users", h.CreateUser)
	api.Get("/users/:id", h.GetUser)

	api.Post("/generate-script", h.GenerateScript)
	api.Post("/enhance-prompt", h.EnhancePrompt)

	media := api.Group("/media")
	media.Post("/generate-image", h.GenerateImage)
	media.Post("/generate-video", h.GenerateVideo)
	media.Get("/job-status/:jobId", h.GetJobStatus)
}
