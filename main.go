package main

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"reelplanner/config"
	"reelplanner/handlers"
	"reelplanner/internal/mediagen"
	"reelplanner/internal/scriptgen"
	"reelplanner/middleware"
	"reelplanner/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log := config.NewLogger()

	var store storage.Store
	switch cfg.StorageBackend {
	case "supabase":
		supaStore, err := storage.NewSupabaseStore(cfg.SupabaseURL, cfg.SupabaseKey)
		if err != nil {
			log.WithError(err).Fatal("Failed to initialize Supabase store")
		}
		store = supaStore
		log.Info("Using Supabase-backed store")
	default:
		store = storage.NewMemoryStore()
		log.Info("Using in-memory store")
	}

	scripts := scriptgen.NewGenerator(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.OpenAIModel, log)
	media := mediagen.NewClient(mediagen.Config{
		BaseURL:        cfg.MediaBaseURL,
		APIKey:         cfg.MediaAPIKey,
		APISecret:      cfg.MediaAPISecret,
		PollInterval:   cfg.MediaPollInterval,
		PollAttempts:   cfg.MediaPollAttempts,
		SubmitTimeout:  cfg.MediaSubmitTimeout,
		SubmitAttempts: cfg.MediaSubmitAttempts,
		Logger:         log,
	})

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.AllowOrigins,
		AllowHeaders: "Origin, Content-Type, Accept",
	}))
	app.Use(middleware.RequestLogger(log))

	h := handlers.NewApplicationHandler(store, scripts, media, log)
	h.RegisterRoutes(app)

	log.WithField("addr", cfg.ListenAddr).Info("Starting API server")
	if err := app.Listen(cfg.ListenAddr); err != nil {
		log.WithError(err).Fatal("Server stopped")
	}
}
