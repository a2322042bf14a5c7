package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds everything the gateway reads from the environment.
// Populated once at startup via envconfig with the REELPLANNER prefix,
// e.g. REELPLANNER_LISTEN_ADDR, REELPLANNER_OPENAI_API_KEY.
type Config struct {
	ListenAddr   string `envconfig:"LISTEN_ADDR" default:":8080"`
	AllowOrigins string `envconfig:"ALLOW_ORIGINS" default:"*"`

	// LLM endpoint for script generation and prompt enhancement.
	OpenAIAPIKey  string `envconfig:"OPENAI_API_KEY"`
	OpenAIBaseURL string `envconfig:"OPENAI_BASE_URL"`
	OpenAIModel   string `envconfig:"OPENAI_MODEL" default:"gpt-4o-mini"`

	// Media-generation provider credentials and polling knobs.
	MediaAPIKey         string        `envconfig:"MEDIA_API_KEY"`
	MediaAPISecret      string        `envconfig:"MEDIA_API_SECRET"`
	MediaBaseURL        string        `envconfig:"MEDIA_BASE_URL" default:"https://platform.higgsfield.ai"`
	MediaPollInterval   time.Duration `envconfig:"MEDIA_POLL_INTERVAL" default:"2s"`
	MediaPollAttempts   int           `envconfig:"MEDIA_POLL_ATTEMPTS" default:"45"`
	MediaSubmitTimeout  time.Duration `envconfig:"MEDIA_SUBMIT_TIMEOUT" default:"30s"`
	MediaSubmitAttempts int           `envconfig:"MEDIA_SUBMIT_ATTEMPTS" default:"3"`

	// StorageBackend selects "memory" (default) or "supabase".
	StorageBackend string `envconfig:"STORAGE_BACKEND" default:"memory"`
	SupabaseURL    string `envconfig:"SUPABASE_URL"`
	SupabaseKey    string `envconfig:"SUPABASE_SERVICE_KEY"`
}

// Load reads the configuration from the environment.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := envconfig.Process("REELPLANNER", cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
