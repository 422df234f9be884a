package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Host              string        `envconfig:"HOST" default:"0.0.0.0"`
	Port              string        `envconfig:"PORT" default:"8080"`
	ReadHeaderTimeout time.Duration `envconfig:"READ_HEADER_TIMEOUT" default:"3s"`

	GeminiAPIKey  string        `envconfig:"GEMINI_API_KEY"`
	GeminiModel   string        `envconfig:"GEMINI_MODEL"`
	GeminiBaseURL string        `envconfig:"GEMINI_BASE_URL"`
	ParseTimeout  time.Duration `envconfig:"PARSE_TIMEOUT" default:"20s"`

	SeedDemoData bool `envconfig:"SEED_DEMO_DATA" default:"false"`
}

// Load reads .env when present, then the process environment. Environment
// variables win over .env values.
func Load() (Config, error) {
	_ = godotenv.Load(".env")

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, fmt.Errorf("process environment: %w", err)
	}

	return cfg, nil
}
