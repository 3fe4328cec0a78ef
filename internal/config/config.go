package config

import (
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Port        string `envconfig:"PORT" default:"8080"`
	Environment string `envconfig:"ENV" default:"development"`

	// OpenAI settings. The API key is intentionally not required: a missing
	// key degrades /chat to a configuration error instead of failing startup.
	OpenAIAPIKey  string `envconfig:"OPENAI_API_KEY"`
	OpenAIBaseURL string `envconfig:"OPENAI_BASE_URL" default:"https://api.openai.com/v1"`
	OpenAIModel   string `envconfig:"OPENAI_MODEL" default:"gpt-4o"`

	// TMDB settings. Same degradation rule as the OpenAI key.
	TMDBAPIKey            string `envconfig:"TMDB_API_KEY"`
	TMDBBaseURL           string `envconfig:"TMDB_BASE_URL" default:"https://api.themoviedb.org/3"`
	TMDBImageBaseURL      string `envconfig:"TMDB_IMAGE_BASE_URL" default:"https://image.tmdb.org/t/p/w500"`
	TMDBRequestTimeoutSec int    `envconfig:"TMDB_REQUEST_TIMEOUT_SEC" default:"10"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
