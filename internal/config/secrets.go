package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"

	"github.com/mpilhlt/dhamps-gist/internal/generator"
)

// Secrets are read from the environment only, never from flags.
type Secrets struct {
	GoogleAPIKey string `env:"GOOGLE_API_KEY"`
	OpenAIAPIKey string `env:"OPENAI_API_KEY"`
	// SecretToken enables bearer authentication on the upload endpoints.
	SecretToken string `env:"SECRET_TOKEN"`
}

// LoadSecrets parses Secrets from the process environment.
func LoadSecrets() (Secrets, error) {
	var s Secrets
	if err := env.Parse(&s); err != nil {
		return Secrets{}, fmt.Errorf("parse env: %w", err)
	}
	return s, nil
}

// APIKey returns the key for provider, failing if it is not set.
func (s Secrets) APIKey(provider string) (string, error) {
	var key, envVar string
	switch provider {
	case generator.ProviderGemini:
		key, envVar = s.GoogleAPIKey, "GOOGLE_API_KEY"
	case generator.ProviderOpenAI:
		key, envVar = s.OpenAIAPIKey, "OPENAI_API_KEY"
	default:
		return "", fmt.Errorf("unknown provider %q", provider)
	}
	if key == "" {
		return "", fmt.Errorf("%s is required for provider %s", envVar, provider)
	}
	return key, nil
}
