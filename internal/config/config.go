package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

const defaultOrigin = "http://localhost:3000"

// Config is loaded once at startup and never mutated afterwards.
type Config struct {
	GitHubClientID     string
	GitHubClientSecret string
	AllowedOrigins     []string
	Port               string
	Env                string
}

// Load reads the process environment, after applying the given dotenv files
// if they exist.
func Load(envFiles ...string) Config {
	_ = godotenv.Load(envFiles...)

	return Config{
		GitHubClientID:     os.Getenv("GITHUB_CLIENT_ID"),
		GitHubClientSecret: os.Getenv("GITHUB_CLIENT_SECRET"),
		AllowedOrigins:     ParseOrigins(getEnv("ALLOWED_ORIGINS", defaultOrigin)),
		Port:               getEnv("PORT", "8000"),
		Env:                getEnv("ENV", "DEV"),
	}
}

// HasOAuthCredentials reports whether both the client id and secret are set.
func (c Config) HasOAuthCredentials() bool {
	return c.GitHubClientID != "" && c.GitHubClientSecret != ""
}

// ParseOrigins splits a comma separated allow-list. Entries are trimmed and
// empty ones dropped; an empty result falls back to the localhost origin.
func ParseOrigins(raw string) []string {
	var origins []string
	for _, o := range strings.Split(raw, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	if len(origins) == 0 {
		return []string{defaultOrigin}
	}
	return origins
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
