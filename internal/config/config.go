package config

import (
	"errors"
	"log/slog"
	"os"
	"strconv"

	"github.com/lk16/gamesuite/internal/search"
)

const DefaultAIDepth = search.DefaultDepth

// ServerConfig holds all configuration values loaded from environment variables.
type ServerConfig struct {
	ServerHost        string
	ServerPort        string
	RedisURL          string // optional, sessions are kept in memory when empty
	PostgresURL       string // optional, save slots are disabled when empty
	BasicAuthUsername string
	BasicAuthPassword string
	Token             string
	Prefork           bool
	AIDepth           int
}

// LoadServerConfig loads configuration from environment variables.
func LoadServerConfig() *ServerConfig {
	cfg := &ServerConfig{
		ServerHost:        getEnvMust("GAMESUITE_SERVER_HOST"),
		ServerPort:        getEnvMust("GAMESUITE_SERVER_PORT"),
		RedisURL:          os.Getenv("GAMESUITE_REDIS_URL"),
		PostgresURL:       os.Getenv("GAMESUITE_POSTGRES_URL"),
		BasicAuthUsername: getEnvMust("GAMESUITE_BASIC_AUTH_USER"),
		BasicAuthPassword: getEnvMust("GAMESUITE_BASIC_AUTH_PASS"),
		Token:             getEnvMust("GAMESUITE_TOKEN"),
		Prefork:           getEnvMustBool("GAMESUITE_PREFORK"),
		AIDepth:           getEnvIntRange("GAMESUITE_AI_DEPTH", DefaultAIDepth, 1, search.MaxDepth),
	}

	if err := cfg.Validate(); err != nil {
		slog.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	return cfg
}

// Validate checks settings that are invalid in combination.
func (cfg *ServerConfig) Validate() error {
	// Prefork children each get their own in-memory session store, so a game
	// created in one child would be unknown in the others.
	if cfg.Prefork && cfg.RedisURL == "" {
		return errors.New("GAMESUITE_PREFORK requires GAMESUITE_REDIS_URL")
	}

	return nil
}

// getEnvMust either returns the environment variable or logs a fatal error if it is not set.
func getEnvMust(key string) string {
	value := os.Getenv(key)
	if value == "" {
		slog.Error("Environment variable is not set", "key", key)
		os.Exit(1)
	}
	return value
}

func getEnvMustBool(key string) bool {
	value := getEnvMust(key)

	if value != "true" && value != "false" {
		slog.Error("Cannot load environment variable, it must be \"true\" or \"false\"", "key", key, "value", value)
		os.Exit(1)
	}

	return value == "true"
}

// getEnvIntRange returns the integer environment variable or fallback if it is
// not set. Values that are not integers within [minValue, maxValue] are fatal.
func getEnvIntRange(key string, fallback, minValue, maxValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}

	parsed, err := parseIntRange(value, minValue, maxValue)
	if err != nil {
		slog.Error("Cannot load environment variable", "key", key, "value", value, "error", err)
		os.Exit(1)
	}

	return parsed
}

func parseIntRange(value string, minValue, maxValue int) (int, error) {
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}

	if parsed < minValue || parsed > maxValue {
		return 0, &strconv.NumError{Func: "parseIntRange", Num: value, Err: strconv.ErrRange}
	}

	return parsed, nil
}
