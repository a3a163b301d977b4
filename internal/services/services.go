package services

import (
	"log/slog"

	"github.com/jmoiron/sqlx"
	"github.com/lk16/gamesuite/internal/config"
	"github.com/redis/go-redis/v9"
)

// Services contains the connections to the external services.
// Both are nil when the corresponding URL is not configured.
type Services struct {
	Postgres *sqlx.DB
	Redis    *redis.Client
}

func InitServices(cfg *config.ServerConfig) (*Services, error) {
	services := &Services{}

	if cfg.PostgresURL != "" {
		postgres, err := InitPostgres(cfg.PostgresURL)
		if err != nil {
			return nil, err
		}
		services.Postgres = postgres
	} else {
		slog.Warn("No Postgres URL configured, save slots are disabled")
	}

	if cfg.RedisURL != "" {
		redis, err := InitRedis(cfg.RedisURL)
		if err != nil {
			return nil, err
		}
		services.Redis = redis
	} else {
		slog.Warn("No Redis URL configured, sessions are kept in memory")
	}

	return services, nil
}

// Close closes all open connections.
func (s *Services) Close() error {
	if s.Redis != nil {
		if err := s.Redis.Close(); err != nil {
			return err
		}
	}

	if s.Postgres != nil {
		return s.Postgres.Close()
	}

	return nil
}
