package redis

import (
	"context"
	"net"

	goRedis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"todolist/config"
)

// New dials the primary Redis. A failed ping is logged, not fatal: the only
// consumer is the rate limiter, which lets requests through when Redis is down.
func New(config *config.Config) (*goRedis.Client, func()) {
	primary := config.Cache.Redis.Primary

	client := goRedis.NewClient(&goRedis.Options{
		Addr:     net.JoinHostPort(primary.Host, primary.Port),
		Password: primary.Password,
		DB:       primary.DB,
	})

	cleanup := func() {
		if err := client.Close(); err != nil {
			log.Error().Err(err).Msg("Failed closing Redis client")
		}
	}

	if primary.Host == "" {
		log.Warn().Msg("Redis host not configured, skipping connection check")

		return client, cleanup
	}

	if _, err := client.Ping(context.Background()).Result(); err != nil {
		log.Error().
			Err(err).
			Str("host", primary.Host).
			Str("port", primary.Port).
			Msg("Failed to connect to Redis")

		return client, cleanup
	}

	log.Info().
		Int("db", primary.DB).
		Str("host", primary.Host).
		Str("port", primary.Port).
		Msg("Connected to Redis")

	return client, cleanup
}
