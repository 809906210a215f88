package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/ikkim/catalog-backend/config"
	"github.com/ikkim/catalog-backend/pkg/logger"
	"github.com/redis/go-redis/v9"
)

var client *redis.Client

// Init initializes Redis connection
func Init(cfg *config.RedisConfig) error {
	logger.Info("Initializing Redis connection", map[string]interface{}{
		"host": cfg.Host,
		"port": cfg.Port,
		"db":   cfg.DB,
	})

	client = redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		logger.Error("Failed to connect to Redis", err, map[string]interface{}{
			"host": cfg.Host,
			"port": cfg.Port,
		})
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}

	logger.Info("Redis connection established successfully", nil)
	return nil
}

// GetClient returns the Redis client instance
func GetClient() *redis.Client {
	return client
}

// Close closes the Redis connection
func Close() error {
	if client != nil {
		logger.Info("Closing Redis connection", nil)
		return client.Close()
	}
	return nil
}

// revokedKey is shared with the auth service that writes revocations.
func revokedKey(token string) string {
	return fmt.Sprintf("blacklist:%s", token)
}

// IsTokenRevoked checks if a token was revoked by the issuing auth service.
func IsTokenRevoked(ctx context.Context, token string) (bool, error) {
	if client == nil {
		return false, nil
	}

	val, err := client.Get(ctx, revokedKey(token)).Result()
	if err == redis.Nil {
		// Key does not exist - token is still valid
		return false, nil
	}
	if err != nil {
		logger.Error("Failed to check token revocation", err, nil)
		return false, err
	}

	return val == "revoked", nil
}
