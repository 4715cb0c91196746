package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/marcochiappo/Crimcuts/config"
	"github.com/marcochiappo/Crimcuts/pkg/logger"
	"github.com/redis/go-redis/v9"
)

var client *redis.Client

// Init connects to Redis. An empty address leaves the client unset and every
// helper in this package becomes a no-op.
func Init(cfg *config.RedisConfig) error {
	if cfg.Addr == "" {
		logger.Info("Redis not configured, session revocation and login throttling disabled")
		return nil
	}

	logger.Info("Initializing Redis connection", logger.Fields{
		"addr": cfg.Addr,
		"db":   cfg.DB,
	})

	c := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := c.Ping(ctx).Err(); err != nil {
		logger.Error("Failed to connect to Redis", err, logger.Fields{"addr": cfg.Addr})
		_ = c.Close()
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}

	client = c
	logger.Info("Redis connection established successfully")
	return nil
}

// SetClient replaces the package client. Passing nil disables Redis.
func SetClient(c *redis.Client) {
	client = c
}

// GetClient returns the Redis client instance, nil when disabled.
func GetClient() *redis.Client {
	return client
}

// Enabled reports whether a Redis client is configured.
func Enabled() bool {
	return client != nil
}

// Close closes the Redis connection
func Close() error {
	if client != nil {
		logger.Info("Closing Redis connection")
		err := client.Close()
		client = nil
		return err
	}
	return nil
}

func revokedKey(sessionID string) string {
	return fmt.Sprintf("crimcuts:revoked:%s", sessionID)
}

// RevokeSession blacklists a session ID until the token would have expired anyway.
func RevokeSession(ctx context.Context, sessionID string, expiry time.Duration) error {
	if client == nil || sessionID == "" {
		return nil
	}
	if expiry <= 0 {
		return nil
	}

	if err := client.Set(ctx, revokedKey(sessionID), "revoked", expiry).Err(); err != nil {
		logger.Error("Failed to revoke session", err)
		return err
	}

	logger.Debug("Session revoked", logger.Fields{"expiry": expiry.String()})
	return nil
}

// IsSessionRevoked checks the blacklist for a session ID.
func IsSessionRevoked(ctx context.Context, sessionID string) (bool, error) {
	if client == nil || sessionID == "" {
		return false, nil
	}

	val, err := client.Get(ctx, revokedKey(sessionID)).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		logger.Error("Failed to check session blacklist", err)
		return false, err
	}
	return val == "revoked", nil
}

// CheckRateLimit counts a hit for resource/id in a fixed window and reports
// whether the caller is still within limit. Without Redis every call is allowed.
func CheckRateLimit(ctx context.Context, resource, id string, limit int, window time.Duration) (bool, error) {
	if client == nil {
		return true, nil
	}

	key := fmt.Sprintf("crimcuts:rl:%s:%s", resource, id)

	cnt, err := client.Incr(ctx, key).Result()
	if err != nil {
		return false, err
	}
	if cnt == 1 {
		if err := client.Expire(ctx, key, window).Err(); err != nil {
			return false, err
		}
	}
	return cnt <= int64(limit), nil
}
