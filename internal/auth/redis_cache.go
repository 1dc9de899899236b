package auth

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"

	"ms-checkout/internal/logger"
)

// InitializeTokenCache sets up Redis for token caching and tests the
// connection before the first elevated call needs it.
func InitializeTokenCache(redisAddr string, log *logger.Logger) (*redis.Client, error) {
	redisClient := redis.NewClient(&redis.Options{
		Addr:     redisAddr,
		PoolSize: 10,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := redisClient.Ping(ctx).Result(); err != nil {
		log.Error("AUTH", "Failed to connect to Redis at "+redisAddr+": "+err.Error())
		return nil, err
	}

	log.Info("AUTH", "Redis token cache ready at "+redisAddr)
	return redisClient, nil
}
