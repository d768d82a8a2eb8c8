package database

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
)

// RedisClient backs the entity caches and the stock reservation locks.
var RedisClient *redis.Client

type redisSettings struct {
	url          string
	poolSize     int
	minIdleConns int
	dialTimeout  time.Duration
	readTimeout  time.Duration
	maxRetries   int
}

func redisSettingsFromEnv() (redisSettings, error) {
	url := os.Getenv("REDIS_URL")
	if url == "" {
		return redisSettings{}, errors.New("REDIS_URL is not set")
	}
	return redisSettings{
		url:          url,
		poolSize:     envInt("REDIS_POOL_SIZE", 10),
		minIdleConns: envInt("REDIS_MIN_IDLE_CONNS", 5),
		dialTimeout:  envDuration("REDIS_DIAL_TIMEOUT", 30*time.Second),
		readTimeout:  envDuration("REDIS_READ_TIMEOUT", 10*time.Second),
		maxRetries:   envInt("REDIS_MAX_RETRIES", 3),
	}, nil
}

func envInt(name string, fallback int) int {
	raw, ok := os.LookupEnv(name)
	if !ok {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		log.Printf("ignoring invalid %s=%q, using %d", name, raw, fallback)
		return fallback
	}
	return v
}

func envDuration(name string, fallback time.Duration) time.Duration {
	raw, ok := os.LookupEnv(name)
	if !ok {
		return fallback
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		log.Printf("ignoring invalid %s=%q, using %s", name, raw, fallback)
		return fallback
	}
	return v
}

// InitRedis connects the shared Redis client and verifies it with a ping.
func InitRedis() error {
	settings, err := redisSettingsFromEnv()
	if err != nil {
		return err
	}

	opt, err := redis.ParseURL(settings.url)
	if err != nil {
		return fmt.Errorf("parse REDIS_URL: %w", err)
	}
	opt.PoolSize = settings.poolSize
	opt.MinIdleConns = settings.minIdleConns
	opt.DialTimeout = settings.dialTimeout
	opt.ReadTimeout = settings.readTimeout
	opt.MaxRetries = settings.maxRetries

	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("ping redis: %w", err)
	}

	RedisClient = client
	log.Printf("redis connected (pool=%d idle=%d)", settings.poolSize, settings.minIdleConns)
	return nil
}

// AcquireLock takes a distributed lock via SET NX. The token identifies the
// holder so only the owner can release it.
func AcquireLock(ctx context.Context, key, token string, ttl time.Duration) (bool, error) {
	if RedisClient == nil {
		return false, errors.New("redis client is not initialized")
	}
	return RedisClient.SetNX(ctx, key, token, ttl).Result()
}

// releaseScript deletes the lock key only when the stored token matches, so
// an expired-and-reacquired lock is never released by its previous holder.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// ReleaseLock releases a lock previously taken with AcquireLock.
func ReleaseLock(ctx context.Context, key, token string) error {
	if RedisClient == nil {
		return errors.New("redis client is not initialized")
	}
	deleted, err := releaseScript.Run(ctx, RedisClient, []string{key}, token).Result()
	if err != nil {
		return fmt.Errorf("release lock %s: %w", key, err)
	}
	if deleted.(int64) == 0 {
		return fmt.Errorf("lock %s no longer held by this owner", key)
	}
	return nil
}
