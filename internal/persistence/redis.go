package persistence

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/employee-service/internal/config"
)

var errRedisUnset = errors.New("redis client not configured")

// Redis is the pub/sub side of the service: readiness pings and event fan-out.
type Redis struct {
	Client *redis.Client
}

// redisOptions bounds every network step so an unreachable server fails fast
// instead of holding up the request that publishes.
func redisOptions(cfg config.RedisConfig) *redis.Options {
	timeout := cfg.IOTimeout()
	return &redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  timeout,
		ReadTimeout:  timeout,
		WriteTimeout: timeout,
		MaxRetries:   cfg.MaxRetries,
	}
}

// NewRedis builds the client and probes it once. The service starts without Redis;
// events are dropped with a warning until it becomes reachable.
func NewRedis(cfg config.RedisConfig, logger *zap.Logger) *Redis {
	r := &Redis{Client: redis.NewClient(redisOptions(cfg))}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.IOTimeout())
	defer cancel()
	if err := r.Ping(ctx); err != nil {
		logger.Warn("redis unreachable at startup", zap.String("addr", cfg.Addr), zap.Error(err))
	} else {
		logger.Info("connected to redis", zap.String("addr", cfg.Addr))
	}
	return r
}

// Close releases the connection pool.
func (r *Redis) Close() {
	if r == nil || r.Client == nil {
		return
	}
	_ = r.Client.Close()
}

// Ping is used by the readiness probe.
func (r *Redis) Ping(ctx context.Context) error {
	if r == nil || r.Client == nil {
		return errRedisUnset
	}
	return r.Client.Ping(ctx).Err()
}

// Publish sends payload on channel and reports how many subscribers received it.
func (r *Redis) Publish(ctx context.Context, channel string, payload []byte) (int64, error) {
	if r == nil || r.Client == nil {
		return 0, errRedisUnset
	}
	return r.Client.Publish(ctx, channel, payload).Result()
}
