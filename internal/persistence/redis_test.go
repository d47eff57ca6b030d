package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/employee-service/internal/config"
)

func TestRedisOptions(t *testing.T) {
	req := require.New(t)
	opts := redisOptions(config.RedisConfig{Addr: "cache:6379", DB: 2, IOTimeoutMillis: 250, MaxRetries: -1})

	req.Equal("cache:6379", opts.Addr)
	req.Equal(2, opts.DB)
	req.Equal(250*time.Millisecond, opts.DialTimeout)
	req.Equal(250*time.Millisecond, opts.ReadTimeout)
	req.Equal(250*time.Millisecond, opts.WriteTimeout)
	req.Equal(-1, opts.MaxRetries)
}

func TestRedisUnreachable(t *testing.T) {
	req := require.New(t)
	// 192.0.2.0/24 is reserved for documentation and never routed
	r := NewRedis(config.RedisConfig{Addr: "192.0.2.1:6379", IOTimeoutMillis: 100, MaxRetries: -1}, zap.NewNop())
	defer r.Close()

	start := time.Now()
	_, err := r.Publish(context.Background(), "employees.events", []byte("{}"))
	req.Error(err)
	req.Less(time.Since(start), 2*time.Second)
}

func TestNilClients(t *testing.T) {
	req := require.New(t)
	var r *Redis
	req.Error(r.Ping(context.Background()))
	_, err := r.Publish(context.Background(), "c", nil)
	req.Error(err)
	r.Close()

	var p *Postgres
	req.Error(p.Ping(context.Background()))
	p.Close()
}
