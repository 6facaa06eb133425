package locker

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/bsm/redislock"
	"github.com/redis/go-redis/v9"
)

var ErrNotObtained = errors.New("lock not obtained")

// Service serializes background jobs across instances via Redis locks.
// When Redis is not configured every lock is granted locally, which is
// fine for a single instance.
type Service struct {
	client *redislock.Client
}

func New(ctx context.Context, addr, password string) *Service {
	if addr == "" {
		return &Service{}
	}
	rdb := redis.NewClient(&redis.Options{Addr: addr, Password: password})
	if err := rdb.Ping(ctx).Err(); err != nil {
		slog.Warn("redis unreachable, job locks run locally", "addr", addr, "err", err)
		return &Service{}
	}
	return &Service{client: redislock.New(rdb)}
}

// Acquire takes the named lock for ttl. The returned release func is
// always safe to call.
func (s *Service) Acquire(ctx context.Context, name string, ttl time.Duration) (func(), error) {
	if s == nil || s.client == nil {
		return func() {}, nil
	}
	lock, err := s.client.Obtain(ctx, "timepay:lock:"+name, ttl, nil)
	if errors.Is(err, redislock.ErrNotObtained) {
		return func() {}, ErrNotObtained
	}
	if err != nil {
		return func() {}, err
	}
	return func() {
		if err := lock.Release(context.Background()); err != nil {
			slog.Warn("lock release failed", "name", name, "err", err)
		}
	}, nil
}
