package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore caché compartida en Redis. Cada etiqueta es un SET con las claves que la llevan.
type RedisStore struct {
	rdb        *redis.Client
	prefix     string
	defaultTTL time.Duration
}

var _ Store = (*RedisStore)(nil)

// NewRedis crea y valida la conexión a partir de una URL redis://.
func NewRedis(ctx context.Context, redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("cache: REDIS_URL inválida: %w", err)
	}
	rdb := redis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("cache: ping redis: %w", err)
	}
	return rdb, nil
}

// NewRedisStore envuelve un cliente ya conectado. prefix separa instalaciones que comparten Redis.
func NewRedisStore(rdb *redis.Client, prefix string, defaultTTL time.Duration) *RedisStore {
	return &RedisStore{rdb: rdb, prefix: prefix, defaultTTL: defaultTTL}
}

func (s *RedisStore) clave(key string) string { return s.prefix + "cache:" + key }
func (s *RedisStore) tag(t string) string     { return s.prefix + "tag:" + t }
func (s *RedisStore) version(t string) string { return s.prefix + "ver:" + t }

func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	b, err := s.rdb.Get(ctx, s.clave(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return b, true, nil
}

func (s *RedisStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration, tags ...string) error {
	if ttl <= 0 {
		ttl = s.defaultTTL
	}
	k := s.clave(key)
	_, err := s.rdb.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.Set(ctx, k, value, ttl)
		for _, t := range tags {
			p.SAdd(ctx, s.tag(t), k)
		}
		return nil
	})
	return err
}

func (s *RedisStore) InvalidateTags(ctx context.Context, tags ...string) error {
	for _, t := range tags {
		tk := s.tag(t)
		claves, err := s.rdb.SMembers(ctx, tk).Result()
		if err != nil {
			return err
		}
		_, err = s.rdb.TxPipelined(ctx, func(p redis.Pipeliner) error {
			if len(claves) > 0 {
				p.Del(ctx, claves...)
			}
			p.Del(ctx, tk)
			p.Incr(ctx, s.version(t))
			return nil
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func (s *RedisStore) Version(ctx context.Context, tags ...string) (uint64, error) {
	if len(tags) == 0 {
		return 0, nil
	}
	claves := make([]string, len(tags))
	for i, t := range tags {
		claves[i] = s.version(t)
	}
	vals, err := s.rdb.MGet(ctx, claves...).Result()
	if err != nil {
		return 0, err
	}
	var v uint64
	for _, x := range vals {
		str, ok := x.(string)
		if !ok {
			continue
		}
		n, err := strconv.ParseUint(str, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("cache: versión corrupta %q: %w", str, err)
		}
		v += n
	}
	return v, nil
}
