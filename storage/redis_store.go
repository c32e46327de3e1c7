package storage

import (
	"context"
	"errors"
	"time"

	"gamebot/common/database"

	"github.com/redis/go-redis/v9"
)

const opTimeout = 3 * time.Second

// RedisStore redis 后端的 KVStore
// 所有 key 统一加前缀，避免和其他业务数据混在一个命名空间
type RedisStore struct {
	manager *database.RedisManager
	prefix  string
}

func NewRedisStore(manager *database.RedisManager, prefix string) *RedisStore {
	if prefix == "" {
		prefix = "gamebot:"
	}
	return &RedisStore{
		manager: manager,
		prefix:  prefix,
	}
}

func (s *RedisStore) Get(key string) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	value, err := s.manager.Get(ctx, s.prefix+key)
	if errors.Is(err, redis.Nil) {
		return "", ErrKeyNotFound
	}
	return value, err
}

func (s *RedisStore) Put(key string, value string) error {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	// 不设置过期时间，会话由注册表显式销毁
	return s.manager.Set(ctx, s.prefix+key, value, 0)
}

func (s *RedisStore) Contains(key string) (bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	n, err := s.manager.Exists(ctx, s.prefix+key)
	return n > 0, err
}

func (s *RedisStore) Delete(key string) error {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	return s.manager.Del(ctx, s.prefix+key)
}
