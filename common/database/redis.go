package database

import (
	"context"
	"fmt"
	"time"

	"gamebot/common/config"
	"gamebot/common/log"

	"github.com/redis/go-redis/v9"
)

type RedisManager struct {
	Cli *redis.Client
}

// NewRedis 创建 redis 连接
// 连接失败直接 Fatal，机器人依赖 redis 做会话持久化
func NewRedis(redisConf config.RedisConf) *RedisManager {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// 构建 Redis 地址
	var addr string
	if redisConf.Addr != "" {
		addr = redisConf.Addr
	} else if redisConf.Host != "" && redisConf.Port > 0 {
		addr = fmt.Sprintf("%s:%d", redisConf.Host, redisConf.Port)
	} else {
		panic("redis 配置出错")
	}

	cli := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     redisConf.Password, // 没有密码时为空字符串，Redis 会忽略
		PoolSize:     redisConf.PoolSize,
		MinIdleConns: redisConf.MinIdleConns,
	})
	if err := cli.Ping(ctx).Err(); err != nil {
		log.Fatal("redis 连接错误: %v", err)
		return nil
	}

	return &RedisManager{Cli: cli}
}

func (r *RedisManager) Set(ctx context.Context, key, value string, expiration time.Duration) error {
	return r.Cli.Set(ctx, key, value, expiration).Err()
}

func (r *RedisManager) Get(ctx context.Context, key string) (string, error) {
	return r.Cli.Get(ctx, key).Result()
}

func (r *RedisManager) Del(ctx context.Context, keys ...string) error {
	return r.Cli.Del(ctx, keys...).Err()
}

func (r *RedisManager) Exists(ctx context.Context, keys ...string) (int64, error) {
	return r.Cli.Exists(ctx, keys...).Result()
}

func (r *RedisManager) Close() error {
	if r == nil || r.Cli == nil {
		return nil
	}
	if err := r.Cli.Close(); err != nil {
		log.Error("redis 关闭出错: %v", err)
		return err
	}
	return nil
}
