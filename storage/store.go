package storage

import (
	"errors"
	"sync"
)

// ErrKeyNotFound 键不存在
var ErrKeyNotFound = errors.New("key not found")

// KVStore 持久化存储接口
// 引擎和棋盘模型只通过这三个操作访问存储，不关心后端实现
// 单 key 操作是原子的，不提供跨 key 事务
type KVStore interface {
	Get(key string) (string, error)
	Put(key string, value string) error
	Contains(key string) (bool, error)
}

// Deleter 可选扩展接口
// 后端支持删除时，注册表在会话销毁后清掉残留快照
type Deleter interface {
	Delete(key string) error
}

// MemoryStore 进程内存储
// 用于测试和不配置 redis 的单机运行
type MemoryStore struct {
	data map[string]string
	mu   sync.RWMutex
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string]string)}
}

func (s *MemoryStore) Get(key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, exists := s.data[key]
	if !exists {
		return "", ErrKeyNotFound
	}
	return value, nil
}

func (s *MemoryStore) Put(key string, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data[key] = value
	return nil
}

func (s *MemoryStore) Contains(key string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, exists := s.data[key]
	return exists, nil
}

// Delete 删除键
// 不属于 KVStore 契约，注册表在会话销毁时直接使用
func (s *MemoryStore) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.data, key)
	return nil
}
