package store

import (
	"context"
	"sync"

	"romaneio/internal/model"
)

// MemoryStore 进程内缓存，重启即丢失
type MemoryStore struct {
	routes []model.Route
	meta   *model.ImportMetadata
	raw    []byte
	mu     sync.RWMutex
}

// NewMemoryStore 创建内存存储
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Save 覆盖保存最近一次导入
func (s *MemoryStore) Save(_ context.Context, routes []model.Route, meta model.ImportMetadata, raw []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.routes = cloneRoutes(routes)
	s.meta = &meta
	s.raw = append([]byte(nil), raw...)
	return nil
}

// Load 读取最近一次导入
func (s *MemoryStore) Load(_ context.Context) ([]model.Route, model.ImportMetadata, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.meta == nil {
		return nil, model.ImportMetadata{}, ErrNoImport
	}
	return cloneRoutes(s.routes), *s.meta, nil
}

// LoadRawBytes 读取原始文件
func (s *MemoryStore) LoadRawBytes(_ context.Context) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.meta == nil {
		return nil, ErrNoImport
	}
	return append([]byte(nil), s.raw...), nil
}

// Clear 清空
func (s *MemoryStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.routes = nil
	s.meta = nil
	s.raw = nil
	return nil
}

// Close 无操作
func (s *MemoryStore) Close() error { return nil }

// cloneRoutes 深拷贝，避免调用方修改缓存内容
func cloneRoutes(routes []model.Route) []model.Route {
	out := make([]model.Route, len(routes))
	for i, r := range routes {
		c := r
		c.DeliveryTimesMin = append([]int{}, r.DeliveryTimesMin...)
		c.LocationTypes = append([]string{}, r.LocationTypes...)
		c.Addresses = make([]model.AddressItem, len(r.Addresses))
		for j, a := range r.Addresses {
			c.Addresses[j] = a
			if a.StopIndex != nil {
				n := *a.StopIndex
				c.Addresses[j].StopIndex = &n
			}
		}
		if r.MaxStopIndex != nil {
			n := *r.MaxStopIndex
			c.MaxStopIndex = &n
		}
		out[i] = c
	}
	return out
}
