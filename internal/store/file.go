package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"romaneio/internal/model"
)

const (
	routesFile = "routes.json"
	metaFile   = "meta.json"
	rawFile    = "raw.bin"
)

// FileStore 以 JSON 文件保存最近一次导入；meta.json 最后写入，作为完整性标记
type FileStore struct {
	dir string
	mu  sync.Mutex
}

// NewFileStore 创建文件缓存
func NewFileStore(dir string) (*FileStore, error) {
	if err := ensureDir(dir); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

// Save 覆盖保存最近一次导入
func (s *FileStore) Save(ctx context.Context, routes []model.Route, meta model.ImportMetadata, raw []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path(metaFile)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to invalidate metadata: %w", err)
	}
	if err := writeFileAtomic(s.path(rawFile), raw); err != nil {
		return fmt.Errorf("failed to save raw file: %w", err)
	}
	if routes == nil {
		routes = []model.Route{}
	}
	if err := writeJSONAtomic(s.path(routesFile), routes); err != nil {
		return fmt.Errorf("failed to save routes: %w", err)
	}
	if err := writeJSONAtomic(s.path(metaFile), meta); err != nil {
		return fmt.Errorf("failed to save metadata: %w", err)
	}
	return nil
}

// Load 读取最近一次导入的线路与元信息
func (s *FileStore) Load(ctx context.Context) ([]model.Route, model.ImportMetadata, error) {
	if err := ctx.Err(); err != nil {
		return nil, model.ImportMetadata{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if !fileExists(s.path(metaFile)) {
		return nil, model.ImportMetadata{}, ErrNoImport
	}
	var meta model.ImportMetadata
	if err := readJSON(s.path(metaFile), &meta); err != nil {
		return nil, model.ImportMetadata{}, fmt.Errorf("failed to read metadata: %w", err)
	}
	routes := []model.Route{}
	if err := readJSON(s.path(routesFile), &routes); err != nil {
		return nil, model.ImportMetadata{}, fmt.Errorf("failed to read routes: %w", err)
	}
	return routes, meta, nil
}

// LoadRawBytes 读取最近一次导入的原始文件
func (s *FileStore) LoadRawBytes(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if !fileExists(s.path(metaFile)) {
		return nil, ErrNoImport
	}
	data, err := os.ReadFile(s.path(rawFile))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNoImport
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read raw file: %w", err)
	}
	return data, nil
}

// Clear 删除全部缓存文件
func (s *FileStore) Clear(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, name := range []string{metaFile, routesFile, rawFile} {
		if err := os.Remove(s.path(name)); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to remove %s: %w", name, err)
		}
	}
	return nil
}

// Close 文件缓存无需释放资源
func (s *FileStore) Close() error { return nil }

func (s *FileStore) path(name string) string {
	return filepath.Join(s.dir, name)
}
