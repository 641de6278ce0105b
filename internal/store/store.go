package store

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"romaneio/internal/model"
)

//go:embed schema.sql
var schemaFS embed.FS

// ErrNoImport 缓存中没有任何导入
var ErrNoImport = errors.New("no cached import")

// ImportStore “最近一次导入”缓存：线路数据、元信息、原始文件三者一起保存、一起清除
type ImportStore interface {
	Save(ctx context.Context, routes []model.Route, meta model.ImportMetadata, raw []byte) error
	Load(ctx context.Context) ([]model.Route, model.ImportMetadata, error)
	LoadRawBytes(ctx context.Context) ([]byte, error)
	Clear(ctx context.Context) error
	Close() error
}

// Open 按后端名称创建缓存：sqlite（默认）、file、memory
func Open(backend, dataDir string) (ImportStore, error) {
	switch backend {
	case "", "sqlite":
		return New(filepath.Join(dataDir, "romaneio.db"))
	case "file":
		return NewFileStore(filepath.Join(dataDir, "last_import"))
	case "memory":
		return NewMemoryStore(), nil
	}
	return nil, fmt.Errorf("unknown store backend: %q", backend)
}

// Store SQLite 数据库存储层
type Store struct {
	db *sql.DB
}

// New 创建新的 Store 实例
func New(dbPath string) (*Store, error) {
	// 确保 data 目录存在
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	// SQLite 建议单连接
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	s := &Store{db: db}
	if err := s.initSchema(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return s, nil
}

func (s *Store) initSchema() error {
	schemaSQL, err := schemaFS.ReadFile("schema.sql")
	if err != nil {
		return fmt.Errorf("failed to read schema.sql: %w", err)
	}
	if _, err := s.db.Exec(string(schemaSQL)); err != nil {
		return fmt.Errorf("failed to execute schema: %w", err)
	}
	return nil
}

// Close 关闭数据库连接
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}
