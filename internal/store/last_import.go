package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"romaneio/internal/model"
)

// Save 覆盖保存最近一次导入
func (s *Store) Save(ctx context.Context, routes []model.Route, meta model.ImportMetadata, raw []byte) error {
	routesJSON, metaJSON, err := encodeImport(routes, meta)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO last_import (id, routes_json, meta_json, raw, updated_at)
		VALUES (1, ?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(id) DO UPDATE SET
			routes_json = excluded.routes_json,
			meta_json = excluded.meta_json,
			raw = excluded.raw,
			updated_at = CURRENT_TIMESTAMP
	`, string(routesJSON), string(metaJSON), raw)
	if err != nil {
		return fmt.Errorf("failed to save last import: %w", err)
	}
	return nil
}

// Load 读取最近一次导入的线路与元信息
func (s *Store) Load(ctx context.Context) ([]model.Route, model.ImportMetadata, error) {
	var routesJSON, metaJSON string
	err := s.db.QueryRowContext(ctx, `SELECT routes_json, meta_json FROM last_import WHERE id = 1`).Scan(&routesJSON, &metaJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, model.ImportMetadata{}, ErrNoImport
	}
	if err != nil {
		return nil, model.ImportMetadata{}, fmt.Errorf("failed to load last import: %w", err)
	}
	return decodeImport([]byte(routesJSON), []byte(metaJSON))
}

// LoadRawBytes 读取最近一次导入的原始文件
func (s *Store) LoadRawBytes(ctx context.Context) ([]byte, error) {
	var raw []byte
	err := s.db.QueryRowContext(ctx, `SELECT raw FROM last_import WHERE id = 1`).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) || (err == nil && raw == nil) {
		return nil, ErrNoImport
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load raw file: %w", err)
	}
	return raw, nil
}

// Clear 清除最近一次导入
func (s *Store) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM last_import`); err != nil {
		return fmt.Errorf("failed to clear last import: %w", err)
	}
	return nil
}

func encodeImport(routes []model.Route, meta model.ImportMetadata) ([]byte, []byte, error) {
	if routes == nil {
		routes = []model.Route{}
	}
	routesJSON, err := json.Marshal(routes)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to encode routes: %w", err)
	}
	metaJSON, err := json.Marshal(meta)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to encode metadata: %w", err)
	}
	return routesJSON, metaJSON, nil
}

func decodeImport(routesJSON, metaJSON []byte) ([]model.Route, model.ImportMetadata, error) {
	var meta model.ImportMetadata
	if err := json.Unmarshal(metaJSON, &meta); err != nil {
		return nil, model.ImportMetadata{}, fmt.Errorf("failed to decode metadata: %w", err)
	}
	routes := []model.Route{}
	if err := json.Unmarshal(routesJSON, &routes); err != nil {
		return nil, model.ImportMetadata{}, fmt.Errorf("failed to decode routes: %w", err)
	}
	return routes, meta, nil
}
