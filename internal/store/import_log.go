package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// ImportLog 一次导入的日志记录
type ImportLog struct {
	ID           string     `json:"id"`
	Filename     string     `json:"filename"`
	Kind         string     `json:"kind"`
	FileSize     int64      `json:"fileSize"`
	TotalRows    int        `json:"totalRows"`
	SkippedRows  int        `json:"skippedRows"`
	RouteCount   int        `json:"routeCount"`
	Status       string     `json:"status"`
	ErrorMessage string     `json:"errorMessage,omitempty"`
	StartedAt    time.Time  `json:"startedAt"`
	CompletedAt  *time.Time `json:"completedAt,omitempty"`
}

// ImportLogResult 导入结束时写回的统计
type ImportLogResult struct {
	TotalRows    int
	SkippedRows  int
	RouteCount   int
	Status       string
	ErrorMessage string
}

// CreateImportLog 创建导入日志
func (s *Store) CreateImportLog(ctx context.Context, id, filename, kind string, fileSize int64) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO import_logs (id, filename, kind, file_size, status)
		VALUES (?, ?, ?, ?, 'processing')
	`, id, filename, kind, fileSize)
	if err != nil {
		return fmt.Errorf("failed to create import log: %w", err)
	}
	return nil
}

// FinishImportLog 完成导入日志更新
func (s *Store) FinishImportLog(ctx context.Context, id string, res ImportLogResult) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE import_logs SET
			total_rows = ?,
			skipped_rows = ?,
			route_count = ?,
			status = ?,
			error_message = ?,
			completed_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`, res.TotalRows, res.SkippedRows, res.RouteCount, res.Status, res.ErrorMessage, id)
	if err != nil {
		return fmt.Errorf("failed to update import log: %w", err)
	}
	return nil
}

// ListImportLogs 按开始时间倒序列出导入日志
func (s *Store) ListImportLogs(ctx context.Context, limit int) ([]ImportLog, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, filename, kind, file_size, total_rows, skipped_rows, route_count,
		       status, error_message, started_at, completed_at
		FROM import_logs
		ORDER BY started_at DESC, rowid DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list import logs: %w", err)
	}
	defer rows.Close()

	logs := []ImportLog{}
	for rows.Next() {
		var l ImportLog
		var completed sql.NullTime
		if err := rows.Scan(&l.ID, &l.Filename, &l.Kind, &l.FileSize, &l.TotalRows, &l.SkippedRows,
			&l.RouteCount, &l.Status, &l.ErrorMessage, &l.StartedAt, &completed); err != nil {
			return nil, fmt.Errorf("failed to scan import log: %w", err)
		}
		if completed.Valid {
			t := completed.Time
			l.CompletedAt = &t
		}
		logs = append(logs, l)
	}
	return logs, rows.Err()
}
