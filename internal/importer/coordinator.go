package importer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"romaneio/internal/calculator"
	"romaneio/internal/metrics"
	"romaneio/internal/model"
	"romaneio/internal/parser"
	"romaneio/internal/store"
)

// 进度事件类型
const (
	EventStart      = "start"
	EventInfo       = "info"
	EventWarning    = "warning"
	EventDone       = "done"
	EventError      = "error"
	EventSuperseded = "superseded"
)

// ImportLogger 可选的导入日志（SQLite 后端实现）
type ImportLogger interface {
	CreateImportLog(ctx context.Context, id, filename, kind string, fileSize int64) error
	FinishImportLog(ctx context.Context, id string, res store.ImportLogResult) error
}

// Coordinator 导入协调器：持有当前数据集，串行化提交，并把结果写入缓存
//
// 每次 Import 分配递增的代号；只有最新代号的导入可以提交结果（或失败时清空），
// 被后来者取代的导入以 superseded 事件结束。
type Coordinator struct {
	store   store.ImportStore
	logs    ImportLogger
	metrics *metrics.Metrics
	logger  *slog.Logger
	now     func() time.Time

	generation atomic.Uint64
	commitMu   sync.Mutex

	mu     sync.RWMutex
	routes []model.Route
	meta   *model.ImportMetadata
}

// Option 协调器选项
type Option func(*Coordinator)

// WithMetrics 记录导入指标
func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Coordinator) { c.metrics = m }
}

// WithLogger 指定日志
func WithLogger(l *slog.Logger) Option {
	return func(c *Coordinator) { c.logger = l }
}

// WithClock 指定时钟（测试用）
func WithClock(now func() time.Time) Option {
	return func(c *Coordinator) { c.now = now }
}

// NewCoordinator 创建导入协调器；store 若实现 ImportLogger 则同时写导入日志
func NewCoordinator(st store.ImportStore, opts ...Option) *Coordinator {
	c := &Coordinator{
		store:  st,
		logger: slog.Default(),
		now:    time.Now,
		routes: []model.Route{},
	}
	if l, ok := st.(ImportLogger); ok {
		c.logs = l
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ImportOptions 导入选项
type ImportOptions struct {
	Filename string
	MimeType string
	Data     []byte
}

// ProgressEvent 进度事件
type ProgressEvent struct {
	Type      string      `json:"type"`     // start/info/warning/done/error/superseded
	ImportID  string      `json:"importId"` // 本次导入 ID
	Message   string      `json:"message"`
	Data      interface{} `json:"data,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

// Report 导入完成报告
type Report struct {
	ImportID string               `json:"importId"`
	Meta     model.ImportMetadata `json:"meta"`
	parser.ParseResult
	Duration time.Duration `json:"duration"`
}

// Snapshot 当前数据集（只读）
type Snapshot struct {
	Routes []model.Route         `json:"routes"`
	Meta   *model.ImportMetadata `json:"meta,omitempty"`
}

// importRun 单次导入的上下文
type importRun struct {
	id         string
	generation uint64
	opts       ImportOptions
	meta       model.ImportMetadata
	start      time.Time
	progress   chan ProgressEvent
	result     parser.ParseResult
}

// Import 执行导入，返回进度通道
func (c *Coordinator) Import(opts ImportOptions) <-chan ProgressEvent {
	run := c.newRun(opts)

	go func() {
		defer close(run.progress)
		c.doImport(run)
	}()

	return run.progress
}

// newRun 分配导入 ID 与代号；代号在 Import 返回前确定
func (c *Coordinator) newRun(opts ImportOptions) *importRun {
	return &importRun{
		id:         uuid.NewString(),
		generation: c.generation.Add(1),
		opts:       opts,
		start:      c.now(),
		progress:   make(chan ProgressEvent, 100),
	}
}

// doImport 执行导入逻辑
func (c *Coordinator) doImport(run *importRun) {
	ctx := context.Background()
	opts := run.opts

	run.meta = model.ImportMetadata{
		Filename:     opts.Filename,
		MimeType:     opts.MimeType,
		ImportedAtMs: run.start.UnixMilli(),
		Kind:         model.DetectImportKind(opts.Filename, opts.MimeType),
	}

	c.sendProgress(run, EventStart, "Importando arquivo", map[string]interface{}{
		"filename": opts.Filename,
		"kind":     run.meta.Kind,
		"size":     len(opts.Data),
	})

	if c.logs != nil {
		if err := c.logs.CreateImportLog(ctx, run.id, opts.Filename, string(run.meta.Kind), int64(len(opts.Data))); err != nil {
			c.logger.Warn("create import log failed", slog.String("import_id", run.id), slog.Any("error", err))
		}
	}

	if run.meta.Kind != model.ImportKindSheet {
		// PDF 及其他文件只保存原始字节，数据集置空
		c.sendProgress(run, EventInfo, "Arquivo armazenado sem processamento", nil)
		c.finish(ctx, run, []model.Route{})
		return
	}

	table, err := parser.ReadTable(opts.Filename, opts.Data)
	if err != nil {
		c.fail(ctx, run, fmt.Errorf("falha ao processar arquivo: %w", err))
		return
	}
	result, routes, err := calculator.FromTable(table)
	run.result = result
	if errors.Is(err, model.ErrEmptySheet) {
		c.fail(ctx, run, err)
		return
	}

	cols := result.Columns
	c.sendProgress(run, EventInfo, fmt.Sprintf("Planilha \"%s\": %d linhas", table.SheetName, len(table.Rows)), map[string]interface{}{
		"sheet_name": table.SheetName,
		"headers":    table.Headers,
		"columns":    cols,
	})
	if err != nil {
		c.fail(ctx, run, err)
		return
	}
	if cols.DeliveryTime == "" {
		c.sendProgress(run, EventWarning, "Coluna de tempo de entrega não encontrada; modo tempo ficará sem dados", nil)
	}
	if cols.StopIndex == "" {
		c.sendProgress(run, EventWarning, "Coluna de parada não encontrada; paradas usam a quantidade de endereços", nil)
	}

	c.finish(ctx, run, routes)
}

// finish 提交成功结果
func (c *Coordinator) finish(ctx context.Context, run *importRun, routes []model.Route) {
	committed, err := c.commit(ctx, run.generation, routes, &run.meta, run.opts.Data)
	if !committed {
		c.supersede(ctx, run)
		return
	}
	if err != nil {
		c.sendProgress(run, EventWarning, fmt.Sprintf("Falha ao salvar cache: %v", err), nil)
	}

	report := Report{
		ImportID:    run.id,
		Meta:        run.meta,
		ParseResult: run.result,
		Duration:    c.now().Sub(run.start),
	}
	c.metrics.ObserveImport(string(run.meta.Kind), EventDone, report.Duration)
	c.finishLog(ctx, run, EventDone, "")
	c.logger.Info("import done",
		slog.String("import_id", run.id),
		slog.String("filename", run.meta.Filename),
		slog.String("kind", string(run.meta.Kind)),
		slog.Int("rows", run.result.TotalRows),
		slog.Int("routes", run.result.Routes))
	c.sendProgress(run, EventDone, "Importação concluída", report)
}

// fail 结构性错误：清空数据集、元信息与原始文件
func (c *Coordinator) fail(ctx context.Context, run *importRun, cause error) {
	committed, err := c.commit(ctx, run.generation, []model.Route{}, nil, nil)
	if !committed {
		c.supersede(ctx, run)
		return
	}
	if err != nil {
		c.logger.Warn("clear cache after failed import", slog.String("import_id", run.id), slog.Any("error", err))
	}

	c.metrics.ObserveImport(string(run.meta.Kind), EventError, c.now().Sub(run.start))
	c.finishLog(ctx, run, EventError, cause.Error())
	c.logger.Warn("import failed",
		slog.String("import_id", run.id),
		slog.String("filename", run.meta.Filename),
		slog.Any("error", cause))
	c.sendProgress(run, EventError, cause.Error(), map[string]interface{}{
		"structural": errors.Is(cause, model.ErrEmptySheet) || errors.Is(cause, model.ErrRouteColumnMissing),
	})
}

func (c *Coordinator) supersede(ctx context.Context, run *importRun) {
	c.metrics.ObserveImport(string(run.meta.Kind), EventSuperseded, c.now().Sub(run.start))
	c.finishLog(ctx, run, EventSuperseded, "")
	c.sendProgress(run, EventSuperseded, "Importação substituída por outra mais recente", nil)
}

// commit 仅当 generation 仍是最新代号时替换数据集；meta 为 nil 表示清空
func (c *Coordinator) commit(ctx context.Context, generation uint64, routes []model.Route, meta *model.ImportMetadata, raw []byte) (bool, error) {
	c.commitMu.Lock()
	defer c.commitMu.Unlock()

	if generation != c.generation.Load() {
		return false, nil
	}

	var err error
	if meta == nil {
		err = c.store.Clear(ctx)
	} else {
		err = c.store.Save(ctx, routes, *meta, raw)
	}

	c.setSnapshot(routes, meta)
	return true, err
}

func (c *Coordinator) setSnapshot(routes []model.Route, meta *model.ImportMetadata) {
	if routes == nil {
		routes = []model.Route{}
	}
	c.mu.Lock()
	c.routes = routes
	c.meta = meta
	c.mu.Unlock()
	c.metrics.SetRoutes(len(routes))
}

func (c *Coordinator) finishLog(ctx context.Context, run *importRun, status, message string) {
	if c.logs == nil {
		return
	}
	err := c.logs.FinishImportLog(ctx, run.id, store.ImportLogResult{
		TotalRows:    run.result.TotalRows,
		SkippedRows:  run.result.SkippedRows,
		RouteCount:   run.result.Routes,
		Status:       status,
		ErrorMessage: message,
	})
	if err != nil {
		c.logger.Warn("finish import log failed", slog.String("import_id", run.id), slog.Any("error", err))
	}
}

// Snapshot 返回当前数据集
func (c *Coordinator) Snapshot() Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var meta *model.ImportMetadata
	if c.meta != nil {
		m := *c.meta
		meta = &m
	}
	return Snapshot{Routes: c.routes, Meta: meta}
}

// Restore 启动时从缓存恢复；读取失败只记录日志，数据集保持为空
func (c *Coordinator) Restore(ctx context.Context) {
	routes, meta, err := c.store.Load(ctx)
	if err != nil {
		if !errors.Is(err, store.ErrNoImport) {
			c.logger.Warn("restore cached import failed", slog.Any("error", err))
		}
		c.setSnapshot(nil, nil)
		return
	}
	c.setSnapshot(routes, &meta)
	c.logger.Info("restored cached import",
		slog.String("filename", meta.Filename),
		slog.Int("routes", len(routes)))
}

// RawFile 返回缓存的原始文件及其元信息
func (c *Coordinator) RawFile(ctx context.Context) ([]byte, model.ImportMetadata, error) {
	snap := c.Snapshot()
	if snap.Meta == nil {
		return nil, model.ImportMetadata{}, store.ErrNoImport
	}
	raw, err := c.store.LoadRawBytes(ctx)
	if err != nil {
		return nil, model.ImportMetadata{}, err
	}
	return raw, *snap.Meta, nil
}

// Clear 清空数据集与缓存；进行中的导入随之失效
func (c *Coordinator) Clear(ctx context.Context) error {
	c.commitMu.Lock()
	defer c.commitMu.Unlock()

	c.generation.Add(1)
	err := c.store.Clear(ctx)
	c.setSnapshot(nil, nil)
	if err != nil {
		return fmt.Errorf("failed to clear cache: %w", err)
	}
	return nil
}

// sendProgress 发送进度事件
func (c *Coordinator) sendProgress(run *importRun, typ, message string, data interface{}) {
	event := ProgressEvent{
		Type:      typ,
		ImportID:  run.id,
		Message:   message,
		Data:      data,
		Timestamp: c.now(),
	}
	select {
	case run.progress <- event:
	default:
		// 通道已满，丢弃事件
	}
}
