package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"romaneio/internal/exporter"
	"romaneio/internal/importer"
	"romaneio/internal/metrics"
	"romaneio/internal/store"
)

// ImportLogLister 可选的导入日志查询（SQLite 后端实现）
type ImportLogLister interface {
	ListImportLogs(ctx context.Context, limit int) ([]store.ImportLog, error)
}

// Options 处理器选项
type Options struct {
	MaxUploadBytes int64
	DefaultFormat  exporter.Format
	DownloadTTL    time.Duration
	Metrics        *metrics.Metrics
	Logs           ImportLogLister
	Logger         *slog.Logger
}

// Handler API 处理器
type Handler struct {
	coord     *importer.Coordinator
	opts      Options
	downloads *exportDownloadStore
	validate  *validator.Validate
	logger    *slog.Logger
}

// NewHandler 创建 API 处理器
func NewHandler(coord *importer.Coordinator, opts Options) *Handler {
	if opts.MaxUploadBytes <= 0 {
		opts.MaxUploadBytes = 32 << 20
	}
	if opts.DefaultFormat == "" {
		opts.DefaultFormat = exporter.FormatCSV
	}
	if opts.DownloadTTL <= 0 {
		opts.DownloadTTL = 10 * time.Minute
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		coord:     coord,
		opts:      opts,
		downloads: newExportDownloadStore(),
		validate:  validator.New(),
		logger:    logger,
	}
}

// RegisterRoutes 注册 API 路由
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	// 系统状态
	router.GET("/status", h.GetStatus)

	// 数据导入
	router.POST("/import", h.Import)
	router.GET("/imports", h.ListImports)

	// 线路查询
	router.GET("/routes", h.ListRoutes)
	router.GET("/routes/:id", h.GetRoute)
	router.GET("/stats", h.GetStats)

	// 数据导出
	router.POST("/export", h.Export)
	router.GET("/export/download/:token", h.DownloadExport)

	// 最近一次导入缓存
	router.GET("/cache/file", h.GetCachedFile)
	router.DELETE("/cache", h.ClearCache)
}

func (h *Handler) badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}
