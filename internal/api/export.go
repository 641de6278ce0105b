package api

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"romaneio/internal/exporter"
	"romaneio/internal/view"
)

// ExportRequest 导出请求：视图查询条件 + 文件格式
type ExportRequest struct {
	view.Query
	Format string `json:"format" validate:"omitempty,oneof=csv xlsx CSV XLSX"`
}

// Export 按当前视图导出，返回一次性下载地址
// POST /api/export
func (h *Handler) Export(c *gin.Context) {
	var req ExportRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			h.badRequest(c, err)
			return
		}
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(c, err)
		return
	}
	format, err := exporter.ParseFormat(req.Format, h.opts.DefaultFormat)
	if err != nil {
		h.badRequest(c, err)
		return
	}
	q := req.Query.Normalize()

	items := view.Apply(h.coord.Snapshot().Routes, q)
	var buf bytes.Buffer
	if err := exporter.Write(&buf, exporter.Options{Format: format}, view.ExportRows(items, q.Mode)); err != nil {
		h.logger.ErrorContext(c.Request.Context(), "export failed", slog.Any("error", err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "falha ao exportar: " + err.Error()})
		return
	}
	h.opts.Metrics.IncExport(string(format), string(q.Mode))

	filename := view.ExportFilename(q.Mode, string(format))
	token := h.downloads.put(exportDownload{
		data:        buf.Bytes(),
		filename:    filename,
		contentType: format.ContentType(),
	}, h.opts.DownloadTTL)

	prefix := strings.TrimSuffix(c.FullPath(), "/export")
	c.JSON(http.StatusOK, gin.H{
		"filename":    filename,
		"count":       len(items),
		"downloadUrl": fmt.Sprintf("%s/export/download/%s", prefix, token),
	})
}

// DownloadExport 下载导出文件（一次性）
// GET /api/export/download/:token
func (h *Handler) DownloadExport(c *gin.Context) {
	item, ok := h.downloads.take(c.Param("token"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "link de download expirado"})
		return
	}
	c.Header("Content-Disposition", contentDisposition("attachment", item.filename))
	c.Data(http.StatusOK, item.contentType, item.data)
}
