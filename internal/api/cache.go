package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"romaneio/internal/model"
	"romaneio/internal/store"
)

// GetCachedFile 最近一次导入的原始文件；PDF 以 inline 方式返回便于直接查看
// GET /api/cache/file
func (h *Handler) GetCachedFile(c *gin.Context) {
	raw, meta, err := h.coord.RawFile(c.Request.Context())
	if errors.Is(err, store.ErrNoImport) {
		c.JSON(http.StatusNotFound, gin.H{"error": "nenhum arquivo em cache"})
		return
	}
	if err != nil {
		h.logger.ErrorContext(c.Request.Context(), "load cached file failed", slog.Any("error", err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "falha ao ler cache"})
		return
	}

	contentType := meta.MimeType
	if contentType == "" {
		contentType = http.DetectContentType(raw)
	}
	kind := "attachment"
	if meta.Kind == model.ImportKindPDF {
		kind = "inline"
		contentType = "application/pdf"
	}
	filename := meta.Filename
	if filename == "" {
		filename = "arquivo"
	}
	c.Header("Content-Disposition", contentDisposition(kind, filename))
	c.Data(http.StatusOK, contentType, raw)
}

// ClearCache 清除数据集、元信息与原始文件
// DELETE /api/cache
func (h *Handler) ClearCache(c *gin.Context) {
	if err := h.coord.Clear(c.Request.Context()); err != nil {
		h.logger.ErrorContext(c.Request.Context(), "clear cache failed", slog.Any("error", err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "falha ao limpar cache"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
