package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"romaneio/internal/importer"
)

// Import 上传并导入文件 (SSE 流式响应)
// POST /api/import
func (h *Handler) Import(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.opts.MaxUploadBytes)

	fh, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": fmt.Sprintf("arquivo maior que %d MB", h.opts.MaxUploadBytes>>20)})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "arquivo não encontrado no formulário"})
		return
	}

	f, err := fh.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "falha ao ler arquivo"})
		return
	}
	data, err := io.ReadAll(f)
	_ = f.Close()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "falha ao ler arquivo"})
		return
	}

	flusher, ok := c.Writer.(http.Flusher)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "streaming não suportado"})
		return
	}

	// 设置 SSE 响应头
	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")
	c.Status(http.StatusOK)

	h.logger.InfoContext(c.Request.Context(), "import received",
		slog.String("filename", fh.Filename),
		slog.Int64("size", fh.Size))

	progressChan := h.coord.Import(importer.ImportOptions{
		Filename: fh.Filename,
		MimeType: fh.Header.Get("Content-Type"),
		Data:     data,
	})

	// 客户端断开后继续消费事件，导入本身照常完成
	for event := range progressChan {
		eventData, err := json.Marshal(event)
		if err != nil {
			continue
		}
		// SSE 格式: data: {json}\n\n
		fmt.Fprintf(c.Writer, "data: %s\n\n", eventData)
		flusher.Flush()
	}
}

// ListImports 最近的导入日志
// GET /api/imports
func (h *Handler) ListImports(c *gin.Context) {
	if h.opts.Logs == nil {
		c.JSON(http.StatusOK, gin.H{"items": []any{}})
		return
	}
	logs, err := h.opts.Logs.ListImportLogs(c.Request.Context(), 20)
	if err != nil {
		h.logger.ErrorContext(c.Request.Context(), "list import logs failed", slog.Any("error", err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "falha ao consultar histórico"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": logs})
}
