package model

import (
	"path/filepath"
	"strings"
)

// ImportKind 导入文件类别
type ImportKind string

const (
	ImportKindSheet ImportKind = "sheet"
	ImportKindPDF   ImportKind = "pdf"
	ImportKindOther ImportKind = "other"
)

// ImportMetadata 最近一次导入的元信息（每次导入整体覆盖）
type ImportMetadata struct {
	Filename     string     `json:"filename"`
	MimeType     string     `json:"mimeType,omitempty"`
	ImportedAtMs int64      `json:"importedAt"`
	Kind         ImportKind `json:"kind"`
}

// DetectImportKind 根据 MIME 与扩展名判断文件类别
func DetectImportKind(filename, mimeType string) ImportKind {
	if strings.EqualFold(mimeType, "application/pdf") {
		return ImportKindPDF
	}
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return ImportKindPDF
	case ".xlsx", ".xlsm", ".xls", ".csv":
		return ImportKindSheet
	}
	return ImportKindOther
}
