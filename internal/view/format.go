package view

import (
	"fmt"

	"romaneio/internal/model"
)

// Placeholder 无数据时的占位符
const Placeholder = "—"

// FormatMinutes 把分钟格式化为 HhMM，例如 225 -> "3h45"
func FormatMinutes(m *int) string {
	if m == nil {
		return Placeholder
	}
	return fmt.Sprintf("%dh%02d", *m/60, *m%60)
}

// ExportFilename 导出文件名，沿用面板的 tempo/paradas 命名
func ExportFilename(mode model.Mode, format string) string {
	name := "tempo"
	if mode == model.ModeStops {
		name = "paradas"
	}
	return fmt.Sprintf("rotas_consolidadas_%s.%s", name, format)
}
