package parser

import "romaneio/internal/model"

// Table 表格读取结果（只取第一个工作表）
type Table struct {
	SheetName string         `json:"sheetName"`
	Headers   []string       `json:"headers"`
	Rows      []model.RawRow `json:"-"`
}

// ParseResult 单次解析的统计信息
type ParseResult struct {
	SheetName   string          `json:"sheetName"`
	TotalRows   int             `json:"totalRows"`
	SkippedRows int             `json:"skippedRows"` // 线路编号为空的行
	Routes      int             `json:"routes"`
	Columns     model.ColumnMap `json:"columns"`
}
