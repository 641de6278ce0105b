package calculator

import (
	"romaneio/internal/model"
	"romaneio/internal/parser"
)

// FromTable 识别列并聚合线路。
// 空表返回 ErrEmptySheet，缺少线路编号列返回 ErrRouteColumnMissing；出错时 result 仍带有已识别的列。
func FromTable(table *parser.Table) (parser.ParseResult, []model.Route, error) {
	result := parser.ParseResult{
		SheetName: table.SheetName,
		TotalRows: len(table.Rows),
	}
	if len(table.Rows) == 0 {
		return result, nil, model.ErrEmptySheet
	}

	result.Columns = parser.InferColumns(table.Headers)
	if err := result.Columns.Validate(); err != nil {
		return result, nil, err
	}

	agg := NewAggregator(result.Columns)
	for _, row := range table.Rows {
		agg.Add(row)
	}
	routes := agg.Routes()
	result.SkippedRows = agg.Skipped()
	result.Routes = len(routes)
	return result, routes, nil
}
