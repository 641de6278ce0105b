package exporter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"romaneio/internal/view"
)

// Format 导出文件格式
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ParseFormat 解析导出格式，空字符串使用 fallback
func ParseFormat(s string, fallback Format) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case "":
		return fallback, nil
	case FormatCSV:
		return FormatCSV, nil
	case FormatXLSX:
		return FormatXLSX, nil
	}
	return "", fmt.Errorf("unsupported export format: %q", s)
}

// ContentType 返回格式对应的 MIME 类型
func (f Format) ContentType() string {
	if f == FormatXLSX {
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "text/csv; charset=utf-8"
}

// Options 导出选项
type Options struct {
	Format    Format
	SheetName string
	Headers   []string
	Progress  func(ProgressEvent)
}

// Write 把扁平记录写成 CSV（带 UTF-8 BOM，便于 Excel 识别）或 XLSX
func Write(w io.Writer, opts Options, records []view.Record) error {
	if opts.SheetName == "" {
		opts.SheetName = view.ExportSheetName
	}
	if len(opts.Headers) == 0 {
		opts.Headers = view.ExportHeaders
	}

	reportProgress(opts.Progress, 0, "iniciando")
	var err error
	switch opts.Format {
	case FormatXLSX:
		err = writeXLSX(w, opts, records)
	case FormatCSV, "":
		err = writeCSV(w, opts, records)
	default:
		err = fmt.Errorf("unsupported export format: %q", opts.Format)
	}
	if err != nil {
		return err
	}
	reportProgress(opts.Progress, 100, "concluído")
	return nil
}

func writeCSV(w io.Writer, opts Options, records []view.Record) error {
	if _, err := w.Write(utf8BOM); err != nil {
		return fmt.Errorf("failed to write BOM: %w", err)
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(opts.Headers); err != nil {
		return fmt.Errorf("failed to write headers: %w", err)
	}
	for i, rec := range records {
		if err := cw.Write(rec.Strings(opts.Headers)); err != nil {
			return fmt.Errorf("failed to write record %d: %w", i, err)
		}
		reportRowProgress(opts.Progress, i+1, len(records))
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to flush csv: %w", err)
	}
	return nil
}

func writeXLSX(w io.Writer, opts Options, records []view.Record) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := opts.SheetName
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	header := make([]interface{}, len(opts.Headers))
	for i, h := range opts.Headers {
		header[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write headers: %w", err)
	}

	style, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"2563EB"}},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}
	lastCol, err := excelize.ColumnNumberToName(len(opts.Headers))
	if err != nil {
		return fmt.Errorf("invalid header count: %w", err)
	}
	if err := f.SetCellStyle(sheet, "A1", lastCol+"1", style); err != nil {
		return fmt.Errorf("failed to style headers: %w", err)
	}
	if err := f.SetColWidth(sheet, "A", lastCol, 18); err != nil {
		return fmt.Errorf("failed to set column width: %w", err)
	}

	for i, rec := range records {
		row := make([]interface{}, len(opts.Headers))
		for j, h := range opts.Headers {
			row[j] = rec[h]
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write record %d: %w", i, err)
		}
		reportRowProgress(opts.Progress, i+1, len(records))
	}

	if err := f.SetPanes(sheet, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"}); err != nil {
		return fmt.Errorf("failed to freeze header: %w", err)
	}
	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write xlsx: %w", err)
	}
	return nil
}
