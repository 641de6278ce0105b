package parser

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/extrame/xls"
	"github.com/xuri/excelize/v2"

	"romaneio/internal/model"
)

const emptyHeader = "__EMPTY"

var (
	utf8BOM       = []byte{0xEF, 0xBB, 0xBF}
	reNumericCell = regexp.MustCompile(`^[+-]?(?:\d+(?:\.\d*)?|\.\d+)$`)
)

// ReadTable 读取表格文件的第一个工作表：第一行作为表头，之后每个非空行生成一条 RawRow
func ReadTable(filename string, data []byte) (*Table, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		return readCSV(data)
	case ".xls":
		return readXLS(data)
	}
	return readWorkbook(data)
}

func readWorkbook(data []byte) (*Table, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to open excel: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New("workbook has no sheets")
	}
	sheet := sheets[0]

	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheet, err)
	}
	return buildTable(sheet, rows, func(col, row int, raw string) any {
		return typedCell(f, sheet, col, row, raw)
	}), nil
}

// readXLS 读取旧版 BIFF (.xls) 工作簿的第一个工作表
func readXLS(data []byte) (*Table, error) {
	wb, err := xls.OpenReader(bytes.NewReader(data), "utf-8")
	if err != nil {
		return nil, fmt.Errorf("failed to open xls: %w", err)
	}
	sheet := wb.GetSheet(0)
	if sheet == nil {
		return nil, errors.New("workbook has no sheets")
	}

	rows := make([][]string, 0, int(sheet.MaxRow)+1)
	for i := 0; i <= int(sheet.MaxRow); i++ {
		row := sheet.Row(i)
		if row == nil {
			rows = append(rows, nil)
			continue
		}
		cells := make([]string, row.LastCol())
		for j := row.FirstCol(); j < row.LastCol(); j++ {
			cells[j] = row.Col(j)
		}
		rows = append(rows, cells)
	}
	return buildTable(sheet.Name, rows, inferCell), nil
}

// buildTable 由原始行构造 Table；cell 负责把非空文本还原成单元格值（col、row 从 1 开始）
func buildTable(sheet string, rows [][]string, cell func(col, row int, raw string) any) *Table {
	table := &Table{SheetName: sheet, Rows: []model.RawRow{}}
	if len(rows) == 0 {
		return table
	}

	width := 0
	for _, r := range rows {
		if len(r) > width {
			width = len(r)
		}
	}
	table.Headers = uniqueHeaders(rows[0], width)

	for i, r := range rows[1:] {
		if isBlankRow(r) {
			continue
		}
		row := make(model.RawRow, width)
		for j, h := range table.Headers {
			if j >= len(r) || r[j] == "" {
				row[h] = ""
				continue
			}
			row[h] = cell(j+1, i+2, r[j])
		}
		table.Rows = append(table.Rows, row)
	}
	return table
}

// typedCell 依据单元格类型还原值：文本保持字符串，数值/日期返回 float64
func typedCell(f *excelize.File, sheet string, col, row int, raw string) any {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return raw
	}
	typ, err := f.GetCellType(sheet, cell)
	if err != nil {
		return raw
	}
	switch typ {
	case excelize.CellTypeSharedString, excelize.CellTypeInlineString:
		return raw
	case excelize.CellTypeBool:
		return raw == "1" || strings.EqualFold(raw, "true")
	}
	if n, err := strconv.ParseFloat(raw, 64); err == nil {
		return n
	}
	return raw
}

// inferCell 无类型来源（CSV、xls 文本）的数值识别：纯十进制数返回 float64，其余保持文本。
// 带前导零的编号（如 "007"、邮编 "01000"）保持文本。
func inferCell(_, _ int, raw string) any {
	s := strings.TrimSpace(raw)
	if !reNumericCell.MatchString(s) {
		return raw
	}
	digits := strings.TrimLeft(s, "+-")
	if len(digits) > 1 && digits[0] == '0' && digits[1] != '.' {
		return raw
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return raw
	}
	return n
}

func readCSV(data []byte) (*Table, error) {
	data = bytes.TrimPrefix(data, utf8BOM)

	r := csv.NewReader(bytes.NewReader(data))
	r.Comma = sniffDelimiter(data)
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	var records [][]string
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read csv: %w", err)
		}
		records = append(records, rec)
	}
	return buildTable("Sheet1", records, inferCell), nil
}

// sniffDelimiter 根据首行判断分隔符（, ; \t）
func sniffDelimiter(data []byte) rune {
	line, _ := bufio.NewReader(bytes.NewReader(data)).ReadString('\n')
	best, bestCount := ',', 0
	for _, d := range []rune{',', ';', '\t'} {
		if n := strings.Count(line, string(d)); n > bestCount {
			best, bestCount = d, n
		}
	}
	return best
}

// uniqueHeaders 补齐表头宽度；空表头命名为 __EMPTY，重复表头追加 _1、_2 …
func uniqueHeaders(raw []string, width int) []string {
	out := make([]string, width)
	used := make(map[string]bool, width)
	counts := make(map[string]int, width)
	for j := 0; j < width; j++ {
		base := ""
		if j < len(raw) {
			base = raw[j]
		}
		if strings.TrimSpace(base) == "" {
			base = emptyHeader
		}
		name := base
		for used[name] {
			counts[base]++
			name = fmt.Sprintf("%s_%d", base, counts[base])
		}
		used[name] = true
		out[j] = name
	}
	return out
}

func isBlankRow(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
