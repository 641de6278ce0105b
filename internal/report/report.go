package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"romaneio/internal/calculator"
	"romaneio/internal/exporter"
	"romaneio/internal/model"
	"romaneio/internal/parser"
	"romaneio/internal/view"
)

// Result 离线报表的计算结果
type Result struct {
	Sheet   string
	Columns model.ColumnMap
	Rows    int
	Skipped int
	Routes  []model.Route
}

// Load 读取表格并聚合为线路
func Load(filename string, data []byte) (*Result, error) {
	table, err := parser.ReadTable(filename, data)
	if err != nil {
		return nil, fmt.Errorf("falha ao processar arquivo: %w", err)
	}
	res, routes, err := calculator.FromTable(table)
	if err != nil {
		return nil, err
	}
	return &Result{
		Sheet:   res.SheetName,
		Columns: res.Columns,
		Rows:    res.TotalRows,
		Skipped: res.SkippedRows,
		Routes:  routes,
	}, nil
}

var (
	headStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#5B8DEF"))
	dimStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))

	bandStyles = map[model.Band]lipgloss.Style{
		model.BandGreen:  lipgloss.NewStyle().Foreground(lipgloss.Color("#22C55E")),
		model.BandYellow: lipgloss.NewStyle().Foreground(lipgloss.Color("#EAB308")),
		model.BandRed:    lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B")).Bold(true),
		model.BandNone:   dimStyle,
	}
)

// Render 输出按视图条件筛选排序后的线路表
func Render(w io.Writer, res *Result, q view.Query) error {
	q = q.Normalize()
	items := view.Apply(res.Routes, q)
	stats := calculator.CountBands(res.Routes, q.Mode)

	var b strings.Builder
	b.WriteString(headStyle.Render(fmt.Sprintf("Planilha %q · %d linhas · %d rotas", res.Sheet, res.Rows, len(res.Routes))))
	b.WriteString("\n")
	if res.Skipped > 0 {
		b.WriteString(dimStyle.Render(fmt.Sprintf("%d linhas sem rota ignoradas", res.Skipped)))
		b.WriteString("\n")
	}
	b.WriteString(fmt.Sprintf("%s %d  %s %d  %s %d  %s %d\n",
		bandStyles[model.BandGreen].Render("verde"), stats.Green,
		bandStyles[model.BandYellow].Render("amarelo"), stats.Yellow,
		bandStyles[model.BandRed].Render("vermelho"), stats.Red,
		bandStyles[model.BandNone].Render("sem dado"), stats.None))

	header := fmt.Sprintf("%-14s %8s %8s %8s %7s  %s", "Rota", "Score", "Pior", "Média", "Paradas", "Bairro")
	b.WriteString(headStyle.Render(header))
	b.WriteString("\n")

	for _, it := range items {
		score := view.FormatMinutes(it.Score)
		if q.Mode == model.ModeStops && it.Score != nil {
			score = fmt.Sprintf("%d", *it.Score)
		}
		line := fmt.Sprintf("%-14s %8s %8s %8s %7d  %s",
			it.Route.ID, score, view.FormatMinutes(it.Worst), view.FormatMinutes(it.Avg),
			it.StopsCount, it.Route.NeighborhoodSample)
		b.WriteString(bandStyles[it.Band].Render(line))
		b.WriteString("\n")
	}
	if len(items) == 0 {
		b.WriteString(dimStyle.Render("nenhuma rota para o filtro atual"))
		b.WriteString("\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// Export 按视图条件导出到 w，进度写入 progress（可为 nil）；返回导出的线路数
func Export(w io.Writer, res *Result, q view.Query, format exporter.Format, progress io.Writer) (int, error) {
	q = q.Normalize()
	records := view.ExportRows(view.Apply(res.Routes, q), q.Mode)

	opts := exporter.Options{Format: format}
	if progress != nil {
		opts.Progress = func(e exporter.ProgressEvent) {
			fmt.Fprintf(progress, "%s %3d%% %s\n", dimStyle.Render("exportando"), e.Percent, e.Stage)
		}
	}
	if err := exporter.Write(w, opts, records); err != nil {
		return 0, err
	}
	return len(records), nil
}
