package main

import (
	"bytes"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"romaneio/internal/exporter"
	"romaneio/internal/model"
	"romaneio/internal/report"
	"romaneio/internal/view"
)

func main() {
	file := flag.String("file", "", "planilha (.xlsx / .xls / .csv)")
	mode := flag.String("mode", "time", "modo: time|stops (tempo|paradas)")
	band := flag.String("band", "all", "faixa: all|green|yellow|red|none")
	search := flag.String("q", "", "busca por rota, bairro ou tipo de local")
	sortKey := flag.String("sort", "score", "ordenação: score|avg|id")
	sortDir := flag.String("dir", "desc", "direção: asc|desc")
	export := flag.String("export", "", "exportar para arquivo (.csv ou .xlsx)")
	flag.Parse()

	if *file == "" {
		fmt.Fprintln(os.Stderr, "usage: romaneio-report -file romaneio.xlsx [-mode time] [-export out.xlsx]")
		os.Exit(2)
	}

	q := view.Query{
		Mode:    model.Mode(*mode),
		Band:    model.BandFilter(*band),
		Search:  *search,
		SortKey: view.SortKey(*sortKey),
		SortDir: view.SortDir(*sortDir),
	}
	if err := q.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid flags: %v\n", err)
		os.Exit(2)
	}
	q = q.Normalize()

	var format exporter.Format
	if *export != "" {
		f, err := exporter.ParseFormat(strings.TrimPrefix(filepath.Ext(*export), "."), exporter.FormatCSV)
		if err != nil {
			fmt.Fprintf(os.Stderr, "export: %v\n", err)
			os.Exit(2)
		}
		format = f
	}

	data, err := os.ReadFile(*file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "read: %v\n", err)
		os.Exit(1)
	}
	res, err := report.Load(*file, data)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	if err := report.Render(os.Stdout, res, q); err != nil {
		fmt.Fprintf(os.Stderr, "render: %v\n", err)
		os.Exit(1)
	}

	if *export == "" {
		return
	}
	var buf bytes.Buffer
	n, err := report.Export(&buf, res, q, format, os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "export: %v\n", err)
		os.Exit(1)
	}
	if err := os.WriteFile(*export, buf.Bytes(), 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "write: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("%d rotas exportadas para %s\n", n, *export)
}
