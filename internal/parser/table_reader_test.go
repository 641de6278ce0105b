package parser

import (
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
)

func buildWorkbook(t *testing.T, rows [][]interface{}) []byte {
	t.Helper()

	f := excelize.NewFile()
	t.Cleanup(func() { _ = f.Close() })

	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		r := row
		if err := f.SetSheetRow("Sheet1", cell, &r); err != nil {
			t.Fatalf("SetSheetRow failed: %v", err)
		}
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("WriteToBuffer failed: %v", err)
	}
	return buf.Bytes()
}

func TestReadTable_WorkbookTypedCells(t *testing.T) {
	t.Parallel()

	data := buildWorkbook(t, [][]interface{}{
		{"Stop", "Address", "Delivery Time", "Corridor Cage", "Corridor Cage"},
		{1, "Rua A, 10", 0.15625, "R1", "x"},
		{},
		{2, "Rua B, 20", "3h50", "R1", "y"},
	})

	table, err := ReadTable("romaneio.xlsx", data)
	if err != nil {
		t.Fatalf("ReadTable failed: %v", err)
	}
	if table.SheetName != "Sheet1" {
		t.Fatalf("SheetName=%q", table.SheetName)
	}
	wantHeaders := []string{"Stop", "Address", "Delivery Time", "Corridor Cage", "Corridor Cage_1"}
	if len(table.Headers) != len(wantHeaders) {
		t.Fatalf("headers=%v", table.Headers)
	}
	for i, h := range wantHeaders {
		if table.Headers[i] != h {
			t.Fatalf("header[%d]=%q want=%q", i, table.Headers[i], h)
		}
	}
	if len(table.Rows) != 2 {
		t.Fatalf("rows=%d want=2 (blank row skipped)", len(table.Rows))
	}

	first := table.Rows[0]
	if v, ok := first["Delivery Time"].(float64); !ok || v != 0.15625 {
		t.Fatalf("numeric cell=%#v want float64 0.15625", first["Delivery Time"])
	}
	if v, ok := first["Stop"].(float64); !ok || v != 1 {
		t.Fatalf("stop cell=%#v", first["Stop"])
	}
	if v, ok := first["Address"].(string); !ok || v != "Rua A, 10" {
		t.Fatalf("text cell=%#v", first["Address"])
	}
	if v := table.Rows[1]["Delivery Time"]; v != "3h50" {
		t.Fatalf("text time cell=%#v", v)
	}
	if v := table.Rows[1]["Corridor Cage_1"]; v != "y" {
		t.Fatalf("duplicate header cell=%#v", v)
	}
}

func TestReadTable_CSVSemicolonWithBOM(t *testing.T) {
	t.Parallel()

	data := []byte("\xEF\xBB\xBFStop;Endereço;;Corridor Cage\n1;Rua A;;R1\n\n2;\"Rua B; fundos\";z;R2\n3;Rua C\n")

	table, err := ReadTable("romaneio.CSV", data)
	if err != nil {
		t.Fatalf("ReadTable failed: %v", err)
	}
	if got := table.Headers; len(got) != 4 || got[0] != "Stop" || got[2] != "__EMPTY" || got[3] != "Corridor Cage" {
		t.Fatalf("headers=%q", got)
	}
	if len(table.Rows) != 3 {
		t.Fatalf("rows=%d want=3", len(table.Rows))
	}
	if v := table.Rows[1]["Endereço"]; v != "Rua B; fundos" {
		t.Fatalf("quoted cell=%#v", v)
	}
	if v, ok := table.Rows[0]["Stop"].(float64); !ok || v != 1 {
		t.Fatalf("numeric csv cell=%#v want float64 1", table.Rows[0]["Stop"])
	}
	if v := table.Rows[0]["Endereço"]; v != "Rua A" {
		t.Fatalf("text csv cell=%#v", v)
	}
	if v := table.Rows[2]["Corridor Cage"]; v != "" {
		t.Fatalf("short record padded with empty string, got %#v", v)
	}
}

func TestReadTable_InvalidWorkbook(t *testing.T) {
	t.Parallel()

	if _, err := ReadTable("romaneio.xlsx", []byte("not a zip")); err == nil {
		t.Fatalf("expected error for invalid workbook")
	}
}

func TestReadTable_EmptyCSV(t *testing.T) {
	t.Parallel()

	table, err := ReadTable("vazio.csv", nil)
	if err != nil {
		t.Fatalf("ReadTable failed: %v", err)
	}
	if len(table.Rows) != 0 || len(table.Headers) != 0 {
		t.Fatalf("expected empty table, got %+v", table)
	}
}

func TestReadTable_CSVNumericDeliveryTimes(t *testing.T) {
	t.Parallel()

	data := []byte("Stop,Delivery Time,Zip,Corridor Cage\n1,225,01000,R1\n2,0.15625,05000,R1\n3,3h45,,007\n4,3,5,R2\n")
	table, err := ReadTable("r.csv", data)
	if err != nil {
		t.Fatalf("ReadTable failed: %v", err)
	}

	for i, want := range []int{225, 225, 225} {
		got, ok := ParseMinutes(table.Rows[i]["Delivery Time"])
		if !ok || got != want {
			t.Fatalf("row %d: cell=%#v minutes=%d,%v want=%d", i, table.Rows[i]["Delivery Time"], got, ok, want)
		}
	}
	if v := table.Rows[0]["Zip"]; v != "01000" {
		t.Fatalf("leading zero cell must stay text, got %#v", v)
	}
	if v := table.Rows[2]["Corridor Cage"]; v != "007" {
		t.Fatalf("leading zero route id must stay text, got %#v", v)
	}
	if got := CellString(table.Rows[3]["Corridor Cage"]); got != "R2" {
		t.Fatalf("route id=%q", got)
	}
}

func TestInferCell(t *testing.T) {
	t.Parallel()

	cases := map[string]any{
		"225":     225.0,
		"-4":      -4.0,
		"0":       0.0,
		".5":      0.5,
		"0.15625": 0.15625,
		"3,5":     "3,5",
		"1e5":     "1e5",
		"NaN":     "NaN",
		"Inf":     "Inf",
		"00":      "00",
		"3h50":    "3h50",
	}
	for in, want := range cases {
		if got := inferCell(1, 1, in); got != want {
			t.Fatalf("inferCell(%q)=%#v want=%#v", in, got, want)
		}
	}
}

func TestReadTable_XLSUsesLegacyReader(t *testing.T) {
	t.Parallel()

	_, err := ReadTable("romaneio.XLS", []byte("not an ole2 document"))
	if err == nil {
		t.Fatalf("expected error for invalid xls")
	}
	if !strings.Contains(err.Error(), "failed to open xls") {
		t.Fatalf("xls must not be routed to the OOXML reader: %v", err)
	}
}

func TestBuildTable_LegacyRows(t *testing.T) {
	t.Parallel()

	rows := [][]string{
		{"Stop", "Delivery Time", "Corridor Cage"},
		nil,
		{"1", "225", "R1"},
		{"", "03:45:00"},
	}
	table := buildTable("Rotas", rows, inferCell)
	if table.SheetName != "Rotas" || len(table.Rows) != 2 {
		t.Fatalf("table=%+v", table)
	}
	if got, ok := ParseMinutes(table.Rows[0]["Delivery Time"]); !ok || got != 225 {
		t.Fatalf("numeric legacy cell minutes=%d,%v", got, ok)
	}
	if got, ok := ParseMinutes(table.Rows[1]["Delivery Time"]); !ok || got != 225 {
		t.Fatalf("formatted legacy cell minutes=%d,%v", got, ok)
	}
	if v := table.Rows[1]["Corridor Cage"]; v != "" {
		t.Fatalf("short row padded, got %#v", v)
	}
}
