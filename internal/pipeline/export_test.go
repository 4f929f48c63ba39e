package pipeline

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"prodmaster/internal"
)

func TestWriteMasterCSV(t *testing.T) {
	records := []internal.Record{
		{Date: "2026-01-15", Product: "Buje Bronce", Quantity: 120, Machine: "CNC-01", Operator: "Ana", Origin: internal.MonthEnero},
		{Date: "2026-02-05", Product: "Ángulo de Acero", Quantity: 90, Machine: "Torno-7", Operator: "Luis", Origin: internal.MonthFebrero},
	}
	path := filepath.Join(t.TempDir(), "out", "Reporte_Maestro.csv")

	if err := WriteMasterCSV(records, path); err != nil {
		t.Fatalf("WriteMasterCSV: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	content := string(raw)

	if !strings.HasPrefix(content, "\uFEFF") {
		t.Fatalf("output missing UTF-8 BOM")
	}
	lines := strings.Split(strings.TrimPrefix(content, "\uFEFF"), "\n")
	if lines[0] != "Fecha,Producto,Cantidad,Maquina,Operador,Origen" {
		t.Fatalf("header = %q", lines[0])
	}
	if lines[1] != "2026-01-15,Buje Bronce,120,CNC-01,Ana,Enero" {
		t.Fatalf("first row = %q", lines[1])
	}
	// Accented characters must round-trip.
	if !strings.Contains(lines[2], "Ángulo de Acero") {
		t.Fatalf("second row = %q", lines[2])
	}
}

func TestWriteMasterXLSX(t *testing.T) {
	records := []internal.Record{
		{Date: "2026-01-15", Product: "Buje Bronce", Quantity: 120, Machine: "CNC-01", Operator: "Ana", Origin: internal.MonthEnero},
	}
	path := filepath.Join(t.TempDir(), "Reporte_Maestro.xlsx")

	if err := WriteMasterXLSX(records, path); err != nil {
		t.Fatalf("WriteMasterXLSX: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("opening spreadsheet: %v", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	header, err := f.GetCellValue(sheet, "A1")
	if err != nil || header != "Fecha" {
		t.Fatalf("A1 = %q (%v), want Fecha", header, err)
	}
	product, err := f.GetCellValue(sheet, "B2")
	if err != nil || product != "Buje Bronce" {
		t.Fatalf("B2 = %q (%v), want Buje Bronce", product, err)
	}
}
