package pipeline

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strconv"

	"github.com/xuri/excelize/v2"

	"prodmaster/internal"
)

// WriteMasterCSV writes the master table as UTF-8 CSV prefixed with a BOM
// so spreadsheet tools pick up accented characters.
func WriteMasterCSV(records []internal.Record, outputPath string) error {
	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return err
	}
	f, err := os.Create(outputPath)
	if err != nil {
		return err
	}

	if _, err := f.WriteString("\uFEFF"); err != nil {
		f.Close()
		return err
	}

	w := csv.NewWriter(f)
	if err := w.Write(internal.MasterHeader); err != nil {
		f.Close()
		return err
	}
	for _, rec := range records {
		if err := w.Write(masterRow(rec)); err != nil {
			f.Close()
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return err
	}

	return f.Close()
}

// WriteMasterXLSX writes the master table as a spreadsheet.
func WriteMasterXLSX(records []internal.Record, outputPath string) error {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)

	for i, h := range internal.MasterHeader {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	for i, rec := range records {
		r := i + 2
		set := func(col int, value any) {
			cell, _ := excelize.CoordinatesToCellName(col, r)
			_ = f.SetCellValue(sheet, cell, value)
		}
		set(1, rec.Date)
		set(2, rec.Product)
		set(3, rec.Quantity)
		set(4, rec.Machine)
		set(5, rec.Operator)
		set(6, rec.Origin)
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return err
	}
	return f.SaveAs(outputPath)
}

func masterRow(rec internal.Record) []string {
	return []string{
		rec.Date,
		rec.Product,
		strconv.Itoa(rec.Quantity),
		rec.Machine,
		rec.Operator,
		rec.Origin,
	}
}
