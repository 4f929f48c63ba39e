package pipeline

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"prodmaster/internal"
	"prodmaster/internal/util"
)

// Per-source failure modes. Each one skips that source only; the run
// continues with whatever else parsed.
var (
	ErrSourceMissing = errors.New("source file not found")
	ErrSourceEmpty   = errors.New("source file is empty")
	ErrColumnMissing = errors.New("expected column not found")
)

// A Parser turns one month's raw export into canonical records. The three
// parsers share this contract but are independent implementations: the raw
// shapes diverge too much for a config-driven mapping to stay honest.
type Parser struct {
	Month string
	Parse func(path string) ([]internal.Record, internal.SourceStats, error)
}

// Parsers returns the three monthly parsers in declared order. The merge
// step concatenates results in this order.
func Parsers() []Parser {
	return []Parser{
		{Month: internal.MonthEnero, Parse: parseEnero},
		{Month: internal.MonthFebrero, Parse: parseFebrero},
		{Month: internal.MonthMarzo, Parse: parseMarzo},
	}
}

// table is a raw CSV read into memory with a header index.
type table struct {
	header []string
	rows   [][]string
}

func (t table) column(name string) (int, error) {
	for i, h := range t.header {
		if strings.TrimSpace(h) == name {
			return i, nil
		}
	}
	return 0, fmt.Errorf("%w: %s", ErrColumnMissing, name)
}

// cell tolerates short rows: a missing trailing field reads as empty.
func (t table) cell(row []string, idx int) string {
	if idx < len(row) {
		return row[idx]
	}
	return ""
}

// readTable reads a delimited file, skipping skipLines raw lines before
// the header row. The skip happens on raw lines, not CSV records, because
// garbage preamble lines need not be well-formed CSV.
func readTable(path string, comma rune, skipLines int) (table, error) {
	f, err := os.Open(path)
	if err != nil {
		return table{}, err
	}
	defer f.Close()

	br := bufio.NewReader(f)
	for i := 0; i < skipLines; i++ {
		if _, err := br.ReadString('\n'); err != nil {
			if err == io.EOF {
				return table{}, ErrSourceEmpty
			}
			return table{}, err
		}
	}

	reader := csv.NewReader(br)
	reader.Comma = comma
	reader.FieldsPerRecord = -1
	all, err := reader.ReadAll()
	if err != nil {
		return table{}, err
	}
	if len(all) == 0 {
		return table{}, ErrSourceEmpty
	}

	header := all[0]
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\uFEFF")
	}
	return table{header: header, rows: all[1:]}, nil
}

// parseEnero handles the January export: comma separated, columns already
// canonical, ISO dates, but with null gaps in Cantidad.
func parseEnero(path string) ([]internal.Record, internal.SourceStats, error) {
	tbl, err := readTable(path, ',', 0)
	if err != nil {
		return nil, internal.SourceStats{}, err
	}

	cols, err := tbl.columns("Fecha", "Producto", "Cantidad", "Maquina", "Operador")
	if err != nil {
		return nil, internal.SourceStats{}, err
	}

	stats := internal.SourceStats{RowsRead: len(tbl.rows)}
	records := make([]internal.Record, 0, len(tbl.rows))
	for _, row := range tbl.rows {
		if strings.TrimSpace(tbl.cell(row, cols[2])) == "" {
			stats.NullQty++
		}
		date, _ := util.StandardizeDate(tbl.cell(row, cols[0]), "")
		records = append(records, internal.Record{
			Date:     date,
			Product:  util.CleanProduct(tbl.cell(row, cols[1])),
			Quantity: util.CleanQuantity(tbl.cell(row, cols[2])),
			Machine:  util.CleanMachine(tbl.cell(row, cols[3])),
			Operator: tbl.cell(row, cols[4]),
			Origin:   internal.MonthEnero,
		})
	}
	return records, stats, nil
}

// parseFebrero handles the February export: semicolon separated, mixed
// Spanish/English column names, DD/MM/YYYY dates and quantity cells with
// unit suffixes like "100 pzas".
func parseFebrero(path string) ([]internal.Record, internal.SourceStats, error) {
	tbl, err := readTable(path, ';', 0)
	if err != nil {
		return nil, internal.SourceStats{}, err
	}

	cols, err := tbl.columns("Dia de Produccion", "Item", "Qty", "Machine_ID", "Responsable")
	if err != nil {
		return nil, internal.SourceStats{}, err
	}

	stats := internal.SourceStats{RowsRead: len(tbl.rows)}
	records := make([]internal.Record, 0, len(tbl.rows))
	for _, row := range tbl.rows {
		qty := tbl.cell(row, cols[2])
		if strings.ContainsFunc(qty, isLetter) {
			stats.UnitNoise++
		}
		date, _ := util.StandardizeDate(tbl.cell(row, cols[0]), "02/01/2006")
		records = append(records, internal.Record{
			Date:     date,
			Product:  util.CleanProduct(tbl.cell(row, cols[1])),
			Quantity: util.CleanQuantity(qty),
			Machine:  util.CleanMachine(tbl.cell(row, cols[3])),
			Operator: tbl.cell(row, cols[4]),
			Origin:   internal.MonthFebrero,
		})
	}
	return records, stats, nil
}

// marzoSkipRows is the fixed preamble of the March export: a title line, a
// generated-by line and a blank line before the real header.
const marzoSkipRows = 3

// parseMarzo handles the March export: three garbage lines before the
// header, upper-case column names, and a derived quantity
// CANT_APROBADA − CANT_RECHAZADA. Rejects exceeding approvals leave a
// negative quantity; nothing clamps it.
func parseMarzo(path string) ([]internal.Record, internal.SourceStats, error) {
	tbl, err := readTable(path, ',', marzoSkipRows)
	if err != nil {
		return nil, internal.SourceStats{}, err
	}

	cols, err := tbl.columns("FECHA", "PRODUCTO", "CANT_APROBADA", "CANT_RECHAZADA", "MAQUINA", "OPERADOR")
	if err != nil {
		return nil, internal.SourceStats{}, err
	}

	stats := internal.SourceStats{RowsRead: len(tbl.rows), SkippedTop: marzoSkipRows}
	records := make([]internal.Record, 0, len(tbl.rows))
	for _, row := range tbl.rows {
		approved := parseCount(tbl.cell(row, cols[2]))
		rejected := parseCount(tbl.cell(row, cols[3]))
		date, _ := util.StandardizeDate(tbl.cell(row, cols[0]), "")
		records = append(records, internal.Record{
			Date:     date,
			Product:  util.CleanProduct(tbl.cell(row, cols[1])),
			Quantity: approved - rejected,
			Machine:  util.CleanMachine(tbl.cell(row, cols[4])),
			Operator: tbl.cell(row, cols[5]),
			Origin:   internal.MonthMarzo,
		})
	}
	return records, stats, nil
}

// columns resolves several header names at once, failing on the first
// missing one.
func (t table) columns(names ...string) ([]int, error) {
	out := make([]int, 0, len(names))
	for _, name := range names {
		idx, err := t.column(name)
		if err != nil {
			return nil, err
		}
		out = append(out, idx)
	}
	return out, nil
}

// parseCount reads a plain numeric sub-field, coercing anything
// non-numeric to 0.
func parseCount(raw string) int {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0
	}
	return int(v)
}

func isLetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}
