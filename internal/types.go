package internal

// Month labels used in the Origen column, in chronological order.
const (
	MonthEnero   = "Enero"
	MonthFebrero = "Febrero"
	MonthMarzo   = "Marzo"
)

// MonthOrder fixes the chronological sequence for monthly breakdowns,
// regardless of the order records arrive in.
var MonthOrder = []string{MonthEnero, MonthFebrero, MonthMarzo}

// MasterHeader is the column order of the exported master report.
var MasterHeader = []string{"Fecha", "Producto", "Cantidad", "Maquina", "Operador", "Origen"}

// Record is the canonical row shape every source parser must produce.
// It is a comparable struct so exact-duplicate detection is a map lookup.
type Record struct {
	Date     string
	Product  string
	Quantity int
	Machine  string
	Operator string
	Origin   string
}

// SourceStats counts data-quality issues found while cleaning one source.
// They feed the console report only, never control flow.
type SourceStats struct {
	RowsRead   int
	NullQty    int
	UnitNoise  int
	SkippedTop int
}

// SourceResult is the outcome of one parser invocation. Err is set when
// the source failed; the other parsers are unaffected.
type SourceResult struct {
	Month   string
	File    string
	Records []Record
	Stats   SourceStats
	Err     error
}

func (r SourceResult) OK() bool {
	return r.Err == nil
}

// RunRow is one persisted pipeline execution.
type RunRow struct {
	ID         int
	TraceID    string
	StartedAt  string
	FinishedAt string
	TotalRows  int
	Duplicates int
	OutputPath string
}

// SourceStatRow is the persisted per-source outcome within a run.
type SourceStatRow struct {
	RunID     int
	Month     string
	File      string
	RowsRead  int
	RowsClean int
	Status    string
	Error     string
}
