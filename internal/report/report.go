// Package report renders the console output of a pipeline run: the
// per-source summary, the master-table preview and the bonus production
// analytics. It is a read-only consumer of the aggregation results.
package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"
	"github.com/olekukonko/tablewriter"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"prodmaster/internal"
	"prodmaster/internal/pipeline"
)

const barWidth = 30

var printer = message.NewPrinter(language.Spanish)

// Banner prints the run header.
func Banner(inputDir string) {
	fmt.Println()
	fmt.Println(strings.Repeat("=", 72))
	fmt.Println("  🏭 ETL - REPORTE MAESTRO DE PRODUCCIÓN INDUSTRIAL")
	fmt.Println(strings.Repeat("=", 72))
	fmt.Printf("  📅 Ejecución: %s\n", time.Now().Format("2006-01-02 15:04:05"))
	fmt.Printf("  📂 Directorio: %s\n", inputDir)
	fmt.Println(strings.Repeat("=", 72))
}

// Footer prints the run closing block.
func Footer(outputPath string) {
	fmt.Printf("\n%s\n", strings.Repeat("═", 72))
	fmt.Printf("  ✅ ETL COMPLETADO - %s\n", time.Now().Format("2006-01-02 15:04:05"))
	fmt.Printf("  📁 Resultado: %s\n", filepath.Base(outputPath))
	fmt.Println(strings.Repeat("═", 72))
}

// Summary prints the per-source row-count table, the master-table
// statistics and a preview of the first rows.
func Summary(result pipeline.RunResult) {
	fmt.Printf("\n%s\n", strings.Repeat("═", 72))
	fmt.Println("  📊 VALIDACIÓN Y RESUMEN")
	fmt.Println(strings.Repeat("═", 72))
	fmt.Println()

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Mes", "Filas Orig.", "Filas Limpias", "Estado"})

	totalRead, totalClean := 0, 0
	for _, res := range result.Results {
		if !res.OK() {
			table.Append([]string{res.Month, "-", "-", "❌ " + res.Err.Error()})
			continue
		}
		read, clean := res.Stats.RowsRead, len(res.Records)
		totalRead += read
		totalClean += clean
		state := "✅ OK"
		if read != clean {
			state = fmt.Sprintf("⚠️ Δ%+d", clean-read)
		}
		table.Append([]string{res.Month, fmt.Sprintf("%d", read), fmt.Sprintf("%d", clean), state})
	}
	table.SetFooter([]string{"TOTAL", fmt.Sprintf("%d", totalRead), fmt.Sprintf("%d", totalClean), ""})
	table.Render()

	master := result.Master
	if len(master) == 0 {
		return
	}

	minDate, maxDate := master[0].Date, master[len(master)-1].Date
	total := pipeline.GrandTotal(master)

	fmt.Println("\n  📊 Estadísticas del Reporte Maestro:")
	fmt.Printf("     • Filas totales:      %s\n", printer.Sprintf("%d", len(master)))
	fmt.Printf("     • Rango de fechas:    %s → %s\n", minDate, maxDate)
	fmt.Printf("     • Productos únicos:   %d\n", distinct(master, func(r internal.Record) string { return r.Product }))
	fmt.Printf("     • Máquinas únicas:    %d\n", distinct(master, func(r internal.Record) string { return r.Machine }))
	fmt.Printf("     • Operadores únicos:  %d\n", distinct(master, func(r internal.Record) string { return r.Operator }))
	fmt.Printf("     • Cantidad total:     %s piezas\n", printer.Sprintf("%d", total))
	fmt.Printf("     • Cantidad promedio:  %.1f piezas/registro\n", float64(total)/float64(len(master)))

	preview(master, 10)
}

// Analytics prints the bonus production report: machine ranking with
// proportional bars, operator ranking, and the top operator's monthly and
// per-machine breakdown.
func Analytics(master []internal.Record) {
	if len(master) == 0 {
		return
	}

	fmt.Printf("\n%s\n", strings.Repeat("█", 72))
	fmt.Println("  🏆 BONUS - ANÁLISIS DE PRODUCCIÓN")
	fmt.Println(strings.Repeat("█", 72))

	machineRanking(pipeline.GroupByMachine(master))
	operatorRanking(master, pipeline.GroupByOperator(master))

	fmt.Printf("\n%s\n", strings.Repeat("█", 72))
	fmt.Println("  📊 Fin del reporte analítico")
	fmt.Println(strings.Repeat("█", 72))
	fmt.Println()
}

func machineRanking(machines []pipeline.GroupTotal) {
	fmt.Printf("\n  %s\n", strings.Repeat("─", 68))
	fmt.Println("  🔩 TOTAL DE PIEZAS PRODUCIDAS POR MÁQUINA")
	fmt.Printf("  %s\n\n", strings.Repeat("─", 68))

	if len(machines) == 0 {
		return
	}
	maxTotal := machines[0].Total
	grand := 0
	for _, m := range machines {
		grand += m.Total
	}

	for _, m := range machines {
		share := 0.0
		if grand > 0 {
			share = float64(m.Total) / float64(grand) * 100
		}
		fmt.Printf("  %s %s %s pzas (%5.1f%%) │ %3d registros │ Prom: %6.1f\n",
			runewidth.FillRight(m.Key, 14), bar(m.Total, maxTotal),
			runewidth.FillLeft(printer.Sprintf("%d", m.Total), 7),
			share, m.Count, m.Mean)
	}

	fmt.Printf("\n  %s %s %s pzas\n",
		runewidth.FillRight("Total general:", 14),
		strings.Repeat(" ", barWidth),
		runewidth.FillLeft(printer.Sprintf("%d", grand), 7))
}

func operatorRanking(master []internal.Record, operators []pipeline.GroupTotal) {
	fmt.Printf("\n  %s\n", strings.Repeat("─", 68))
	fmt.Println("  👷 ¿CUÁL FUE EL OPERADOR MÁS PRODUCTIVO?")
	fmt.Printf("  %s\n\n", strings.Repeat("─", 68))

	if len(operators) == 0 {
		return
	}

	top := operators[0]
	fmt.Printf("  🥇 OPERADOR MÁS PRODUCTIVO: %s\n", top.Key)
	fmt.Printf("     ├── Total producido:  %s piezas\n", printer.Sprintf("%d", top.Total))
	fmt.Printf("     ├── Registros:        %d turnos/registros\n", top.Count)
	fmt.Printf("     └── Promedio/turno:   %.1f piezas\n\n", top.Mean)

	fmt.Printf("  %-5s %-18s %14s %11s %10s\n", "Pos", "Operador", "Total Piezas", "Registros", "Promedio")
	fmt.Printf("  %s\n", strings.Repeat("─", 60))

	medals := map[int]string{0: "🥇", 1: "🥈", 2: "🥉"}
	for i, op := range operators {
		medal, ok := medals[i]
		if !ok {
			medal = "  "
		}
		fmt.Printf("  %s %d  %s %s   %9d   %8.1f\n",
			medal, i+1, runewidth.FillRight(op.Key, 18),
			runewidth.FillLeft(printer.Sprintf("%d", op.Total), 12),
			op.Count, op.Mean)
	}

	fmt.Printf("\n  📅 Desglose mensual de %s:\n", top.Key)
	for _, mt := range pipeline.MonthlyBreakdown(master, top.Key) {
		fmt.Printf("     • %s → %s piezas en %d registros\n",
			runewidth.FillRight(mt.Month, 10), runewidth.FillLeft(printer.Sprintf("%d", mt.Total), 6), mt.Count)
	}

	if machine, total, ok := pipeline.FavoriteMachine(master, top.Key); ok {
		fmt.Printf("     • Máquina favorita: %s (%s piezas)\n", machine, printer.Sprintf("%d", total))
	}
}

// bar renders a proportional bar of barWidth cells. Net-negative totals
// (rejects above approvals are never clamped upstream) draw as empty
// rather than panicking strings.Repeat with a negative count.
func bar(total, maxTotal int) string {
	length := 0
	if maxTotal > 0 {
		length = total * barWidth / maxTotal
	}
	if length < 0 {
		length = 0
	}
	if length > barWidth {
		length = barWidth
	}
	return strings.Repeat("█", length) + strings.Repeat("░", barWidth-length)
}

func preview(master []internal.Record, n int) {
	if n > len(master) {
		n = len(master)
	}
	fmt.Printf("\n  👀 Vista previa (primeras %d filas):\n", n)

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader(internal.MasterHeader)
	for _, rec := range master[:n] {
		table.Append([]string{rec.Date, rec.Product, fmt.Sprintf("%d", rec.Quantity), rec.Machine, rec.Operator, rec.Origin})
	}
	table.Render()
}

func distinct(records []internal.Record, key func(internal.Record) string) int {
	seen := make(map[string]struct{}, len(records))
	for _, rec := range records {
		seen[key(rec)] = struct{}{}
	}
	return len(seen)
}
