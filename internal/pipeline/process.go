package pipeline

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"prodmaster/internal"
	"prodmaster/internal/config"
	"prodmaster/internal/storage"
)

// ErrNoSources is fatal: with zero successful sources there is nothing to
// merge and no output is written.
var ErrNoSources = errors.New("no source file could be processed")

// Pipeline runs one full ETL batch: parse each monthly source, merge,
// export, and log the run. The db is optional; without it the run history
// is simply not persisted.
type Pipeline struct {
	cfg config.Config
	db  *storage.DB
}

func New(cfg config.Config, db *storage.DB) *Pipeline {
	return &Pipeline{cfg: cfg, db: db}
}

// RunResult is everything a run produced, for the report layer and tests.
type RunResult struct {
	Results    []internal.SourceResult
	Master     []internal.Record
	Duplicates int
	Failed     []string
}

// Run executes the batch. Per-source failures are collected, never
// propagated; only a zero-success run or an export failure is fatal.
func (p *Pipeline) Run() (RunResult, error) {
	started := time.Now()

	var result RunResult
	for _, parser := range p.sources() {
		res := p.runSource(parser)
		result.Results = append(result.Results, res)
		if !res.OK() {
			internal.Logf("ERROR", "%s: %v", res.File, res.Err)
			result.Failed = append(result.Failed, res.File)
		}
	}

	successes := 0
	for _, res := range result.Results {
		if res.OK() {
			successes++
		}
	}
	if successes == 0 {
		internal.Logf("ERROR", "no source processed successfully, aborting")
		return result, ErrNoSources
	}
	if len(result.Failed) > 0 {
		internal.Logf("WARN", "sources with errors (%d): %v", len(result.Failed), result.Failed)
	}

	result.Master, result.Duplicates = Merge(result.Results)
	internal.Logf("OK", "sources merged, rows sorted chronologically by date")
	if result.Duplicates > 0 {
		internal.Logf("WARN", "exact duplicates removed: %d", result.Duplicates)
	} else {
		internal.Logf("OK", "no duplicates detected")
	}

	if err := WriteMasterCSV(result.Master, p.cfg.OutputPath); err != nil {
		return result, fmt.Errorf("writing master report: %w", err)
	}
	internal.Logf("OK", "report exported: %s", p.cfg.OutputPath)

	if p.cfg.XLSXPath != "" {
		if err := WriteMasterXLSX(result.Master, p.cfg.XLSXPath); err != nil {
			return result, fmt.Errorf("writing xlsx report: %w", err)
		}
		internal.Logf("OK", "spreadsheet exported: %s", p.cfg.XLSXPath)
	}

	p.recordRun(started, result)
	return result, nil
}

type source struct {
	parser Parser
	file   string
}

func (p *Pipeline) sources() []source {
	parsers := Parsers()
	files := map[string]string{
		internal.MonthEnero:   p.cfg.FileEnero,
		internal.MonthFebrero: p.cfg.FileFebrero,
		internal.MonthMarzo:   p.cfg.FileMarzo,
	}
	out := make([]source, 0, len(parsers))
	for _, parser := range parsers {
		out = append(out, source{parser: parser, file: files[parser.Month]})
	}
	return out
}

// runSource invokes one parser with the existence and size pre-checks,
// converting any panic into that source's failure so one bad file can
// never take down the batch.
func (p *Pipeline) runSource(src source) (res internal.SourceResult) {
	res = internal.SourceResult{Month: src.parser.Month, File: src.file}
	path := p.cfg.SourcePath(src.file)

	defer func() {
		if r := recover(); r != nil {
			res.Err = fmt.Errorf("unexpected failure: %T: %v", r, r)
		}
	}()

	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		res.Err = fmt.Errorf("%w: %s", ErrSourceMissing, path)
		return res
	}
	if err != nil {
		res.Err = err
		return res
	}
	if info.Size() == 0 {
		res.Err = fmt.Errorf("%w: %s", ErrSourceEmpty, src.file)
		return res
	}

	internal.Logf("INFO", "reading %s file: %s", res.Month, src.file)
	records, stats, err := src.parser.Parse(path)
	if err != nil {
		res.Err = err
		return res
	}

	res.Records = records
	res.Stats = stats
	logStats(res.Month, stats)
	internal.Logf("OK", "%s processed: %d clean rows", res.Month, len(records))
	return res
}

func logStats(month string, stats internal.SourceStats) {
	internal.Logf("INFO", "%s rows read: %d", month, stats.RowsRead)
	if stats.SkippedTop > 0 {
		internal.Logf("WARN", "skipped %d garbage header rows", stats.SkippedTop)
	}
	if stats.NullQty > 0 {
		internal.Logf("WARN", "null quantity values: %d, filled with 0", stats.NullQty)
	}
	if stats.UnitNoise > 0 {
		internal.Logf("WARN", "quantity cells with unit text: %d, cleaned", stats.UnitNoise)
	}
}

// recordRun persists the run history. Persistence problems only warn: the
// report on disk is already written and is the deliverable.
func (p *Pipeline) recordRun(started time.Time, result RunResult) {
	if p.db == nil {
		return
	}

	run := internal.RunRow{
		TraceID:    traceID(),
		StartedAt:  started.UTC().Format(time.RFC3339),
		FinishedAt: time.Now().UTC().Format(time.RFC3339),
		TotalRows:  len(result.Master),
		Duplicates: result.Duplicates,
		OutputPath: p.cfg.OutputPath,
	}
	stats := make([]internal.SourceStatRow, 0, len(result.Results))
	for _, res := range result.Results {
		row := internal.SourceStatRow{
			Month:     res.Month,
			File:      res.File,
			RowsRead:  res.Stats.RowsRead,
			RowsClean: len(res.Records),
			Status:    "ok",
		}
		if !res.OK() {
			row.Status = "failed"
			row.Error = res.Err.Error()
		}
		stats = append(stats, row)
	}

	if _, err := p.db.InsertRun(run, stats); err != nil {
		internal.Logf("WARN", "could not persist run history: %v", err)
	}
}

func traceID() string {
	var b [8]byte
	if _, err := rand.Read(b[:]); err != nil {
		return fmt.Sprintf("run-%d", time.Now().UnixNano())
	}
	return hex.EncodeToString(b[:])
}
