package storage

import (
	"database/sql"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"prodmaster/internal"
)

// DB is the run-history database. Every completed pipeline run leaves one
// runs row plus one source_stats row per source, so deltas between runs
// can be audited after the fact.
type DB struct {
	conn *sql.DB
}

func Open(path string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	if _, err := conn.Exec(`PRAGMA journal_mode = WAL;`); err != nil {
		_ = conn.Close()
		return nil, err
	}

	db := &DB{conn: conn}
	if err := db.init(); err != nil {
		_ = conn.Close()
		return nil, err
	}

	return db, nil
}

func (d *DB) Close() error {
	return d.conn.Close()
}

func (d *DB) init() error {
	schema := `
CREATE TABLE IF NOT EXISTS runs (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  traceId TEXT NOT NULL,
  startedAt TEXT NOT NULL,
  finishedAt TEXT NOT NULL,
  totalRows INTEGER NOT NULL,
  duplicatesRemoved INTEGER NOT NULL,
  outputPath TEXT NOT NULL,
  createdAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS source_stats (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  runId INTEGER NOT NULL,
  month TEXT NOT NULL,
  file TEXT NOT NULL,
  rowsRead INTEGER NOT NULL,
  rowsClean INTEGER NOT NULL,
  status TEXT NOT NULL,
  error TEXT,
  FOREIGN KEY(runId) REFERENCES runs(id)
);
CREATE INDEX IF NOT EXISTS idx_source_stats_runId ON source_stats(runId);
`
	_, err := d.conn.Exec(schema)
	return err
}

// InsertRun stores one run and its per-source stats, returning the run id.
func (d *DB) InsertRun(run internal.RunRow, stats []internal.SourceStatRow) (int64, error) {
	tx, err := d.conn.Begin()
	if err != nil {
		return 0, err
	}

	res, err := tx.Exec(
		`INSERT INTO runs (traceId, startedAt, finishedAt, totalRows, duplicatesRemoved, outputPath)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		run.TraceID, run.StartedAt, run.FinishedAt, run.TotalRows, run.Duplicates, run.OutputPath,
	)
	if err != nil {
		_ = tx.Rollback()
		return 0, err
	}
	runID, err := res.LastInsertId()
	if err != nil {
		_ = tx.Rollback()
		return 0, err
	}

	for _, stat := range stats {
		if _, err := tx.Exec(
			`INSERT INTO source_stats (runId, month, file, rowsRead, rowsClean, status, error)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			runID, stat.Month, stat.File, stat.RowsRead, stat.RowsClean, stat.Status, stat.Error,
		); err != nil {
			_ = tx.Rollback()
			return 0, err
		}
	}

	return runID, tx.Commit()
}

// ListRuns returns the most recent runs, newest first.
func (d *DB) ListRuns(limit int) ([]internal.RunRow, error) {
	rows, err := d.conn.Query(
		`SELECT id, traceId, startedAt, finishedAt, totalRows, duplicatesRemoved, outputPath
		 FROM runs ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []internal.RunRow
	for rows.Next() {
		var run internal.RunRow
		if err := rows.Scan(&run.ID, &run.TraceID, &run.StartedAt, &run.FinishedAt,
			&run.TotalRows, &run.Duplicates, &run.OutputPath); err != nil {
			return nil, err
		}
		out = append(out, run)
	}
	return out, rows.Err()
}

// SourceStats returns the per-source rows of one run.
func (d *DB) SourceStats(runID int64) ([]internal.SourceStatRow, error) {
	rows, err := d.conn.Query(
		`SELECT runId, month, file, rowsRead, rowsClean, status, COALESCE(error, '')
		 FROM source_stats WHERE runId = ? ORDER BY id`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []internal.SourceStatRow
	for rows.Next() {
		var stat internal.SourceStatRow
		if err := rows.Scan(&stat.RunID, &stat.Month, &stat.File, &stat.RowsRead,
			&stat.RowsClean, &stat.Status, &stat.Error); err != nil {
			return nil, err
		}
		out = append(out, stat)
	}
	return out, rows.Err()
}
