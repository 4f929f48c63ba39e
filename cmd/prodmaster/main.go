package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"prodmaster/internal"
	"prodmaster/internal/config"
	"prodmaster/internal/pipeline"
	"prodmaster/internal/report"
	"prodmaster/internal/storage"
)

func main() {
	cfg, err := config.Load()
	must(err)

	// Ctrl-C aborts the batch with no partial output and counts as a
	// graceful cancellation, not a failure.
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-interrupt
		fmt.Println("\n\n  ⛔ Ejecución cancelada por el usuario.")
		os.Exit(0)
	}()

	cmd := "run"
	args := os.Args[1:]
	if len(args) > 0 {
		cmd = args[0]
		args = args[1:]
	}

	switch cmd {
	case "run":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		dir := fs.String("dir", cfg.InputDir, "directory holding the monthly CSV exports")
		out := fs.String("out", cfg.OutputPath, "master report output path")
		xlsx := fs.String("xlsx", cfg.XLSXPath, "optional spreadsheet output path")
		dbPath := fs.String("db", cfg.DBPath, "run-history database path (empty disables)")
		_ = fs.Parse(args)
		cfg.InputDir = *dir
		cfg.OutputPath = *out
		cfg.XLSXPath = *xlsx
		cfg.DBPath = *dbPath

		var db *storage.DB
		if cfg.DBPath != "" {
			db, err = storage.Open(cfg.DBPath)
			if err != nil {
				internal.Logf("WARN", "run history unavailable: %v", err)
			} else {
				defer db.Close()
			}
		}

		report.Banner(cfg.InputDir)
		result, err := pipeline.New(cfg, db).Run()
		if errors.Is(err, pipeline.ErrNoSources) {
			os.Exit(1)
		}
		must(err)

		report.Summary(result)
		report.Footer(cfg.OutputPath)
		report.Analytics(result.Master)
	case "history":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		limit := fs.Int("n", 10, "number of runs to show")
		dbPath := fs.String("db", cfg.DBPath, "run-history database path")
		_ = fs.Parse(args)

		db, err := storage.Open(*dbPath)
		must(err)
		defer db.Close()

		runs, err := db.ListRuns(*limit)
		must(err)
		if len(runs) == 0 {
			fmt.Println("no recorded runs")
			return
		}
		for _, run := range runs {
			fmt.Printf("run %d trace=%s %s → %s rows=%d dups=%d out=%s\n",
				run.ID, run.TraceID, run.StartedAt, run.FinishedAt,
				run.TotalRows, run.Duplicates, run.OutputPath)
			stats, err := db.SourceStats(int64(run.ID))
			must(err)
			for _, stat := range stats {
				line := fmt.Sprintf("  %-8s %-28s read=%d clean=%d %s",
					stat.Month, stat.File, stat.RowsRead, stat.RowsClean, stat.Status)
				if stat.Error != "" {
					line += " (" + stat.Error + ")"
				}
				fmt.Println(line)
			}
		}
	default:
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Println("usage: prodmaster <command>")
	fmt.Println("commands:")
	fmt.Println("  run [--dir=...] [--out=...] [--xlsx=...] [--db=...]")
	fmt.Println("  history [-n=10] [--db=...]")
}

func must(err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}
