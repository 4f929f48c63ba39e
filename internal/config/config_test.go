package config

import (
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("INPUT_DIR", "/data/plant")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.InputDir != "/data/plant" {
		t.Fatalf("InputDir = %q", cfg.InputDir)
	}
	if cfg.OutputPath != filepath.Join("/data/plant", "Reporte_Maestro.csv") {
		t.Fatalf("OutputPath = %q", cfg.OutputPath)
	}
	if cfg.FileEnero != "reporte_produccion_enero.csv" {
		t.Fatalf("FileEnero = %q", cfg.FileEnero)
	}
	if cfg.FileFebrero != "produccion_feb_sucio.csv" {
		t.Fatalf("FileFebrero = %q", cfg.FileFebrero)
	}
	if cfg.FileMarzo != "prod_marzo_v2.csv" {
		t.Fatalf("FileMarzo = %q", cfg.FileMarzo)
	}
	if cfg.XLSXPath != "" {
		t.Fatalf("XLSXPath should default to disabled, got %q", cfg.XLSXPath)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("OUTPUT_PATH", "/out/maestro.csv")
	t.Setenv("FILE_ENERO", "ene.csv")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.OutputPath != "/out/maestro.csv" {
		t.Fatalf("OutputPath = %q", cfg.OutputPath)
	}
	if cfg.FileEnero != "ene.csv" {
		t.Fatalf("FileEnero = %q", cfg.FileEnero)
	}
}

func TestSourcePath(t *testing.T) {
	cfg := Config{InputDir: "/data/plant"}

	if got := cfg.SourcePath("ene.csv"); got != filepath.Join("/data/plant", "ene.csv") {
		t.Fatalf("relative path = %q", got)
	}
	if got := cfg.SourcePath("/abs/ene.csv"); got != "/abs/ene.csv" {
		t.Fatalf("absolute path = %q", got)
	}
}
