package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// Config holds everything one pipeline run needs: where the monthly
// exports live, where the master report goes, and the optional run-history
// database. It is built once per run and passed in explicitly.
type Config struct {
	InputDir   string
	OutputPath string
	XLSXPath   string
	DBPath     string

	FileEnero   string
	FileFebrero string
	FileMarzo   string
}

func Load() (Config, error) {
	_ = godotenv.Load()

	cwd, err := os.Getwd()
	if err != nil {
		return Config{}, err
	}

	inputDir := getEnv("INPUT_DIR", cwd)

	cfg := Config{
		InputDir:   inputDir,
		OutputPath: getEnv("OUTPUT_PATH", filepath.Join(inputDir, "Reporte_Maestro.csv")),
		XLSXPath:   getEnv("XLSX_PATH", ""),
		DBPath:     getEnv("DB_PATH", filepath.Join(cwd, "data", "prodmaster.db")),

		FileEnero:   getEnv("FILE_ENERO", "reporte_produccion_enero.csv"),
		FileFebrero: getEnv("FILE_FEBRERO", "produccion_feb_sucio.csv"),
		FileMarzo:   getEnv("FILE_MARZO", "prod_marzo_v2.csv"),
	}

	return cfg, nil
}

// SourcePath resolves a configured source filename against the input dir.
func (c Config) SourcePath(file string) string {
	if filepath.IsAbs(file) {
		return file
	}
	return filepath.Join(c.InputDir, file)
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}
