// Command bikeshare-import copies day.csv into the SQLite store used by
// DATA_BACKEND=sqlite. It reads DATASET_PATH and SQLITE_DB_PATH and
// replaces whatever the store held before.
package main

import (
	"context"
	"os"
	"time"

	"bikeshare/internal/cli"
	"bikeshare/internal/config"
	"bikeshare/internal/dataset/csvfile"
	"bikeshare/internal/log"
)

func main() {
	cli.LoadEnvFile()

	cfg := config.Load()
	logger := cli.SetupLogger(cfg.LogLevel).WithComponent(log.ComponentImport)

	// The target is always the SQLite store, whatever DATA_BACKEND says.
	cfg.DataBackend = config.BackendSQLite
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", log.FieldError, err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	start := time.Now()
	tbl, err := csvfile.New(cfg.DatasetPath).Load(ctx)
	cli.Must(logger, "Failed to load dataset", err, "path", cfg.DatasetPath, log.FieldOperation, log.OpLoad)

	store := cli.InitStore(logger, cfg.SQLiteDBPath)
	defer store.Close()

	n, err := store.Import(ctx, tbl)
	if err != nil {
		logger.Error("Import failed", log.FieldError, err, "db_path", cfg.SQLiteDBPath, log.FieldOperation, log.OpImport)
		store.Close()
		os.Exit(1)
	}

	logger.Info("Dataset imported",
		"path", cfg.DatasetPath,
		"db_path", cfg.SQLiteDBPath,
		log.FieldRows, n,
		log.FieldInconsistent, tbl.Inconsistent,
		log.FieldDuration, time.Since(start).Milliseconds(),
		log.FieldOperation, log.OpImport)
}
