// Command txdash-import loads a transactions CSV and replaces the contents
// of the SQLite store the dashboard's sqlite backend reads from.
package main

import (
	"context"
	"flag"
	"os"
	"time"

	"txdash/internal/cli"
	"txdash/internal/dataset/csvfile"
	"txdash/internal/dataset/sqlite"
	applog "txdash/internal/log"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger(applog.ComponentImporter)
	cfg := cli.LoadAndValidateConfig(logger)

	csvPath := flag.String("csv", cfg.DatasetPath, "path of the transactions CSV to import")
	dbPath := flag.String("db", cfg.SQLiteDBPath, "path of the SQLite database to write")
	flag.Parse()

	if *csvPath == "" || *dbPath == "" {
		logger.Error("Both a CSV path and a database path are required",
			"csv", *csvPath, "db", *dbPath)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	d, err := csvfile.New(*csvPath).Load(ctx)
	if err != nil {
		logger.Error("Failed to load CSV", applog.FieldError, err, "csv", *csvPath)
		os.Exit(1)
	}
	logger.Info("CSV loaded",
		applog.FieldRows, d.RowCount(), applog.FieldColumns, d.ColumnCount())

	store, err := sqlite.Open(*dbPath)
	if err != nil {
		logger.Error("Failed to open database", applog.FieldError, err, "db", *dbPath)
		os.Exit(1)
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Error("Failed to close database", applog.FieldError, err)
		}
	}()

	n, err := store.ReplaceAll(ctx, d)
	if err != nil {
		logger.Error("Import failed", applog.FieldError, err)
		os.Exit(1)
	}
	logger.Info("Import complete", applog.FieldRows, n, "db", *dbPath)
}
