// qbexport writes a subject's question bank to an Excel workbook on disk.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/harshaakurathi/newMCQ-backend/internal/export"
	"github.com/harshaakurathi/newMCQ-backend/internal/platform/config"
	"github.com/harshaakurathi/newMCQ-backend/internal/platform/database"
	"github.com/harshaakurathi/newMCQ-backend/internal/qbank"
)

func main() {
	if err := run(); err != nil {
		slog.Error("fatal", "error", err)
		os.Exit(1)
	}
}

func run() error {
	subjectName := flag.String("subject", "", "subject to export")
	outPath := flag.String("out", "", "output .xlsx path (default <subject>.xlsx)")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if *subjectName == "" {
		return fmt.Errorf("-subject is required")
	}
	path := *outPath
	if path == "" {
		path = *subjectName + ".xlsx"
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	db, err := database.New(ctx, cfg.Database.URI, cfg.Database.Name)
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer db.Close(context.Background())

	store, err := qbank.NewMongoStore(ctx, db.Database())
	if err != nil {
		return fmt.Errorf("initializing subject store: %w", err)
	}

	subject, err := store.Get(ctx, *subjectName)
	if err != nil {
		return fmt.Errorf("loading subject %q: %w", *subjectName, err)
	}

	workbook, err := export.Workbook(subject)
	if err != nil {
		return err
	}
	if err := workbook.SaveAs(path); err != nil {
		return fmt.Errorf("writing %q: %w", path, err)
	}

	slog.Info("export complete", "subject", *subjectName, "path", path)
	return nil
}
