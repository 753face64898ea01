// qbseed loads subject seed files from a directory and creates them in the
// question bank database. Existing subjects are left untouched.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/harshaakurathi/newMCQ-backend/internal/platform/config"
	"github.com/harshaakurathi/newMCQ-backend/internal/platform/database"
	"github.com/harshaakurathi/newMCQ-backend/internal/qbank"
	"github.com/harshaakurathi/newMCQ-backend/internal/seed"
)

func main() {
	if err := run(); err != nil {
		slog.Error("fatal", "error", err)
		os.Exit(1)
	}
}

func run() error {
	dir := flag.String("dir", "./seed", "directory of subject seed YAML files")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	subjects, err := seed.Load(*dir)
	if err != nil {
		return err
	}
	if len(subjects) == 0 {
		slog.Info("no seed files found", "dir", *dir)
		return nil
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

	created, err := seed.Apply(ctx, store, subjects)
	if err != nil {
		return err
	}

	slog.Info("seeding complete", "created", created, "skipped", len(subjects)-created)
	return nil
}
