// Command seed replaces the contents of the pitches table with the bundled
// dataset, or with DATASET_PATH when DATA_SOURCE=file.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/iliyamo/pitch-reservation/internal/config"
	"github.com/iliyamo/pitch-reservation/internal/database"
	"github.com/iliyamo/pitch-reservation/internal/dataset"
	"github.com/iliyamo/pitch-reservation/internal/logger"
	"github.com/iliyamo/pitch-reservation/internal/model"
	"github.com/iliyamo/pitch-reservation/internal/repository"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	// the server may read from mysql, but the seed always reads a dataset
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	var pitches []model.Pitch
	if cfg.DataSource == config.SourceFile {
		pitches, err = dataset.LoadFile(cfg.DatasetPath)
	} else {
		pitches, err = dataset.Load()
	}
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	db, err := database.Open(ctx, database.Options{
		User:     cfg.DBUser,
		Password: cfg.DBPass,
		Host:     cfg.DBHost,
		Port:     cfg.DBPort,
		Name:     cfg.DBName,
	})
	if err != nil {
		return err
	}
	defer db.Close()

	if err := repository.NewPitchRepo(db).ReplaceAll(ctx, pitches); err != nil {
		return fmt.Errorf("seed pitches: %w", err)
	}
	log.Info("pitches seeded", zap.Int("count", len(pitches)))
	return nil
}
