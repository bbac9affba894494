package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/intern-matcher/internal/logger"
	"github.com/spigell/intern-matcher/internal/matching"
	"github.com/spigell/intern-matcher/internal/recommend"
	"github.com/spigell/intern-matcher/internal/store"
)

// env bundles what every command needs. close releases the storage handle.
type env struct {
	config  *Config
	logger  *zap.Logger
	db      *store.DB
	service *recommend.Service
}

func setup(ctx context.Context) *env {
	zlog, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		zlog.Fatal("getting a config", zap.Error(err))
	}

	zlog.Debug("starting", zap.String("version", version), zap.Any("config", config))

	db, err := store.Open(ctx, config.Database)
	if err != nil {
		zlog.Fatal("opening the database", zap.String("path", config.Database), zap.Error(err))
	}

	model := matching.NewModel(
		matching.WithLogger(logger.WithComponent(zlog, "model", "", "")),
		matching.WithStemming(config.Matching.Stem),
	)

	service := recommend.New(db, model, recommend.Config{
		SnapshotPath: config.Snapshot,
		TopN:         config.TopN,
	}, logger.WithComponent(zlog, "service", config.Database, config.Snapshot))

	return &env{config: config, logger: zlog, db: db, service: service}
}

func (e *env) close() {
	if err := e.db.Close(); err != nil {
		e.logger.Warn("closing the database", zap.Error(err))
	}
	_ = e.logger.Sync()
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	return nil
}
