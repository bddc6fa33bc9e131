package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"jobly/internal/api"
	"jobly/internal/config"
	"jobly/internal/pg"
	"jobly/internal/seed"
	"jobly/internal/store"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("log level %q: %w", level, err)
	}
	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(lvl)
	return zc.Build()
}

func main() {
	// 1. Конфиг: дефолты → jobly.json → .env/ENV → флаги
	cfg, err := config.Load("jobly.json", os.Args[1:])
	if err != nil {
		log.Fatalf("Ошибка конфигурации: %v", err)
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		log.Fatalf("Ошибка логгера: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx := context.Background()

	// 2. Postgres
	db, err := pg.Open(ctx, cfg.DBURL)
	if err != nil {
		logger.Fatal("db open", zap.Error(err))
	}
	defer db.Close()

	// 3. Схема (идемпотентно)
	if cfg.AutoMigrate {
		ddl, err := pg.GenerateDDL(pg.Tables)
		if err != nil {
			logger.Fatal("ddl generate", zap.Error(err))
		}
		if err := pg.ApplyDDL(ctx, db, ddl, logger); err != nil {
			logger.Fatal("ddl apply", zap.Error(err))
		}
	}

	st := store.New(db, store.WithLogger(logger), store.WithBcryptCost(cfg.BcryptCost))

	// 4. Фикстуры
	if cfg.SeedPath != "" {
		fx, err := seed.Load(cfg.SeedPath)
		if err != nil {
			logger.Fatal("seed load", zap.Error(err))
		}
		res, err := seed.Apply(ctx, st, fx, logger)
		if err != nil {
			logger.Fatal("seed apply", zap.Error(err))
		}
		logger.Info("seeded",
			zap.Int("companies", res.Companies),
			zap.Int("jobs", res.Jobs),
			zap.Int("users", res.Users),
			zap.Int("skipped", res.Skipped))
	}

	// 5. REST API
	gin.SetMode(cfg.GinMode)
	logger.Info("starting jobly", zap.String("port", cfg.Port))
	if err := api.RunServer(":"+cfg.Port, st, logger); err != nil {
		logger.Fatal("server", zap.Error(err))
	}
}
