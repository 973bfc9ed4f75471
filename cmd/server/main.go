package main

import (
	"flag"
	"log/slog"
	"net/http"

	"github.com/vidstream/vidstream/internal/app"
	"github.com/vidstream/vidstream/internal/config"
	"github.com/vidstream/vidstream/internal/db"
	"github.com/vidstream/vidstream/internal/logger"
	"github.com/vidstream/vidstream/internal/routes"
)

func main() {
	rollback := flag.Bool("rollback", false, "roll back the most recent database migration and exit")
	flag.Parse()

	cfg := config.Load()

	logger.Init(cfg.IsDevelopment(), cfg.SentryDSN)

	if *rollback {
		rollbackMigration(cfg)
		return
	}

	application, err := app.New(cfg)
	if err != nil {
		slog.Error("failed to initialize app", "error", err)
		panic(err)
	}
	defer func() {
		closeErr := application.Close()
		if closeErr != nil {
			slog.Error("failed to close app", "error", closeErr)
		}
	}()

	handler := routes.SetupRoutes(application)
	slog.Info("server starting", "app", cfg.AppName, "port", cfg.Port, "env", cfg.AppEnv)

	err = http.ListenAndServe(":"+cfg.Port, handler)
	if err != nil {
		slog.Error("server failed", "error", err)
		panic(err)
	}
}

func rollbackMigration(cfg *config.Config) {
	database, err := db.Init(cfg.DBDriver, cfg.DBConnection)
	if err != nil {
		slog.Error("failed to initialize database", "error", err)
		panic(err)
	}
	defer func() { _ = db.Close(database) }()

	err = db.MigrateDown(database.DB, cfg.DBDriver)
	if err != nil {
		slog.Error("failed to roll back migration", "error", err)
		panic(err)
	}
}
