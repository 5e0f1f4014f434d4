package main

import (
	"context"
	"os"

	"checkout-service/config"
	"checkout-service/internal/migrate"
	"checkout-service/pkg/database"
	"checkout-service/pkg/logger"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()
	isDev := os.Getenv("ENV") == "development"
	if err := logger.Init(isDev); err != nil {
		panic(err)
	}
	defer logger.Sync()

	log := logger.L()

	cfg := config.Load(log)
	ctx := context.Background()
	opts := migrate.DefaultMigrateOptions()

	db := database.ConnectDB(&cfg.DB.Config, log)
	defer database.CloseDB(db, log)

	if err := migrate.MigrateCheckoutDB(ctx, db, log, opts); err != nil {
		log.Fatal("checkout store migration failed", zap.Error(err))
	}
	log.Info("checkout store migration complete")

	if cfg.Ventas.Enabled {
		vdb, err := database.Open(&cfg.Ventas.Config)
		if err != nil {
			log.Fatal("sales store connect failed", zap.Error(err))
		}
		defer database.CloseDB(vdb, log)
		if err := migrate.MigrateVentasDB(ctx, vdb, log); err != nil {
			log.Fatal("sales store migration failed", zap.Error(err))
		}
		log.Info("sales store migration complete")
	}
}
