package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"checkout-service/config"
	"checkout-service/internal/producer"
	"checkout-service/internal/repository"
	"checkout-service/internal/service"
	transport "checkout-service/internal/transport/http"
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
	db := database.ConnectDB(&cfg.DB.Config, log)
	defer database.CloseDB(db, log)

	repos := repository.New(db)

	// The analytics store is optional: a connect failure only disables
	// replication, checkout keeps working.
	var sales repository.SalesRepo
	if cfg.Ventas.Enabled {
		vdb, err := database.Open(&cfg.Ventas.Config)
		if err != nil {
			log.Warn("sales store unavailable, replication disabled", zap.Error(err))
		} else {
			defer database.CloseDB(vdb, log)
			sales = repository.NewSalesRepo(vdb)
			log.Info("sales store connected", zap.String("name", cfg.Ventas.Name))
		}
	} else {
		log.Info("sales store not configured, replication disabled")
	}

	var events service.EventBus
	if len(cfg.KafkaBrokers) > 0 && cfg.KafkaTopic != "" {
		p := producer.NewOrderProducer(cfg.KafkaBrokers, cfg.KafkaTopic)
		defer p.Close()
		events = p
		log.Info("kafka producer ready",
			zap.Strings("brokers", cfg.KafkaBrokers),
			zap.String("topic", cfg.KafkaTopic),
		)
	}

	replicator := service.NewSalesReplicator(repos, sales, log)
	svc := transport.Services{
		Checkout: service.NewCheckoutService(repos, replicator, events, log),
		Orders:   service.NewOrderService(repos, log),
		Payments: service.NewPaymentService(repos, log),
		Invoices: service.NewInvoiceService(repos, log),
		Sales:    replicator,
	}

	router := transport.Router(cfg, svc, log)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Info("starting checkout HTTP server", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	<-quit
	log.Info("shutting down checkout HTTP server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("graceful shutdown failed", zap.Error(err))
	}
	log.Info("checkout HTTP server stopped gracefully")
}
