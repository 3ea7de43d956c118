package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/afero"

	"github.com/zeppelin-cash/internal/api_gateway"
	"github.com/zeppelin-cash/internal/api_gateway/service"
	"github.com/zeppelin-cash/internal/config"
	"github.com/zeppelin-cash/internal/logger"
	"github.com/zeppelin-cash/internal/platform/messaging/producers"
	"github.com/zeppelin-cash/internal/platform/metrics"
	"github.com/zeppelin-cash/internal/platform/storage"
)

func main() {
	// Create base context with cancellation
	appCtx, cancelAppCtx := context.WithCancel(context.Background())
	defer cancelAppCtx()

	cfg, err := config.LoadConfig("api_gateway")
	if err != nil {
		// logger is not initialized yet, so we use fmt
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.NewLogger(cfg)
	m := metrics.New()

	stores, err := storage.Open(appCtx, log, cfg, afero.NewOsFs(), m)
	if err != nil {
		log.Error("Failed to open book store", "error", err)
		os.Exit(1)
	}

	// Publishes asynchronous transaction requests for the processor
	kafkaProducer, err := producers.NewTransactionRequestProducer(appCtx, log, &cfg.Kafka)
	if err != nil {
		log.Error("Failed to initialize API Gateway Kafka producer", "error", err)
		os.Exit(1)
	}

	bookService := service.NewBookService(log, stores.Client, cfg.Book)
	accountService := service.NewAccountService(stores.Client)
	transactionService := service.NewTransactionService(log, stores.Client, kafkaProducer, stores.Archive, m)

	server := api_gateway.NewServer(log, cfg, bookService, accountService, transactionService, m)
	log.Info("REST server initialized")

	errChan := make(chan error, 1)
	go func() {
		log.Info("Starting HTTP server", "port", cfg.Server.Port)
		if err := server.Start(); err != nil {
			errChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	var serverErr error
	select {
	case <-quit:
		log.Info("Shutdown signal received")
	case err := <-errChan:
		log.Error("Server error occurred", "error", err)
		serverErr = err
	}

	cancelAppCtx()

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancelShutdown()

	log.Info("Starting graceful shutdown...")

	// Stop taking requests before the stores go away
	if err = server.Stop(shutdownCtx); err != nil {
		log.Error("Error during server shutdown", "error", err)
	}

	if err = kafkaProducer.Close(); err != nil {
		log.Error("Error closing Kafka producer", "error", err)
	}

	stores.Close(shutdownCtx)

	if serverErr != nil {
		log.Error("HTTP server shutdown with errors", "error", serverErr)
	}
	if err != nil {
		log.Error("Server shutdown completed with errors")
	} else {
		log.Info("Server shutdown completed successfully")
	}
}
