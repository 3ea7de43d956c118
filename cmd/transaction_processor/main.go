package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/spf13/afero"

	"github.com/zeppelin-cash/internal/config"
	"github.com/zeppelin-cash/internal/logger"
	"github.com/zeppelin-cash/internal/platform/messaging/consumers"
	"github.com/zeppelin-cash/internal/platform/messaging/producers"
	"github.com/zeppelin-cash/internal/platform/metrics"
	"github.com/zeppelin-cash/internal/platform/storage"
	"github.com/zeppelin-cash/internal/transaction_processor/components"
	"github.com/zeppelin-cash/internal/transaction_processor/consumer"
	"github.com/zeppelin-cash/internal/transaction_processor/outbox_poller"
	"github.com/zeppelin-cash/internal/transaction_processor/service"
)

func main() {
	// Create base context with cancellation
	appCtx, cancelAppCtx := context.WithCancel(context.Background())
	defer cancelAppCtx()

	cfg, err := config.LoadConfig("transaction_processor")
	if err != nil {
		// logger is not initialized yet, so we use fmt
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.NewLogger(cfg)

	log.Info("Starting Transaction Processor",
		"app_name", cfg.Application.Name,
		"env", cfg.Application.Env,
		"storage", cfg.Storage.Backend,
	)

	m := metrics.New()

	stores, err := storage.Open(appCtx, log, cfg, afero.NewOsFs(), m)
	if err != nil {
		log.Error("Failed to open book store", "error", err)
		os.Exit(1)
	}

	kafkaConsumer := consumers.NewKafkaConsumer(appCtx, log, &cfg.Kafka)

	dlqProducer, err := producers.NewDLQProducer(appCtx, log, &cfg.Kafka)
	if err != nil {
		log.Error("Failed to initialize DLQ Kafka producer", "error", err)
		os.Exit(1)
	}

	processingService := components.CreateProcessingService(log, stores.Client, dlqProducer, m, cfg)

	transactionEventHandler := consumer.NewTransactionEventHandler(log, processingService, dlqProducer)

	errChan := make(chan error, 2)
	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		log.Info("Starting Kafka consumer",
			"topic", cfg.Kafka.TransactionTopic,
			"group", cfg.Kafka.ConsumerGroup,
		)
		if err := kafkaConsumer.Subscribe(appCtx, transactionEventHandler.HandleMessage); err != nil {
			errChan <- fmt.Errorf("kafka consumer error: %w", err)
		}
	}()

	// Only the postgres backend writes an outbox to drain into the archive
	if stores.Outbox != nil && stores.Archive != nil {
		archivePublisher := outbox_poller.NewArchivePublisher(stores.Outbox, stores.Archive, log)
		poller := outbox_poller.NewPoller(&cfg.Outbox, stores.Outbox, archivePublisher, m, log)

		wg.Add(1)
		go func() {
			defer wg.Done()
			poller.Start(appCtx)
		}()
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	var serviceErr error
	select {
	case <-quit:
		log.Info("Shutdown signal received")
	case err := <-errChan:
		log.Error("Service error occurred", "error", err)
		serviceErr = err
	}

	cancelAppCtx()

	if wpService, ok := processingService.(*service.WorkerPoolProcessingService); ok {
		log.Info("Shutting down worker pool", "running_workers", wpService.Running())
		wpService.Shutdown()
	}

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancelShutdown()

	log.Info("Starting graceful shutdown...")

	wgChan := make(chan struct{})
	go func() {
		wg.Wait()
		close(wgChan)
	}()

	select {
	case <-wgChan:
		log.Info("All services stopped successfully")
	case <-shutdownCtx.Done():
		log.Warn("Shutdown timeout reached, forcing exit")
	}

	// dlqProducer is nil when no DLQ topic is configured
	if dlqProducer != nil {
		if err = dlqProducer.Close(); err != nil {
			log.Error("Error closing DLQ Kafka producer", "error", err)
		}
	}

	if err = kafkaConsumer.Close(); err != nil {
		log.Error("Error closing Kafka consumer", "error", err)
	}

	stores.Close(shutdownCtx)

	if serviceErr != nil {
		log.Error("Transaction Processor shutdown with errors", "error", serviceErr)
	}
	if err != nil {
		log.Error("Transaction Processor shutdown completed with errors")
	} else {
		log.Info("Transaction Processor shutdown completed successfully")
	}
}
