package components

import (
	"log/slog"

	"github.com/zeppelin-cash/internal/client"
	"github.com/zeppelin-cash/internal/config"
	"github.com/zeppelin-cash/internal/platform/messaging/producers"
	"github.com/zeppelin-cash/internal/platform/metrics"
	"github.com/zeppelin-cash/internal/transaction_processor/service"
)

// CreateProcessingService creates a new ProcessingService with all its dependencies.
func CreateProcessingService(
	logger *slog.Logger,
	c client.Client,
	dlq producers.DeadLetterPublisher,
	m *metrics.Metrics,
	cfg *config.Config,
) service.ProcessingService {
	validator := NewTransactionValidator(logger, c)
	failureRecorder := NewFailureRecorder(logger, dlq)

	baseService := service.NewProcessingService(logger, c, validator, failureRecorder, m)

	workerPoolService, err := service.NewWorkerPoolProcessingService(
		baseService,
		service.WorkerPoolConfig{
			Size: cfg.WorkerPool.Size,
		},
		logger.With("component", "worker_pool"),
	)
	if err != nil {
		logger.Error("Failed to create worker pool service, falling back to base service", "error", err)
		return baseService
	}

	logger.Info("Created worker pool processing service", "pool_size", cfg.WorkerPool.Size)
	return workerPoolService
}
