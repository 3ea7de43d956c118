package outbox_poller

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/zeppelin-cash/internal/config"
	"github.com/zeppelin-cash/internal/domain/outbox"
	"github.com/zeppelin-cash/internal/domain/shared"
	"github.com/zeppelin-cash/internal/logger"
	"github.com/zeppelin-cash/internal/platform/metrics"
)

// Outcome labels of the outbox message counter
const (
	resultProcessed = "processed"
	resultRetry     = "retry"
	resultFailed    = "failed"
)

// Poller processes pending outbox messages
type Poller struct {
	outboxRepo       outbox.Repository
	publisher        ArchivePublisher
	metrics          *metrics.Metrics
	logger           *slog.Logger
	pollInterval     time.Duration
	batchSize        int
	maxRetryAttempts int
}

func NewPoller(
	cfg *config.OutboxConfig,
	outboxRepo outbox.Repository,
	publisher ArchivePublisher,
	m *metrics.Metrics,
	logger *slog.Logger,
) *Poller {
	return &Poller{
		outboxRepo:       outboxRepo,
		publisher:        publisher,
		metrics:          m,
		logger:           logger,
		pollInterval:     cfg.PollingInterval,
		batchSize:        cfg.BatchSize,
		maxRetryAttempts: cfg.MaxRetryAttempts,
	}
}

// Start begins polling until context is canceled
func (p *Poller) Start(ctx context.Context) {
	p.logger.Info("Starting Outbox Poller",
		"poll_interval", p.pollInterval.String(),
		"batch_size", p.batchSize,
		"max_retry_attempts", p.maxRetryAttempts,
	)
	ticker := time.NewTicker(p.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			p.logger.Info("Outbox Poller stopping due to context cancellation.")
			return
		case <-ticker.C:
			if err := p.processPendingMessages(ctx); err != nil {
				p.logger.Error("Error during batch processing of pending outbox messages", "error", err)
			}
		}
	}
}

func (p *Poller) processPendingMessages(ctx context.Context) error {
	messages, err := p.outboxRepo.GetPending(ctx, p.batchSize)
	if err != nil {
		return fmt.Errorf("failed to get pending outbox messages: %w", err)
	}
	if len(messages) == 0 {
		p.logger.Debug("No pending outbox messages found.")
		return nil
	}

	p.logger.Info("Fetched pending outbox messages", "count", len(messages))
	for _, msg := range messages {
		p.processMessage(ctx, msg)
	}
	return nil
}

func (p *Poller) processMessage(ctx context.Context, msg *outbox.Message) {
	if record, err := msg.Record(); err == nil && record.CorrelationID != "" {
		ctx = logger.WithCorrelationID(ctx, record.CorrelationID)
	}
	log := logger.FromContext(ctx, p.logger).With("outbox_id", msg.ID, "transaction_id", msg.TransactionID)

	err := p.publisher.PublishToArchive(ctx, msg)
	if err == nil {
		p.metrics.IncrOutboxMessage(resultProcessed)
		return
	}
	if errors.Is(err, ErrUndecodablePayload) {
		p.metrics.IncrOutboxMessage(resultFailed)
		return
	}

	log.Error("Failed to archive outbox message", "current_attempts", msg.Attempts, "error", err)
	if errInc := p.outboxRepo.IncrementAttempts(ctx, msg.ID); errInc != nil {
		log.Error("Failed to increment attempts for outbox message", "error", errInc)
		p.metrics.IncrOutboxMessage(resultRetry)
		return
	}

	if msg.Attempts+1 < p.maxRetryAttempts {
		p.metrics.IncrOutboxMessage(resultRetry)
		return
	}

	log.Warn("Max retry attempts reached for outbox message, marking as FAILED_TO_PUBLISH", "attempts_made", msg.Attempts+1)
	if errUpdate := p.outboxRepo.UpdateStatus(ctx, msg.ID, shared.OutboxStatusFailedToPublish); errUpdate != nil {
		log.Error("Failed to update outbox status to FAILED_TO_PUBLISH after max retries", "error", errUpdate)
	}
	p.metrics.IncrOutboxMessage(resultFailed)
}
