package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/zeppelin-cash/internal/client"
	"github.com/zeppelin-cash/internal/domain/journal"
	"github.com/zeppelin-cash/internal/domain/shared"
	"github.com/zeppelin-cash/internal/logger"
	"github.com/zeppelin-cash/internal/platform/metrics"
)

const (
	defaultAttempts = 3
	defaultBackoff  = 200 * time.Millisecond
)

type ProcessingServiceImpl struct {
	client          client.Client
	validator       TransactionValidator
	failureRecorder FailureRecorder
	metrics         *metrics.Metrics
	logger          *slog.Logger

	attempts int
	backoff  time.Duration
}

func NewProcessingService(
	logger *slog.Logger,
	c client.Client,
	validator TransactionValidator,
	failureRecorder FailureRecorder,
	m *metrics.Metrics,
) *ProcessingServiceImpl {
	return &ProcessingServiceImpl{
		client:          c,
		validator:       validator,
		failureRecorder: failureRecorder,
		metrics:         m,
		logger:          logger,
		attempts:        defaultAttempts,
		backoff:         defaultBackoff,
	}
}

// ProcessTransaction records one queued request in the user's book. Requests that can
// never succeed are handed to the failure recorder and acknowledged. Transient failures
// are retried, then recorded as SAVE_FAILED. An error is returned only when the failure
// itself could not be recorded, so the message stays uncommitted.
func (s *ProcessingServiceImpl) ProcessTransaction(ctx context.Context, request *shared.TransactionRequest) error {
	log := logger.FromContext(ctx, s.logger).With(
		"request_id", request.RequestID.String(),
		"user_id", request.UserID,
	)
	log.Info("Processing transaction")

	// 1. Validate the transaction
	tx, err := s.validator.Validate(ctx, request)
	if err != nil {
		log.Warn("Transaction validation failed", "error", err)
		s.metrics.IncrTransaction(metrics.SourceKafka, err)
		reason, _ := ClassifyFailure(err)
		return s.recordFailure(ctx, log, request, reason, err)
	}

	// 2. Record it, retrying transient failures
	err = s.addTransaction(ctx, log, request, tx)
	s.metrics.IncrTransaction(metrics.SourceKafka, err)
	if err != nil {
		reason, _ := ClassifyFailure(err)
		log.Error("Failed to record transaction", "reason", reason, "error", err)
		return s.recordFailure(ctx, log, request, reason, err)
	}

	log.Info("Transaction recorded", "transaction_id", tx.ID.String())
	return nil
}

func (s *ProcessingServiceImpl) addTransaction(ctx context.Context, log *slog.Logger, request *shared.TransactionRequest, tx journal.Transaction) error {
	var err error
	for attempt := 1; attempt <= s.attempts; attempt++ {
		err = s.addOnce(ctx, log, request, tx)
		if err == nil {
			return nil
		}
		if _, permanent := ClassifyFailure(err); permanent || attempt == s.attempts {
			return err
		}

		log.Warn("Transient failure, retrying", "attempt", attempt, "error", err)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(s.backoff * time.Duration(attempt)):
		}
	}
	return err
}

func (s *ProcessingServiceImpl) addOnce(ctx context.Context, log *slog.Logger, request *shared.TransactionRequest, tx journal.Transaction) error {
	// A redelivered message, or a retry after a save whose reply was lost, is already in the journal
	recorded, err := s.validator.CheckIdempotency(ctx, request, tx)
	if err != nil {
		return err
	}
	if recorded {
		log.Info("Transaction already recorded (idempotency)", "transaction_id", tx.ID.String())
		return nil
	}
	return s.client.AddTransaction(ctx, request.UserID, tx)
}

func (s *ProcessingServiceImpl) recordFailure(ctx context.Context, log *slog.Logger, request *shared.TransactionRequest, reason shared.FailureReason, cause error) error {
	if err := s.failureRecorder.RecordFailure(ctx, request, reason, cause); err != nil {
		log.Error("Failed to record transaction failure", "reason", reason, "error", err)
		return fmt.Errorf("recording failure of request %s: %w", request.RequestID, err)
	}
	return nil
}
