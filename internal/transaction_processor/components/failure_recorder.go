package components

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	jsoniter "github.com/json-iterator/go"

	"github.com/zeppelin-cash/internal/domain/shared"
	"github.com/zeppelin-cash/internal/logger"
	"github.com/zeppelin-cash/internal/platform/messaging/producers"
	"github.com/zeppelin-cash/internal/transaction_processor/service"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// FailureRecorderImpl parks failed requests in the dead letter queue, keyed by user
type FailureRecorderImpl struct {
	dlq    producers.DeadLetterPublisher
	logger *slog.Logger
}

func NewFailureRecorder(logger *slog.Logger, dlq producers.DeadLetterPublisher) service.FailureRecorder {
	return &FailureRecorderImpl{
		dlq:    dlq,
		logger: logger,
	}
}

// RecordFailure publishes the request with its failure reason. With the DLQ disabled the
// failure is only logged.
func (r *FailureRecorderImpl) RecordFailure(ctx context.Context, request *shared.TransactionRequest, reason shared.FailureReason, cause error) error {
	log := logger.FromContext(ctx, r.logger).With(
		"request_id", request.RequestID.String(),
		"user_id", request.UserID,
		"reason", reason,
	)

	value, err := json.Marshal(request)
	if err != nil {
		return fmt.Errorf("marshal failed request %s: %w", request.RequestID, err)
	}

	if err := r.dlq.PublishToDLQ(ctx, request.UserID, value, reason, cause); err != nil {
		if errors.Is(err, producers.ErrDLQDisabled) {
			log.Warn("DLQ disabled, dropping failed transaction", "error", cause)
			return nil
		}
		return err
	}

	log.Info("Failed transaction sent to DLQ")
	return nil
}
