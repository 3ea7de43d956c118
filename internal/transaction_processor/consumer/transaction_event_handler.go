package consumer

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

// TransactionEventHandler handles incoming transaction request messages from Kafka
type TransactionEventHandler struct {
	processingService service.ProcessingService
	producer          producers.DeadLetterPublisher
	logger            *slog.Logger
}

// NewTransactionEventHandler creates a new handler
func NewTransactionEventHandler(
	logger *slog.Logger,
	processingService service.ProcessingService,
	producer producers.DeadLetterPublisher,
) *TransactionEventHandler {
	return &TransactionEventHandler{
		processingService: processingService,
		producer:          producer,
		logger:            logger,
	}
}

// HandleMessage decodes one request and hands it to the processing service. A nil return
// commits the message.
func (h *TransactionEventHandler) HandleMessage(ctx context.Context, key []byte, value []byte) error {
	var request shared.TransactionRequest
	if err := json.Unmarshal(value, &request); err != nil {
		log := logger.FromContext(ctx, h.logger)
		log.Error("Failed to unmarshal transaction request from Kafka message",
			"error", err,
			"message_key", string(key),
		)

		dlqErr := h.producer.PublishToDLQ(ctx, string(key), value, shared.FailureReasonInvalidPayload, err)
		if errors.Is(dlqErr, producers.ErrDLQDisabled) {
			log.Warn("DLQ disabled, dropping unprocessable message", "message_key", string(key))
			return nil
		}
		if dlqErr != nil {
			log.Error("Failed to publish message to DLQ after unmarshal error",
				"dlq_error", dlqErr,
				"original_error", err,
				"message_key", string(key),
			)
			// Leave the message uncommitted
			return fmt.Errorf("failed to unmarshal message value: %w", err)
		}

		log.Info("Published unprocessable message to DLQ", "message_key", string(key))
		return nil
	}

	if logger.CorrelationID(ctx) == "" && request.CorrelationID != "" {
		ctx = logger.WithCorrelationID(ctx, request.CorrelationID)
	}
	log := logger.FromContext(ctx, h.logger)

	log.Info("Received transaction request for processing",
		"request_id", request.RequestID.String(),
		"user_id", request.UserID,
		"entries", len(request.Entries),
	)

	if err := h.processingService.ProcessTransaction(ctx, &request); err != nil {
		log.Error("Failed to process transaction",
			"request_id", request.RequestID.String(),
			"error", err,
		)
		return fmt.Errorf("processing request %s failed: %w", request.RequestID.String(), err)
	}

	return nil
}
