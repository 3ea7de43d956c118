package components

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/zeppelin-cash/internal/client"
	"github.com/zeppelin-cash/internal/domain/journal"
	"github.com/zeppelin-cash/internal/domain/shared"
	"github.com/zeppelin-cash/internal/logger"
	"github.com/zeppelin-cash/internal/transaction_processor/service"
)

type TransactionValidatorImpl struct {
	client client.Client
	logger *slog.Logger
}

func NewTransactionValidator(logger *slog.Logger, c client.Client) service.TransactionValidator {
	return &TransactionValidatorImpl{
		client: c,
		logger: logger,
	}
}

// Validate parses the request into a journal transaction and checks that it balances
func (v *TransactionValidatorImpl) Validate(ctx context.Context, request *shared.TransactionRequest) (journal.Transaction, error) {
	log := logger.FromContext(ctx, v.logger)

	tx, err := request.ToJournalTransaction()
	if err != nil {
		log.Warn("Unparseable transaction request", "request_id", request.RequestID.String(), "error", err)
		return journal.Transaction{}, err
	}
	if err := tx.Validate(); err != nil {
		log.Warn("Invalid transaction", "request_id", request.RequestID.String(), "error", err)
		return journal.Transaction{}, err
	}
	return tx, nil
}

// CheckIdempotency looks for tx.ID among the journal transactions sharing its time. Requests
// without a request id cannot be matched and are never skipped.
func (v *TransactionValidatorImpl) CheckIdempotency(ctx context.Context, request *shared.TransactionRequest, tx journal.Transaction) (bool, error) {
	if request.RequestID == uuid.Nil {
		return false, nil
	}

	existing, err := v.client.Transactions(ctx, request.UserID, tx.Time, tx.Time)
	if err != nil {
		logger.FromContext(ctx, v.logger).Error("Failed to check journal for idempotency",
			"request_id", request.RequestID.String(),
			"error", err,
		)
		return false, fmt.Errorf("idempotency check failed for request %s: %w", request.RequestID, err)
	}

	for _, t := range existing {
		if t.ID == tx.ID {
			return true, nil
		}
	}
	return false, nil
}
