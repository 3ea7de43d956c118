package service

import (
	"context"

	"github.com/zeppelin-cash/internal/domain/journal"
	"github.com/zeppelin-cash/internal/domain/shared"
)

// ProcessingService defines the interface for processing transaction requests.
type ProcessingService interface {
	ProcessTransaction(ctx context.Context, request *shared.TransactionRequest) error
}

// TransactionValidator validates transaction requests before processing
type TransactionValidator interface {
	// Validate parses the request and checks it balances, without touching the book
	Validate(ctx context.Context, request *shared.TransactionRequest) (journal.Transaction, error)
	// CheckIdempotency reports whether tx is already in the user's journal
	CheckIdempotency(ctx context.Context, request *shared.TransactionRequest, tx journal.Transaction) (bool, error)
}

// FailureRecorder handles recording failed transactions
type FailureRecorder interface {
	RecordFailure(ctx context.Context, request *shared.TransactionRequest, reason shared.FailureReason, cause error) error
}
