package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/zeppelin-cash/internal/client"
	"github.com/zeppelin-cash/internal/domain/archive"
	"github.com/zeppelin-cash/internal/domain/journal"
	"github.com/zeppelin-cash/internal/domain/shared"
	"github.com/zeppelin-cash/internal/logger"
	"github.com/zeppelin-cash/internal/platform/messaging/producers"
	"github.com/zeppelin-cash/internal/platform/metrics"
)

var (
	ErrAsyncUnavailable   = errors.New("asynchronous transaction intake is not configured")
	ErrArchiveUnavailable = errors.New("transaction archive is not configured")
)

// TransactionServiceImpl implements the TransactionService interface
type TransactionServiceImpl struct {
	client      client.Client
	producer    producers.TransactionPublisher // nil disables SubmitTransaction
	archiveRepo archive.Repository             // nil disables the archive reads
	metrics     *metrics.Metrics
	logger      *slog.Logger
}

// NewTransactionService creates a new transaction service
func NewTransactionService(
	logger *slog.Logger,
	c client.Client,
	producer producers.TransactionPublisher,
	archiveRepo archive.Repository,
	m *metrics.Metrics,
) TransactionService {
	return &TransactionServiceImpl{
		client:      c,
		producer:    producer,
		archiveRepo: archiveRepo,
		metrics:     m,
		logger:      logger,
	}
}

// AddTransaction converts the request and records it through the client
func (s *TransactionServiceImpl) AddTransaction(ctx context.Context, req *shared.TransactionRequest) (journal.Transaction, error) {
	tx, err := req.ToJournalTransaction()
	if err != nil {
		s.metrics.IncrTransaction(metrics.SourceHTTP, err)
		return journal.Transaction{}, err
	}

	err = s.client.AddTransaction(ctx, req.UserID, tx)
	s.metrics.IncrTransaction(metrics.SourceHTTP, err)
	if err != nil {
		return journal.Transaction{}, err
	}
	return tx, nil
}

// SubmitTransaction validates the request shape, then publishes it for the processor
func (s *TransactionServiceImpl) SubmitTransaction(ctx context.Context, req *shared.TransactionRequest) (uuid.UUID, error) {
	if s.producer == nil {
		return uuid.Nil, ErrAsyncUnavailable
	}
	if _, err := req.ToJournalTransaction(); err != nil {
		return uuid.Nil, err
	}
	if req.RequestID == uuid.Nil {
		req.RequestID = uuid.New()
	}

	log := logger.FromContext(ctx, s.logger)
	if err := s.producer.PublishTransaction(ctx, req); err != nil {
		log.Error("Failed to publish transaction request",
			"user_id", req.UserID,
			"request_id", req.RequestID,
			"error", err,
		)
		return uuid.Nil, err
	}

	log.Info("Transaction request published",
		"user_id", req.UserID,
		"request_id", req.RequestID,
		"entries", len(req.Entries),
	)
	return req.RequestID, nil
}

func (s *TransactionServiceImpl) ListTransactions(ctx context.Context, userID string, start, end time.Time) ([]journal.Transaction, error) {
	return s.client.Transactions(ctx, userID, start, end)
}

func (s *TransactionServiceImpl) GetArchivedTransaction(ctx context.Context, transactionID uuid.UUID) (*archive.Record, error) {
	if s.archiveRepo == nil {
		return nil, ErrArchiveUnavailable
	}
	return s.archiveRepo.GetByTransactionID(ctx, transactionID)
}

// GetArchivedTransactions returns one page of the user's archive and the total count
func (s *TransactionServiceImpl) GetArchivedTransactions(ctx context.Context, userID string, page, perPage int) ([]*archive.Record, int64, error) {
	if s.archiveRepo == nil {
		return nil, 0, ErrArchiveUnavailable
	}
	offset := (page - 1) * perPage

	records, err := s.archiveRepo.GetByUser(ctx, userID, perPage, offset)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.archiveRepo.CountByUser(ctx, userID)
	if err != nil {
		return nil, 0, err
	}

	return records, total, nil
}
