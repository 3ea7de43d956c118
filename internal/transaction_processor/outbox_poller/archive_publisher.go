package outbox_poller

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/zeppelin-cash/internal/domain/archive"
	"github.com/zeppelin-cash/internal/domain/outbox"
	"github.com/zeppelin-cash/internal/domain/shared"
	"github.com/zeppelin-cash/internal/logger"
)

// ErrUndecodablePayload marks outbox messages that can never be archived
var ErrUndecodablePayload = errors.New("outbox payload is not an archive record")

// ArchivePublisher copies outbox messages into the transaction archive
type ArchivePublisher interface {
	PublishToArchive(ctx context.Context, message *outbox.Message) error
}

// ArchivePublisherImpl implements ArchivePublisher
type ArchivePublisherImpl struct {
	outboxRepo  outbox.Repository
	archiveRepo archive.Repository
	logger      *slog.Logger
	now         func() time.Time
}

// NewArchivePublisher creates a new publisher
func NewArchivePublisher(
	outboxRepo outbox.Repository,
	archiveRepo archive.Repository,
	logger *slog.Logger,
) *ArchivePublisherImpl {
	return &ArchivePublisherImpl{
		outboxRepo:  outboxRepo,
		archiveRepo: archiveRepo,
		logger:      logger,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// PublishToArchive writes the message's record to the archive unless it is already there,
// then marks the message PROCESSED. Writing twice is harmless, so a crash between the two
// steps only repeats the first.
func (p *ArchivePublisherImpl) PublishToArchive(ctx context.Context, message *outbox.Message) error {
	log := logger.FromContext(ctx, p.logger).With(
		"outbox_id", message.ID,
		"transaction_id", message.TransactionID,
	)

	record, err := message.Record()
	if err != nil {
		log.Error("Failed to unmarshal archive record from outbox payload", "error", err)
		if updateErr := p.outboxRepo.UpdateStatus(ctx, message.ID, shared.OutboxStatusFailedToPublish); updateErr != nil {
			log.Error("Also failed to update outbox status to FAILED_TO_PUBLISH after unmarshal error", "update_error", updateErr)
		}
		return fmt.Errorf("outbox %d: %w: %v", message.ID, ErrUndecodablePayload, err)
	}

	_, err = p.archiveRepo.GetByTransactionID(ctx, record.TransactionID)
	switch {
	case err == nil:
		log.Info("Transaction already archived")
	case errors.Is(err, archive.ErrRecordNotFound{}):
		archivedAt := p.now()
		record.ArchivedAt = &archivedAt
		if err := p.archiveRepo.Create(ctx, record); err != nil && !errors.Is(err, archive.ErrDuplicateRecord{}) {
			log.Error("Failed to archive transaction", "error", err)
			return fmt.Errorf("failed to archive transaction %s: %w", record.TransactionID, err)
		}
		log.Info("Transaction archived", "user_id", record.UserID)
	default:
		log.Error("Failed to check archive before publishing", "error", err)
		return fmt.Errorf("failed to check archive for %s: %w", record.TransactionID, err)
	}

	if err := p.outboxRepo.UpdateStatus(ctx, message.ID, shared.OutboxStatusProcessed); err != nil {
		log.Error("Failed to update outbox message status to PROCESSED", "error", err)
		return fmt.Errorf("archive write for %s OK, but failed to mark outbox %d as PROCESSED: %w", message.TransactionID, message.ID, err)
	}
	return nil
}
