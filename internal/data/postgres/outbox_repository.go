package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/doug-martin/goqu/v9"
	"github.com/jackc/pgx/v5"

	"github.com/zeppelin-cash/internal/domain/outbox"
	"github.com/zeppelin-cash/internal/domain/shared"
	"github.com/zeppelin-cash/internal/platform/persistence"
)

const (
	tableOutbox = "outbox_messages"

	colID            = "id"
	colTransactionID = "transaction_id"
	colPayload       = "payload"
	colStatus        = "status"
	colAttempts      = "attempts"
	colLastAttemptAt = "last_attempt_at"
)

// OutboxRepository implements the outbox.Repository interface for PostgreSQL
type OutboxRepository struct {
	querier persistence.Querier // Can be *pgxpool.Pool or pgx.Tx
	builder goqu.DialectWrapper
	logger  *slog.Logger
}

// NewOutboxRepository creates a new PostgreSQL outbox repository
func NewOutboxRepository(logger *slog.Logger, querier persistence.Querier) *OutboxRepository {
	return &OutboxRepository{
		querier: querier,
		builder: goqu.Dialect(dialectPostgres),
		logger:  logger,
	}
}

var _ outbox.Repository = (*OutboxRepository)(nil)

// WithTx binds the repository to tx so messages commit together with the book they came from.
func (r *OutboxRepository) WithTx(tx pgx.Tx) outbox.Repository {
	return &OutboxRepository{
		querier: tx,
		builder: r.builder,
		logger:  r.logger,
	}
}

// Create stores a new outbox message in pending status and sets its id.
func (r *OutboxRepository) Create(ctx context.Context, message *outbox.Message) error {
	query, args, err := r.builder.
		Insert(tableOutbox).
		Rows(goqu.Record{
			colUserID:        message.UserID,
			colTransactionID: message.TransactionID,
			colPayload:       string(message.Payload),
			colStatus:        string(message.Status),
			colAttempts:      message.Attempts,
			colCreatedAt:     message.CreatedAt,
		}).
		Returning(colID).
		Prepared(true).
		ToSQL()
	if err != nil {
		return fmt.Errorf("failed to build outbox insert: %w", err)
	}

	if err := r.querier.QueryRow(ctx, query, args...).Scan(&message.ID); err != nil {
		r.logger.Error("Failed to create outbox message",
			"user_id", message.UserID,
			"transaction_id", message.TransactionID.String(),
			"error", err,
		)
		return fmt.Errorf("failed to create outbox message: %w", err)
	}

	return nil
}

// GetPending retrieves a batch of pending outbox messages, oldest first.
func (r *OutboxRepository) GetPending(ctx context.Context, limit int) ([]*outbox.Message, error) {
	query, args, err := r.builder.
		From(tableOutbox).
		Select(colID, colUserID, colTransactionID, colPayload, colStatus, colAttempts, colCreatedAt, colLastAttemptAt).
		Where(goqu.C(colStatus).Eq(string(shared.OutboxStatusPending))).
		Order(goqu.C(colCreatedAt).Asc(), goqu.C(colID).Asc()).
		Limit(uint(limit)).
		Prepared(true).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("failed to build pending outbox query: %w", err)
	}

	rows, err := r.querier.Query(ctx, query, args...)
	if err != nil {
		r.logger.Error("Failed to get pending outbox messages", "error", err)
		return nil, fmt.Errorf("failed to get pending outbox messages: %w", err)
	}
	defer rows.Close()

	var messages []*outbox.Message
	for rows.Next() {
		var message outbox.Message
		err := rows.Scan(
			&message.ID,
			&message.UserID,
			&message.TransactionID,
			&message.Payload,
			&message.Status,
			&message.Attempts,
			&message.CreatedAt,
			&message.LastAttemptAt,
		)
		if err != nil {
			r.logger.Error("Failed to scan outbox message", "error", err)
			return nil, fmt.Errorf("failed to scan outbox message: %w", err)
		}
		messages = append(messages, &message)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error("Error iterating over outbox messages", "error", err)
		return nil, fmt.Errorf("error iterating over outbox messages: %w", err)
	}

	return messages, nil
}

func (r *OutboxRepository) update(ctx context.Context, id int64, set goqu.Record, action string) error {
	set[colLastAttemptAt] = goqu.L("NOW()")
	query, args, err := r.builder.
		Update(tableOutbox).
		Set(set).
		Where(goqu.C(colID).Eq(id)).
		Prepared(true).
		ToSQL()
	if err != nil {
		return fmt.Errorf("failed to build outbox update: %w", err)
	}

	result, err := r.querier.Exec(ctx, query, args...)
	if err != nil {
		r.logger.Error("Failed to "+action, "id", id, "error", err)
		return fmt.Errorf("failed to %s: %w", action, err)
	}

	if result.RowsAffected() == 0 {
		return outbox.ErrMessageNotFound{ID: id}
	}

	return nil
}

// UpdateStatus updates the message status and last attempt timestamp.
// Returns ErrMessageNotFound if the message doesn't exist.
func (r *OutboxRepository) UpdateStatus(ctx context.Context, id int64, status shared.OutboxStatus) error {
	return r.update(ctx, id, goqu.Record{colStatus: string(status)}, "update outbox message status")
}

// IncrementAttempts bumps the retry counter of a message that failed to publish.
func (r *OutboxRepository) IncrementAttempts(ctx context.Context, id int64) error {
	return r.update(ctx, id, goqu.Record{colAttempts: goqu.L(colAttempts + " + 1")}, "increment outbox message attempts")
}
