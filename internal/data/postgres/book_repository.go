// Package postgres provides PostgreSQL implementations of the domain repositories.
// Books are stored as JSONB snapshots under optimistic versioning, and every transaction
// a save propagates is written to the outbox in the same database transaction.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // driver import
	"github.com/doug-martin/goqu/v9/exp"
	"github.com/jackc/pgx/v5"

	"github.com/zeppelin-cash/internal/data/snapshot"
	"github.com/zeppelin-cash/internal/domain/archive"
	"github.com/zeppelin-cash/internal/domain/book"
	"github.com/zeppelin-cash/internal/domain/outbox"
	"github.com/zeppelin-cash/internal/logger"
	"github.com/zeppelin-cash/internal/platform/persistence"
)

const (
	dialectPostgres = "postgres"

	tableBooks = "books"

	colUserID      = "user_id"
	colCurrency    = "currency"
	colStartTime   = "start_time"
	colSnapshot    = "snapshot"
	colPushedCount = "pushed_count"
	colVersion     = "version"
	colCreatedAt   = "created_at"
	colUpdatedAt   = "updated_at"
)

// DB is what the book store needs from the pool: plain queries and transactions.
type DB interface {
	persistence.Querier
	persistence.TxBeginner
}

// BookRepository implements the book.Repository interface for PostgreSQL
type BookRepository struct {
	db      DB
	outbox  outbox.Repository
	builder goqu.DialectWrapper
	logger  *slog.Logger
}

var _ book.Repository = (*BookRepository)(nil)

// NewBookRepository creates a new PostgreSQL book repository writing propagated
// transactions to outboxRepo.
func NewBookRepository(logger *slog.Logger, db DB, outboxRepo outbox.Repository) *BookRepository {
	return &BookRepository{
		db:      db,
		outbox:  outboxRepo,
		builder: goqu.Dialect(dialectPostgres),
		logger:  logger,
	}
}

// Book loads and decodes the user's book together with its version.
func (r *BookRepository) Book(ctx context.Context, userID string) (*book.Book, int64, error) {
	query, args, err := r.builder.
		From(tableBooks).
		Select(colSnapshot, colVersion).
		Where(goqu.C(colUserID).Eq(userID)).
		Prepared(true).
		ToSQL()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build book query: %w", err)
	}

	var (
		data    []byte
		version int64
	)
	if err := r.db.QueryRow(ctx, query, args...).Scan(&data, &version); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, 0, book.ErrBookNotFound{UserID: userID}
		}
		r.logger.Error("Failed to get book", "user_id", userID, "error", err)
		return nil, 0, fmt.Errorf("failed to get book: %w", err)
	}

	b, err := snapshot.Decode(data)
	if err != nil {
		r.logger.Error("Failed to decode book", "user_id", userID, "error", err)
		return nil, 0, err
	}
	return b, version, nil
}

// Create stores a new book at version 1. Returns ErrBookExists if the user already has one.
func (r *BookRepository) Create(ctx context.Context, userID string, b *book.Book) error {
	data, err := snapshot.Encode(b)
	if err != nil {
		return err
	}
	pushed := snapshot.PushedCount(data)
	now := time.Now().UTC()

	query, args, err := r.builder.
		Insert(tableBooks).
		Rows(goqu.Record{
			colUserID:      userID,
			colCurrency:    b.Currency().Code,
			colStartTime:   b.StartTime(),
			colSnapshot:    string(data),
			colPushedCount: pushed,
			colVersion:     1,
			colCreatedAt:   now,
			colUpdatedAt:   now,
		}).
		OnConflict(goqu.DoNothing()).
		Prepared(true).
		ToSQL()
	if err != nil {
		return fmt.Errorf("failed to build book insert: %w", err)
	}

	return persistence.RunInTx(ctx, r.db, func(tx pgx.Tx) error {
		result, err := tx.Exec(ctx, query, args...)
		if err != nil {
			r.logger.Error("Failed to create book", "user_id", userID, "error", err)
			return fmt.Errorf("failed to create book: %w", err)
		}
		if result.RowsAffected() == 0 {
			return book.ErrBookExists{UserID: userID}
		}
		return r.enqueue(ctx, tx, userID, b, 0, pushed)
	})
}

// Save replaces the stored snapshot if it is still at version and queues every transaction
// propagated since the previous save for archiving.
func (r *BookRepository) Save(ctx context.Context, userID string, b *book.Book, version int64) error {
	data, err := snapshot.Encode(b)
	if err != nil {
		return err
	}
	pushed := snapshot.PushedCount(data)

	lockQuery, lockArgs, err := r.builder.
		From(tableBooks).
		Select(colVersion, colPushedCount).
		Where(goqu.C(colUserID).Eq(userID)).
		ForUpdate(exp.Wait).
		Prepared(true).
		ToSQL()
	if err != nil {
		return fmt.Errorf("failed to build book lock query: %w", err)
	}

	updateQuery, updateArgs, err := r.builder.
		Update(tableBooks).
		Set(goqu.Record{
			colSnapshot:    string(data),
			colPushedCount: pushed,
			colVersion:     goqu.L(colVersion + " + 1"),
			colUpdatedAt:   time.Now().UTC(),
		}).
		Where(goqu.C(colUserID).Eq(userID), goqu.C(colVersion).Eq(version)).
		Prepared(true).
		ToSQL()
	if err != nil {
		return fmt.Errorf("failed to build book update: %w", err)
	}

	return persistence.RunInTx(ctx, r.db, func(tx pgx.Tx) error {
		var (
			storedVersion int64
			storedPushed  int
		)
		if err := tx.QueryRow(ctx, lockQuery, lockArgs...).Scan(&storedVersion, &storedPushed); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return book.ErrBookNotFound{UserID: userID}
			}
			r.logger.Error("Failed to lock book", "user_id", userID, "error", err)
			return fmt.Errorf("failed to lock book: %w", err)
		}
		if storedVersion != version {
			return book.ErrConcurrentModification{UserID: userID}
		}

		result, err := tx.Exec(ctx, updateQuery, updateArgs...)
		if err != nil {
			r.logger.Error("Failed to update book", "user_id", userID, "error", err)
			return fmt.Errorf("failed to update book: %w", err)
		}
		if result.RowsAffected() == 0 {
			return book.ErrConcurrentModification{UserID: userID}
		}

		return r.enqueue(ctx, tx, userID, b, storedPushed, pushed)
	})
}

// enqueue writes an outbox message for each journal transaction in [from, to).
func (r *BookRepository) enqueue(ctx context.Context, tx pgx.Tx, userID string, b *book.Book, from, to int) error {
	if to <= from {
		return nil
	}
	transactions := b.Transactions()
	if to > len(transactions) {
		to = len(transactions)
	}

	txOutbox := r.outbox.WithTx(tx)
	correlationID := logger.CorrelationID(ctx)
	for _, t := range transactions[from:to] {
		message, err := outbox.NewMessage(archive.NewRecord(userID, t, correlationID))
		if err != nil {
			return fmt.Errorf("failed to build outbox message for transaction %s: %w", t.ID, err)
		}
		if err := txOutbox.Create(ctx, message); err != nil {
			return err
		}
	}

	r.logger.Debug("Queued propagated transactions for archiving",
		"user_id", userID,
		"count", to-from,
	)
	return nil
}
