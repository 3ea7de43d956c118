package client

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/zeppelin-cash/internal/domain/account"
	"github.com/zeppelin-cash/internal/domain/book"
	"github.com/zeppelin-cash/internal/domain/journal"
	"github.com/zeppelin-cash/internal/domain/money"
	"github.com/zeppelin-cash/internal/domain/statement"
	"github.com/zeppelin-cash/internal/logger"
	"github.com/zeppelin-cash/internal/platform/metrics"
)

// MultiClient keeps one book per user in a book.Repository. Operations on the same user
// are serialized in process; the repository version check catches writers in other
// processes.
type MultiClient struct {
	repo    book.Repository
	logger  *slog.Logger
	metrics *metrics.Metrics

	mu    sync.Mutex
	locks map[string]*userLock
}

// userLock is dropped from MultiClient.locks once no caller holds or waits on it.
type userLock struct {
	mu   sync.Mutex
	refs int
}

var _ Client = (*MultiClient)(nil)

func NewMultiClient(logger *slog.Logger, repo book.Repository, m *metrics.Metrics) *MultiClient {
	return &MultiClient{
		repo:    repo,
		logger:  logger,
		metrics: m,
		locks:   make(map[string]*userLock),
	}
}

func (c *MultiClient) lock(userID string) func() {
	c.mu.Lock()
	l, ok := c.locks[userID]
	if !ok {
		l = &userLock{}
		c.locks[userID] = l
	}
	l.refs++
	c.mu.Unlock()

	l.mu.Lock()
	return func() {
		l.mu.Unlock()

		c.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(c.locks, userID)
		}
		c.mu.Unlock()
	}
}

// update loads the user's book, runs fn on it and saves the book back if fn changed it.
// The book is saved even when fn fails, so that a staged transaction which could not be
// pushed is kept. A lost optimistic race is retried once on a fresh copy.
func (c *MultiClient) update(ctx context.Context, op, userID string, fn func(*book.Book) error) error {
	if userID == "" {
		return ErrInvalidUserID
	}
	start := time.Now()
	unlock := c.lock(userID)
	defer unlock()

	err := c.updateOnce(ctx, userID, fn)
	if errors.Is(err, book.ErrConcurrentModification{}) {
		logger.FromContext(ctx, c.logger).Warn("Book changed underneath, retrying",
			"operation", op,
			"user_id", userID,
		)
		err = c.updateOnce(ctx, userID, fn)
	}
	c.metrics.ObserveBookOperation(op, start, err)
	if err != nil {
		logger.FromContext(ctx, c.logger).Debug("Book operation failed",
			"operation", op,
			"user_id", userID,
			"error", err,
		)
	}
	return err
}

func (c *MultiClient) updateOnce(ctx context.Context, userID string, fn func(*book.Book) error) error {
	b, version, err := c.repo.Book(ctx, userID)
	if err != nil {
		return err
	}

	revision := b.Revision()
	fnErr := fn(b)
	if b.Revision() != revision {
		if err := c.repo.Save(ctx, userID, b, version); err != nil {
			return err
		}
	}
	return fnErr
}

func (c *MultiClient) OpenBook(ctx context.Context, userID string, start time.Time, currency money.Currency) error {
	if userID == "" {
		return ErrInvalidUserID
	}
	begin := time.Now()
	err := c.repo.Create(ctx, userID, book.New(start, currency))
	c.metrics.ObserveBookOperation(OpOpenBook, begin, err)
	if err != nil {
		return err
	}

	logger.FromContext(ctx, c.logger).Info("Opened book",
		"user_id", userID,
		"start", start,
		"currency", currency.Code,
	)
	return nil
}

func (c *MultiClient) FinancialStatement(ctx context.Context, userID string, start, end time.Time) (statement.FinancialStatement, error) {
	var fs statement.FinancialStatement
	err := c.update(ctx, OpFinancialStatement, userID, func(b *book.Book) (err error) {
		fs, err = b.FinancialStatement(start, end)
		return err
	})
	return fs, err
}

func (c *MultiClient) BalanceSheet(ctx context.Context, userID string, at time.Time) (statement.BalanceSheet, error) {
	var bs statement.BalanceSheet
	err := c.update(ctx, OpBalanceSheet, userID, func(b *book.Book) (err error) {
		bs, err = balanceSheet(b, at)
		return err
	})
	return bs, err
}

func (c *MultiClient) ListAccounts(ctx context.Context, userID string, ts time.Time) ([]account.Metadata, error) {
	var out []account.Metadata
	err := c.update(ctx, OpListAccounts, userID, func(b *book.Book) (err error) {
		out, err = b.ListAccounts(ts)
		return err
	})
	return out, err
}

func (c *MultiClient) AddAccount(ctx context.Context, userID string, name string, isAsset bool) (account.ID, error) {
	var id account.ID
	err := c.update(ctx, OpAddAccount, userID, func(b *book.Book) error {
		id = b.AddAccount(name, isAsset)
		return nil
	})
	return id, err
}

func (c *MultiClient) AddGroupAccount(ctx context.Context, userID string, group book.Group, name string, isAsset bool) (account.ID, error) {
	var id account.ID
	err := c.update(ctx, OpAddAccount, userID, func(b *book.Book) (err error) {
		id, err = b.AddGroupAccount(group, name, isAsset)
		return err
	})
	return id, err
}

func (c *MultiClient) GetAccount(ctx context.Context, userID string, id account.ID) (*account.Account, error) {
	var acc *account.Account
	err := c.update(ctx, OpGetAccount, userID, func(b *book.Book) (err error) {
		acc, err = b.Account(id)
		return err
	})
	return acc, err
}

func (c *MultiClient) AddTransaction(ctx context.Context, userID string, tx journal.Transaction) error {
	err := c.update(ctx, OpAddTransaction, userID, func(b *book.Book) error {
		return b.AddTransaction(tx)
	})
	if err == nil {
		logger.FromContext(ctx, c.logger).Info("Transaction recorded",
			"user_id", userID,
			"transaction_id", tx.ID,
		)
	}
	return err
}

func (c *MultiClient) Transactions(ctx context.Context, userID string, start, end time.Time) ([]journal.Transaction, error) {
	var out []journal.Transaction
	err := c.update(ctx, OpTransactions, userID, func(b *book.Book) error {
		out = b.TransactionsBetween(start, end)
		return nil
	})
	return out, err
}
