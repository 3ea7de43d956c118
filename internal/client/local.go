package client

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/zeppelin-cash/internal/domain/account"
	"github.com/zeppelin-cash/internal/domain/book"
	"github.com/zeppelin-cash/internal/domain/journal"
	"github.com/zeppelin-cash/internal/domain/money"
	"github.com/zeppelin-cash/internal/domain/statement"
)

// LocalClient serves every user from a single in-memory book. User ids are accepted
// and ignored.
type LocalClient struct {
	mu     sync.Mutex
	book   *book.Book
	logger *slog.Logger
}

var _ Client = (*LocalClient)(nil)

// NewLocalClient wraps b. A nil book is allowed, in which case OpenBook must run first.
func NewLocalClient(logger *slog.Logger, b *book.Book) *LocalClient {
	return &LocalClient{book: b, logger: logger}
}

func (c *LocalClient) with(userID string, fn func(*book.Book) error) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.book == nil {
		return book.ErrBookNotFound{UserID: userID}
	}
	return fn(c.book)
}

func (c *LocalClient) OpenBook(_ context.Context, userID string, start time.Time, currency money.Currency) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.book != nil {
		return book.ErrBookExists{UserID: userID}
	}
	c.book = book.New(start, currency)
	c.logger.Info("Opened local book", "start", start, "currency", currency.Code)
	return nil
}

func (c *LocalClient) FinancialStatement(_ context.Context, userID string, start, end time.Time) (statement.FinancialStatement, error) {
	var fs statement.FinancialStatement
	err := c.with(userID, func(b *book.Book) (err error) {
		fs, err = b.FinancialStatement(start, end)
		return err
	})
	return fs, err
}

func (c *LocalClient) BalanceSheet(_ context.Context, userID string, at time.Time) (statement.BalanceSheet, error) {
	var bs statement.BalanceSheet
	err := c.with(userID, func(b *book.Book) (err error) {
		bs, err = balanceSheet(b, at)
		return err
	})
	return bs, err
}

func (c *LocalClient) ListAccounts(_ context.Context, userID string, ts time.Time) ([]account.Metadata, error) {
	var out []account.Metadata
	err := c.with(userID, func(b *book.Book) (err error) {
		out, err = b.ListAccounts(ts)
		return err
	})
	return out, err
}

func (c *LocalClient) AddAccount(_ context.Context, userID string, name string, isAsset bool) (account.ID, error) {
	var id account.ID
	err := c.with(userID, func(b *book.Book) error {
		id = b.AddAccount(name, isAsset)
		return nil
	})
	return id, err
}

func (c *LocalClient) AddGroupAccount(_ context.Context, userID string, group book.Group, name string, isAsset bool) (account.ID, error) {
	var id account.ID
	err := c.with(userID, func(b *book.Book) (err error) {
		id, err = b.AddGroupAccount(group, name, isAsset)
		return err
	})
	return id, err
}

func (c *LocalClient) GetAccount(_ context.Context, userID string, id account.ID) (*account.Account, error) {
	var acc *account.Account
	err := c.with(userID, func(b *book.Book) (err error) {
		acc, err = b.Account(id)
		return err
	})
	return acc, err
}

func (c *LocalClient) AddTransaction(_ context.Context, userID string, tx journal.Transaction) error {
	return c.with(userID, func(b *book.Book) error {
		return b.AddTransaction(tx)
	})
}

func (c *LocalClient) Transactions(_ context.Context, userID string, start, end time.Time) ([]journal.Transaction, error) {
	var out []journal.Transaction
	err := c.with(userID, func(b *book.Book) error {
		out = b.TransactionsBetween(start, end)
		return nil
	})
	return out, err
}
