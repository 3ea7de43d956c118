// Package client is the entry point the gateway and the processor use to work on books.
// Implementations own serialization, so callers may share one across goroutines.
package client

import (
	"context"
	"errors"
	"time"

	"github.com/zeppelin-cash/internal/domain/account"
	"github.com/zeppelin-cash/internal/domain/book"
	"github.com/zeppelin-cash/internal/domain/journal"
	"github.com/zeppelin-cash/internal/domain/money"
	"github.com/zeppelin-cash/internal/domain/statement"
)

var ErrInvalidUserID = errors.New("user id is required")

// Operation names used for metrics and logs
const (
	OpOpenBook           = "open_book"
	OpFinancialStatement = "financial_statement"
	OpBalanceSheet       = "balance_sheet"
	OpListAccounts       = "list_accounts"
	OpAddAccount         = "add_account"
	OpGetAccount         = "get_account"
	OpAddTransaction     = "add_transaction"
	OpTransactions       = "transactions"
)

// Client runs book operations on behalf of a user.
type Client interface {
	OpenBook(ctx context.Context, userID string, start time.Time, currency money.Currency) error
	FinancialStatement(ctx context.Context, userID string, start, end time.Time) (statement.FinancialStatement, error)
	BalanceSheet(ctx context.Context, userID string, at time.Time) (statement.BalanceSheet, error)
	ListAccounts(ctx context.Context, userID string, ts time.Time) ([]account.Metadata, error)
	// AddAccount opens an account in the cash group.
	AddAccount(ctx context.Context, userID string, name string, isAsset bool) (account.ID, error)
	AddGroupAccount(ctx context.Context, userID string, group book.Group, name string, isAsset bool) (account.ID, error)
	GetAccount(ctx context.Context, userID string, id account.ID) (*account.Account, error)
	AddTransaction(ctx context.Context, userID string, tx journal.Transaction) error
	// Transactions returns the journal transactions with start <= time <= end.
	Transactions(ctx context.Context, userID string, start, end time.Time) ([]journal.Transaction, error)
}

// balanceSheet pushes staged transactions before reading, like the other statements.
func balanceSheet(b *book.Book, at time.Time) (statement.BalanceSheet, error) {
	if err := b.Push(); err != nil {
		return statement.BalanceSheet{}, err
	}
	return b.BalanceSheet(at)
}
