package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/zeppelin-cash/internal/domain/account"
	"github.com/zeppelin-cash/internal/domain/archive"
	"github.com/zeppelin-cash/internal/domain/book"
	"github.com/zeppelin-cash/internal/domain/journal"
	"github.com/zeppelin-cash/internal/domain/shared"
	"github.com/zeppelin-cash/internal/domain/statement"
)

// BookService opens books and builds their statements
type BookService interface {
	// OpenBook opens a book for userID. A zero start or an empty currency falls back to
	// the configured defaults. Returns book.ErrBookExists if the user already has one.
	OpenBook(ctx context.Context, userID string, start time.Time, currency string) (*BookInfo, error)

	FinancialStatement(ctx context.Context, userID string, start, end time.Time) (statement.FinancialStatement, error)
	BalanceSheet(ctx context.Context, userID string, at time.Time) (statement.BalanceSheet, error)
}

// AccountService defines the interface for account operations
type AccountService interface {
	// CreateAccount opens an account under group, or under the cash group when group is empty
	CreateAccount(ctx context.Context, userID string, group book.Group, name string, isAsset bool) (account.ID, error)

	// GetAccount returns ledger.ErrAccountNotFound if the account doesn't exist
	GetAccount(ctx context.Context, userID string, id account.ID) (*account.Account, error)

	ListAccounts(ctx context.Context, userID string, at time.Time) ([]account.Metadata, error)
}

// TransactionService defines the interface for transaction operations
type TransactionService interface {
	// AddTransaction records the transaction in the user's book before returning
	AddTransaction(ctx context.Context, req *shared.TransactionRequest) (journal.Transaction, error)

	// SubmitTransaction queues the transaction for the processor and returns its request id
	SubmitTransaction(ctx context.Context, req *shared.TransactionRequest) (uuid.UUID, error)

	// ListTransactions reads the journal transactions with start <= time <= end
	ListTransactions(ctx context.Context, userID string, start, end time.Time) ([]journal.Transaction, error)

	// GetArchivedTransaction returns archive.ErrRecordNotFound if the transaction was never archived
	GetArchivedTransaction(ctx context.Context, transactionID uuid.UUID) (*archive.Record, error)

	// GetArchivedTransactions returns a page of the user's archive, newest first, and the total count
	GetArchivedTransactions(ctx context.Context, userID string, page, perPage int) ([]*archive.Record, int64, error)
}

// BookInfo describes a freshly opened book
type BookInfo struct {
	UserID    string
	Currency  string
	StartTime time.Time
}
