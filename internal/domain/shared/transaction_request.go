package shared

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/zeppelin-cash/internal/domain/account"
	"github.com/zeppelin-cash/internal/domain/journal"
	"github.com/zeppelin-cash/internal/domain/money"
)

var (
	ErrInvalidAmount   = errors.New("invalid amount")
	ErrInvalidCurrency = errors.New("invalid currency")
	ErrMissingUserID   = errors.New("missing user id")
)

// EntryRequest is one side of a submitted transaction, amounts in major units
type EntryRequest struct {
	AccountID string `json:"account_id"`
	IsDebit   bool   `json:"is_debit"`
	Amount    string `json:"amount"`
	Currency  string `json:"currency"`
}

// TransactionRequest defines a Kafka message for asynchronous transaction processing
type TransactionRequest struct {
	RequestID     uuid.UUID      `json:"request_id"`
	UserID        string         `json:"user_id"`
	Time          time.Time      `json:"time"`
	Description   string         `json:"description"`
	Entries       []EntryRequest `json:"entries"`
	CorrelationID string         `json:"correlation_id"`
	Timestamp     time.Time      `json:"timestamp"`
}

// ToJournalTransaction parses the entries into a journal transaction carrying RequestID as
// its id. Balance and currency rules are left to the book.
func (r TransactionRequest) ToJournalTransaction() (journal.Transaction, error) {
	if r.UserID == "" {
		return journal.Transaction{}, ErrMissingUserID
	}
	entries := make([]journal.Entry, 0, len(r.Entries))
	for i, e := range r.Entries {
		if e.Currency == "" {
			return journal.Transaction{}, fmt.Errorf("entry %d: %w", i, ErrInvalidCurrency)
		}
		amount, err := money.Parse(e.Amount, money.Lookup(e.Currency))
		if err != nil {
			return journal.Transaction{}, fmt.Errorf("entry %d: %w: %v", i, ErrInvalidAmount, err)
		}
		if amount.IsNegative() {
			return journal.Transaction{}, fmt.Errorf("entry %d: %w: negative amount", i, ErrInvalidAmount)
		}
		entries = append(entries, journal.Entry{
			AccountID: account.ID(e.AccountID),
			IsDebit:   e.IsDebit,
			Amount:    amount,
		})
	}
	tx := journal.NewTransaction(r.Time, r.Description, entries...)
	if r.RequestID != uuid.Nil {
		tx.ID = r.RequestID
	}
	return tx, nil
}
