// Package archive describes the long-term store of propagated journal transactions.
package archive

import (
	"time"

	"github.com/google/uuid"

	"github.com/zeppelin-cash/internal/domain/journal"
)

// Entry is one side of an archived transaction, flattened for document storage.
type Entry struct {
	AccountID string `json:"account_id" bson:"account_id"`
	IsDebit   bool   `json:"is_debit" bson:"is_debit"`
	Amount    string `json:"amount" bson:"amount"` // exact decimal in major units
	Currency  string `json:"currency" bson:"currency"`
}

// Record is a journal transaction that reached a user's ledger
type Record struct {
	UserID        string     `json:"user_id" bson:"user_id"`
	TransactionID uuid.UUID  `json:"transaction_id" bson:"transaction_id"`
	Time          time.Time  `json:"time" bson:"time"`
	Description   string     `json:"description" bson:"description"`
	Entries       []Entry    `json:"entries" bson:"entries"`
	CorrelationID string     `json:"correlation_id,omitempty" bson:"correlation_id,omitempty"`
	CreatedAt     time.Time  `json:"created_at" bson:"created_at"`
	ArchivedAt    *time.Time `json:"archived_at,omitempty" bson:"archived_at,omitempty"`
}

// NewRecord flattens tx for the given user.
func NewRecord(userID string, tx journal.Transaction, correlationID string) *Record {
	entries := make([]Entry, 0, len(tx.Entries))
	for _, e := range tx.Entries {
		entries = append(entries, Entry{
			AccountID: string(e.AccountID),
			IsDebit:   e.IsDebit,
			Amount:    e.Amount.Quantity().String(),
			Currency:  e.Amount.Currency().Code,
		})
	}
	return &Record{
		UserID:        userID,
		TransactionID: tx.ID,
		Time:          tx.Time,
		Description:   tx.Description,
		Entries:       entries,
		CorrelationID: correlationID,
		CreatedAt:     time.Now().UTC(),
	}
}
