// Package journal stages validated transactions before they are propagated to the ledger.
package journal

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/zeppelin-cash/internal/domain/account"
	"github.com/zeppelin-cash/internal/domain/money"
)

// ErrInvalidTransaction is matched by every transaction validation failure.
var ErrInvalidTransaction = errors.New("invalid transaction")

// Validation failures. Each one matches ErrInvalidTransaction.
var (
	ErrMixedCurrencies = fmt.Errorf("%w: entries use more than one currency", ErrInvalidTransaction)
	ErrMissingDebit    = fmt.Errorf("%w: no debit entry", ErrInvalidTransaction)
	ErrMissingCredit   = fmt.Errorf("%w: no credit entry", ErrInvalidTransaction)
	ErrUnbalanced      = fmt.Errorf("%w: debits do not equal credits", ErrInvalidTransaction)
)

// Entry references an account by id and carries one side of a transaction.
type Entry struct {
	AccountID account.ID  `json:"account_id"`
	IsDebit   bool        `json:"is_debit"`
	Amount    money.Money `json:"amount"`
}

// Debit returns a debit entry.
func Debit(id account.ID, amount money.Money) Entry {
	return Entry{AccountID: id, IsDebit: true, Amount: amount}
}

// Credit returns a credit entry.
func Credit(id account.ID, amount money.Money) Entry {
	return Entry{AccountID: id, IsDebit: false, Amount: amount}
}

// Transaction is a dated, described set of entries whose debits and credits balance.
type Transaction struct {
	ID          uuid.UUID `json:"id"`
	Time        time.Time `json:"time"`
	Description string    `json:"description"`
	Entries     []Entry   `json:"entries"`
}

// NewTransaction returns a transaction with a fresh id.
func NewTransaction(t time.Time, description string, entries ...Entry) Transaction {
	return Transaction{ID: uuid.New(), Time: t, Description: description, Entries: entries}
}

// Validate checks that the entries share one currency, that both sides are present
// and that the debit total equals the credit total. No entries at all is valid.
func (t Transaction) Validate() error {
	if len(t.Entries) == 0 {
		return nil
	}
	currency := t.Entries[0].Amount.Currency()
	debits, credits := money.Zero(currency), money.Zero(currency)
	var numDebits, numCredits int
	for _, e := range t.Entries {
		if !e.Amount.Currency().Equal(currency) {
			return ErrMixedCurrencies
		}
		if e.IsDebit {
			debits = debits.MustAdd(e.Amount)
			numDebits++
		} else {
			credits = credits.MustAdd(e.Amount)
			numCredits++
		}
	}
	switch {
	case numDebits == 0:
		return ErrMissingDebit
	case numCredits == 0:
		return ErrMissingCredit
	case !debits.Quantity().Equal(credits.Quantity()):
		return fmt.Errorf("%w (debits %s, credits %s)", ErrUnbalanced, debits, credits)
	}
	return nil
}

// IsValid reports whether Validate succeeds.
func (t Transaction) IsValid() bool {
	return t.Validate() == nil
}

// Clone returns a copy that shares nothing mutable with t.
func (t Transaction) Clone() Transaction {
	t.Entries = append([]Entry(nil), t.Entries...)
	return t
}
