package book

import (
	"fmt"
	"time"

	"github.com/zeppelin-cash/internal/domain/account"
	"github.com/zeppelin-cash/internal/domain/journal"
	"github.com/zeppelin-cash/internal/domain/ledger"
	"github.com/zeppelin-cash/internal/domain/money"
)

// Snapshot is the complete serializable state of a book.
type Snapshot struct {
	StartTime     time.Time              `json:"start_time"`
	Currency      money.Currency         `json:"currency"`
	NextAccountID int                    `json:"next_account_id"`
	Accounts      []account.Record       `json:"accounts"`
	Groups        map[Group][]account.ID `json:"groups"`
	Transactions  []journal.Transaction  `json:"transactions"`
	Pushed        int                    `json:"pushed"`
}

// Snapshot captures the book's full state.
func (b *Book) Snapshot() Snapshot {
	accounts := b.ledger.Accounts()
	records := make([]account.Record, 0, len(accounts))
	for _, acc := range accounts {
		records = append(records, acc.Record())
	}
	groups := make(map[Group][]account.ID, len(b.groups))
	for g, ids := range b.groups {
		groups[g] = append([]account.ID{}, ids...)
	}
	return Snapshot{
		StartTime:     b.startTime,
		Currency:      b.currency,
		NextAccountID: b.nextID,
		Accounts:      records,
		Groups:        groups,
		Transactions:  b.journal.Transactions(),
		Pushed:        b.journal.Pushed(),
	}
}

// FromSnapshot rebuilds a book. Accounts and the journal are replayed through their
// own validation, and every group and transaction must reference a registered account
// in the book's currency. Transactions not yet pushed must still be accepted by the
// ledger.
func FromSnapshot(s Snapshot) (*Book, error) {
	b := &Book{
		currency:  s.Currency,
		startTime: s.StartTime,
		nextID:    s.NextAccountID,
		groups:    make(map[Group][]account.ID, len(s.Groups)),
	}
	if b.nextID < 1 {
		b.nextID = 1
	}

	accounts := make([]*account.Account, 0, len(s.Accounts))
	for _, r := range s.Accounts {
		acc, err := account.FromRecord(r)
		if err != nil {
			return nil, fmt.Errorf("snapshot account %s: %w", r.ID, err)
		}
		if !acc.StartingBalance().Currency().Equal(s.Currency) {
			return nil, fmt.Errorf("snapshot account %s: %w", r.ID, money.ErrCurrencyMismatch)
		}
		accounts = append(accounts, acc)
	}
	l, err := ledger.New(accounts...)
	if err != nil {
		return nil, fmt.Errorf("snapshot ledger: %w", err)
	}
	b.ledger = l

	for g, ids := range s.Groups {
		for _, id := range ids {
			if !l.Has(id) {
				return nil, fmt.Errorf("snapshot group %s: %w", g, ledger.ErrAccountNotFound{AccountID: id})
			}
		}
		b.groups[g] = append([]account.ID(nil), ids...)
	}

	for _, tx := range s.Transactions {
		for _, e := range tx.Entries {
			if !l.Has(e.AccountID) {
				return nil, fmt.Errorf("snapshot transaction %s: %w", tx.ID, ledger.ErrAccountNotFound{AccountID: e.AccountID})
			}
			if !e.Amount.Currency().Equal(s.Currency) {
				return nil, fmt.Errorf("snapshot transaction %s: %w", tx.ID, money.ErrCurrencyMismatch)
			}
		}
	}
	j, err := journal.Restore(s.Transactions, s.Pushed)
	if err != nil {
		return nil, fmt.Errorf("snapshot journal: %w", err)
	}
	b.journal = j

	// Pending transactions are time ordered, so each one can be checked against the
	// restored ledger on its own: those before it only append entries no later than it.
	for _, tx := range j.UnPushedTransactions() {
		if err := b.checkPropagation(tx); err != nil {
			return nil, fmt.Errorf("snapshot pending transaction %s: %w: %w", tx.ID, ErrPropagation, err)
		}
	}
	return b, nil
}
