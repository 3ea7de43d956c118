package journal

import (
	"errors"
	"fmt"
	"time"
)

// Common errors
var (
	ErrTransactionOutOfOrder = errors.New("invalid transaction time: earlier than the last journal transaction")
	ErrPushedCountExceeded   = errors.New("the number pushed is greater than the number of un-pushed transactions")
)

// Journal is an append-only, time-ordered log of transactions. The pushed cursor
// counts how many of them have been propagated to the ledger.
type Journal struct {
	transactions []Transaction
	pushed       int
}

// New returns an empty journal.
func New() *Journal {
	return &Journal{}
}

// Restore rebuilds a journal by re-adding every transaction and marking the first
// pushed of them as propagated.
func Restore(transactions []Transaction, pushed int) (*Journal, error) {
	j := New()
	for i, tx := range transactions {
		if err := j.AddTransaction(tx); err != nil {
			return nil, fmt.Errorf("restore transaction %d: %w", i, err)
		}
	}
	if err := j.HavePushed(pushed); err != nil {
		return nil, fmt.Errorf("restore cursor: %w", err)
	}
	return j, nil
}

// CanAddTransaction reports the error AddTransaction would return for tx, without
// appending it.
func (j *Journal) CanAddTransaction(tx Transaction) error {
	if err := tx.Validate(); err != nil {
		return err
	}
	if n := len(j.transactions); n > 0 && tx.Time.Before(j.transactions[n-1].Time) {
		return fmt.Errorf("%w: %s before %s", ErrTransactionOutOfOrder,
			tx.Time.Format(time.RFC3339Nano), j.transactions[n-1].Time.Format(time.RFC3339Nano))
	}
	return nil
}

// AddTransaction appends tx. On failure the journal is left unchanged.
func (j *Journal) AddTransaction(tx Transaction) error {
	if err := j.CanAddTransaction(tx); err != nil {
		return err
	}
	j.transactions = append(j.transactions, tx.Clone())
	return nil
}

// IsValid re-validates every stored transaction.
func (j *Journal) IsValid() bool {
	for _, tx := range j.transactions {
		if !tx.IsValid() {
			return false
		}
	}
	return true
}

// UnPushedTransactions returns a copy of the transactions past the cursor.
func (j *Journal) UnPushedTransactions() []Transaction {
	return cloneAll(j.transactions[j.pushed:])
}

// HavePushed advances the cursor by n.
func (j *Journal) HavePushed(n int) error {
	if n < 0 || n > len(j.transactions)-j.pushed {
		return fmt.Errorf("%w: %d > %d", ErrPushedCountExceeded, n, len(j.transactions)-j.pushed)
	}
	j.pushed += n
	return nil
}

// Transactions returns a copy of every stored transaction.
func (j *Journal) Transactions() []Transaction {
	return cloneAll(j.transactions)
}

// Len returns the number of stored transactions.
func (j *Journal) Len() int { return len(j.transactions) }

// Pushed returns the cursor position.
func (j *Journal) Pushed() int { return j.pushed }

func cloneAll(txs []Transaction) []Transaction {
	out := make([]Transaction, len(txs))
	for i, tx := range txs {
		out[i] = tx.Clone()
	}
	return out
}

// Clone returns a deep copy.
func (j *Journal) Clone() *Journal {
	return &Journal{transactions: cloneAll(j.transactions), pushed: j.pushed}
}
