// Package ledger holds the registry of accounts that journal transactions are propagated into.
package ledger

import (
	"time"

	"github.com/zeppelin-cash/internal/domain/account"
	"github.com/zeppelin-cash/internal/domain/money"
)

// ErrAccountNotFound indicates a lookup of an unregistered account id
type ErrAccountNotFound struct {
	AccountID account.ID
}

func (e ErrAccountNotFound) Error() string {
	return "account not found: " + string(e.AccountID)
}

// Is implements the errors.Is interface for ErrAccountNotFound
func (e ErrAccountNotFound) Is(target error) bool {
	t, ok := target.(ErrAccountNotFound)
	if !ok {
		return false
	}
	// An empty target id matches any ErrAccountNotFound
	return t.AccountID == "" || e.AccountID == t.AccountID
}

// ErrDuplicateAccount indicates an account id collision on registration
type ErrDuplicateAccount struct {
	AccountID account.ID
}

func (e ErrDuplicateAccount) Error() string {
	return "account id already present: " + string(e.AccountID)
}

// Is implements the errors.Is interface for ErrDuplicateAccount
func (e ErrDuplicateAccount) Is(target error) bool {
	t, ok := target.(ErrDuplicateAccount)
	if !ok {
		return false
	}
	return t.AccountID == "" || e.AccountID == t.AccountID
}

// Ledger maps account ids to accounts, preserving registration order.
type Ledger struct {
	accounts map[account.ID]*account.Account
	order    []account.ID
}

// New returns a ledger holding the given accounts. Ids must be unique.
func New(accounts ...*account.Account) (*Ledger, error) {
	l := &Ledger{accounts: make(map[account.ID]*account.Account, len(accounts))}
	for _, acc := range accounts {
		if err := l.AddAccount(acc); err != nil {
			return nil, err
		}
	}
	return l, nil
}

// AddAccount registers acc. The ledger takes ownership of it.
func (l *Ledger) AddAccount(acc *account.Account) error {
	if _, exists := l.accounts[acc.ID()]; exists {
		return ErrDuplicateAccount{AccountID: acc.ID()}
	}
	l.accounts[acc.ID()] = acc
	l.order = append(l.order, acc.ID())
	return nil
}

func (l *Ledger) lookup(id account.ID) (*account.Account, error) {
	acc, ok := l.accounts[id]
	if !ok {
		return nil, ErrAccountNotFound{AccountID: id}
	}
	return acc, nil
}

// CanAddEntry reports whether AddEntry would succeed, without changing anything.
func (l *Ledger) CanAddEntry(id account.ID, isDebit bool, entry account.Entry) error {
	acc, err := l.lookup(id)
	if err != nil {
		return err
	}
	return acc.CanAddEntry(isDebit, entry)
}

// AddEntry appends entry to the debit or credit side of the account.
func (l *Ledger) AddEntry(id account.ID, isDebit bool, entry account.Entry) error {
	acc, err := l.lookup(id)
	if err != nil {
		return err
	}
	return acc.AddEntry(isDebit, entry)
}

// BalanceAsOf returns the balance of the account from entries strictly before t.
func (l *Ledger) BalanceAsOf(t time.Time, id account.ID) (money.Money, error) {
	acc, err := l.lookup(id)
	if err != nil {
		return money.Money{}, err
	}
	return acc.BalanceAsOf(t)
}

// Account returns a copy of the account.
func (l *Ledger) Account(id account.ID) (*account.Account, error) {
	acc, err := l.lookup(id)
	if err != nil {
		return nil, err
	}
	return acc.Clone(), nil
}

// Has reports whether the id is registered.
func (l *Ledger) Has(id account.ID) bool {
	_, ok := l.accounts[id]
	return ok
}

// ListAccounts returns one metadata summary per account, in registration order.
func (l *Ledger) ListAccounts(ts time.Time) []account.Metadata {
	out := make([]account.Metadata, 0, len(l.order))
	for _, id := range l.order {
		out = append(out, l.accounts[id].Metadata(ts))
	}
	return out
}

// Accounts returns the registered accounts in registration order. The pointers are
// the ledger's own and must not be mutated.
func (l *Ledger) Accounts() []*account.Account {
	out := make([]*account.Account, 0, len(l.order))
	for _, id := range l.order {
		out = append(out, l.accounts[id])
	}
	return out
}

// Len returns the number of registered accounts.
func (l *Ledger) Len() int {
	return len(l.order)
}

// Clone returns a deep copy.
func (l *Ledger) Clone() *Ledger {
	c := &Ledger{
		accounts: make(map[account.ID]*account.Account, len(l.accounts)),
		order:    append([]account.ID(nil), l.order...),
	}
	for id, acc := range l.accounts {
		c.accounts[id] = acc.Clone()
	}
	return c
}
