package account

import (
	"errors"
	"fmt"
	"time"

	"github.com/zeppelin-cash/internal/domain/money"
)

// Common errors
var (
	ErrEntryOutOfOrder    = errors.New("entry is earlier than the last entry on the same side")
	ErrBalanceBeforeStart = errors.New("cannot compute balance at time before account was created")
)

// DefaultStartingTime anchors accounts that never had a starting balance set.
var DefaultStartingTime = time.Date(2019, time.January, 1, 0, 0, 0, 0, time.UTC)

// ID identifies an account within a ledger.
type ID string

// Entry is a single timestamped amount on one side of an account.
type Entry struct {
	Time   time.Time   `json:"time"`
	Amount money.Money `json:"amount"`
}

// NewEntry returns an entry for the given time and amount.
func NewEntry(t time.Time, amount money.Money) Entry {
	return Entry{Time: t, Amount: amount}
}

// Account keeps separate, time-ordered debit and credit entry logs anchored at a
// starting balance. Debits raise the balance of asset accounts and credits raise
// the balance of everything else.
type Account struct {
	id              ID
	title           string
	isAsset         bool
	debits          []Entry
	credits         []Entry
	startingBalance money.Money
	startingTime    time.Time
}

// New creates an empty account opened at DefaultStartingTime with a zero USD balance.
func New(id ID, title string, isAsset bool) *Account {
	return &Account{
		id:              id,
		title:           title,
		isAsset:         isAsset,
		startingBalance: money.Zero(money.USD()),
		startingTime:    DefaultStartingTime,
	}
}

func (a *Account) ID() ID                       { return a.id }
func (a *Account) Title() string                { return a.title }
func (a *Account) IsAsset() bool                { return a.isAsset }
func (a *Account) StartingTime() time.Time      { return a.startingTime }
func (a *Account) StartingBalance() money.Money { return a.startingBalance }

// Debits returns a copy of the debit log.
func (a *Account) Debits() []Entry { return append([]Entry(nil), a.debits...) }

// Credits returns a copy of the credit log.
func (a *Account) Credits() []Entry { return append([]Entry(nil), a.credits...) }

// SetStartingBalance overwrites the balance anchor. Entries already appended are not checked.
func (a *Account) SetStartingBalance(t time.Time, amount money.Money) {
	a.startingTime = t
	a.startingBalance = amount
}

// CanAddEntry reports whether AddEntry would accept the entry, without appending it.
func (a *Account) CanAddEntry(isDebit bool, entry Entry) error {
	if !entry.Amount.SameCurrency(a.startingBalance) {
		return fmt.Errorf("account %s holds %s, entry is %s: %w",
			a.id, a.startingBalance.Currency().Code, entry.Amount.Currency().Code, money.ErrCurrencyMismatch)
	}
	side := a.credits
	if isDebit {
		side = a.debits
	}
	if n := len(side); n > 0 && entry.Time.Before(side[n-1].Time) {
		return fmt.Errorf("account %s at %s: %w", a.id, entry.Time.Format(time.RFC3339Nano), ErrEntryOutOfOrder)
	}
	return nil
}

// AddEntry appends the entry to the debit or credit log.
func (a *Account) AddEntry(isDebit bool, entry Entry) error {
	if err := a.CanAddEntry(isDebit, entry); err != nil {
		return err
	}
	if isDebit {
		a.debits = append(a.debits, entry)
	} else {
		a.credits = append(a.credits, entry)
	}
	return nil
}

// signed applies the account's sign: +1 for assets, -1 otherwise.
func (a *Account) signed(amount money.Money) money.Money {
	if a.isAsset {
		return amount
	}
	return amount.Neg()
}

// total sums the signed entries accepted by include on top of the starting balance.
// Entries share the starting balance currency, which AddEntry enforces.
func (a *Account) total(include func(Entry) bool) money.Money {
	sum := a.startingBalance
	for _, e := range a.debits {
		if include(e) {
			sum = sum.MustAdd(a.signed(e.Amount))
		}
	}
	for _, e := range a.credits {
		if include(e) {
			sum = sum.MustSub(a.signed(e.Amount))
		}
	}
	return sum
}

// Balance returns the balance including every entry.
func (a *Account) Balance() money.Money {
	return a.total(func(Entry) bool { return true })
}

// BalanceAsOf returns the starting balance plus every entry strictly earlier than t.
func (a *Account) BalanceAsOf(t time.Time) (money.Money, error) {
	if t.Before(a.startingTime) {
		return money.Money{}, fmt.Errorf("account %s: %w", a.id, ErrBalanceBeforeStart)
	}
	return a.total(func(e Entry) bool { return e.Time.Before(t) }), nil
}

// Metadata summarizes the account at ts. Balance is nil when it cannot be computed.
func (a *Account) Metadata(ts time.Time) Metadata {
	md := Metadata{
		AccountID:        a.id,
		Title:            a.title,
		BalanceTimestamp: ts,
		IsAsset:          a.isAsset,
	}
	if balance, err := a.BalanceAsOf(ts); err == nil {
		md.Balance = &balance
	}
	return md
}

// Clone returns a deep copy.
func (a *Account) Clone() *Account {
	c := *a
	c.debits = a.Debits()
	c.credits = a.Credits()
	return &c
}
