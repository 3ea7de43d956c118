// Package book ties a journal and a ledger together into the complete books of a firm.
//
// A Book is not safe for concurrent use. Callers that share one must serialize
// AddTransaction, Push and every query behind a single lock.
package book

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/zeppelin-cash/internal/domain/account"
	"github.com/zeppelin-cash/internal/domain/journal"
	"github.com/zeppelin-cash/internal/domain/ledger"
	"github.com/zeppelin-cash/internal/domain/money"
)

// ErrPropagation is returned by Push when a staged transaction cannot reach the ledger.
// The transaction stays staged and later pushes retry it.
var ErrPropagation = errors.New("transaction could not be propagated to the ledger")

// ErrUnknownGroup is returned when an account is filed under a group the book does not know.
var ErrUnknownGroup = errors.New("unknown account group")

// Book owns the journal and ledger of one firm, and the statement groupings of its accounts.
type Book struct {
	ledger    *ledger.Ledger
	journal   *journal.Journal
	currency  money.Currency
	startTime time.Time
	nextID    int
	groups    map[Group][]account.ID
}

// New returns a book opened at start whose default accounts hold a zero balance in currency.
func New(start time.Time, currency money.Currency) *Book {
	b := &Book{
		journal:   journal.New(),
		currency:  currency,
		startTime: start,
		nextID:    1,
		groups:    make(map[Group][]account.ID, len(defaultAccounts)+len(incomeStatementGroups)),
	}
	b.ledger, _ = ledger.New()
	for _, d := range defaultAccounts {
		b.register(d.id, d.title, d.isAsset, d.group)
	}
	for _, g := range incomeStatementGroups {
		b.groups[g] = nil
	}
	return b
}

func (b *Book) Currency() money.Currency { return b.currency }
func (b *Book) StartTime() time.Time     { return b.startTime }

// IsValid audits every transaction in the journal.
func (b *Book) IsValid() bool {
	return b.journal.IsValid()
}

// register opens an account at the book's start time and files it under group.
func (b *Book) register(id account.ID, title string, isAsset bool, group Group) {
	acc := account.New(id, title, isAsset)
	acc.SetStartingBalance(b.startTime, money.Zero(b.currency))
	// Ids come from the fixed defaults or the private counter, so they never collide.
	_ = b.ledger.AddAccount(acc)
	b.groups[group] = append(b.groups[group], id)
}

func (b *Book) allocateID() account.ID {
	for {
		id := account.ID(strconv.Itoa(b.nextID))
		b.nextID++
		if !b.ledger.Has(id) {
			return id
		}
	}
}

func (b *Book) addAccount(group Group, name string, isAsset bool) account.ID {
	id := b.allocateID()
	b.register(id, name, isAsset, group)
	return id
}

// AddAccount opens a new account and files it under the cash group.
func (b *Book) AddAccount(name string, isAsset bool) account.ID {
	return b.addAccount(GroupCash, name, isAsset)
}

// AddGroupAccount opens a new account under any known group.
func (b *Book) AddGroupAccount(group Group, name string, isAsset bool) (account.ID, error) {
	if !group.Valid() {
		return "", fmt.Errorf("%w %q", ErrUnknownGroup, group)
	}
	return b.addAccount(group, name, isAsset), nil
}

func (b *Book) AddCashAccount(name string) account.ID {
	return b.addAccount(GroupCash, name, true)
}

func (b *Book) AddSalesAccount(name string) account.ID {
	return b.addAccount(GroupSales, name, false)
}

func (b *Book) AddCostOfGoodsSoldAccount(name string) account.ID {
	return b.addAccount(GroupCostOfGoodsSold, name, true)
}

func (b *Book) AddSalesAndMarketingAccount(name string) account.ID {
	return b.addAccount(GroupSalesAndMarketing, name, true)
}

func (b *Book) AddResearchAndDevelopmentAccount(name string) account.ID {
	return b.addAccount(GroupResearchAndDevelopment, name, true)
}

func (b *Book) AddGeneralAndAdministrativeAccount(name string) account.ID {
	return b.addAccount(GroupGeneralAndAdministrative, name, true)
}

func (b *Book) AddInterestIncomeAccount(name string) account.ID {
	return b.addAccount(GroupInterestIncome, name, false)
}

// GroupAccounts returns the ids filed under group.
func (b *Book) GroupAccounts(group Group) []account.ID {
	return append([]account.ID(nil), b.groups[group]...)
}

// Account returns a copy of the account.
func (b *Book) Account(id account.ID) (*account.Account, error) {
	return b.ledger.Account(id)
}

// ListAccounts pushes pending transactions, then summarizes every account at ts.
func (b *Book) ListAccounts(ts time.Time) ([]account.Metadata, error) {
	if err := b.Push(); err != nil {
		return nil, err
	}
	return b.ledger.ListAccounts(ts), nil
}

// BalanceAsOf returns the balance of one account from entries strictly before t.
func (b *Book) BalanceAsOf(t time.Time, id account.ID) (money.Money, error) {
	return b.ledger.BalanceAsOf(t, id)
}

// Transactions returns a copy of every journal transaction.
func (b *Book) Transactions() []journal.Transaction {
	return b.journal.Transactions()
}

// Pending returns how many staged transactions have not reached the ledger yet.
func (b *Book) Pending() int {
	return b.journal.Len() - b.journal.Pushed()
}

// Revision grows with every account opened, transaction staged and transaction
// propagated. Two equal revisions of the same book hold the same state.
func (b *Book) Revision() int {
	return b.ledger.Len() + b.journal.Len() + b.journal.Pushed()
}

// checkPropagation verifies that every entry of tx would be accepted by the ledger.
func (b *Book) checkPropagation(tx journal.Transaction) error {
	for _, e := range tx.Entries {
		if err := b.ledger.CanAddEntry(e.AccountID, e.IsDebit, account.NewEntry(tx.Time, e.Amount)); err != nil {
			return err
		}
	}
	return nil
}

// AddTransaction validates tx, stages it in the journal and pushes it to the ledger.
// Earlier staged transactions are pushed first, and tx is not staged if any of them
// fails. A rejected transaction never enters the journal.
func (b *Book) AddTransaction(tx journal.Transaction) error {
	if err := b.Push(); err != nil {
		return err
	}
	if err := b.journal.CanAddTransaction(tx); err != nil {
		return err
	}
	if err := b.checkPropagation(tx); err != nil {
		return err
	}
	if err := b.journal.AddTransaction(tx); err != nil {
		return err
	}
	return b.Push()
}

// Push propagates every staged transaction to the ledger, in journal order. Each
// transaction is checked in full before any of its entries is appended. On failure the
// cursor only moves past the transactions that were propagated.
func (b *Book) Push() error {
	pending := b.journal.UnPushedTransactions()
	for i, tx := range pending {
		if err := b.checkPropagation(tx); err != nil {
			if cursorErr := b.journal.HavePushed(i); cursorErr != nil {
				return errors.Join(fmt.Errorf("%w: transaction %s: %w", ErrPropagation, tx.ID, err), cursorErr)
			}
			return fmt.Errorf("%w: transaction %s: %w", ErrPropagation, tx.ID, err)
		}
		for _, e := range tx.Entries {
			if err := b.ledger.AddEntry(e.AccountID, e.IsDebit, account.NewEntry(tx.Time, e.Amount)); err != nil {
				// Entries of one transaction share a time, so a checked transaction cannot fail here.
				panic(fmt.Sprintf("book: checked transaction %s failed to propagate: %v", tx.ID, err))
			}
		}
	}
	return b.journal.HavePushed(len(pending))
}

// SumBalances adds the balances as of t of the given accounts. It stops at the first
// failure and returns the partial sum together with the error.
func (b *Book) SumBalances(t time.Time, ids []account.ID) (money.Money, error) {
	total := money.Zero(b.currency)
	for _, id := range ids {
		balance, err := b.ledger.BalanceAsOf(t, id)
		if err != nil {
			return total, err
		}
		sum, err := total.Add(balance)
		if err != nil {
			return total, err
		}
		total = sum
	}
	return total, nil
}

// Clone returns a deep copy that shares no state with b.
func (b *Book) Clone() *Book {
	c := *b
	c.ledger = b.ledger.Clone()
	c.journal = b.journal.Clone()
	c.groups = make(map[Group][]account.ID, len(b.groups))
	for g, ids := range b.groups {
		c.groups[g] = append([]account.ID(nil), ids...)
	}
	return &c
}
