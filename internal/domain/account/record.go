package account

import (
	"fmt"
	"time"

	"github.com/zeppelin-cash/internal/domain/money"
)

// Record is the serializable form of an Account.
type Record struct {
	ID              ID          `json:"id"`
	Title           string      `json:"title"`
	IsAsset         bool        `json:"is_asset"`
	StartingBalance money.Money `json:"starting_balance"`
	StartingTime    time.Time   `json:"starting_time"`
	Debits          []Entry     `json:"debits"`
	Credits         []Entry     `json:"credits"`
}

// Record captures the account's full state.
func (a *Account) Record() Record {
	return Record{
		ID:              a.id,
		Title:           a.title,
		IsAsset:         a.isAsset,
		StartingBalance: a.startingBalance,
		StartingTime:    a.startingTime,
		Debits:          a.Debits(),
		Credits:         a.Credits(),
	}
}

// FromRecord rebuilds an account, replaying every entry through AddEntry so a
// corrupted record is rejected rather than loaded.
func FromRecord(r Record) (*Account, error) {
	a := New(r.ID, r.Title, r.IsAsset)
	a.SetStartingBalance(r.StartingTime, r.StartingBalance)
	for i, e := range r.Debits {
		if err := a.AddEntry(true, e); err != nil {
			return nil, fmt.Errorf("restore debit %d: %w", i, err)
		}
	}
	for i, e := range r.Credits {
		if err := a.AddEntry(false, e); err != nil {
			return nil, fmt.Errorf("restore credit %d: %w", i, err)
		}
	}
	return a, nil
}
