// Package statement implements the financial statements derived from a book.
// Every field of a statement shares the statement's currency.
package statement

import (
	"fmt"
	"time"

	"github.com/zeppelin-cash/internal/domain/money"
)

// BalanceSheet reports what a firm owns and owes at a point in time.
type BalanceSheet struct {
	Time     time.Time      `json:"time"`
	Currency money.Currency `json:"currency"`

	Cash                    money.Money `json:"cash"`
	AccountsReceivable      money.Money `json:"accounts_receivable"`
	Inventory               money.Money `json:"inventory"`
	PrepaidExpenses         money.Money `json:"prepaid_expenses"`
	OtherAssets             money.Money `json:"other_assets"`
	FixedAssetsAtCost       money.Money `json:"fixed_assets_at_cost"`
	AccumulatedDepreciation money.Money `json:"accumulated_depreciation"`

	AccountsPayable      money.Money `json:"accounts_payable"`
	AccruedExpenses      money.Money `json:"accrued_expenses"`
	CurrentPortionOfDebt money.Money `json:"current_portion_of_debt"`
	IncomeTaxesPayable   money.Money `json:"income_taxes_payable"`
	LongTermDebt         money.Money `json:"long_term_debt"`
	CapitalStock         money.Money `json:"capital_stock"`
	RetainedEarnings     money.Money `json:"retained_earnings"`
}

// NewBalanceSheet returns a zeroed balance sheet.
func NewBalanceSheet(t time.Time, currency money.Currency) BalanceSheet {
	z := money.Zero(currency)
	return BalanceSheet{
		Time: t, Currency: currency,
		Cash: z, AccountsReceivable: z, Inventory: z, PrepaidExpenses: z, OtherAssets: z,
		FixedAssetsAtCost: z, AccumulatedDepreciation: z,
		AccountsPayable: z, AccruedExpenses: z, CurrentPortionOfDebt: z, IncomeTaxesPayable: z,
		LongTermDebt: z, CapitalStock: z, RetainedEarnings: z,
	}
}

// CurrentAssets is cash, receivables, inventory and prepaid expenses.
func (b BalanceSheet) CurrentAssets() money.Money {
	return sum(b.Cash, b.AccountsReceivable, b.Inventory, b.PrepaidExpenses)
}

// NetFixedAssets is fixed assets at cost less accumulated depreciation.
func (b BalanceSheet) NetFixedAssets() money.Money {
	return b.FixedAssetsAtCost.MustSub(b.AccumulatedDepreciation)
}

func (b BalanceSheet) TotalAssets() money.Money {
	return sum(b.CurrentAssets(), b.OtherAssets, b.NetFixedAssets())
}

// CurrentLiabilities are the obligations due within a year of the sheet's date.
func (b BalanceSheet) CurrentLiabilities() money.Money {
	return sum(b.AccountsPayable, b.AccruedExpenses, b.CurrentPortionOfDebt, b.IncomeTaxesPayable)
}

func (b BalanceSheet) ShareholdersEquity() money.Money {
	return b.CapitalStock.MustAdd(b.RetainedEarnings)
}

func (b BalanceSheet) TotalLiabilitiesAndEquity() money.Money {
	return sum(b.CurrentLiabilities(), b.LongTermDebt, b.ShareholdersEquity())
}

// CapitalEmployed is current assets less current liabilities.
func (b BalanceSheet) CapitalEmployed() money.Money {
	return b.CurrentAssets().MustSub(b.CurrentLiabilities())
}

// Add sums two balance sheets field by field. The result keeps b's time.
func (b BalanceSheet) Add(other BalanceSheet) (BalanceSheet, error) {
	if !b.Currency.Equal(other.Currency) {
		return BalanceSheet{}, fmt.Errorf("balance sheet: %w", money.ErrCurrencyMismatch)
	}
	return BalanceSheet{
		Time:                    b.Time,
		Currency:                b.Currency,
		Cash:                    b.Cash.MustAdd(other.Cash),
		AccountsReceivable:      b.AccountsReceivable.MustAdd(other.AccountsReceivable),
		Inventory:               b.Inventory.MustAdd(other.Inventory),
		PrepaidExpenses:         b.PrepaidExpenses.MustAdd(other.PrepaidExpenses),
		OtherAssets:             b.OtherAssets.MustAdd(other.OtherAssets),
		FixedAssetsAtCost:       b.FixedAssetsAtCost.MustAdd(other.FixedAssetsAtCost),
		AccumulatedDepreciation: b.AccumulatedDepreciation.MustAdd(other.AccumulatedDepreciation),
		AccountsPayable:         b.AccountsPayable.MustAdd(other.AccountsPayable),
		AccruedExpenses:         b.AccruedExpenses.MustAdd(other.AccruedExpenses),
		CurrentPortionOfDebt:    b.CurrentPortionOfDebt.MustAdd(other.CurrentPortionOfDebt),
		IncomeTaxesPayable:      b.IncomeTaxesPayable.MustAdd(other.IncomeTaxesPayable),
		LongTermDebt:            b.LongTermDebt.MustAdd(other.LongTermDebt),
		CapitalStock:            b.CapitalStock.MustAdd(other.CapitalStock),
		RetainedEarnings:        b.RetainedEarnings.MustAdd(other.RetainedEarnings),
	}, nil
}

func (b BalanceSheet) String() string {
	return render(
		"Balance Sheet as of "+b.Time.Format(time.RFC3339),
		section("Assets"),
		line("Cash", b.Cash),
		line("Accounts receivable", b.AccountsReceivable),
		line("Inventory", b.Inventory),
		line("Prepaid expenses", b.PrepaidExpenses),
		rule,
		line("Current assets", b.CurrentAssets()),
		line("Other assets", b.OtherAssets),
		line("Fixed assets at cost", b.FixedAssetsAtCost),
		line("Accumulated depreciation", b.AccumulatedDepreciation),
		rule,
		line("Net fixed assets", b.NetFixedAssets()),
		rule,
		line("Total assets", b.TotalAssets()),
		section("Liabilities"),
		line("Accounts payable", b.AccountsPayable),
		line("Accrued expenses", b.AccruedExpenses),
		line("Current portion of debt", b.CurrentPortionOfDebt),
		line("Income taxes payable", b.IncomeTaxesPayable),
		rule,
		line("Current liabilities", b.CurrentLiabilities()),
		line("Long-term debt", b.LongTermDebt),
		line("Capital stock", b.CapitalStock),
		line("Retained earnings", b.RetainedEarnings),
		rule,
		line("Shareholders equity", b.ShareholdersEquity()),
		line("Total liabilities & equity", b.TotalLiabilitiesAndEquity()),
	)
}
