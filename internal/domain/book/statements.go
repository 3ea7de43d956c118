package book

import (
	"fmt"
	"time"

	"github.com/zeppelin-cash/internal/domain/account"
	"github.com/zeppelin-cash/internal/domain/journal"
	"github.com/zeppelin-cash/internal/domain/money"
	"github.com/zeppelin-cash/internal/domain/statement"
)

func (b *Book) groupBalance(t time.Time, group Group) (money.Money, error) {
	total, err := b.SumBalances(t, b.groups[group])
	if err != nil {
		return money.Money{}, fmt.Errorf("%s balance at %s: %w", group, t.Format(time.RFC3339), err)
	}
	return total, nil
}

// groupChange returns how much the balance of group moved between start and end.
func (b *Book) groupChange(start, end time.Time, group Group) (money.Money, error) {
	before, err := b.groupBalance(start, group)
	if err != nil {
		return money.Money{}, err
	}
	after, err := b.groupBalance(end, group)
	if err != nil {
		return money.Money{}, err
	}
	return after.Sub(before)
}

type statementLine struct {
	dst   *money.Money
	group Group
}

// BalanceSheet reports every balance sheet group as of t.
func (b *Book) BalanceSheet(t time.Time) (statement.BalanceSheet, error) {
	bs := statement.NewBalanceSheet(t, b.currency)
	lines := []statementLine{
		{&bs.Cash, GroupCash},
		{&bs.AccountsReceivable, GroupAccountsReceivable},
		{&bs.Inventory, GroupInventory},
		{&bs.PrepaidExpenses, GroupPrepaidExpenses},
		{&bs.OtherAssets, GroupOtherAssets},
		{&bs.FixedAssetsAtCost, GroupFixedAssetsAtCost},
		{&bs.AccumulatedDepreciation, GroupAccumulatedDepreciation},
		{&bs.AccountsPayable, GroupAccountsPayable},
		{&bs.AccruedExpenses, GroupAccruedExpenses},
		{&bs.CurrentPortionOfDebt, GroupCurrentPortionOfDebt},
		{&bs.IncomeTaxesPayable, GroupIncomeTaxesPayable},
		{&bs.LongTermDebt, GroupLongTermDebt},
		{&bs.CapitalStock, GroupCapitalStock},
		{&bs.RetainedEarnings, GroupRetainedEarnings},
	}
	for _, l := range lines {
		balance, err := b.groupBalance(t, l.group)
		if err != nil {
			return statement.BalanceSheet{}, fmt.Errorf("balance sheet: %w", err)
		}
		*l.dst = balance
	}
	return bs, nil
}

// CashFlowStatement reports how cash moved between start and end.
func (b *Book) CashFlowStatement(start, end time.Time) (statement.CashFlowStatement, error) {
	cf := statement.NewCashFlowStatement(start, end, b.currency)
	fail := func(err error) (statement.CashFlowStatement, error) {
		return statement.CashFlowStatement{}, fmt.Errorf("cash flow statement: %w", err)
	}

	var err error
	if cf.BeginningCashBalance, err = b.groupBalance(start, GroupCash); err != nil {
		return fail(err)
	}
	if cf.FixedAssetPurchases, err = b.groupChange(start, end, GroupFixedAssetsAtCost); err != nil {
		return fail(err)
	}
	longTerm, err := b.groupChange(start, end, GroupLongTermDebt)
	if err != nil {
		return fail(err)
	}
	current, err := b.groupChange(start, end, GroupCurrentPortionOfDebt)
	if err != nil {
		return fail(err)
	}
	cf.NetBorrowings = longTerm.MustAdd(current)
	if cf.SaleOfStock, err = b.groupChange(start, end, GroupCapitalStock); err != nil {
		return fail(err)
	}
	cf.IncomeTaxesPaid = b.IncomeTaxesPaid(start, end)
	cf.CashReceipts = b.CashReceipts(start, end)
	cf.CashDisbursements = b.CashDisbursements(start, end)
	return cf, nil
}

// IncomeStatement reports the movement of every income statement group between start and end.
func (b *Book) IncomeStatement(start, end time.Time) (statement.IncomeStatement, error) {
	is := statement.NewIncomeStatement(start, end, b.currency)
	lines := []statementLine{
		{&is.NetSales, GroupSales},
		{&is.CostOfGoodsSold, GroupCostOfGoodsSold},
		{&is.SalesAndMarketing, GroupSalesAndMarketing},
		{&is.ResearchAndDevelopment, GroupResearchAndDevelopment},
		{&is.GeneralAndAdministrative, GroupGeneralAndAdministrative},
		{&is.InterestIncome, GroupInterestIncome},
	}
	for _, l := range lines {
		change, err := b.groupChange(start, end, l.group)
		if err != nil {
			return statement.IncomeStatement{}, fmt.Errorf("income statement: %w", err)
		}
		*l.dst = change
	}
	is.IncomeTaxes = b.IncomeTaxesPaid(start, end)
	return is, nil
}

// FinancialStatement pushes pending transactions and builds all three statements. The
// balance sheet is taken at end.
func (b *Book) FinancialStatement(start, end time.Time) (statement.FinancialStatement, error) {
	if err := b.Push(); err != nil {
		return statement.FinancialStatement{}, err
	}
	bs, err := b.BalanceSheet(end)
	if err != nil {
		return statement.FinancialStatement{}, err
	}
	cf, err := b.CashFlowStatement(start, end)
	if err != nil {
		return statement.FinancialStatement{}, err
	}
	is, err := b.IncomeStatement(start, end)
	if err != nil {
		return statement.FinancialStatement{}, err
	}
	return statement.FinancialStatement{BalanceSheet: bs, CashFlowStatement: cf, IncomeStatement: is}, nil
}

// TransactionsBetween returns copies of the journal transactions with start <= time <= end.
func (b *Book) TransactionsBetween(start, end time.Time) []journal.Transaction {
	var out []journal.Transaction
	for _, tx := range b.journal.Transactions() {
		if tx.Time.Before(start) || tx.Time.After(end) {
			continue
		}
		out = append(out, tx)
	}
	return out
}

func (b *Book) membership(groups ...Group) map[account.ID]bool {
	set := make(map[account.ID]bool)
	for _, g := range groups {
		for _, id := range b.groups[g] {
			set[id] = true
		}
	}
	return set
}

// IncomeTaxesPaid sums the debits to income taxes payable between start and end.
func (b *Book) IncomeTaxesPaid(start, end time.Time) money.Money {
	payable := b.membership(GroupIncomeTaxesPayable)
	total := money.Zero(b.currency)
	for _, tx := range b.TransactionsBetween(start, end) {
		for _, e := range tx.Entries {
			if e.IsDebit && payable[e.AccountID] {
				total = total.MustAdd(e.Amount)
			}
		}
	}
	return total
}

// operatingCashFlows returns, per transaction between start and end, the cash it moved
// once capital, borrowing, tax and fixed asset flows are netted out. Debits count positive
// and credits negative.
func (b *Book) operatingCashFlows(start, end time.Time) []money.Money {
	cash := b.membership(GroupCash)
	financing := b.membership(capitalAndBorrowingGroups...)
	var flows []money.Money
	for _, tx := range b.TransactionsBetween(start, end) {
		flow := money.Zero(b.currency)
		for _, e := range tx.Entries {
			if !cash[e.AccountID] && !financing[e.AccountID] {
				continue
			}
			if e.IsDebit {
				flow = flow.MustAdd(e.Amount)
			} else {
				flow = flow.MustSub(e.Amount)
			}
		}
		flows = append(flows, flow)
	}
	return flows
}

// CashReceipts sums the operating cash inflows between start and end.
func (b *Book) CashReceipts(start, end time.Time) money.Money {
	total := money.Zero(b.currency)
	for _, flow := range b.operatingCashFlows(start, end) {
		if flow.IsPositive() {
			total = total.MustAdd(flow)
		}
	}
	return total
}

// CashDisbursements sums the operating cash outflows between start and end, as a positive amount.
func (b *Book) CashDisbursements(start, end time.Time) money.Money {
	total := money.Zero(b.currency)
	for _, flow := range b.operatingCashFlows(start, end) {
		if flow.IsNegative() {
			total = total.MustSub(flow)
		}
	}
	return total
}
