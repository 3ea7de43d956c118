package book

import "github.com/zeppelin-cash/internal/domain/account"

// Group names the statement line an account contributes to.
type Group string

const (
	GroupCash                    Group = "cash"
	GroupAccountsReceivable      Group = "accounts-receivable"
	GroupInventory               Group = "inventory"
	GroupPrepaidExpenses         Group = "prepaid-expenses"
	GroupOtherAssets             Group = "other-assets"
	GroupFixedAssetsAtCost       Group = "fixed-assets-at-cost"
	GroupAccumulatedDepreciation Group = "accumulated-depreciation"

	GroupAccountsPayable      Group = "accounts-payable"
	GroupAccruedExpenses      Group = "accrued-expenses"
	GroupCurrentPortionOfDebt Group = "current-portion-of-debt"
	GroupIncomeTaxesPayable   Group = "income-taxes-payable"
	GroupLongTermDebt         Group = "long-term-debt"
	GroupCapitalStock         Group = "capital-stock"
	GroupRetainedEarnings     Group = "retained-earnings"

	GroupSales                    Group = "sales"
	GroupCostOfGoodsSold          Group = "cost-of-goods-sold"
	GroupSalesAndMarketing        Group = "sales-and-marketing"
	GroupResearchAndDevelopment   Group = "research-and-development"
	GroupInterestIncome           Group = "interest-income"
	GroupGeneralAndAdministrative Group = "general-and-administrative"
)

// Ids of the accounts every book starts with. Each one is the sole initial member of
// the group of the same name.
const (
	CashID                    account.ID = "cash"
	AccountsReceivableID      account.ID = "accounts-receivable"
	InventoryID               account.ID = "inventory"
	PrepaidExpensesID         account.ID = "prepaid-expenses"
	OtherAssetsID             account.ID = "other-assets"
	FixedAssetsAtCostID       account.ID = "fixed-assets-at-cost"
	AccumulatedDepreciationID account.ID = "accumulated-depreciation"
	AccountsPayableID         account.ID = "accounts-payable"
	AccruedExpensesID         account.ID = "accrued-expenses"
	CurrentPortionOfDebtID    account.ID = "current-portion-of-debt"
	IncomeTaxesPayableID      account.ID = "income-taxes-payable"
	LongTermDebtID            account.ID = "long-term-debt"
	CapitalStockID            account.ID = "capital-stock"
	RetainedEarningsID        account.ID = "retained-earnings"
)

type defaultAccount struct {
	id      account.ID
	title   string
	isAsset bool
	group   Group
}

// Accumulated depreciation is a contra asset: it is credit-normal so that
// NetFixedAssets = FixedAssetsAtCost - AccumulatedDepreciation keeps the books balanced.
var defaultAccounts = []defaultAccount{
	{CashID, "Cash", true, GroupCash},
	{AccountsReceivableID, "Accounts Receivable", true, GroupAccountsReceivable},
	{InventoryID, "Inventory", true, GroupInventory},
	{PrepaidExpensesID, "Prepaid Expenses", true, GroupPrepaidExpenses},
	{OtherAssetsID, "Other Assets", true, GroupOtherAssets},
	{FixedAssetsAtCostID, "Fixed Assets at Cost", true, GroupFixedAssetsAtCost},
	{AccumulatedDepreciationID, "Accumulated Depreciation", false, GroupAccumulatedDepreciation},
	{AccountsPayableID, "Accounts Payable", false, GroupAccountsPayable},
	{AccruedExpensesID, "Accrued Expenses", false, GroupAccruedExpenses},
	{CurrentPortionOfDebtID, "Current Portion of Debt", false, GroupCurrentPortionOfDebt},
	{IncomeTaxesPayableID, "Income Taxes Payable", false, GroupIncomeTaxesPayable},
	{LongTermDebtID, "Long Term Debt", false, GroupLongTermDebt},
	{CapitalStockID, "Capital Stock", false, GroupCapitalStock},
	{RetainedEarningsID, "Retained Earnings", false, GroupRetainedEarnings},
}

// incomeStatementGroups start empty.
var incomeStatementGroups = []Group{
	GroupSales,
	GroupCostOfGoodsSold,
	GroupSalesAndMarketing,
	GroupResearchAndDevelopment,
	GroupInterestIncome,
	GroupGeneralAndAdministrative,
}

// capitalAndBorrowingGroups hold the accounts whose cash movements are reported
// outside cash receipts and disbursements.
var capitalAndBorrowingGroups = []Group{
	GroupCapitalStock,
	GroupLongTermDebt,
	GroupCurrentPortionOfDebt,
	GroupIncomeTaxesPayable,
	GroupFixedAssetsAtCost,
}

// Groups lists every known group.
func Groups() []Group {
	out := make([]Group, 0, len(defaultAccounts)+len(incomeStatementGroups))
	for _, d := range defaultAccounts {
		out = append(out, d.group)
	}
	return append(out, incomeStatementGroups...)
}

// Valid reports whether g is a known group.
func (g Group) Valid() bool {
	for _, known := range Groups() {
		if g == known {
			return true
		}
	}
	return false
}
