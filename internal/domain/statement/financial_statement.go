package statement

import (
	"fmt"
	"time"

	"github.com/zeppelin-cash/internal/domain/money"
)

// FinancialStatement bundles the three statements for one period.
type FinancialStatement struct {
	BalanceSheet      BalanceSheet      `json:"balance_sheet"`
	CashFlowStatement CashFlowStatement `json:"cash_flow_statement"`
	IncomeStatement   IncomeStatement   `json:"income_statement"`
}

// Blank returns a zeroed financial statement for the period.
func Blank(start, end time.Time, currency money.Currency) FinancialStatement {
	return FinancialStatement{
		BalanceSheet:      NewBalanceSheet(end, currency),
		CashFlowStatement: NewCashFlowStatement(start, end, currency),
		IncomeStatement:   NewIncomeStatement(start, end, currency),
	}
}

// IsValid reports whether the statements agree: one currency throughout, ending cash equal
// to balance sheet cash, and total assets equal to total liabilities and equity.
func (f FinancialStatement) IsValid() bool {
	bs, cf, is := f.BalanceSheet, f.CashFlowStatement, f.IncomeStatement
	if !bs.Currency.Equal(cf.Currency) || !cf.Currency.Equal(is.Currency) {
		return false
	}
	return cf.EndingCashBalance().Equal(bs.Cash) && bs.TotalAssets().Equal(bs.TotalLiabilitiesAndEquity())
}

// Add sums each of the three statements.
func (f FinancialStatement) Add(other FinancialStatement) (FinancialStatement, error) {
	bs, err := f.BalanceSheet.Add(other.BalanceSheet)
	if err != nil {
		return FinancialStatement{}, err
	}
	cf, err := f.CashFlowStatement.Add(other.CashFlowStatement)
	if err != nil {
		return FinancialStatement{}, err
	}
	is, err := f.IncomeStatement.Add(other.IncomeStatement)
	if err != nil {
		return FinancialStatement{}, err
	}
	return FinancialStatement{BalanceSheet: bs, CashFlowStatement: cf, IncomeStatement: is}, nil
}

func (f FinancialStatement) String() string {
	return fmt.Sprintf("%s\n%s\n%s", f.BalanceSheet, f.CashFlowStatement, f.IncomeStatement)
}
