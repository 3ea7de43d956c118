package statement

import (
	"fmt"
	"time"

	"github.com/zeppelin-cash/internal/domain/money"
)

// IncomeStatement reports revenue and expenses over a period.
type IncomeStatement struct {
	Start    time.Time      `json:"start"`
	End      time.Time      `json:"end"`
	Currency money.Currency `json:"currency"`

	NetSales                 money.Money `json:"net_sales"`
	CostOfGoodsSold          money.Money `json:"cost_of_goods_sold"`
	SalesAndMarketing        money.Money `json:"sales_and_marketing"`
	ResearchAndDevelopment   money.Money `json:"research_and_development"`
	GeneralAndAdministrative money.Money `json:"general_and_administrative"`
	InterestIncome           money.Money `json:"interest_income"`
	IncomeTaxes              money.Money `json:"income_taxes"`
}

// NewIncomeStatement returns a zeroed income statement.
func NewIncomeStatement(start, end time.Time, currency money.Currency) IncomeStatement {
	z := money.Zero(currency)
	return IncomeStatement{
		Start: start, End: end, Currency: currency,
		NetSales: z, CostOfGoodsSold: z, SalesAndMarketing: z, ResearchAndDevelopment: z,
		GeneralAndAdministrative: z, InterestIncome: z, IncomeTaxes: z,
	}
}

// GrossMargin is net sales less the cost of goods sold.
func (s IncomeStatement) GrossMargin() money.Money {
	return s.NetSales.MustSub(s.CostOfGoodsSold)
}

// OperatingExpenses is sales and marketing, R&D, and general and administrative.
func (s IncomeStatement) OperatingExpenses() money.Money {
	return sum(s.SalesAndMarketing, s.ResearchAndDevelopment, s.GeneralAndAdministrative)
}

func (s IncomeStatement) IncomeFromOperations() money.Money {
	return s.GrossMargin().MustSub(s.OperatingExpenses())
}

func (s IncomeStatement) NetIncome() money.Money {
	return s.IncomeFromOperations().MustAdd(s.InterestIncome).MustSub(s.IncomeTaxes)
}

// Add sums two income statements field by field. The result keeps s's period.
func (s IncomeStatement) Add(other IncomeStatement) (IncomeStatement, error) {
	if !s.Currency.Equal(other.Currency) {
		return IncomeStatement{}, fmt.Errorf("income statement: %w", money.ErrCurrencyMismatch)
	}
	return IncomeStatement{
		Start:                    s.Start,
		End:                      s.End,
		Currency:                 s.Currency,
		NetSales:                 s.NetSales.MustAdd(other.NetSales),
		CostOfGoodsSold:          s.CostOfGoodsSold.MustAdd(other.CostOfGoodsSold),
		SalesAndMarketing:        s.SalesAndMarketing.MustAdd(other.SalesAndMarketing),
		ResearchAndDevelopment:   s.ResearchAndDevelopment.MustAdd(other.ResearchAndDevelopment),
		GeneralAndAdministrative: s.GeneralAndAdministrative.MustAdd(other.GeneralAndAdministrative),
		InterestIncome:           s.InterestIncome.MustAdd(other.InterestIncome),
		IncomeTaxes:              s.IncomeTaxes.MustAdd(other.IncomeTaxes),
	}, nil
}

func (s IncomeStatement) String() string {
	return render(
		"Income Statement for the period "+s.Start.Format(time.RFC3339)+" to "+s.End.Format(time.RFC3339),
		rule,
		line("Net sales", s.NetSales),
		line("Cost of goods sold", s.CostOfGoodsSold),
		rule,
		line("Gross margin", s.GrossMargin()),
		line("Sales & marketing", s.SalesAndMarketing),
		line("Research & development", s.ResearchAndDevelopment),
		line("General & administrative", s.GeneralAndAdministrative),
		rule,
		line("Operating expenses", s.OperatingExpenses()),
		line("Income from operations", s.IncomeFromOperations()),
		line("Interest income", s.InterestIncome),
		line("Income taxes", s.IncomeTaxes),
		rule,
		line("Net income", s.NetIncome()),
	)
}
