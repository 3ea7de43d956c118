package statement

import (
	"fmt"
	"time"

	"github.com/zeppelin-cash/internal/domain/money"
)

// CashFlowStatement reports how cash moved over a period.
type CashFlowStatement struct {
	Start    time.Time      `json:"start"`
	End      time.Time      `json:"end"`
	Currency money.Currency `json:"currency"`

	BeginningCashBalance money.Money `json:"beginning_cash_balance"`
	CashReceipts         money.Money `json:"cash_receipts"`
	CashDisbursements    money.Money `json:"cash_disbursements"`
	FixedAssetPurchases  money.Money `json:"fixed_asset_purchases"`
	NetBorrowings        money.Money `json:"net_borrowings"`
	IncomeTaxesPaid      money.Money `json:"income_taxes_paid"`
	SaleOfStock          money.Money `json:"sale_of_stock"`
}

// NewCashFlowStatement returns a zeroed cash flow statement.
func NewCashFlowStatement(start, end time.Time, currency money.Currency) CashFlowStatement {
	z := money.Zero(currency)
	return CashFlowStatement{
		Start: start, End: end, Currency: currency,
		BeginningCashBalance: z, CashReceipts: z, CashDisbursements: z, FixedAssetPurchases: z,
		NetBorrowings: z, IncomeTaxesPaid: z, SaleOfStock: z,
	}
}

// CashFromOperations is receipts less disbursements.
func (c CashFlowStatement) CashFromOperations() money.Money {
	return c.CashReceipts.MustSub(c.CashDisbursements)
}

// EndingCashBalance carries the beginning balance through every cash movement of the period.
func (c CashFlowStatement) EndingCashBalance() money.Money {
	return c.BeginningCashBalance.
		MustAdd(c.CashFromOperations()).
		MustSub(c.FixedAssetPurchases).
		MustAdd(c.NetBorrowings).
		MustSub(c.IncomeTaxesPaid).
		MustAdd(c.SaleOfStock)
}

// Add sums two cash flow statements field by field. The result keeps c's period.
func (c CashFlowStatement) Add(other CashFlowStatement) (CashFlowStatement, error) {
	if !c.Currency.Equal(other.Currency) {
		return CashFlowStatement{}, fmt.Errorf("cash flow statement: %w", money.ErrCurrencyMismatch)
	}
	return CashFlowStatement{
		Start:                c.Start,
		End:                  c.End,
		Currency:             c.Currency,
		BeginningCashBalance: c.BeginningCashBalance.MustAdd(other.BeginningCashBalance),
		CashReceipts:         c.CashReceipts.MustAdd(other.CashReceipts),
		CashDisbursements:    c.CashDisbursements.MustAdd(other.CashDisbursements),
		FixedAssetPurchases:  c.FixedAssetPurchases.MustAdd(other.FixedAssetPurchases),
		NetBorrowings:        c.NetBorrowings.MustAdd(other.NetBorrowings),
		IncomeTaxesPaid:      c.IncomeTaxesPaid.MustAdd(other.IncomeTaxesPaid),
		SaleOfStock:          c.SaleOfStock.MustAdd(other.SaleOfStock),
	}, nil
}

func (c CashFlowStatement) String() string {
	return render(
		"Cash Flow Statement for the period "+c.Start.Format(time.RFC3339)+" to "+c.End.Format(time.RFC3339),
		rule,
		line("Beginning cash balance", c.BeginningCashBalance),
		line("Cash receipts", c.CashReceipts),
		line("Cash disbursements", c.CashDisbursements),
		rule,
		line("Cash from operations", c.CashFromOperations()),
		line("Fixed asset purchases", c.FixedAssetPurchases),
		line("Net borrowings", c.NetBorrowings),
		line("Income taxes paid", c.IncomeTaxesPaid),
		line("Sale of stock", c.SaleOfStock),
		line("Ending cash balance", c.EndingCashBalance()),
	)
}
