// Package firm names a set of books.
package firm

import (
	"time"

	"github.com/zeppelin-cash/internal/domain/book"
	"github.com/zeppelin-cash/internal/domain/money"
	"github.com/zeppelin-cash/internal/domain/statement"
)

// Firm is a named business and its books.
type Firm struct {
	Name string
	Book *book.Book
}

// New opens a firm whose books start at start in currency.
func New(name string, start time.Time, currency money.Currency) *Firm {
	return &Firm{Name: name, Book: book.New(start, currency)}
}

// FinancialStatement returns the firm's statements for the period.
func (f *Firm) FinancialStatement(start, end time.Time) (statement.FinancialStatement, error) {
	return f.Book.FinancialStatement(start, end)
}
