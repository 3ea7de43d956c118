package money

import (
	"errors"
	"fmt"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/shopspring/decimal"
)

// ErrCurrencyMismatch is returned when arithmetic mixes two currencies.
var ErrCurrencyMismatch = errors.New("currency mismatch")

// Money is an exact amount of a single currency, expressed in major units.
type Money struct {
	amount   decimal.Decimal
	currency Currency
}

// New returns an amount of the given currency.
func New(amount decimal.Decimal, currency Currency) Money {
	return Money{amount: amount, currency: currency}
}

// FromMinor builds an amount from minor units (cents for USD).
func FromMinor(minor int64, currency Currency) Money {
	return Money{amount: decimal.New(minor, -currency.Digits()), currency: currency}
}

// FromInt builds an amount from whole major units.
func FromInt(major int64, currency Currency) Money {
	return Money{amount: decimal.NewFromInt(major), currency: currency}
}

// FromFloat builds an amount from a float. Prefer Parse or FromMinor for exact input.
func FromFloat(amount float64, currency Currency) Money {
	return Money{amount: decimal.NewFromFloat(amount), currency: currency}
}

// Parse reads a decimal string such as "1234.50".
func Parse(amount string, currency Currency) (Money, error) {
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return Money{}, fmt.Errorf("invalid amount %q: %w", amount, err)
	}
	return Money{amount: d, currency: currency}, nil
}

// Zero returns a zero amount of the given currency.
func Zero(currency Currency) Money {
	return Money{amount: decimal.Zero, currency: currency}
}

func (m Money) Currency() Currency        { return m.currency }
func (m Money) Quantity() decimal.Decimal { return m.amount }
func (m Money) IsZero() bool              { return m.amount.IsZero() }
func (m Money) IsPositive() bool          { return m.amount.IsPositive() }
func (m Money) IsNegative() bool          { return m.amount.IsNegative() }
func (m Money) Neg() Money                { return Money{amount: m.amount.Neg(), currency: m.currency} }

// SameCurrency reports whether both amounts share a currency code.
func (m Money) SameCurrency(other Money) bool {
	return m.currency.Equal(other.currency)
}

// Equal requires an equal currency code and a numerically equal amount.
func (m Money) Equal(other Money) bool {
	return m.SameCurrency(other) && m.amount.Equal(other.amount)
}

// Add returns m + other.
func (m Money) Add(other Money) (Money, error) {
	if !m.SameCurrency(other) {
		return Money{}, fmt.Errorf("%w: %s + %s", ErrCurrencyMismatch, m.currency.Code, other.currency.Code)
	}
	return Money{amount: m.amount.Add(other.amount), currency: m.currency}, nil
}

// Sub returns m - other.
func (m Money) Sub(other Money) (Money, error) {
	if !m.SameCurrency(other) {
		return Money{}, fmt.Errorf("%w: %s - %s", ErrCurrencyMismatch, m.currency.Code, other.currency.Code)
	}
	return Money{amount: m.amount.Sub(other.amount), currency: m.currency}, nil
}

// MustAdd is Add for callers that have already established both amounts share a currency.
// It panics otherwise.
func (m Money) MustAdd(other Money) Money {
	sum, err := m.Add(other)
	if err != nil {
		panic(err)
	}
	return sum
}

// MustSub is the subtraction counterpart of MustAdd.
func (m Money) MustSub(other Money) Money {
	diff, err := m.Sub(other)
	if err != nil {
		panic(err)
	}
	return diff
}

// Scale multiplies the amount by factor.
func (m Money) Scale(factor decimal.Decimal) Money {
	return Money{amount: m.amount.Mul(factor), currency: m.currency}
}

// Rounded rounds to the currency's minor unit. Halves round away from zero.
func (m Money) Rounded() Money {
	return Money{amount: m.amount.Round(m.currency.Digits()), currency: m.currency}
}

// String renders the rounded amount with thousands separators and a code suffix,
// e.g. "1,234,567.00 USD". Amounts of any magnitude render exactly.
func (m Money) String() string {
	digits := m.currency.Digits()
	rounded := m.amount.Round(digits)
	whole, frac, _ := strings.Cut(rounded.Abs().StringFixed(digits), ".")

	var b strings.Builder
	if rounded.IsNegative() {
		b.WriteByte('-')
	}
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	if frac != "" {
		b.WriteByte('.')
		b.WriteString(frac)
	}
	b.WriteByte(' ')
	b.WriteString(m.currency.Code)
	return b.String()
}

type moneyJSON struct {
	Amount   string `json:"amount"`
	Currency string `json:"currency"`
}

// MarshalJSON keeps the full precision of the amount.
func (m Money) MarshalJSON() ([]byte, error) {
	return jsoniter.ConfigCompatibleWithStandardLibrary.Marshal(moneyJSON{Amount: m.amount.String(), Currency: m.currency.Code})
}

// UnmarshalJSON resolves the currency code through Lookup.
func (m *Money) UnmarshalJSON(data []byte) error {
	var raw moneyJSON
	if err := jsoniter.ConfigCompatibleWithStandardLibrary.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := Parse(raw.Amount, Lookup(raw.Currency))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
