// Package money provides exact monetary amounts tagged with a currency.
package money

import (
	"strings"

	gomoney "github.com/Rhymond/go-money"
)

// Currency describes a unit of account. Two currencies are the same when their codes match.
type Currency struct {
	Name             string `json:"name,omitempty"`
	Code             string `json:"code"`
	NumericCode      int    `json:"numeric_code,omitempty"`
	Symbol           string `json:"symbol,omitempty"`
	FractionSymbol   string `json:"fraction_symbol,omitempty"`
	FractionsPerUnit int    `json:"fractions_per_unit"`
}

// Equal reports whether both currencies share a code.
func (c Currency) Equal(other Currency) bool {
	return c.Code == other.Code
}

// Digits returns the number of fractional digits of the minor unit.
func (c Currency) Digits() int32 {
	var digits int32
	for n := c.FractionsPerUnit; n > 1; n /= 10 {
		digits++
	}
	return digits
}

func (c Currency) String() string {
	return c.Code
}

// USD is the default accounting currency.
func USD() Currency {
	return Currency{Name: "US dollar", Code: "USD", NumericCode: 840, Symbol: "$", FractionSymbol: "¢", FractionsPerUnit: 100}
}

// ARS returns the Argentinian peso.
func ARS() Currency {
	return Currency{Name: "Argentinian peso", Code: "ARS", NumericCode: 32, FractionsPerUnit: 100}
}

// BRL returns the Brazilian real.
func BRL() Currency {
	return Currency{Name: "Brazilian real", Code: "BRL", NumericCode: 986, Symbol: "R$", FractionsPerUnit: 100}
}

// CAD returns the Canadian dollar.
func CAD() Currency {
	return Currency{Name: "Canadian dollar", Code: "CAD", NumericCode: 124, Symbol: "Can$", FractionsPerUnit: 100}
}

// CLP returns the Chilean peso.
func CLP() Currency {
	return Currency{Name: "Chilean peso", Code: "CLP", NumericCode: 152, Symbol: "Cs$", FractionsPerUnit: 100}
}

// COP returns the Colombian peso.
func COP() Currency {
	return Currency{Name: "Colombian peso", Code: "COP", NumericCode: 170, Symbol: "Col$", FractionsPerUnit: 100}
}

// MXN returns the Mexican peso.
func MXN() Currency {
	return Currency{Name: "Mexican peso", Code: "MXN", NumericCode: 484, Symbol: "Mex$", FractionsPerUnit: 100}
}

// PEN returns the Peruvian nuevo sol.
func PEN() Currency {
	return Currency{Name: "Peruvian nuevo sol", Code: "PEN", NumericCode: 604, Symbol: "S/.", FractionsPerUnit: 100}
}

// PEI returns the Peruvian inti.
func PEI() Currency {
	return Currency{Name: "Peruvian inti", Code: "PEI", Symbol: "I/.", FractionsPerUnit: 100}
}

// PEH returns the Peruvian sol.
func PEH() Currency {
	return Currency{Name: "Peruvian sol", Code: "PEH", Symbol: "S./", FractionsPerUnit: 100}
}

// TTD returns the Trinidad & Tobago dollar.
func TTD() Currency {
	return Currency{Name: "Trinidad & Tobago dollar", Code: "TTD", NumericCode: 780, Symbol: "TT$", FractionsPerUnit: 100}
}

// VEB returns the Venezuelan bolivar.
func VEB() Currency {
	return Currency{Name: "Venezuelan bolivar", Code: "VEB", NumericCode: 862, Symbol: "Bs", FractionsPerUnit: 100}
}

var catalog = map[string]func() Currency{
	"USD": USD,
	"ARS": ARS,
	"BRL": BRL,
	"CAD": CAD,
	"CLP": CLP,
	"COP": COP,
	"MXN": MXN,
	"PEN": PEN,
	"PEI": PEI,
	"PEH": PEH,
	"TTD": TTD,
	"VEB": VEB,
}

// Lookup resolves a currency code. Codes outside the local catalog are looked up in the
// ISO table shipped with go-money; anything else yields a bare currency with 100 minor units.
func Lookup(code string) Currency {
	code = strings.ToUpper(strings.TrimSpace(code))
	if build, ok := catalog[code]; ok {
		return build()
	}
	if iso := gomoney.GetCurrency(code); iso != nil {
		fractions := 1
		for i := 0; i < iso.Fraction; i++ {
			fractions *= 10
		}
		return Currency{Code: iso.Code, Symbol: iso.Grapheme, FractionsPerUnit: fractions}
	}
	return Currency{Code: code, FractionsPerUnit: 100}
}

// Known reports whether the code is in the local catalog or the ISO table.
func Known(code string) bool {
	code = strings.ToUpper(strings.TrimSpace(code))
	if _, ok := catalog[code]; ok {
		return true
	}
	return gomoney.GetCurrency(code) != nil
}
