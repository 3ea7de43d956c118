package statement

import (
	"strings"

	"github.com/zeppelin-cash/internal/domain/money"
)

const rule = "----------------------"

func line(label string, m money.Money) string {
	return label + ": " + m.String()
}

func section(title string) string {
	return rule + "\n" + title + "\n" + rule
}

func render(title string, lines ...string) string {
	var sb strings.Builder
	sb.WriteString(title)
	sb.WriteString("\n")
	for _, l := range lines {
		sb.WriteString(l)
		sb.WriteString("\n")
	}
	return sb.String()
}

// sum adds amounts that share a currency.
func sum(first money.Money, rest ...money.Money) money.Money {
	total := first
	for _, m := range rest {
		total = total.MustAdd(m)
	}
	return total
}
