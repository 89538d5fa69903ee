package format

import (
	"strings"

	"github.com/nikolayk812/storefront/internal/domain"
	"golang.org/x/text/currency"
)

var symbols = map[string]string{
	"ARS": "$",
	"USD": "US$",
	"EUR": "€",
}

// Price renders m the way the storefront shows prices: es-AR grouping
// ("." thousands, "," decimals) and the currency's standard number of decimals.
// Example: Price(1200 ARS) => "$ 1.200,00"
func Price(m domain.Money) string {
	scale, _ := currency.Standard.Rounding(m.Currency)

	fixed := m.Amount.StringFixed(int32(scale))
	neg := strings.HasPrefix(fixed, "-")
	fixed = strings.TrimPrefix(fixed, "-")

	whole, frac, _ := strings.Cut(fixed, ".")

	var b strings.Builder
	if neg && strings.Trim(fixed, "0.") != "" {
		b.WriteByte('-')
	}
	b.WriteString(symbol(m.Currency))
	b.WriteByte(' ')
	b.WriteString(thousandSep(whole))
	if frac != "" {
		b.WriteByte(',')
		b.WriteString(frac)
	}

	return b.String()
}

func symbol(unit currency.Unit) string {
	code := unit.String()
	if s, ok := symbols[code]; ok {
		return s
	}
	return code
}

func thousandSep(digits string) string {
	if len(digits) <= 3 {
		return digits
	}

	var b strings.Builder
	b.Grow(len(digits) + len(digits)/3)

	rem := len(digits) % 3
	if rem == 0 {
		rem = 3
	}
	b.WriteString(digits[:rem])
	for i := rem; i < len(digits); i += 3 {
		b.WriteByte('.')
		b.WriteString(digits[i : i+3])
	}

	return b.String()
}
