package format

import (
	"fmt"

	"github.com/nikolayk812/storefront/internal/domain"
	"golang.org/x/text/currency"
)

// Line renders one cart line: "$ 1.200,00 x 2 = $ 2.400,00".
func Line(item domain.LineItem, unit currency.Unit) string {
	return fmt.Sprintf("%s x %d = %s",
		Price(domain.NewMoney(item.Price, unit)),
		item.Quantity,
		Price(domain.NewMoney(item.Subtotal(), unit)))
}

// Count renders the cart badge text.
func Count(n int) string {
	if n == 1 {
		return "1 item"
	}
	return fmt.Sprintf("%d items", n)
}

// Summary renders the cart footer: "3 items, total $ 11.900,00".
func Summary(totals domain.Totals, unit currency.Unit) string {
	return fmt.Sprintf("%s, total %s", Count(totals.Count), Price(domain.NewMoney(totals.Total, unit)))
}
