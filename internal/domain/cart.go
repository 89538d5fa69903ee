package domain

import "github.com/shopspring/decimal"

type Cart struct {
	Items []LineItem
}

// LineItem is a product snapshot taken when it was first added, plus a quantity.
type LineItem struct {
	Product
	Quantity int
}

func (li LineItem) Subtotal() decimal.Decimal {
	return li.Price.Mul(decimal.NewFromInt(int64(li.Quantity)))
}

type Totals struct {
	Total decimal.Decimal
	Count int
}

func (c Cart) Totals() Totals {
	totals := Totals{Total: decimal.Zero}

	for _, item := range c.Items {
		totals.Total = totals.Total.Add(item.Subtotal())
		totals.Count += item.Quantity
	}

	return totals
}

// Index returns the position of the line item for productID, or -1.
func (c Cart) Index(productID string) int {
	for i, item := range c.Items {
		if item.ID == productID {
			return i
		}
	}

	return -1
}
