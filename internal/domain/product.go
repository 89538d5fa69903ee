package domain

import "github.com/shopspring/decimal"

// Product is a catalog entry as served by the storefront API.
// Optional fields are left empty when the catalog does not carry them.
type Product struct {
	ID          string
	Name        string
	Price       decimal.Decimal
	Stock       *int // nil means unknown, treated as unlimited
	Category    string
	Subcategory string
	Image       string
	Description string
}

// InStock reports whether the product can be added to a cart. Only a stock of
// exactly 0 blocks it; unknown or negative stock (backorders) does not.
func (p Product) InStock() bool {
	return p.Stock == nil || *p.Stock != 0
}

// Clone returns a copy that shares no memory with p.
func (p Product) Clone() Product {
	if p.Stock != nil {
		stock := *p.Stock
		p.Stock = &stock
	}
	return p
}
