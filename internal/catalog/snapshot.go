package catalog

import (
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/port"
)

// Snapshot is a read-only view of the catalog at fetch time.
type Snapshot struct {
	products []domain.Product
	byID     map[string]int
}

var _ port.ProductFinder = (*Snapshot)(nil)

// NewSnapshot copies products. When ids repeat, Find returns the first one.
func NewSnapshot(products []domain.Product) *Snapshot {
	s := &Snapshot{
		products: make([]domain.Product, 0, len(products)),
		byID:     make(map[string]int, len(products)),
	}

	for _, p := range products {
		s.products = append(s.products, p.Clone())
		if _, ok := s.byID[p.ID]; !ok {
			s.byID[p.ID] = len(s.products) - 1
		}
	}

	return s
}

func (s *Snapshot) Find(productID string) (domain.Product, bool) {
	i, ok := s.byID[productID]
	if !ok {
		return domain.Product{}, false
	}

	return s.products[i].Clone(), true
}

func (s *Snapshot) Len() int {
	return len(s.products)
}

func (s *Snapshot) Products() []domain.Product {
	return s.filter(func(domain.Product) bool { return true })
}

func (s *Snapshot) ByCategory(category string) []domain.Product {
	return s.filter(func(p domain.Product) bool {
		return p.Category == category
	})
}

func (s *Snapshot) BySubcategory(category, subcategory string) []domain.Product {
	return s.filter(func(p domain.Product) bool {
		return p.Category == category && p.Subcategory == subcategory
	})
}

func (s *Snapshot) filter(keep func(domain.Product) bool) []domain.Product {
	var out []domain.Product

	for _, p := range s.products {
		if keep(p) {
			out = append(out, p.Clone())
		}
	}

	return out
}
