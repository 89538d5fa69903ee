package catalog

import (
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/nikolayk812/storefront/internal/domain"
)

// MinSearchLen is the number of characters a search term needs before it filters.
const MinSearchLen = 3

// sectionKeywords expands a section name into the words its products are named with.
var sectionKeywords = map[string][]string{
	"obra gruesa": {"ladrillo", "cemento", "arena", "cal", "vigueta", "cascote"},
	"hierros":     {"hierro", "malla", "viga", "columna", "estribo"},
	"durlock":     {"durlock", "perfil", "masilla", "placa", "yeso", "montante", "solera"},
}

// Search matches term against product names, case-insensitively.
// An empty term returns every product. A term shorter than MinSearchLen is not
// applied and ok is false. An exact name match is returned alone; otherwise
// names starting with term come first, keeping catalog order within each group.
func (s *Snapshot) Search(term string) (_ []domain.Product, ok bool) {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return s.Products(), true
	}
	if utf8.RuneCountInString(term) < MinSearchLen {
		return nil, false
	}

	matches := s.filter(func(p domain.Product) bool {
		return strings.Contains(strings.ToLower(p.Name), term)
	})

	for _, p := range matches {
		if strings.ToLower(p.Name) == term {
			return []domain.Product{p}, true
		}
	}

	slices.SortStableFunc(matches, func(a, b domain.Product) int {
		aPrefix := strings.HasPrefix(strings.ToLower(a.Name), term)
		bPrefix := strings.HasPrefix(strings.ToLower(b.Name), term)

		switch {
		case aPrefix && !bPrefix:
			return -1
		case !aPrefix && bPrefix:
			return 1
		default:
			return 0
		}
	})

	return matches, true
}

// FilterKeyword returns products whose category, subcategory, name or description
// contains term, or any keyword of the section term names.
func (s *Snapshot) FilterKeyword(term string) []domain.Product {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return nil
	}

	keywords, ok := sectionKeywords[term]
	if !ok {
		keywords = []string{term}
	}

	return s.filter(func(p domain.Product) bool {
		fields := []string{
			strings.ToLower(p.Category),
			strings.ToLower(p.Subcategory),
			strings.ToLower(p.Name),
			strings.ToLower(p.Description),
		}

		for _, k := range keywords {
			for _, f := range fields {
				if strings.Contains(f, k) {
					return true
				}
			}
		}

		return false
	})
}
