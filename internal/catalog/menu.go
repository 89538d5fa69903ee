package catalog

import (
	"slices"
	"strings"
)

// Category is one entry of the category menu.
type Category struct {
	Name          string
	Subcategories []string
}

// Categories groups products into a menu: categories sorted by name, each with
// its sorted, unique subcategories. Products without a category are skipped.
func (s *Snapshot) Categories() []Category {
	subs := make(map[string]map[string]struct{})

	for _, p := range s.products {
		if p.Category == "" {
			continue
		}
		if _, ok := subs[p.Category]; !ok {
			subs[p.Category] = make(map[string]struct{})
		}
		if p.Subcategory != "" {
			subs[p.Category][p.Subcategory] = struct{}{}
		}
	}

	menu := make([]Category, 0, len(subs))
	for name, set := range subs {
		c := Category{Name: name}
		for sub := range set {
			c.Subcategories = append(c.Subcategories, sub)
		}
		slices.Sort(c.Subcategories)
		menu = append(menu, c)
	}

	slices.SortFunc(menu, func(a, b Category) int {
		return strings.Compare(a.Name, b.Name)
	})

	return menu
}
