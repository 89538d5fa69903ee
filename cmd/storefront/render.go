package main

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/cli/browser"
	"github.com/nikolayk812/storefront/internal/catalog"
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/format"
)

func openURL(url string) error {
	return browser.OpenURL(url)
}

func (a *app) renderCart() {
	items := a.store.Items()

	if len(items) == 0 {
		fmt.Fprintln(a.out, "your cart is empty")
	} else {
		tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
		for _, item := range items {
			fmt.Fprintf(tw, "%s\t%s\t%s\n", item.ID, item.Name, format.Line(item, a.cfg.Currency))
		}
		_ = tw.Flush()

		fmt.Fprintln(a.out, format.Summary(a.store.Totals(), a.cfg.Currency))
	}

	if a.store.Degraded() {
		fmt.Fprintln(a.out, "warning: the cart could not be saved and may be lost when the program exits")
	}
}

func (a *app) renderProducts(products []domain.Product) {
	if len(products) == 0 {
		fmt.Fprintln(a.out, "no products found")
		return
	}

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tPRICE\tSTOCK\tCATEGORY\tIMAGE")
	for _, p := range products {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			p.ID,
			p.Name,
			format.Price(domain.NewMoney(p.Price, a.cfg.Currency)),
			stockLabel(p),
			categoryLabel(p),
			catalog.ImageURL(a.cfg.APIURL, p.Image))
	}
	_ = tw.Flush()
}

func stockLabel(p domain.Product) string {
	switch {
	case p.Stock == nil:
		return "-"
	case !p.InStock():
		return "out of stock"
	default:
		return strconv.Itoa(*p.Stock)
	}
}

func categoryLabel(p domain.Product) string {
	if p.Subcategory == "" {
		return p.Category
	}
	return p.Category + " / " + p.Subcategory
}
