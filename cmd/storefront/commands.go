package main

import (
	"context"
	"errors"
	"flag"
	"fmt"

	"github.com/nikolayk812/storefront/internal/catalog"
	"github.com/nikolayk812/storefront/internal/checkout"
	"github.com/nikolayk812/storefront/internal/domain"
	"go.uber.org/zap"
)

var errUnknownCommand = errors.New("unknown command")

func (a *app) dispatch(ctx context.Context, cmd string, args []string) error {
	switch cmd {
	case "products":
		return a.products(ctx, args)
	case "categories":
		return a.categories(ctx)
	case "add":
		return a.add(ctx, args)
	case "remove":
		return a.remove(ctx, args)
	case "cart":
		a.renderCart()
		return nil
	case "clear":
		return a.clear(ctx)
	case "checkout":
		return a.startCheckout(ctx, args)
	default:
		return fmt.Errorf("%w: %s", errUnknownCommand, cmd)
	}
}

func (a *app) newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(a.out)
	return fs
}

func (a *app) products(ctx context.Context, args []string) error {
	fs := a.newFlagSet("products")
	category := fs.String("category", "", "only products of this category")
	sub := fs.String("sub", "", "only products of this subcategory (needs -category)")
	search := fs.String("search", "", "match product names")
	keyword := fs.String("keyword", "", "match a section keyword in category, subcategory, name or description")
	if err := fs.Parse(args); err != nil {
		return err
	}

	snapshot, err := a.catalog.Fetch(ctx)
	if err != nil {
		return fmt.Errorf("catalog.Fetch: %w", err)
	}

	var products []domain.Product
	switch {
	case *search != "":
		found, ok := snapshot.Search(*search)
		if !ok {
			fmt.Fprintf(a.out, "search needs at least %d characters, showing all products\n", catalog.MinSearchLen)
			found = snapshot.Products()
		}
		products = found
	case *keyword != "":
		products = snapshot.FilterKeyword(*keyword)
	case *category != "" && *sub != "":
		products = snapshot.BySubcategory(*category, *sub)
	case *category != "":
		products = snapshot.ByCategory(*category)
	default:
		products = snapshot.Products()
	}

	a.renderProducts(products)
	return nil
}

func (a *app) categories(ctx context.Context) error {
	snapshot, err := a.catalog.Fetch(ctx)
	if err != nil {
		return fmt.Errorf("catalog.Fetch: %w", err)
	}

	for _, c := range snapshot.Categories() {
		fmt.Fprintln(a.out, c.Name)
		for _, sub := range c.Subcategories {
			fmt.Fprintf(a.out, "  %s\n", sub)
		}
	}

	return nil
}

func (a *app) add(ctx context.Context, args []string) error {
	fs := a.newFlagSet("add")
	qty := fs.Int("qty", 1, "quantity to add")
	if err := fs.Parse(args); err != nil {
		return err
	}
	productID, err := singleArg(fs)
	if err != nil {
		return err
	}

	snapshot, err := a.catalog.Fetch(ctx)
	if err != nil {
		return fmt.Errorf("catalog.Fetch: %w", err)
	}

	if err := a.store.AddQuantity(ctx, productID, *qty, snapshot); err != nil {
		return fmt.Errorf("store.AddQuantity: %w", err)
	}

	return nil
}

func (a *app) remove(ctx context.Context, args []string) error {
	fs := a.newFlagSet("remove")
	if err := fs.Parse(args); err != nil {
		return err
	}
	productID, err := singleArg(fs)
	if err != nil {
		return err
	}

	removed, err := a.store.Remove(ctx, productID)
	if err != nil {
		return fmt.Errorf("store.Remove: %w", err)
	}
	if !removed {
		a.log.Info("product not in cart", zap.String("product_id", productID))
	}

	return nil
}

func (a *app) clear(ctx context.Context) error {
	if err := a.store.Clear(ctx); err != nil {
		return fmt.Errorf("store.Clear: %w", err)
	}
	return nil
}

func (a *app) startCheckout(ctx context.Context, args []string) error {
	var shipping checkout.ShippingInfo

	fs := a.newFlagSet("checkout")
	fs.StringVar(&shipping.Street, "street", "", "street (required)")
	fs.StringVar(&shipping.Number, "number", "", "street number (required)")
	fs.StringVar(&shipping.Floor, "floor", "", "floor / apartment")
	fs.StringVar(&shipping.BetweenStreets, "between", "", "between streets")
	fs.StringVar(&shipping.Neighborhood, "neighborhood", "", "neighborhood")
	fs.StringVar(&shipping.Phone, "phone", "", "contact phone (required)")
	fs.StringVar(&shipping.Notes, "notes", "", "delivery notes")
	open := fs.Bool("open", false, "open the payment page in the browser")
	if err := fs.Parse(args); err != nil {
		return err
	}

	redirectURL, err := a.checkout.Start(ctx, shipping)
	if err != nil {
		var orderErr *checkout.OrderError
		if errors.As(err, &orderErr) {
			a.log.Warn("order rejected", zap.Int("status", orderErr.Status), zap.String("message", orderErr.Message))
		}
		return fmt.Errorf("checkout.Start: %w", err)
	}

	fmt.Fprintf(a.out, "continue to payment: %s\n", redirectURL)

	if *open {
		if err := a.openBrowser(redirectURL); err != nil {
			a.log.Warn("browser could not be opened", zap.Error(err))
		}
	}

	return nil
}

func singleArg(fs *flag.FlagSet) (string, error) {
	if fs.NArg() != 1 {
		return "", fmt.Errorf("%s: expected one product id, got %d", fs.Name(), fs.NArg())
	}
	return fs.Arg(0), nil
}
