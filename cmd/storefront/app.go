package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/storefront/internal/cart"
	"github.com/nikolayk812/storefront/internal/catalog"
	"github.com/nikolayk812/storefront/internal/checkout"
	"github.com/nikolayk812/storefront/internal/config"
	"github.com/nikolayk812/storefront/internal/port"
	"github.com/nikolayk812/storefront/internal/repository"
	"go.uber.org/zap"
)

type app struct {
	cfg      config.Config
	log      *zap.Logger
	out      io.Writer
	store    *cart.Store
	catalog  *catalog.Client
	checkout *checkout.Initiator

	// openBrowser is swapped out in tests
	openBrowser func(url string) error
}

func newApp(ctx context.Context, cfg config.Config, log *zap.Logger, out io.Writer) (*app, func(), error) {
	persistPolicy, err := cart.ParsePersistPolicy(cfg.PersistPolicy)
	if err != nil {
		return nil, nil, err
	}
	fallbackPolicy, err := catalog.ParseFallbackPolicy(cfg.CatalogFallback)
	if err != nil {
		return nil, nil, err
	}
	clearPolicy, err := checkout.ParseClearPolicy(cfg.CheckoutCartPolicy)
	if err != nil {
		return nil, nil, err
	}

	storage, closeStorage, err := newStorage(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	a := &app{
		cfg:         cfg,
		log:         log,
		out:         out,
		openBrowser: openURL,
	}

	a.store, err = cart.NewStore(storage, cart.Options{
		Key:      cfg.StorageKey,
		Policy:   persistPolicy,
		Logger:   log,
		Listener: a.onCartChange,
	})
	if err != nil {
		closeStorage()
		return nil, nil, fmt.Errorf("cart.NewStore: %w", err)
	}

	httpClient := &http.Client{Timeout: cfg.HTTPTimeout}

	a.catalog, err = catalog.NewClient(cfg.APIURL, catalog.Options{
		HTTPClient: httpClient,
		Policy:     fallbackPolicy,
		Logger:     log,
	})
	if err != nil {
		closeStorage()
		return nil, nil, fmt.Errorf("catalog.NewClient: %w", err)
	}

	a.checkout, err = checkout.NewInitiator(cfg.APIURL, a.store, checkout.Options{
		HTTPClient: httpClient,
		Policy:     clearPolicy,
		Logger:     log,
	})
	if err != nil {
		closeStorage()
		return nil, nil, fmt.Errorf("checkout.NewInitiator: %w", err)
	}

	// the storefront stays usable with an unreadable cart
	if err := a.store.Restore(ctx); err != nil {
		var deserErr *cart.DeserializationError
		if errors.As(err, &deserErr) {
			log.Warn("stored cart is corrupt, starting with an empty cart", zap.Error(err))
		} else {
			log.Warn("stored cart could not be read, starting with an empty cart", zap.Error(err))
		}
	}

	return a, closeStorage, nil
}

func newStorage(ctx context.Context, cfg config.Config) (port.CartStorage, func(), error) {
	switch cfg.StorageDriver {
	case config.StoragePostgres:
		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("pgxpool.New: %w", err)
		}
		return repository.NewPostgresStorage(pool), pool.Close, nil
	case config.StorageMemory:
		return repository.NewMemoryStorage(), func() {}, nil
	default:
		storage, err := repository.NewFileStorage(cfg.StorageDir)
		if err != nil {
			return nil, nil, fmt.Errorf("repository.NewFileStorage: %w", err)
		}
		return storage, func() {}, nil
	}
}

// onCartChange re-renders the cart after every mutation; an add also opens it.
func (a *app) onCartChange(c cart.Change) {
	if c.Op == cart.OpRestored {
		return
	}

	a.log.Debug("cart changed",
		zap.Stringer("op", c.Op),
		zap.String("product_id", c.ProductID),
		zap.Int("count", c.Totals.Count))

	a.renderCart()
}
