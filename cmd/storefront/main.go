package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/nikolayk812/storefront/internal/config"
	"github.com/nikolayk812/storefront/internal/logging"
	"go.uber.org/zap"
)

const usage = `usage: storefront <command> [flags] [args]

commands:
  products    list the catalog (-category, -sub, -search, -keyword)
  categories  show the category menu
  add         add a product to the cart (-qty n) <product-id>
  remove      remove a product from the cart <product-id>
  cart        show the cart
  clear       empty the cart
  checkout    submit the cart and print the payment link (-street, -number, -phone, ...)

configuration is read from the environment (STOREFRONT_*) and an optional .env file.
`

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := run(ctx, os.Args[1:], os.Stdout)
	stop()

	if err != nil {
		fmt.Fprintf(os.Stderr, "storefront: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout io.Writer) error {
	if len(args) == 0 || args[0] == "help" || args[0] == "-h" || args[0] == "--help" {
		_, err := io.WriteString(stdout, usage)
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config.Load: %w", err)
	}

	log, err := logging.New(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("logging.New: %w", err)
	}
	defer func() { _ = log.Sync() }()

	log = log.With(zap.String("command", args[0]), zap.String("env", cfg.Env))

	a, closeApp, err := newApp(ctx, cfg, log, stdout)
	if err != nil {
		return err
	}
	defer closeApp()

	err = a.dispatch(ctx, args[0], args[1:])
	switch {
	case errors.Is(err, flag.ErrHelp):
		return nil
	case errors.Is(err, errUnknownCommand):
		_, _ = io.WriteString(stdout, usage)
	}

	return err
}
