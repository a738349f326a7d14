package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/pflow-xyz/go-nftregistry/eventsource"
	"github.com/pflow-xyz/go-nftregistry/ledger"
	"github.com/pflow-xyz/go-nftregistry/registry"
)

func create(args []string) error {
	fs := flag.NewFlagSet("create", flag.ExitOnError)
	db, stream := streamFlags(fs)
	name := fs.String("name", "", "Collection name (required)")
	symbol := fs.String("symbol", "", "Collection symbol (required)")
	capacity := fs.Uint64("capacity", 0, "Maximum number of tokens (required, > 0)")
	baseURI := fs.String("base-uri", "", "Metadata base URI")
	admin := fs.String("admin", "", "Admin account (required)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: nftregistry create [options]

Create a new collection stream. Name, symbol, and capacity are fixed for the
lifetime of the collection; the creating account becomes its admin.

Options:
`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if *stream == "" {
		return fmt.Errorf("--stream is required")
	}

	ctx := context.Background()
	store, err := eventsource.NewSQLiteStore(*db)
	if err != nil {
		return err
	}
	defer store.Close()

	cfg := registry.Config{
		Name:     *name,
		Symbol:   *symbol,
		Capacity: *capacity,
		BaseURI:  *baseURI,
	}
	l, err := ledger.Create(ctx, store, *stream, cfg, registry.Address(*admin))
	if err != nil {
		return err
	}

	fmt.Printf("Created collection %s (%s), capacity %d, stream %q\n",
		cfg.Name, cfg.Symbol, cfg.Capacity, l.Stream())
	return nil
}
