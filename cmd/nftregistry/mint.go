package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/pflow-xyz/go-nftregistry/registry"
)

func mint(args []string) error {
	fs := flag.NewFlagSet("mint", flag.ExitOnError)
	db, stream := streamFlags(fs)
	caller := fs.String("caller", "", "Calling account (must be admin)")
	to := fs.String("to", "", "Recipient account (required)")
	id := fs.Uint64("id", 0, "Token id (required)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: nftregistry mint [options]

Mint a new token. Admin only; fails while minting is paused, when the id is
already owned, or when the collection is at capacity.

Options:
`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	ctx := context.Background()
	l, store, err := openLedger(ctx, *db, *stream)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := l.Mint(ctx, registry.Address(*caller), registry.Address(*to), registry.TokenID(*id)); err != nil {
		return err
	}

	fmt.Printf("Minted token %d to %s (supply %d/%d)\n",
		*id, *to, l.Collection().TotalSupply(), l.Collection().Capacity())
	return nil
}
