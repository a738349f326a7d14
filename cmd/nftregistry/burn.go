package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/pflow-xyz/go-nftregistry/registry"
)

func burn(args []string) error {
	fs := flag.NewFlagSet("burn", flag.ExitOnError)
	db, stream := streamFlags(fs)
	caller := fs.String("caller", "", "Calling account (must be the token owner)")
	id := fs.Uint64("id", 0, "Token id (required)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: nftregistry burn [options]

Destroy a token. Only the current owner may burn; approvals do not extend to
burning.

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

	if err := l.Burn(ctx, registry.Address(*caller), registry.TokenID(*id)); err != nil {
		return err
	}

	fmt.Printf("Burned token %d (supply %d/%d)\n",
		*id, l.Collection().TotalSupply(), l.Collection().Capacity())
	return nil
}
