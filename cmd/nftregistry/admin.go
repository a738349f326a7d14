package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/pflow-xyz/go-nftregistry/registry"
)

func pause(args []string, pausing bool) error {
	name := "pause"
	if !pausing {
		name = "unpause"
	}

	fs := flag.NewFlagSet(name, flag.ExitOnError)
	db, stream := streamFlags(fs)
	caller := fs.String("caller", "", "Calling account (must be admin)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: nftregistry %s [options]

Pausing stops minting only; transfers, approvals, and burns continue.

Options:
`, name)
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

	if pausing {
		err = l.PauseMinting(ctx, registry.Address(*caller))
	} else {
		err = l.UnpauseMinting(ctx, registry.Address(*caller))
	}
	if err != nil {
		return err
	}

	if pausing {
		fmt.Println("Minting paused")
	} else {
		fmt.Println("Minting resumed")
	}
	return nil
}

func setBaseURI(args []string) error {
	fs := flag.NewFlagSet("set-base-uri", flag.ExitOnError)
	db, stream := streamFlags(fs)
	caller := fs.String("caller", "", "Calling account (must be admin)")
	uri := fs.String("uri", "", "New metadata base URI")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: nftregistry set-base-uri [options]

Change the base URI used by all subsequent token URI lookups.

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

	if err := l.SetBaseURI(ctx, registry.Address(*caller), *uri); err != nil {
		return err
	}

	fmt.Printf("Base URI set to %q\n", *uri)
	return nil
}
