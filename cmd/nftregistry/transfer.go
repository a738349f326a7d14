package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/pflow-xyz/go-nftregistry/registry"
)

func transfer(args []string) error {
	fs := flag.NewFlagSet("transfer", flag.ExitOnError)
	db, stream := streamFlags(fs)
	caller := fs.String("caller", "", "Calling account (owner, approved, or operator)")
	from := fs.String("from", "", "Current owner (required)")
	to := fs.String("to", "", "Recipient account (required)")
	id := fs.Uint64("id", 0, "Token id (required)")
	safe := fs.Bool("safe", false, "Use the safe-transfer protocol")
	data := fs.String("data", "", "Opaque payload for the safe-transfer callback")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: nftregistry transfer [options]

Transfer a token. With --safe, the recipient's acceptance callback is probed
and the transfer rolls back if it rejects.

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

	c := registry.Address(*caller)
	f := registry.Address(*from)
	t := registry.Address(*to)
	token := registry.TokenID(*id)

	if *safe {
		err = l.SafeTransferFromData(ctx, c, f, t, token, []byte(*data))
	} else {
		err = l.TransferFrom(ctx, c, f, t, token)
	}
	if err != nil {
		return err
	}

	fmt.Printf("Transferred token %d: %s -> %s\n", *id, *from, *to)
	return nil
}
