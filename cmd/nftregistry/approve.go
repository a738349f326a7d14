package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/pflow-xyz/go-nftregistry/registry"
)

func approve(args []string) error {
	fs := flag.NewFlagSet("approve", flag.ExitOnError)
	db, stream := streamFlags(fs)
	caller := fs.String("caller", "", "Calling account (required)")
	to := fs.String("to", "", "Account to approve (empty clears a single approval)")
	id := fs.Uint64("id", 0, "Token id (single-token approval)")
	operator := fs.String("operator", "", "Operator account (blanket approval)")
	revoke := fs.Bool("revoke", false, "Revoke instead of grant (with --operator)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: nftregistry approve [options]

Set a single-token approval (--to with --id) or a blanket operator approval
(--operator, optionally --revoke).

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

	if *operator != "" {
		approved := !*revoke
		if err := l.SetApprovalForAll(ctx, c, registry.Address(*operator), approved); err != nil {
			return err
		}
		if approved {
			fmt.Printf("Granted operator approval: %s -> %s\n", *caller, *operator)
		} else {
			fmt.Printf("Revoked operator approval: %s -> %s\n", *caller, *operator)
		}
		return nil
	}

	if err := l.Approve(ctx, c, registry.Address(*to), registry.TokenID(*id)); err != nil {
		return err
	}
	if *to == "" {
		fmt.Printf("Cleared approval on token %d\n", *id)
	} else {
		fmt.Printf("Approved %s for token %d\n", *to, *id)
	}
	return nil
}
