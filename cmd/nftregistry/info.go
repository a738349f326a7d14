package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/pflow-xyz/go-nftregistry/registry"
)

func info(args []string) error {
	fs := flag.NewFlagSet("info", flag.ExitOnError)
	db, stream := streamFlags(fs)
	token := fs.Uint64("token", 0, "Show owner, approval, and URI for this token id")
	account := fs.String("account", "", "Show the balance of this account")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: nftregistry info [options]

Show collection metadata, supply, and the ownership state commitment.

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

	col := l.Collection()
	fmt.Printf("Collection: %s (%s)\n", col.Name(), col.Symbol())
	fmt.Printf("Supply: %d/%d\n", col.TotalSupply(), col.Capacity())
	fmt.Printf("Minting paused: %v\n", col.Paused())
	fmt.Printf("Base URI: %q\n", col.BaseURI())
	fmt.Printf("Stream version: %d\n", l.Version())
	fmt.Printf("Commitment: %s\n", col.Commitment().Hex())

	if *token != 0 {
		id := registry.TokenID(*token)
		owner, err := col.OwnerOf(id)
		if err != nil {
			return err
		}
		approved, _ := col.GetApproved(id)
		uri, _ := col.TokenURI(id)
		fmt.Printf("Token %d: owner=%s approved=%q uri=%s\n", id, owner, approved, uri)
	}

	if *account != "" {
		bal, err := col.BalanceOf(registry.Address(*account))
		if err != nil {
			return err
		}
		fmt.Printf("Balance of %s: %d\n", *account, bal)
	}

	return nil
}
