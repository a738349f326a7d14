// Command nftregistry manages fixed-capacity NFT collections persisted as
// event streams in a SQLite database.
package main

import (
	"fmt"
	"os"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	var err error
	switch command {
	case "create":
		err = create(args)
	case "mint":
		err = mint(args)
	case "transfer":
		err = transfer(args)
	case "approve":
		err = approve(args)
	case "burn":
		err = burn(args)
	case "pause":
		err = pause(args, true)
	case "unpause":
		err = pause(args, false)
	case "set-base-uri":
		err = setBaseURI(args)
	case "info":
		err = info(args)
	case "events":
		err = events(args)
	case "help", "-h", "--help":
		printUsage()
		return
	case "version", "-v", "--version":
		fmt.Println("nftregistry version 1.0.0")
		return
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`nftregistry - fixed-capacity NFT collection ledger

Usage:
  nftregistry <command> [options]

Commands:
  create        Create a new collection stream
  mint          Mint a token (admin only)
  transfer      Transfer a token (plain or safe)
  approve       Set single-token or blanket operator approval
  burn          Burn a token (owner only)
  pause         Pause minting (admin only)
  unpause       Resume minting (admin only)
  set-base-uri  Change the metadata base URI (admin only)
  info          Show collection state
  events        Show the notification stream
  help          Show this help message
  version       Show version information

Examples:
  nftregistry create --db ledger.db --stream mynft --name MyNFT --symbol MNFT --capacity 100
  nftregistry mint --db ledger.db --stream mynft --caller admin --to alice --id 1
  nftregistry transfer --db ledger.db --stream mynft --caller alice --from alice --to bob --id 1
  nftregistry info --db ledger.db --stream mynft`)
}
