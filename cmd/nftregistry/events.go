package main

import (
	"context"
	"flag"
	"fmt"
	"os"
)

func events(args []string) error {
	fs := flag.NewFlagSet("events", flag.ExitOnError)
	db, stream := streamFlags(fs)
	format := fs.String("format", "text", "Output format: text, jsonl, or csv")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: nftregistry events [options]

Show the collection's persisted event stream in commit order.

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

	switch *format {
	case "jsonl":
		return l.WriteJSONL(ctx, os.Stdout)
	case "csv":
		return l.WriteCSV(ctx, os.Stdout)
	case "text":
		evs, err := l.Events(ctx)
		if err != nil {
			return err
		}
		for _, e := range evs {
			fmt.Printf("%4d  %-18s %s  %s\n",
				e.Version, e.Type, e.Timestamp.Format("2006-01-02 15:04:05"), string(e.Data))
		}
		return nil
	default:
		return fmt.Errorf("unknown format %q", *format)
	}
}
