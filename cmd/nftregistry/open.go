package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/pflow-xyz/go-nftregistry/eventsource"
	"github.com/pflow-xyz/go-nftregistry/ledger"
)

// streamFlags adds the flags shared by every command.
func streamFlags(fs *flag.FlagSet) (db, stream *string) {
	db = fs.String("db", "ledger.db", "SQLite database file")
	stream = fs.String("stream", "", "Collection stream name (required)")
	return db, stream
}

// openLedger opens the store and replays the requested stream.
func openLedger(ctx context.Context, db, stream string) (*ledger.Ledger, *eventsource.SQLiteStore, error) {
	if stream == "" {
		return nil, nil, fmt.Errorf("--stream is required")
	}
	store, err := eventsource.NewSQLiteStore(db)
	if err != nil {
		return nil, nil, err
	}
	l, err := ledger.Open(ctx, store, stream)
	if err != nil {
		store.Close()
		return nil, nil, err
	}
	return l, store, nil
}
