package ledger_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/pflow-xyz/go-nftregistry/eventsource"
	"github.com/pflow-xyz/go-nftregistry/ledger"
	"github.com/pflow-xyz/go-nftregistry/registry"
)

const (
	admin = registry.Address("admin")
	alice = registry.Address("alice")
	bob   = registry.Address("bob")
	carol = registry.Address("carol")
)

var testConfig = registry.Config{
	Name:     "MyNFT",
	Symbol:   "MNFT",
	Capacity: 100,
	BaseURI:  "https://metadata.example.com/",
}

func newTestLedger(t *testing.T) (*ledger.Ledger, eventsource.Store) {
	t.Helper()
	store := eventsource.NewMemoryStore()
	l, err := ledger.Create(context.Background(), store, "mynft", testConfig, admin)
	if err != nil {
		t.Fatalf("create ledger: %v", err)
	}
	return l, store
}

func TestCreate(t *testing.T) {
	l, store := newTestLedger(t)

	if l.Version() != 0 {
		t.Errorf("expected version 0 after create, got %d", l.Version())
	}
	if l.Collection().Name() != "MyNFT" {
		t.Errorf("unexpected name %q", l.Collection().Name())
	}

	t.Run("duplicate stream", func(t *testing.T) {
		_, err := ledger.Create(context.Background(), store, "mynft", testConfig, admin)
		if !errors.Is(err, ledger.ErrStreamExists) {
			t.Errorf("expected ErrStreamExists, got %v", err)
		}
	})

	t.Run("invalid config", func(t *testing.T) {
		bad := testConfig
		bad.Capacity = 0
		_, err := ledger.Create(context.Background(), store, "other", bad, admin)
		if !errors.Is(err, registry.ErrInvalidCapacity) {
			t.Errorf("expected ErrInvalidCapacity, got %v", err)
		}
	})
}

func TestOpen_Replay(t *testing.T) {
	ctx := context.Background()
	l, store := newTestLedger(t)

	ops := []func() error{
		func() error { return l.Mint(ctx, admin, alice, 1) },
		func() error { return l.Mint(ctx, admin, bob, 2) },
		func() error { return l.Approve(ctx, alice, bob, 1) },
		func() error { return l.TransferFrom(ctx, bob, alice, bob, 1) },
		func() error { return l.SetApprovalForAll(ctx, bob, carol, true) },
		func() error { return l.Burn(ctx, bob, 2) },
		func() error { return l.PauseMinting(ctx, admin) },
		func() error { return l.UnpauseMinting(ctx, admin) },
		func() error { return l.SetBaseURI(ctx, admin, "ipfs://tokens/") },
	}
	for i, op := range ops {
		if err := op(); err != nil {
			t.Fatalf("op %d failed: %v", i, err)
		}
	}

	replica, err := ledger.Open(ctx, store, "mynft")
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}

	live, rebuilt := l.Collection(), replica.Collection()
	if live.Commitment().Cmp(rebuilt.Commitment()) != 0 {
		t.Errorf("replayed commitment differs: %s vs %s",
			live.Commitment().Hex(), rebuilt.Commitment().Hex())
	}
	if rebuilt.TotalSupply() != live.TotalSupply() {
		t.Errorf("replayed supply %d, want %d", rebuilt.TotalSupply(), live.TotalSupply())
	}
	if rebuilt.BaseURI() != "ipfs://tokens/" {
		t.Errorf("replayed base URI %q", rebuilt.BaseURI())
	}
	if rebuilt.Paused() != live.Paused() {
		t.Errorf("replayed paused %v, want %v", rebuilt.Paused(), live.Paused())
	}
	if !rebuilt.IsApprovedForAll(bob, carol) {
		t.Error("replayed operator approval missing")
	}
	owner, err := rebuilt.OwnerOf(1)
	if err != nil {
		t.Fatalf("owner query: %v", err)
	}
	if owner != bob {
		t.Errorf("replayed owner %s, want %s", owner, bob)
	}
	if rebuilt.Journal().Len() != live.Journal().Len() {
		t.Errorf("replayed journal has %d entries, want %d",
			rebuilt.Journal().Len(), live.Journal().Len())
	}
	if replica.Version() != l.Version() {
		t.Errorf("replayed version %d, want %d", replica.Version(), l.Version())
	}
}

func TestOpen_Missing(t *testing.T) {
	store := eventsource.NewMemoryStore()
	_, err := ledger.Open(context.Background(), store, "nope")
	if !errors.Is(err, ledger.ErrStreamEmpty) {
		t.Errorf("expected ErrStreamEmpty, got %v", err)
	}
}

func TestFailedOperationsPersistNothing(t *testing.T) {
	ctx := context.Background()
	l, store := newTestLedger(t)

	if err := l.Mint(ctx, admin, alice, 1); err != nil {
		t.Fatalf("mint failed: %v", err)
	}
	before := l.Version()

	if err := l.Mint(ctx, alice, alice, 2); !errors.Is(err, registry.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	if err := l.TransferFrom(ctx, bob, alice, bob, 1); !errors.Is(err, registry.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	if l.Version() != before {
		t.Errorf("failed operations appended events: version %d, want %d", l.Version(), before)
	}

	version, err := store.StreamVersion(ctx, "mynft")
	if err != nil {
		t.Fatalf("stream version: %v", err)
	}
	if version != before {
		t.Errorf("store version %d, want %d", version, before)
	}
}

type rejectingReceiver struct{}

func (rejectingReceiver) OnTokenReceived(_, _ registry.Address, _ registry.TokenID, _ []byte) (registry.Ack, error) {
	return "wrong", nil
}

func TestRejectedSafeTransferPersistsNothing(t *testing.T) {
	ctx := context.Background()
	l, _ := newTestLedger(t)
	l.BindResolver(registry.ResolverFunc(func(addr registry.Address) registry.Receiver {
		if addr == bob {
			return rejectingReceiver{}
		}
		return nil
	}))

	if err := l.Mint(ctx, admin, alice, 1); err != nil {
		t.Fatalf("mint failed: %v", err)
	}
	before := l.Version()

	err := l.SafeTransferFrom(ctx, alice, alice, bob, 1)
	if !errors.Is(err, registry.ErrReceiverRejected) {
		t.Fatalf("expected ErrReceiverRejected, got %v", err)
	}
	if l.Version() != before {
		t.Errorf("rejected safe transfer appended events")
	}
	owner, _ := l.Collection().OwnerOf(1)
	if owner != alice {
		t.Errorf("rejected safe transfer moved the token to %s", owner)
	}
}

func TestExport(t *testing.T) {
	ctx := context.Background()
	l, _ := newTestLedger(t)
	if err := l.Mint(ctx, admin, alice, 1); err != nil {
		t.Fatalf("mint failed: %v", err)
	}
	if err := l.TransferFrom(ctx, alice, alice, bob, 1); err != nil {
		t.Fatalf("transfer failed: %v", err)
	}

	t.Run("jsonl", func(t *testing.T) {
		var buf bytes.Buffer
		if err := l.WriteJSONL(ctx, &buf); err != nil {
			t.Fatalf("jsonl export failed: %v", err)
		}
		lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
		if len(lines) != 3 { // CollectionCreated + 2 transfers
			t.Errorf("expected 3 lines, got %d", len(lines))
		}
		if !strings.Contains(lines[1], `"Transfer"`) {
			t.Errorf("unexpected second line: %s", lines[1])
		}
	})

	t.Run("csv", func(t *testing.T) {
		var buf bytes.Buffer
		if err := l.WriteCSV(ctx, &buf); err != nil {
			t.Fatalf("csv export failed: %v", err)
		}
		lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
		if len(lines) != 4 { // header + 3 events
			t.Errorf("expected 4 lines, got %d", len(lines))
		}
		if !strings.HasPrefix(lines[0], "version,id,type,timestamp") {
			t.Errorf("unexpected header: %s", lines[0])
		}
	})
}

func TestSQLiteRoundTrip(t *testing.T) {
	ctx := context.Background()
	store, err := eventsource.NewSQLiteStore(":memory:")
	if err != nil {
		t.Fatalf("sqlite store: %v", err)
	}
	defer store.Close()

	l, err := ledger.Create(ctx, store, "mynft", testConfig, admin)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := l.Mint(ctx, admin, alice, 1); err != nil {
		t.Fatalf("mint failed: %v", err)
	}
	if err := l.Approve(ctx, alice, bob, 1); err != nil {
		t.Fatalf("approve failed: %v", err)
	}
	if err := l.TransferFrom(ctx, bob, alice, bob, 1); err != nil {
		t.Fatalf("transfer failed: %v", err)
	}

	replica, err := ledger.Open(ctx, store, "mynft")
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}
	if replica.Collection().Commitment().Cmp(l.Collection().Commitment()) != 0 {
		t.Error("sqlite replay commitment mismatch")
	}
	owner, err := replica.Collection().OwnerOf(1)
	if err != nil {
		t.Fatalf("owner query: %v", err)
	}
	if owner != bob {
		t.Errorf("replayed owner %s, want %s", owner, bob)
	}
}
