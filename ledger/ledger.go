// Package ledger binds a registry.Collection to an eventsource.Store.
// Every committed operation's notifications are appended to one event
// stream, and a collection can be rebuilt from scratch by replaying that
// stream through the real registry operations.
package ledger

import (
	"context"
	"errors"
	"fmt"

	"github.com/pflow-xyz/go-nftregistry/eventsource"
	"github.com/pflow-xyz/go-nftregistry/registry"
)

// Stream event types beyond the registry notification kinds.
const (
	TypeCollectionCreated = "CollectionCreated"
	TypeBaseURISet        = "BaseURISet"
)

var (
	ErrStreamExists  = errors.New("ledger: stream already exists")
	ErrStreamEmpty   = errors.New("ledger: stream does not exist")
	ErrCorruptStream = errors.New("ledger: corrupt stream")
)

// CreatedPayload is the first event of every stream.
type CreatedPayload struct {
	Config registry.Config  `json:"config"`
	Admin  registry.Address `json:"admin"`
}

// BaseURIPayload records an admin base-URI change. SetBaseURI emits no
// public notification, so the ledger journals it with its own event type to
// keep replay complete.
type BaseURIPayload struct {
	URI string `json:"uri"`
}

// Ledger is an event-sourced collection: a live Collection plus the stream
// that records every committed operation.
type Ledger struct {
	store   eventsource.Store
	stream  string
	admin   registry.Address
	col     *registry.Collection
	version int
}

// Create starts a new collection stream. Fails if the stream already holds
// events or the configuration is invalid.
func Create(ctx context.Context, store eventsource.Store, stream string, cfg registry.Config, admin registry.Address) (*Ledger, error) {
	col, err := registry.New(cfg, admin)
	if err != nil {
		return nil, err
	}

	current, err := store.StreamVersion(ctx, stream)
	if err != nil {
		return nil, err
	}
	if current != -1 {
		return nil, fmt.Errorf("%w: %s", ErrStreamExists, stream)
	}

	created, err := eventsource.NewEvent(stream, TypeCollectionCreated, CreatedPayload{Config: cfg, Admin: admin})
	if err != nil {
		return nil, err
	}
	version, err := store.Append(ctx, stream, -1, []*eventsource.Event{created})
	if err != nil {
		return nil, err
	}

	return &Ledger{store: store, stream: stream, admin: admin, col: col, version: version}, nil
}

// Open rebuilds a collection by replaying its stream through the real
// registry operations. The replayed collection is indistinguishable from
// the live one: same state, same journal, same commitment.
func Open(ctx context.Context, store eventsource.Store, stream string) (*Ledger, error) {
	events, err := store.Read(ctx, stream, 0)
	if err != nil {
		return nil, err
	}
	if len(events) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrStreamEmpty, stream)
	}
	if events[0].Type != TypeCollectionCreated {
		return nil, fmt.Errorf("%w: first event is %s", ErrCorruptStream, events[0].Type)
	}

	var created CreatedPayload
	if err := events[0].Decode(&created); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptStream, err)
	}
	col, err := registry.New(created.Config, created.Admin)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptStream, err)
	}

	l := &Ledger{
		store:   store,
		stream:  stream,
		admin:   created.Admin,
		col:     col,
		version: events[len(events)-1].Version,
	}
	for _, e := range events[1:] {
		if err := l.replay(e); err != nil {
			return nil, fmt.Errorf("%w: event %d (%s): %v", ErrCorruptStream, e.Version, e.Type, err)
		}
	}
	return l, nil
}

// replay applies one stored event by re-executing the operation it records.
// Callers are derivable: admin performed mint/pause/baseURI, the owner
// performed approvals, and transfers are replayed as the sending owner.
func (l *Ledger) replay(e *eventsource.Event) error {
	switch e.Type {
	case registry.KindTransfer:
		var n registry.TransferNote
		if err := e.Decode(&n); err != nil {
			return err
		}
		switch {
		case n.From.IsZero():
			return l.col.Mint(l.admin, n.To, n.Token)
		case n.To.IsZero():
			return l.col.Burn(n.From, n.Token)
		default:
			return l.col.TransferFrom(n.From, n.From, n.To, n.Token)
		}

	case registry.KindApproval:
		var n registry.ApprovalNote
		if err := e.Decode(&n); err != nil {
			return err
		}
		return l.col.Approve(n.Owner, n.Approved, n.Token)

	case registry.KindApprovalForAll:
		var n registry.OperatorNote
		if err := e.Decode(&n); err != nil {
			return err
		}
		return l.col.SetApprovalForAll(n.Owner, n.Operator, n.Approved)

	case registry.KindMintingPaused:
		var n registry.PauseNote
		if err := e.Decode(&n); err != nil {
			return err
		}
		if n.Paused {
			return l.col.PauseMinting(l.admin)
		}
		return l.col.UnpauseMinting(l.admin)

	case TypeBaseURISet:
		var p BaseURIPayload
		if err := e.Decode(&p); err != nil {
			return err
		}
		return l.col.SetBaseURI(l.admin, p.URI)

	default:
		return fmt.Errorf("unknown event type %q", e.Type)
	}
}

// Collection returns the live collection.
func (l *Ledger) Collection() *registry.Collection { return l.col }

// Stream returns the event stream name.
func (l *Ledger) Stream() string { return l.stream }

// Version returns the stream version of the last persisted event.
func (l *Ledger) Version() int { return l.version }

// Admin returns the fixed admin account recorded at creation.
func (l *Ledger) Admin() registry.Address { return l.admin }

// BindResolver installs the safe-transfer receiver resolver.
func (l *Ledger) BindResolver(r registry.Resolver) { l.col.BindResolver(r) }

// Mint creates a token and persists the resulting notification.
func (l *Ledger) Mint(ctx context.Context, caller, to registry.Address, id registry.TokenID) error {
	return l.run(ctx, func() error { return l.col.Mint(caller, to, id) })
}

// Burn destroys a token and persists the resulting notification.
func (l *Ledger) Burn(ctx context.Context, caller registry.Address, id registry.TokenID) error {
	return l.run(ctx, func() error { return l.col.Burn(caller, id) })
}

// TransferFrom transfers a token and persists the resulting notification.
func (l *Ledger) TransferFrom(ctx context.Context, caller, from, to registry.Address, id registry.TokenID) error {
	return l.run(ctx, func() error { return l.col.TransferFrom(caller, from, to, id) })
}

// SafeTransferFrom safe-transfers a token and persists the resulting
// notification. A rolled-back transfer persists nothing.
func (l *Ledger) SafeTransferFrom(ctx context.Context, caller, from, to registry.Address, id registry.TokenID) error {
	return l.run(ctx, func() error { return l.col.SafeTransferFrom(caller, from, to, id) })
}

// SafeTransferFromData is SafeTransferFrom with an opaque payload.
func (l *Ledger) SafeTransferFromData(ctx context.Context, caller, from, to registry.Address, id registry.TokenID, data []byte) error {
	return l.run(ctx, func() error { return l.col.SafeTransferFromData(caller, from, to, id, data) })
}

// Approve sets or clears a single-token approval and persists it.
func (l *Ledger) Approve(ctx context.Context, caller, to registry.Address, id registry.TokenID) error {
	return l.run(ctx, func() error { return l.col.Approve(caller, to, id) })
}

// SetApprovalForAll grants or revokes blanket operator approval and persists it.
func (l *Ledger) SetApprovalForAll(ctx context.Context, caller, operator registry.Address, approved bool) error {
	return l.run(ctx, func() error { return l.col.SetApprovalForAll(caller, operator, approved) })
}

// PauseMinting pauses minting and persists it.
func (l *Ledger) PauseMinting(ctx context.Context, caller registry.Address) error {
	return l.run(ctx, func() error { return l.col.PauseMinting(caller) })
}

// UnpauseMinting resumes minting and persists it.
func (l *Ledger) UnpauseMinting(ctx context.Context, caller registry.Address) error {
	return l.run(ctx, func() error { return l.col.UnpauseMinting(caller) })
}

// SetBaseURI changes the metadata base URI and persists a BaseURISet event
// (there is no public notification for this operation).
func (l *Ledger) SetBaseURI(ctx context.Context, caller registry.Address, uri string) error {
	if err := l.col.SetBaseURI(caller, uri); err != nil {
		return err
	}
	e, err := eventsource.NewEvent(l.stream, TypeBaseURISet, BaseURIPayload{URI: uri})
	if err != nil {
		return err
	}
	return l.append(ctx, e)
}

// run executes a collection operation and persists the notifications it
// committed. Failed operations journal nothing and persist nothing.
func (l *Ledger) run(ctx context.Context, op func() error) error {
	mark := l.col.Journal().Len()
	if err := op(); err != nil {
		return err
	}

	entries := l.col.Journal().Entries()[mark:]
	events := make([]*eventsource.Event, 0, len(entries))
	for _, entry := range entries {
		e, err := eventsource.NewEvent(l.stream, entry.Note.Kind(), entry.Note)
		if err != nil {
			return err
		}
		events = append(events, e)
	}
	return l.append(ctx, events...)
}

func (l *Ledger) append(ctx context.Context, events ...*eventsource.Event) error {
	version, err := l.store.Append(ctx, l.stream, l.version, events)
	if err != nil {
		// A conflict means another writer owns the stream; the in-memory
		// state is ahead of the store and the caller must reopen.
		return err
	}
	l.version = version
	return nil
}

// Events returns the full persisted stream in version order.
func (l *Ledger) Events(ctx context.Context) ([]*eventsource.Event, error) {
	return l.store.Read(ctx, l.stream, 0)
}
