package eventsource_test

import (
	"context"
	"errors"
	"testing"

	"github.com/pflow-xyz/go-nftregistry/eventsource"
)

func TestMemoryStore(t *testing.T) {
	runStoreTests(t, func() eventsource.Store {
		return eventsource.NewMemoryStore()
	})
}

func TestSQLiteStore(t *testing.T) {
	runStoreTests(t, func() eventsource.Store {
		store, err := eventsource.NewSQLiteStore(":memory:")
		if err != nil {
			t.Fatalf("failed to create sqlite store: %v", err)
		}
		return store
	})
}

func runStoreTests(t *testing.T, newStore func() eventsource.Store) {
	t.Run("AppendAndRead", func(t *testing.T) {
		store := newStore()
		defer store.Close()
		ctx := context.Background()

		event1, _ := eventsource.NewEvent("stream-1", "Created", map[string]string{"name": "test"})
		event2, _ := eventsource.NewEvent("stream-1", "Updated", map[string]string{"name": "updated"})

		version, err := store.Append(ctx, "stream-1", -1, []*eventsource.Event{event1})
		if err != nil {
			t.Fatalf("append failed: %v", err)
		}
		if version != 0 {
			t.Errorf("expected version 0, got %d", version)
		}

		version, err = store.Append(ctx, "stream-1", 0, []*eventsource.Event{event2})
		if err != nil {
			t.Fatalf("append failed: %v", err)
		}
		if version != 1 {
			t.Errorf("expected version 1, got %d", version)
		}

		events, err := store.Read(ctx, "stream-1", 0)
		if err != nil {
			t.Fatalf("read failed: %v", err)
		}
		if len(events) != 2 {
			t.Fatalf("expected 2 events, got %d", len(events))
		}
		if events[0].Type != "Created" {
			t.Errorf("expected type Created, got %s", events[0].Type)
		}
		if events[1].Type != "Updated" {
			t.Errorf("expected type Updated, got %s", events[1].Type)
		}

		var payload map[string]string
		if err := events[1].Decode(&payload); err != nil {
			t.Fatalf("decode failed: %v", err)
		}
		if payload["name"] != "updated" {
			t.Errorf("unexpected payload: %v", payload)
		}
	})

	t.Run("ConcurrencyConflict", func(t *testing.T) {
		store := newStore()
		defer store.Close()
		ctx := context.Background()

		event1, _ := eventsource.NewEvent("stream-1", "Created", nil)
		event2, _ := eventsource.NewEvent("stream-1", "Updated", nil)

		_, err := store.Append(ctx, "stream-1", -1, []*eventsource.Event{event1})
		if err != nil {
			t.Fatalf("append failed: %v", err)
		}

		// Wrong expected version (5 instead of 0)
		_, err = store.Append(ctx, "stream-1", 5, []*eventsource.Event{event2})
		if !errors.Is(err, eventsource.ErrConcurrencyConflict) {
			t.Errorf("expected concurrency conflict, got: %v", err)
		}

		_, err = store.Append(ctx, "stream-1", 0, []*eventsource.Event{event2})
		if err != nil {
			t.Errorf("append with correct version failed: %v", err)
		}
	})

	t.Run("EmptyAppend", func(t *testing.T) {
		store := newStore()
		defer store.Close()
		ctx := context.Background()

		event, _ := eventsource.NewEvent("stream-1", "Created", nil)
		if _, err := store.Append(ctx, "stream-1", -1, []*eventsource.Event{event}); err != nil {
			t.Fatalf("append failed: %v", err)
		}

		// A stale writer is rejected even with nothing to append.
		_, err := store.Append(ctx, "stream-1", 5, nil)
		if !errors.Is(err, eventsource.ErrConcurrencyConflict) {
			t.Errorf("expected concurrency conflict, got: %v", err)
		}

		version, err := store.Append(ctx, "stream-1", 0, nil)
		if err != nil {
			t.Fatalf("empty append failed: %v", err)
		}
		if version != 0 {
			t.Errorf("expected version 0, got %d", version)
		}
	})

	t.Run("StreamVersion", func(t *testing.T) {
		store := newStore()
		defer store.Close()
		ctx := context.Background()

		version, err := store.StreamVersion(ctx, "stream-1")
		if err != nil {
			t.Fatalf("stream version failed: %v", err)
		}
		if version != -1 {
			t.Errorf("expected version -1 for non-existent stream, got %d", version)
		}

		event, _ := eventsource.NewEvent("stream-1", "Created", nil)
		if _, err = store.Append(ctx, "stream-1", -1, []*eventsource.Event{event}); err != nil {
			t.Fatalf("append failed: %v", err)
		}

		version, err = store.StreamVersion(ctx, "stream-1")
		if err != nil {
			t.Fatalf("stream version failed: %v", err)
		}
		if version != 0 {
			t.Errorf("expected version 0, got %d", version)
		}
	})

	t.Run("ReadFromVersion", func(t *testing.T) {
		store := newStore()
		defer store.Close()
		ctx := context.Background()

		var batch []*eventsource.Event
		for i := 0; i < 5; i++ {
			e, _ := eventsource.NewEvent("stream-1", "Tick", map[string]int{"n": i})
			batch = append(batch, e)
		}
		if _, err := store.Append(ctx, "stream-1", -1, batch); err != nil {
			t.Fatalf("append failed: %v", err)
		}

		events, err := store.Read(ctx, "stream-1", 3)
		if err != nil {
			t.Fatalf("read failed: %v", err)
		}
		if len(events) != 2 {
			t.Fatalf("expected 2 events from version 3, got %d", len(events))
		}
		if events[0].Version != 3 || events[1].Version != 4 {
			t.Errorf("unexpected versions: %d, %d", events[0].Version, events[1].Version)
		}
	})

	t.Run("IndependentStreams", func(t *testing.T) {
		store := newStore()
		defer store.Close()
		ctx := context.Background()

		e1, _ := eventsource.NewEvent("stream-a", "Created", nil)
		e2, _ := eventsource.NewEvent("stream-b", "Created", nil)

		if _, err := store.Append(ctx, "stream-a", -1, []*eventsource.Event{e1}); err != nil {
			t.Fatalf("append failed: %v", err)
		}
		if _, err := store.Append(ctx, "stream-b", -1, []*eventsource.Event{e2}); err != nil {
			t.Fatalf("append failed: %v", err)
		}

		events, err := store.Read(ctx, "stream-a", 0)
		if err != nil {
			t.Fatalf("read failed: %v", err)
		}
		if len(events) != 1 {
			t.Errorf("expected 1 event in stream-a, got %d", len(events))
		}
	})
}
