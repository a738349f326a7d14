package eventsource

import (
	"context"
	"errors"
	"sync"
)

// ErrConcurrencyConflict is returned by Append when the expected version
// does not match the stream's current version.
var ErrConcurrencyConflict = errors.New("eventsource: concurrency conflict")

// Store persists ordered event streams.
type Store interface {
	// Append atomically adds events to a stream. expectedVersion must equal
	// the stream's current version (-1 for a new stream) or the append
	// fails with ErrConcurrencyConflict. Returns the new stream version.
	Append(ctx context.Context, stream string, expectedVersion int, events []*Event) (int, error)

	// Read returns all events of a stream with version >= fromVersion,
	// in version order.
	Read(ctx context.Context, stream string, fromVersion int) ([]*Event, error)

	// StreamVersion returns the current version of a stream, or -1 if the
	// stream does not exist.
	StreamVersion(ctx context.Context, stream string) (int, error)

	// Close releases store resources.
	Close() error
}

// MemoryStore is an in-memory Store, primarily for tests and replay.
type MemoryStore struct {
	mu      sync.RWMutex
	streams map[string][]*Event
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{streams: make(map[string][]*Event)}
}

// Append atomically adds events to a stream. The version check applies even
// to an empty batch, so a stale writer never observes success.
func (s *MemoryStore) Append(ctx context.Context, stream string, expectedVersion int, events []*Event) (int, error) {
	if err := ctx.Err(); err != nil {
		return -1, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	existing := s.streams[stream]
	current := len(existing) - 1
	if current != expectedVersion {
		return current, ErrConcurrencyConflict
	}

	for _, e := range events {
		clone := *e
		clone.Stream = stream
		clone.Version = current + 1
		current++
		existing = append(existing, &clone)
	}
	s.streams[stream] = existing

	return current, nil
}

// Read returns events of a stream with version >= fromVersion.
func (s *MemoryStore) Read(ctx context.Context, stream string, fromVersion int) ([]*Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	existing := s.streams[stream]
	var out []*Event
	for _, e := range existing {
		if e.Version >= fromVersion {
			clone := *e
			out = append(out, &clone)
		}
	}
	return out, nil
}

// StreamVersion returns the current version of a stream (-1 if absent).
func (s *MemoryStore) StreamVersion(ctx context.Context, stream string) (int, error) {
	if err := ctx.Err(); err != nil {
		return -1, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.streams[stream]) - 1, nil
}

// Close is a no-op for the in-memory store.
func (s *MemoryStore) Close() error { return nil }

// Ensure MemoryStore implements Store.
var _ Store = (*MemoryStore)(nil)
