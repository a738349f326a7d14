package ledger

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"
)

// WriteJSONL writes the persisted stream as JSON Lines, one event per line.
func (l *Ledger) WriteJSONL(ctx context.Context, w io.Writer) error {
	events, err := l.Events(ctx)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(w)
	for _, e := range events {
		if err := enc.Encode(e); err != nil {
			return fmt.Errorf("ledger: encode event %d: %w", e.Version, err)
		}
	}
	return nil
}

// WriteCSV writes the persisted stream as CSV with a header row. The payload
// column carries the raw JSON of each event's data.
func (l *Ledger) WriteCSV(ctx context.Context, w io.Writer) error {
	events, err := l.Events(ctx)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"version", "id", "type", "timestamp", "payload"}); err != nil {
		return fmt.Errorf("ledger: write csv header: %w", err)
	}
	for _, e := range events {
		record := []string{
			strconv.Itoa(e.Version),
			e.ID,
			e.Type,
			e.Timestamp.Format(time.RFC3339Nano),
			string(e.Data),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("ledger: write csv record %d: %w", e.Version, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
