// Package repos layers typed, per-entity repositories over the generic
// record accessor. Screens read and write named, typed operations instead of
// free-form table/column strings, and multi-field edits go through BatchSave
// which reports exactly which fields failed.
package repos

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/Mathew005/event-platform-sub000/pkg/client"
)

var ErrNotLoaded = errors.New("record not loaded")

// Report is the outcome of a batch field save. Every field is attempted;
// there is no transaction across them, so the caller gets the exact split
// instead of a single boolean.
type Report struct {
	Saved  []string
	Failed []string
}

func (r Report) AllSaved() bool {
	return len(r.Failed) == 0
}

func (r Report) Summary() string {
	total := len(r.Saved) + len(r.Failed)
	return fmt.Sprintf("%d of %d fields saved", len(r.Saved), total)
}

// BatchSave writes each field with a single-column update. Fields are
// attempted in sorted order for reproducibility; a failure does not stop the
// remaining fields.
func BatchSave(ctx context.Context, c *client.Client, table, id, idColumn string, fields map[string]any) Report {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)

	var report Report
	for _, name := range names {
		if c.SaveField(ctx, table, id, idColumn, name, fields[name]) {
			report.Saved = append(report.Saved, name)
		} else {
			report.Failed = append(report.Failed, name)
		}
	}
	return report
}

func toRow(v any) (client.Row, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode row: %w", err)
	}
	var row client.Row
	if err := json.Unmarshal(raw, &row); err != nil {
		return nil, fmt.Errorf("failed to decode row: %w", err)
	}
	delete(row, "id")
	delete(row, "created_at")
	delete(row, "updated_at")
	return row, nil
}

func fromRow(row client.Row, dst any) error {
	if row == nil {
		return ErrNotLoaded
	}
	raw, err := json.Marshal(row)
	if err != nil {
		return fmt.Errorf("failed to encode row: %w", err)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("failed to decode row: %w", err)
	}
	return nil
}
