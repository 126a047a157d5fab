package dispatch

import (
	"context"
	"fmt"
)

// ItemResult is the per-item outcome of a batch run. Failed items carry the
// error text instead of aborting the batch when continue-on-failure is on.
type ItemResult struct {
	Index   int    `json:"index"`
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// RunBatch applies fn to each item in order.
//
// By default the first failure aborts the remaining items and is returned;
// results for the items processed so far are still returned alongside it.
// With continueOnFail, failures are converted to ItemResult records at the
// item boundary and the batch runs to completion. Successful items are
// never rolled back either way.
func RunBatch[T any](ctx context.Context, items []T, fn func(context.Context, T) error, continueOnFail bool) ([]ItemResult, error) {
	results := make([]ItemResult, 0, len(items))

	for i, item := range items {
		err := fn(ctx, item)
		if err == nil {
			results = append(results, ItemResult{Index: i, Success: true})
			continue
		}

		results = append(results, ItemResult{Index: i, Success: false, Error: err.Error()})
		if !continueOnFail {
			return results, fmt.Errorf("item %d: %w", i, err)
		}
	}

	return results, nil
}
