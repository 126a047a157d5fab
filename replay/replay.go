// Package replay tracks webhook event IDs so redelivered events can be
// suppressed instead of handled twice.
package replay

import "context"

// Guard marks webhook event IDs as seen. Seen marks the ID and reports
// whether it had been marked before; implementations must be safe for
// concurrent use.
type Guard interface {
	Seen(ctx context.Context, eventID string) (bool, error)
	Close() error
}
