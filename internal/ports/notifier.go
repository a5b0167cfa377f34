package ports

import "context"

// Notifier sends a failure report to the operator channel.
type Notifier interface {
	Notify(ctx context.Context, err error, details string) error
}
