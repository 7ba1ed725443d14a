// Package notification delivers lifecycle emails to clients and providers.
// Delivery is always fire-and-forget: a protocol's economic outcome must
// never depend on whether a message got out.
package notification

import "context"

// Service notifies the parties of a request about lifecycle events. Both
// methods return immediately; delivery happens asynchronously and failures
// are logged, never propagated.
type Service interface {
	NotifyClient(ctx context.Context, clientID, subject, body string)
	NotifyProvider(ctx context.Context, providerID, subject, body string)
}

// Sender delivers a single message to one recipient address.
type Sender interface {
	Send(to, subject, body string) error
}
