package events

import "context"

// Publisher delivers payment events. Implementations must be safe for
// concurrent use; the submitter may run many payments at once.
type Publisher interface {
	Publish(ctx context.Context, event PaymentEvent) error
	Close() error
}

// Nop drops every event.
type Nop struct{}

func (Nop) Publish(context.Context, PaymentEvent) error { return nil }
func (Nop) Close() error                                { return nil }
