// Package notify renders a decided alert payload into a message and delivers
// it over the configured channels (SMTP email, Telegram). The decision core
// hands over canonical values only; everything presentational lives here.
package notify

import "context"

// Message is a rendered alert ready for transport. HTMLBody may be empty for
// channels that are text-only.
type Message struct {
	Subject  string
	TextBody string
	HTMLBody string
}

// Channel delivers a rendered message. Implementations must return an error
// on any failed delivery so the caller can withhold the ledger update.
type Channel interface {
	Name() string
	Send(ctx context.Context, msg Message) error
}
