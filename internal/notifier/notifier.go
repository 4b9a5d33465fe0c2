// Package notifier sends transactional email. Sends are best-effort: a
// failed send is logged by the caller and never rolls back the state
// mutation that triggered it.
package notifier

import "context"

// Notifier delivers one message to one recipient.
type Notifier interface {
	Send(ctx context.Context, recipientName, recipientEmail, subject, bodyHTML string) error
}

// Noop discards all messages. Used when SMTP is not configured and in tests.
type Noop struct{}

// Send implements Notifier.
func (Noop) Send(ctx context.Context, recipientName, recipientEmail, subject, bodyHTML string) error {
	return nil
}
