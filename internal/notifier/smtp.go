package notifier

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"
)

// SMTP sends mail through a gomail dialer.
type SMTP struct {
	dialer *gomail.Dialer
	from   string
}

var _ Notifier = (*SMTP)(nil)

// NewSMTP creates an SMTP notifier.
func NewSMTP(host string, port int, user, password, from string) *SMTP {
	return &SMTP{
		dialer: gomail.NewDialer(host, port, user, password),
		from:   from,
	}
}

// Send delivers a single HTML message. The context is checked before
// dialing; gomail itself does not support cancellation mid-send.
func (s *SMTP) Send(ctx context.Context, recipientName, recipientEmail, subject, bodyHTML string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetAddressHeader("To", recipientEmail, recipientName)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", bodyHTML)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("send mail to %s: %w", recipientEmail, err)
	}
	return nil
}
