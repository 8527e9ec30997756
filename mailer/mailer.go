package mailer

import (
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/suraj4812010/Videotube/config"
)

// Sender delivers out-of-band notifications. The recovery flow depends on
// this interface so tests can capture outbound mail.
type Sender interface {
	Send(to, subject, htmlBody string) error
}

// Mailer sends mail over SMTP.
type Mailer struct {
	from   string
	dialer *gomail.Dialer
}

var _ Sender = (*Mailer)(nil)

func New(cfg config.SMTP) (*Mailer, error) {
	if cfg.Host == "" {
		return nil, fmt.Errorf("missing SMTP_HOST environment variable")
	}
	if cfg.From == "" {
		return nil, fmt.Errorf("missing SMTP_FROM environment variable")
	}

	return &Mailer{
		from:   cfg.From,
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
	}, nil
}

func (m *Mailer) Send(to, subject, htmlBody string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", htmlBody)

	return m.dialer.DialAndSend(msg)
}
