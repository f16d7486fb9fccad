package mailer

import (
	"moviemarks/internal/config"

	"gopkg.in/gomail.v2"
)

// Sender delivers transactional mail. Delivery failures surface to the
// caller; nothing is queued or retried here.
type Sender interface {
	Send(to, subject, body string) error
}

type SMTPSender struct {
	cfg *config.Config
}

func NewSMTPSender(cfg *config.Config) *SMTPSender {
	return &SMTPSender{cfg: cfg}
}

func (e *SMTPSender) Send(to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", e.cfg.SMTPFrom)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	d := gomail.NewDialer(
		e.cfg.SMTPHost,
		e.cfg.SMTPPort,
		e.cfg.SMTPUser,
		e.cfg.SMTPPassword,
	)

	return d.DialAndSend(m)
}
