package mailer

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

// Mailer sends transactional mail over SMTP. Callers fire it on a
// goroutine and log failures; a mail outage never fails the request that
// triggered it.
type Mailer interface {
	SendWelcomeEmail(to, fullName string) error
	SendPasswordChangedEmail(to, fullName string) error
}

type smtpMailer struct {
	dialer *gomail.Dialer
	from   string
}

// New creates an SMTP-backed mailer.
func New(host string, port int, username, password, from string) Mailer {
	return &smtpMailer{
		dialer: gomail.NewDialer(host, port, username, password),
		from:   from,
	}
}

// SendWelcomeEmail greets a newly registered user.
func (m *smtpMailer) SendWelcomeEmail(to, fullName string) error {
	body := fmt.Sprintf(`<div style="max-width:600px;margin:0 auto;font-family:Arial,sans-serif">
  <h2>Welcome %s!</h2>
  <p>Your account has been successfully created.</p>
  <p>You can now log in and start using the store.</p>
</div>`, fullName)

	return m.send(to, "Welcome to Storefront", body)
}

// SendPasswordChangedEmail notifies a user that their password was changed.
func (m *smtpMailer) SendPasswordChangedEmail(to, fullName string) error {
	body := fmt.Sprintf(`<div style="max-width:600px;margin:0 auto;font-family:Arial,sans-serif">
  <h2>Password changed</h2>
  <p>Hi %s,</p>
  <p>Your password was just changed. If this wasn't you, contact support immediately.</p>
</div>`, fullName)

	return m.send(to, "Your password was changed", body)
}

func (m *smtpMailer) send(to, subject, htmlBody string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", htmlBody)

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("send mail to %s: %w", to, err)
	}
	return nil
}
