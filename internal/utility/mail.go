package utility

import (
	"fmt"
	"net/smtp"
	"time"

	"uniprep/internal/config"
)

type Mailer interface {
	SendMail(msg string, receiver string, subject string) error
}

type SMTPMailer struct {
	cfg config.MailConfig
}

func NewSMTPMailer(cfg config.MailConfig) *SMTPMailer {
	return &SMTPMailer{cfg: cfg}
}

func (m *SMTPMailer) SendMail(msg string, receiver string, subject string) error {
	if m.cfg.Address == "" {
		return fmt.Errorf("mail sender address is not configured")
	}
	auth := smtp.PlainAuth("", m.cfg.Address, m.cfg.Password, m.cfg.Host)
	from := fmt.Sprintf("%q <%s>", m.cfg.SenderName, m.cfg.Address)

	return smtp.SendMail(m.cfg.Host+":"+m.cfg.Port, auth, m.cfg.Address, []string{receiver}, buildMessage(from, receiver, subject, msg))
}

func buildMessage(from string, to string, subject string, msg string) []byte {
	return []byte(fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s", from, to, subject, msg))
}

// SendOTP mails code to receiver together with its lifetime.
func SendOTP(m Mailer, receiver string, code string, ttl time.Duration) error {
	body := fmt.Sprintf("Your OTP code is: %s. It will expire in %d minutes.", code, int(ttl.Minutes()))
	return m.SendMail(body, receiver, "Your UniPrep OTP Code")
}
