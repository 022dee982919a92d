package utils

import (
	"fmt"
	"net/smtp"

	"github.com/stanislausjustin/user-service/config"
)

// Sender dispatches outbound mail. Tests substitute a capturing fake.
type Sender interface {
	Send(to, subject, body string) error
}

// SMTPSender sends plain-text mail over SMTP.
type SMTPSender struct {
	host string
	port string
	user string
	pass string
}

func NewSMTPSender(cfg *config.Config) *SMTPSender {
	return &SMTPSender{
		host: cfg.SMTPHost,
		port: cfg.SMTPPort,
		user: cfg.SMTPUser,
		pass: cfg.SMTPPass,
	}
}

func (s *SMTPSender) Send(to, subject, body string) error {
	if s.host == "" || s.port == "" || s.user == "" || s.pass == "" {
		return fmt.Errorf("smtp not configured")
	}

	addr := s.host + ":" + s.port
	from := s.user

	msg := "From: " + from + "\r\n" +
		"To: " + to + "\r\n" +
		"Subject: " + subject + "\r\n" +
		"Content-Type: text/plain; charset=\"utf-8\"\r\n\r\n" +
		body + "\r\n"

	auth := smtp.PlainAuth("", s.user, s.pass, s.host)
	return smtp.SendMail(addr, auth, from, []string{to}, []byte(msg))
}
