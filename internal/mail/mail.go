package mail

import (
	"fmt"
	"net"
	"net/smtp"
	"strings"

	"blog/internal/config"
)

// Mailer delivers contact-form messages to the blog owner. Handlers depend on
// the interface so tests can substitute a recording fake.
type Mailer interface {
	Send(replyTo, subject, body string) error
}

// ContactMessage holds the submitted contact-form fields.
type ContactMessage struct {
	Name    string
	Email   string
	Phone   string
	Message string
}

// Body renders the fields as the notification mail expects them.
func (m ContactMessage) Body() string {
	return fmt.Sprintf("Name: %s\nEmail: %s\nPhone: %s\nMessage: %s", m.Name, m.Email, m.Phone, m.Message)
}

// SMTPMailer relays mail through a single SMTP account to a fixed recipient.
type SMTPMailer struct {
	host      string
	port      string
	username  string
	password  string
	recipient string
}

func NewSMTPMailer(conf config.Mail) *SMTPMailer {
	return &SMTPMailer{
		host:      conf.SMTPHost,
		port:      conf.SMTPPort,
		username:  conf.Username,
		password:  conf.Password,
		recipient: conf.Recipient,
	}
}

func (s *SMTPMailer) Send(replyTo, subject, body string) error {
	msg := strings.Join([]string{
		"From: " + s.username,
		"To: " + s.recipient,
		"Reply-To: " + replyTo,
		"Subject: " + subject,
		"",
		body,
	}, "\r\n")
	auth := smtp.PlainAuth("", s.username, s.password, s.host)
	return smtp.SendMail(net.JoinHostPort(s.host, s.port), auth, s.username, []string{s.recipient}, []byte(msg))
}
