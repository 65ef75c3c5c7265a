package notify

import (
	"fmt"
	"net/smtp"
	"strings"

	"go.uber.org/zap"
)

// Message is a single transactional email.
type Message struct {
	To       string
	Subject  string
	HTMLBody string
}

// Sender delivers a message to a recipient. Delivery is best-effort; the
// caller never learns more than success or failure of the hand-off.
type Sender interface {
	Send(msg Message) error
}

// SMTPSender delivers messages over plain SMTP.
type SMTPSender struct {
	addr     string
	from     string
	username string
	password string
	host     string
}

func NewSMTPSender(host, port, username, password, from string) *SMTPSender {
	return &SMTPSender{
		addr:     host + ":" + port,
		from:     from,
		username: username,
		password: password,
		host:     host,
	}
}

func (s *SMTPSender) Send(msg Message) error {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", s.from)
	fmt.Fprintf(&b, "To: %s\r\n", msg.To)
	fmt.Fprintf(&b, "Subject: %s\r\n", msg.Subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(msg.HTMLBody)

	var auth smtp.Auth
	if s.username != "" {
		auth = smtp.PlainAuth("", s.username, s.password, s.host)
	}

	if err := smtp.SendMail(s.addr, auth, s.from, []string{msg.To}, []byte(b.String())); err != nil {
		return fmt.Errorf("smtp send to %s: %w", msg.To, err)
	}
	return nil
}

// LogSender is used when no SMTP host is configured: messages are logged
// instead of delivered so the workflow keeps functioning in development.
type LogSender struct {
	logger *zap.Logger
}

func NewLogSender(logger *zap.Logger) *LogSender {
	return &LogSender{logger: logger}
}

func (s *LogSender) Send(msg Message) error {
	s.logger.Info("email delivery disabled, dropping message",
		zap.String("to", msg.To),
		zap.String("subject", msg.Subject),
	)
	return nil
}
