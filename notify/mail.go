package notify

import (
	"context"
	"fmt"
	"mime"
	"net"
	"net/smtp"
	"strings"

	"github.com/labstack/gommon/log"
	"github.com/pkg/errors"
)

var logger = log.New("notify")

// Mailer delivers plain-text mail.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

type SMTPMailer struct {
	Host     string
	Port     string
	User     string
	Password string
	From     string
}

func (m *SMTPMailer) Send(ctx context.Context, to, subject, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	var auth smtp.Auth
	if m.User != "" {
		auth = smtp.PlainAuth("", m.User, m.Password, m.Host)
	}
	err := smtp.SendMail(net.JoinHostPort(m.Host, m.Port), auth, m.From, []string{to}, m.message(to, subject, body))
	return errors.Wrapf(err, "send mail to %s", to)
}

func (m *SMTPMailer) message(to, subject, body string) []byte {
	return []byte(strings.Join([]string{
		"From: " + singleLine(m.From),
		"To: " + singleLine(to),
		"Subject: " + mime.QEncoding.Encode("utf-8", singleLine(subject)),
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=utf-8",
		"",
		body,
	}, "\r\n"))
}

var lineBreaks = strings.NewReplacer("\r\n", " ", "\r", " ", "\n", " ")

// singleLine keeps a header value from starting a new header.
func singleLine(s string) string {
	return lineBreaks.Replace(s)
}

// Discard is used when no mail transport is configured.
type Discard struct{}

func (Discard) Send(_ context.Context, to, subject, _ string) error {
	logger.Debugf("mail to %s dropped: %q", to, subject)
	return nil
}

// BestEffort sends a mail and only logs a failure. Mail delivery never fails
// the operation that triggered it.
func BestEffort(ctx context.Context, m Mailer, to, subject, body string) {
	if to == "" {
		return
	}
	if err := m.Send(ctx, to, subject, body); err != nil {
		logger.Warnf("mail %q not delivered: %s", subject, err.Error())
	}
}

func OrderConfirmation(orderID int64, name, amount string) (subject, body string) {
	subject = fmt.Sprintf("Order #%d confirmed", orderID)
	body = fmt.Sprintf("Hi %s,\n\nthanks for your order #%d. Total: $%s.\nWe will let you know once it ships.\n", name, orderID, amount)
	return subject, body
}

func OrderShipped(orderID int64, name string) (subject, body string) {
	subject = fmt.Sprintf("Order #%d shipped", orderID)
	body = fmt.Sprintf("Hi %s,\n\nyour order #%d is on its way.\n", name, orderID)
	return subject, body
}

func NewMessage(from, name, message string) (subject, body string) {
	subject = "New message from " + singleLine(name)
	body = fmt.Sprintf("%s <%s> wrote:\n\n%s\n", name, from, message)
	return subject, body
}
