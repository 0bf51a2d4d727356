package notification

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"go.uber.org/zap"

	"github.com/Lmt310104/BookNow-BE-sub000/internal/domain/order"
	"github.com/Lmt310104/BookNow-BE-sub000/internal/infrastructure/config"
)

// sendFunc matches smtp.SendMail; swapped out in tests
type sendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// SMTPMailer sends transactional email over plain SMTP. When disabled
// in config every send is a silent no-op so development environments
// need no mail server.
type SMTPMailer struct {
	config config.SMTPConfig
	send   sendFunc
	logger *zap.Logger
}

// NewSMTPMailer creates a mailer from the SMTP config
func NewSMTPMailer(cfg config.SMTPConfig, logger *zap.Logger) *SMTPMailer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SMTPMailer{
		config: cfg,
		send:   smtp.SendMail,
		logger: logger,
	}
}

// SendWelcome emails a new customer after registration
func (m *SMTPMailer) SendWelcome(ctx context.Context, email, fullName string) error {
	subject := "Welcome to BookNow"
	body := fmt.Sprintf(
		"Hi %s,\r\n\r\nYour BookNow account is ready. Happy reading!\r\n\r\nThe BookNow team\r\n",
		fullName,
	)
	return m.deliver(ctx, email, subject, body)
}

// SendOrderConfirmation emails the customer a summary of their order
func (m *SMTPMailer) SendOrderConfirmation(ctx context.Context, email string, o *order.Order) error {
	subject := fmt.Sprintf("Your BookNow order %s", shortOrderRef(o))

	var b strings.Builder
	fmt.Fprintf(&b, "Hi %s,\r\n\r\nThanks for your order! Here is what you bought:\r\n\r\n", o.FullName)
	for i := range o.Items {
		item := &o.Items[i]
		fmt.Fprintf(&b, "  %d x %s — %s VND\r\n", item.Quantity, item.BookTitle, item.TotalPrice.StringFixed(0))
	}
	fmt.Fprintf(&b, "\r\nTotal: %s VND\r\n", o.TotalPrice.StringFixed(0))
	fmt.Fprintf(&b, "Shipping to: %s\r\n\r\nThe BookNow team\r\n", o.ShippingAddress)

	return m.deliver(ctx, email, subject, b.String())
}

func (m *SMTPMailer) deliver(ctx context.Context, to, subject, body string) error {
	if !m.config.Enabled {
		m.logger.Debug("SMTP disabled, dropping email", zap.String("to", to), zap.String("subject", subject))
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n%s",
		m.config.From, to, subject, body,
	)

	addr := fmt.Sprintf("%s:%d", m.config.Host, m.config.Port)
	var auth smtp.Auth
	if m.config.Username != "" {
		auth = smtp.PlainAuth("", m.config.Username, m.config.Password, m.config.Host)
	}

	if err := m.send(addr, auth, m.config.From, []string{to}, []byte(msg)); err != nil {
		return fmt.Errorf("smtp send to %s: %w", to, err)
	}

	m.logger.Info("Email sent", zap.String("to", to), zap.String("subject", subject))
	return nil
}

func shortOrderRef(o *order.Order) string {
	return strings.Split(o.ID.String(), "-")[0]
}
