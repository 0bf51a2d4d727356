package notification

import (
	"context"

	"github.com/google/uuid"

	orderapp "github.com/Lmt310104/BookNow-BE-sub000/internal/application/order"
	"github.com/Lmt310104/BookNow-BE-sub000/internal/domain/order"
)

// OrderNotifier fans order notifications out to email and SMS
type OrderNotifier struct {
	mailer *SMTPMailer
	sms    *SMSClient
}

var _ orderapp.Notifier = (*OrderNotifier)(nil)

// NewOrderNotifier composes the mailer and SMS client into the order
// notification channel.
func NewOrderNotifier(mailer *SMTPMailer, sms *SMSClient) *OrderNotifier {
	return &OrderNotifier{mailer: mailer, sms: sms}
}

// SendOrderConfirmation emails the customer after checkout
func (n *OrderNotifier) SendOrderConfirmation(ctx context.Context, email string, o *order.Order) error {
	return n.mailer.SendOrderConfirmation(ctx, email, o)
}

// SendStatusUpdate texts the customer when the order status changes
func (n *OrderNotifier) SendStatusUpdate(ctx context.Context, phone string, orderID uuid.UUID, status order.Status) error {
	return n.sms.SendStatusUpdate(ctx, phone, orderID, status)
}
