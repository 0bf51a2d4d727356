package notification

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Lmt310104/BookNow-BE-sub000/internal/domain/order"
	"github.com/Lmt310104/BookNow-BE-sub000/internal/infrastructure/config"
)

// SMSClient posts text messages to the HTTP SMS gateway. Disabled
// config turns every send into a no-op.
type SMSClient struct {
	config config.SMSConfig
	client *http.Client
	logger *zap.Logger
}

// NewSMSClient creates an SMS client from the gateway config
func NewSMSClient(cfg config.SMSConfig, logger *zap.Logger) *SMSClient {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SMSClient{
		config: cfg,
		client: &http.Client{Timeout: cfg.Timeout},
		logger: logger,
	}
}

type smsPayload struct {
	To      string `json:"to"`
	Sender  string `json:"sender,omitempty"`
	Message string `json:"message"`
}

// SendStatusUpdate texts the customer that their order changed status
func (c *SMSClient) SendStatusUpdate(ctx context.Context, phone string, orderID uuid.UUID, status order.Status) error {
	message := fmt.Sprintf("BookNow: your order %s is now %s.", shortRef(orderID), status)
	return c.sendText(ctx, phone, message)
}

func (c *SMSClient) sendText(ctx context.Context, phone, message string) error {
	if !c.config.Enabled {
		c.logger.Debug("SMS disabled, dropping message", zap.String("to", phone))
		return nil
	}

	body, err := json.Marshal(smsPayload{
		To:      phone,
		Sender:  c.config.Sender,
		Message: message,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.BaseURL+"/messages", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.config.APIKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("sms gateway request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("sms gateway returned status %d", resp.StatusCode)
	}

	c.logger.Info("SMS sent", zap.String("to", phone))
	return nil
}

func shortRef(id uuid.UUID) string {
	return id.String()[:8]
}
