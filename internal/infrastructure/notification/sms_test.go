package notification

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Lmt310104/BookNow-BE-sub000/internal/domain/order"
	"github.com/Lmt310104/BookNow-BE-sub000/internal/infrastructure/config"
)

func TestSMSClient_SendStatusUpdate(t *testing.T) {
	t.Run("posts the message with auth", func(t *testing.T) {
		var got smsPayload
		var gotAuth string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotAuth = r.Header.Get("Authorization")
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/messages", r.URL.Path)
			require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
			w.WriteHeader(http.StatusAccepted)
		}))
		defer server.Close()

		client := NewSMSClient(config.SMSConfig{
			Enabled: true,
			BaseURL: server.URL,
			APIKey:  "sms-key",
			Sender:  "BookNow",
			Timeout: 5 * time.Second,
		}, zap.NewNop())

		orderID := uuid.New()
		err := client.SendStatusUpdate(context.Background(), "0901234567", orderID, order.StatusProcessing)

		require.NoError(t, err)
		assert.Equal(t, "Bearer sms-key", gotAuth)
		assert.Equal(t, "0901234567", got.To)
		assert.Equal(t, "BookNow", got.Sender)
		assert.Contains(t, got.Message, "processing")
		assert.Contains(t, got.Message, orderID.String()[:8])
	})

	t.Run("gateway error status is surfaced", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer server.Close()

		client := NewSMSClient(config.SMSConfig{
			Enabled: true,
			BaseURL: server.URL,
			Timeout: 5 * time.Second,
		}, zap.NewNop())

		err := client.SendStatusUpdate(context.Background(), "0901234567", uuid.New(), order.StatusDelivered)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "502")
	})

	t.Run("disabled config never hits the gateway", func(t *testing.T) {
		called := false
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			called = true
		}))
		defer server.Close()

		client := NewSMSClient(config.SMSConfig{
			Enabled: false,
			BaseURL: server.URL,
		}, zap.NewNop())

		err := client.SendStatusUpdate(context.Background(), "0901234567", uuid.New(), order.StatusDelivered)

		require.NoError(t, err)
		assert.False(t, called)
	})
}
