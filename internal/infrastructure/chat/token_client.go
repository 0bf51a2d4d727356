package chat

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	messagingapp "github.com/Lmt310104/BookNow-BE-sub000/internal/application/messaging"
	"github.com/Lmt310104/BookNow-BE-sub000/internal/infrastructure/config"
)

// TokenClient mints chat tokens against the external chat provider
type TokenClient struct {
	config config.ChatConfig
	client *http.Client
	logger *zap.Logger
}

var _ messagingapp.TokenIssuer = (*TokenClient)(nil)

// NewTokenClient creates a token client from the chat config
func NewTokenClient(cfg config.ChatConfig, logger *zap.Logger) *TokenClient {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TokenClient{
		config: cfg,
		client: &http.Client{Timeout: cfg.Timeout},
		logger: logger,
	}
}

type tokenRequest struct {
	UserID      string `json:"userId"`
	DisplayName string `json:"displayName"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

// IssueToken requests a realtime chat token for the given user
func (c *TokenClient) IssueToken(ctx context.Context, userID uuid.UUID, displayName string) (string, error) {
	if !c.config.Enabled {
		return "", fmt.Errorf("chat token service is disabled")
	}

	body, err := json.Marshal(tokenRequest{
		UserID:      userID.String(),
		DisplayName: displayName,
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.BaseURL+"/tokens", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.config.APIKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("chat token request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return "", fmt.Errorf("chat token service returned status %d", resp.StatusCode)
	}

	var token tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&token); err != nil {
		return "", fmt.Errorf("chat token response decode: %w", err)
	}
	if token.Token == "" {
		return "", fmt.Errorf("chat token service returned an empty token")
	}

	return token.Token, nil
}
