package assistant

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"go.uber.org/zap"

	assistantapp "github.com/Lmt310104/BookNow-BE-sub000/internal/application/assistant"
	"github.com/Lmt310104/BookNow-BE-sub000/internal/infrastructure/config"
)

// GenerativeClient calls the external generative-AI HTTP service to
// produce short book blurbs for the chatbot.
type GenerativeClient struct {
	config config.AssistantConfig
	client *http.Client
	logger *zap.Logger
}

var _ assistantapp.Summarizer = (*GenerativeClient)(nil)

// NewGenerativeClient creates a client from the assistant config
func NewGenerativeClient(cfg config.AssistantConfig, logger *zap.Logger) *GenerativeClient {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GenerativeClient{
		config: cfg,
		client: &http.Client{Timeout: cfg.Timeout},
		logger: logger,
	}
}

type completionRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
}

type completionResponse struct {
	Text string `json:"text"`
}

// Summarize asks the service for a two-sentence blurb of the book
func (c *GenerativeClient) Summarize(ctx context.Context, title, description string) (string, error) {
	if !c.config.Enabled {
		return "", fmt.Errorf("assistant service is disabled")
	}

	prompt := fmt.Sprintf(
		"Summarize the book %q for a bookstore customer in at most two sentences. Description: %s",
		title, description,
	)

	body, err := json.Marshal(completionRequest{
		Model:  c.config.Model,
		Prompt: prompt,
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.BaseURL+"/v1/completions", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.config.APIKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("assistant request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("assistant service returned status %d", resp.StatusCode)
	}

	var completion completionResponse
	if err := json.NewDecoder(resp.Body).Decode(&completion); err != nil {
		return "", fmt.Errorf("assistant response decode: %w", err)
	}

	return strings.TrimSpace(completion.Text), nil
}
