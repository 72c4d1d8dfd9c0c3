package llm

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/bytedance/sonic"
	"github.com/taskflow-io/taskflow/internal/config"
	"go.uber.org/zap"
)

// Message is one role-tagged turn of a completion request.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Completer is the boundary to the external text-completion service.
type Completer interface {
	Complete(ctx context.Context, messages []Message, maxTokens int, temperature float64) (string, error)
}

// Client talks to an OpenAI-compatible chat-completions endpoint.
type Client struct {
	BaseURL    string
	APIKey     string
	Model      string
	HTTPClient *http.Client
	Logger     *zap.Logger
}

// NewClient creates a new completion client.
func NewClient(cfg *config.Config, log *zap.Logger) *Client {
	timeout := time.Duration(cfg.OpenAI.TimeoutSec) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		BaseURL: cfg.OpenAI.BaseURL,
		APIKey:  cfg.OpenAI.APIKey,
		Model:   cfg.OpenAI.Model,
		HTTPClient: &http.Client{
			Timeout: timeout,
		},
		Logger: log,
	}
}

type completionRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float64   `json:"temperature"`
	MaxTokens   int       `json:"max_tokens"`
}

type completionResponse struct {
	Choices []struct {
		Message Message `json:"message"`
	} `json:"choices"`
}

// Complete sends one request/response round trip and returns the generated text.
func (c *Client) Complete(ctx context.Context, messages []Message, maxTokens int, temperature float64) (string, error) {
	endpoint := fmt.Sprintf("%s/chat/completions", c.BaseURL)

	payload, err := sonic.Marshal(completionRequest{
		Model:       c.Model,
		Messages:    messages,
		Temperature: temperature,
		MaxTokens:   maxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.APIKey)

	resp, err := c.HTTPClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		c.Logger.Error("completion request failed",
			zap.Int("status_code", resp.StatusCode),
			zap.String("body", string(body)))
		return "", fmt.Errorf("request failed with status %d: %s", resp.StatusCode, string(body))
	}

	var result completionResponse
	if err := sonic.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("unmarshal response: %w", err)
	}
	if len(result.Choices) == 0 {
		return "", fmt.Errorf("completion response has no choices")
	}

	return result.Choices[0].Message.Content, nil
}
