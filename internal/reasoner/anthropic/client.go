package anthropic

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"claimlens/internal/config"
	"claimlens/internal/prompt"
	"claimlens/internal/reasoner"
)

const (
	apiURL     = "https://api.anthropic.com/v1/messages"
	apiVersion = "2023-06-01"
)

// Client implements port.Reasoner using the Anthropic Messages API.
type Client struct {
	model       string
	temperature float64
	maxTokens   int
	endpoint    string
	client      *http.Client
}

// NewClient creates an Anthropic-based reasoner from a provider config.
func NewClient(cfg *config.ReasonerConfig) *Client {
	return newClient(cfg, apiURL)
}

// NewClientWithEndpoint creates a client pointing at a custom API endpoint (for testing).
func NewClientWithEndpoint(cfg *config.ReasonerConfig, endpoint string) *Client {
	return newClient(cfg, endpoint)
}

func newClient(cfg *config.ReasonerConfig, endpoint string) *Client {
	model := cfg.DefaultModel
	if model == "" {
		model = "claude-sonnet-4-20250514"
	}
	maxTokens := cfg.MaxTokens
	if maxTokens == 0 {
		maxTokens = 2048
	}
	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	if timeout == 0 {
		timeout = 120 * time.Second
	}
	return &Client{
		model:       model,
		temperature: cfg.Temperature,
		maxTokens:   maxTokens,
		endpoint:    endpoint,
		client:      &http.Client{Timeout: timeout},
	}
}

func (c *Client) Complete(ctx context.Context, payload, credential string) (string, error) {
	reqBody := map[string]interface{}{
		"model":       c.model,
		"max_tokens":  c.maxTokens,
		"temperature": c.temperature,
		"system":      prompt.SystemInstruction,
		"messages": []map[string]interface{}{
			{"role": "user", "content": payload},
		},
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(bodyBytes))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", credential)
	req.Header.Set("anthropic-version", apiVersion)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", &reasoner.TransportError{Provider: "anthropic", Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &reasoner.TransportError{Provider: "anthropic", Err: err}
	}

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return "", &reasoner.AuthError{Provider: "anthropic", Detail: serviceMessage(respBody, "unauthorized")}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &reasoner.ServiceError{
			Provider:   "anthropic",
			StatusCode: resp.StatusCode,
			Detail:     serviceMessage(respBody, http.StatusText(resp.StatusCode)),
		}
	}

	return extractText(respBody)
}

// apiResponse models the Anthropic Messages API response.
type apiResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	StopReason string `json:"stop_reason"`
}

func extractText(body []byte) (string, error) {
	var resp apiResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", &reasoner.ServiceError{Provider: "anthropic", Detail: fmt.Sprintf("unparseable response body: %v", err)}
	}
	if len(resp.Content) == 0 {
		return "", &reasoner.ServiceError{Provider: "anthropic", Detail: "empty response from API"}
	}
	if resp.StopReason == "max_tokens" {
		return "", &reasoner.ServiceError{Provider: "anthropic", Detail: "output truncated (stop_reason: max_tokens): response exceeded output token limit"}
	}
	return resp.Content[0].Text, nil
}

func serviceMessage(body []byte, fallback string) string {
	var parsed struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &parsed); err == nil && parsed.Error.Message != "" {
		return parsed.Error.Message
	}
	return fallback
}
