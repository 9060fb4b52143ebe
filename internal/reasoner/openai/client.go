package openai

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

const apiURL = "https://api.openai.com/v1/chat/completions"

// Client implements port.Reasoner using the OpenAI Chat Completions API.
type Client struct {
	model       string
	temperature float64
	maxTokens   int
	endpoint    string
	client      *http.Client
}

// NewClient creates an OpenAI-based reasoner from a provider config.
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
		model = "gpt-4o"
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

// Complete issues exactly one request and returns the assistant text
// verbatim. Low temperature is a policy choice: consistent claim decisions
// matter more than varied phrasing.
func (c *Client) Complete(ctx context.Context, payload, credential string) (string, error) {
	reqBody := map[string]interface{}{
		"model": c.model,
		"messages": []map[string]interface{}{
			{"role": "system", "content": prompt.SystemInstruction},
			{"role": "user", "content": payload},
		},
		"temperature": c.temperature,
		"max_tokens":  c.maxTokens,
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
	req.Header.Set("Authorization", "Bearer "+credential)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", &reasoner.TransportError{Provider: "openai", Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &reasoner.TransportError{Provider: "openai", Err: err}
	}

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return "", &reasoner.AuthError{Provider: "openai", Detail: serviceMessage(respBody, "unauthorized")}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &reasoner.ServiceError{
			Provider:   "openai",
			StatusCode: resp.StatusCode,
			Detail:     serviceMessage(respBody, http.StatusText(resp.StatusCode)),
		}
	}

	return extractText(respBody)
}

// apiResponse models the OpenAI Chat Completions API response.
type apiResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
}

func extractText(body []byte) (string, error) {
	var resp apiResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", &reasoner.ServiceError{Provider: "openai", Detail: fmt.Sprintf("unparseable response body: %v", err)}
	}
	if len(resp.Choices) == 0 {
		return "", &reasoner.ServiceError{Provider: "openai", Detail: "empty response from API: no choices"}
	}
	if resp.Choices[0].FinishReason == "length" {
		return "", &reasoner.ServiceError{Provider: "openai", Detail: "output truncated (finish_reason: length): response exceeded output token limit"}
	}
	return resp.Choices[0].Message.Content, nil
}

// serviceMessage pulls the service-reported message out of an error body,
// falling back when the body carries none.
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
