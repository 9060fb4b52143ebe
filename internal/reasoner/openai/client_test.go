package openai_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"claimlens/internal/config"
	"claimlens/internal/reasoner"
	"claimlens/internal/reasoner/openai"
)

func newTestClient(serverURL string) *openai.Client {
	cfg := &config.ReasonerConfig{
		Provider:     "openai",
		DefaultModel: "gpt-4o",
		Temperature:  0.1,
		MaxTokens:    2048,
		TimeoutSecs:  30,
	}
	return openai.NewClientWithEndpoint(cfg, serverURL)
}

func successResponse(content string) map[string]interface{} {
	return map[string]interface{}{
		"choices": []map[string]interface{}{
			{
				"message":       map[string]interface{}{"role": "assistant", "content": content},
				"finish_reason": "stop",
			},
		},
	}
}

func TestComplete_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var reqBody map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&reqBody))
		assert.Equal(t, "gpt-4o", reqBody["model"])
		assert.Equal(t, 0.1, reqBody["temperature"])
		assert.Equal(t, float64(2048), reqBody["max_tokens"])

		messages := reqBody["messages"].([]interface{})
		require.Len(t, messages, 2)
		assert.Equal(t, "system", messages[0].(map[string]interface{})["role"])
		userMsg := messages[1].(map[string]interface{})
		assert.Equal(t, "user", userMsg["role"])
		assert.Equal(t, "evaluate this claim", userMsg["content"])

		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(successResponse(`{"decision":"Approved"}`))
	}))
	defer server.Close()

	c := newTestClient(server.URL)

	text, err := c.Complete(context.Background(), "evaluate this claim", "test-key")

	require.NoError(t, err)
	assert.Equal(t, `{"decision":"Approved"}`, text)
}

func TestComplete_Unauthorized(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"message":"Incorrect API key provided","type":"invalid_request_error"}}`))
	}))
	defer server.Close()

	c := newTestClient(server.URL)

	text, err := c.Complete(context.Background(), "payload", "bad-key")

	assert.Empty(t, text)
	var authErr *reasoner.AuthError
	require.True(t, errors.As(err, &authErr))
	assert.Equal(t, "openai", authErr.Provider)
	assert.Equal(t, "Incorrect API key provided", authErr.Detail)
}

func TestComplete_Forbidden(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	c := newTestClient(server.URL)

	_, err := c.Complete(context.Background(), "payload", "restricted-key")

	var authErr *reasoner.AuthError
	require.True(t, errors.As(err, &authErr))
	assert.Equal(t, "unauthorized", authErr.Detail)
}

func TestComplete_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":{"message":"The server had an error","type":"server_error"}}`))
	}))
	defer server.Close()

	c := newTestClient(server.URL)

	_, err := c.Complete(context.Background(), "payload", "test-key")

	var svcErr *reasoner.ServiceError
	require.True(t, errors.As(err, &svcErr))
	assert.Equal(t, http.StatusInternalServerError, svcErr.StatusCode)
	assert.Equal(t, "The server had an error", svcErr.Detail)
}

func TestComplete_RateLimitKeepsStatusCode(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"message":"Rate limit exceeded","type":"rate_limit_error"}}`))
	}))
	defer server.Close()

	c := newTestClient(server.URL)

	_, err := c.Complete(context.Background(), "payload", "test-key")

	var svcErr *reasoner.ServiceError
	require.True(t, errors.As(err, &svcErr))
	assert.Equal(t, http.StatusTooManyRequests, svcErr.StatusCode)
}

func TestComplete_TransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // reject connections

	c := newTestClient(server.URL)

	_, err := c.Complete(context.Background(), "payload", "test-key")

	var transportErr *reasoner.TransportError
	require.True(t, errors.As(err, &transportErr))
	assert.Equal(t, "openai", transportErr.Provider)
	assert.NotNil(t, errors.Unwrap(transportErr))
}

func TestComplete_NoChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(map[string]interface{}{"choices": []interface{}{}})
	}))
	defer server.Close()

	c := newTestClient(server.URL)

	_, err := c.Complete(context.Background(), "payload", "test-key")

	var svcErr *reasoner.ServiceError
	require.True(t, errors.As(err, &svcErr))
	assert.Contains(t, svcErr.Detail, "no choices")
}

func TestComplete_TruncatedOutput(t *testing.T) {
	responseBody := map[string]interface{}{
		"choices": []map[string]interface{}{
			{
				"message":       map[string]interface{}{"role": "assistant", "content": `{"decision":`},
				"finish_reason": "length",
			},
		},
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(responseBody)
	}))
	defer server.Close()

	c := newTestClient(server.URL)

	_, err := c.Complete(context.Background(), "payload", "test-key")

	var svcErr *reasoner.ServiceError
	require.True(t, errors.As(err, &svcErr))
	assert.Contains(t, svcErr.Detail, "truncated")
}
