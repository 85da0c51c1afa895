package anthropic_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/NeuralTrust/TrustChat/pkg/infra/providers"
	"github.com/NeuralTrust/TrustChat/pkg/infra/providers/anthropic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAsk_MissingAPIKey(t *testing.T) {
	_, err := anthropic.NewAnthropicClient().Ask(context.Background(), &providers.Config{}, "hello")
	assert.ErrorIs(t, err, providers.ErrMissingAPIKey)
}

func TestAsk_Messages(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/messages", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("X-Api-Key"))

		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "claude-3-5-haiku-latest", body["model"])
		assert.EqualValues(t, 1024, body["max_tokens"])
		assert.NotEmpty(t, body["system"])

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": "msg_1",
			"type": "message",
			"role": "assistant",
			"model": "claude-3-5-haiku-latest",
			"content": [{"type": "text", "text": "{\"risk_level\": \"warning\"}"}],
			"stop_reason": "end_turn",
			"usage": {"input_tokens": 10, "output_tokens": 4}
		}`))
	}))
	defer server.Close()

	config := &providers.Config{
		Credentials:  providers.Credentials{ApiKey: "test-key", BaseURL: server.URL},
		SystemPrompt: "You are a compliance analyst.",
	}

	resp, err := anthropic.NewAnthropicClient().Ask(context.Background(), config, "analyze")
	require.NoError(t, err)
	assert.Equal(t, "msg_1", resp.ID)
	assert.Equal(t, `{"risk_level": "warning"}`, resp.Response)
	assert.Equal(t, 14, resp.Usage.TotalTokens)
}

func TestAsk_NoTextContent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id": "msg_2", "type": "message", "role": "assistant",
			"model": "claude-3-5-haiku-latest", "content": [], "usage": {"input_tokens": 1, "output_tokens": 0}}`))
	}))
	defer server.Close()

	config := &providers.Config{Credentials: providers.Credentials{ApiKey: "k", BaseURL: server.URL}}
	_, err := anthropic.NewAnthropicClient().Ask(context.Background(), config, "analyze")
	assert.ErrorIs(t, err, providers.ErrEmptyResponse)
}
