package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"main/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(baseURL string) config.AIConfig {
	return config.AIConfig{
		BaseURL:     baseURL,
		APIKey:      "test-api-key",
		Model:       "gpt-4o-mini",
		MaxTokens:   256,
		Temperature: 0.7,
	}
}

func TestNewClient(t *testing.T) {
	tests := []struct {
		name    string
		cfg     config.AIConfig
		wantErr bool
	}{
		{
			name:    "valid configuration",
			cfg:     testConfig("https://api.openai.com/v1/chat/completions"),
			wantErr: false,
		},
		{
			name:    "missing API key",
			cfg:     config.AIConfig{BaseURL: "https://api.openai.com/v1/chat/completions"},
			wantErr: true,
		},
		{
			name:    "missing base URL",
			cfg:     config.AIConfig{APIKey: "test-api-key"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := NewClient(tt.cfg)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, client)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, client)
			}
		})
	}
}

func TestClientComplete(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer test-api-key", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "gpt-4o-mini", req["model"])
		assert.Nil(t, req["tools"])

		json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []map[string]interface{}{
				{
					"message":       map[string]interface{}{"role": "assistant", "content": "Hello there"},
					"finish_reason": "stop",
				},
			},
		})
	}))
	defer server.Close()

	client, err := NewClient(testConfig(server.URL))
	require.NoError(t, err)

	result, err := client.Complete(context.Background(), []Message{
		{Role: "user", Content: "Hi"},
	})
	require.NoError(t, err)

	assert.Equal(t, "Hello there", result.Content)
	assert.Empty(t, result.ToolCalls)
}

func TestClientCompleteWithTools(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Tools      []Tool      `json:"tools"`
			ToolChoice *ToolChoice `json:"tool_choice"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Tools, 1)
		assert.Equal(t, "create_suggestion", req.Tools[0].Function.Name)
		require.NotNil(t, req.ToolChoice)
		assert.Equal(t, "function", req.ToolChoice.Type)
		assert.Equal(t, "create_suggestion", req.ToolChoice.Function.Name)

		json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []map[string]interface{}{
				{
					"message": map[string]interface{}{
						"role": "assistant",
						"tool_calls": []map[string]interface{}{
							{
								"id":   "call_1",
								"type": "function",
								"function": map[string]interface{}{
									"name":      "create_suggestion",
									"arguments": `{"suggestions": []}`,
								},
							},
						},
					},
					"finish_reason": "tool_calls",
				},
			},
		})
	}))
	defer server.Close()

	client, err := NewClient(testConfig(server.URL))
	require.NoError(t, err)

	tools := []Tool{{
		Type:     "function",
		Function: ToolFunction{Name: "create_suggestion", Parameters: json.RawMessage(`{"type": "object"}`)},
	}}

	result, err := client.CompleteWithTools(context.Background(), []Message{
		{Role: "user", Content: "analyze"},
	}, tools, "create_suggestion")
	require.NoError(t, err)

	call, err := result.FirstToolCall("create_suggestion")
	require.NoError(t, err)
	assert.Equal(t, `{"suggestions": []}`, call.Function.Arguments)
}

func TestClientUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error": {"message": "rate limited"}}`))
	}))
	defer server.Close()

	client, err := NewClient(testConfig(server.URL))
	require.NoError(t, err)

	_, err = client.Complete(context.Background(), []Message{{Role: "user", Content: "Hi"}})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUpstream)
	assert.Contains(t, err.Error(), "429")
}

func TestClientErrorBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"error": map[string]interface{}{"type": "invalid_request_error", "message": "bad model"},
		})
	}))
	defer server.Close()

	client, err := NewClient(testConfig(server.URL))
	require.NoError(t, err)

	_, err = client.Complete(context.Background(), []Message{{Role: "user", Content: "Hi"}})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUpstream)
	assert.Contains(t, err.Error(), "bad model")
}

func TestClientNoChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices": []}`))
	}))
	defer server.Close()

	client, err := NewClient(testConfig(server.URL))
	require.NoError(t, err)

	_, err = client.Complete(context.Background(), []Message{{Role: "user", Content: "Hi"}})

	assert.ErrorIs(t, err, ErrUpstream)
}

func TestFirstToolCall(t *testing.T) {
	result := &Result{ToolCalls: []ToolCall{{}}}
	result.ToolCalls[0].Function.Name = "create_suggestion"

	_, err := result.FirstToolCall("other")
	assert.ErrorIs(t, err, ErrNoToolCall)

	call, err := result.FirstToolCall("")
	require.NoError(t, err)
	assert.Equal(t, "create_suggestion", call.Function.Name)

	empty := &Result{Content: "plain text"}
	_, err = empty.FirstToolCall("")
	assert.ErrorIs(t, err, ErrNoToolCall)
}
