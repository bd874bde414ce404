// Package llm provides a client for OpenAI-compatible chat completion APIs.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"main/config"
)

// ErrNoToolCall is returned by CompleteWithTool when the model answered
// with plain text instead of the requested function call.
var ErrNoToolCall = errors.New("no tool call in model response")

// ErrUpstream marks failures reported by the AI provider itself, so
// handlers can map them to a 502 with errors.Is.
var ErrUpstream = errors.New("AI API error")

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Tool declares a function the model may call. Parameters is a JSON Schema
// object.
type Tool struct {
	Type     string       `json:"type"`
	Function ToolFunction `json:"function"`
}

type ToolFunction struct {
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Parameters  json.RawMessage `json:"parameters,omitempty"`
}

type ToolChoice struct {
	Type     string `json:"type"`
	Function struct {
		Name string `json:"name"`
	} `json:"function"`
}

type ToolCall struct {
	ID       string `json:"id"`
	Type     string `json:"type"`
	Function struct {
		Name      string `json:"name"`
		Arguments string `json:"arguments"`
	} `json:"function"`
}

type chatRequest struct {
	Model       string      `json:"model"`
	Messages    []Message   `json:"messages"`
	MaxTokens   int         `json:"max_tokens,omitempty"`
	Temperature float64     `json:"temperature,omitempty"`
	Tools       []Tool      `json:"tools,omitempty"`
	ToolChoice  *ToolChoice `json:"tool_choice,omitempty"`
	Stream      bool        `json:"stream"`
}

type chatChoice struct {
	Index        int    `json:"index"`
	FinishReason string `json:"finish_reason"`
	Message      struct {
		Role      string     `json:"role"`
		Content   string     `json:"content"`
		ToolCalls []ToolCall `json:"tool_calls,omitempty"`
	} `json:"message"`
}

type chatResponse struct {
	ID      string       `json:"id"`
	Model   string       `json:"model"`
	Choices []chatChoice `json:"choices"`
	Error   *apiError    `json:"error,omitempty"`
}

type apiError struct {
	Type    string `json:"type"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// Result is what callers get back: free text, and the tool calls if any.
type Result struct {
	Content   string
	ToolCalls []ToolCall
}

// Chat is the surface the usecase layer depends on.
type Chat interface {
	Complete(ctx context.Context, messages []Message) (*Result, error)
	CompleteWithTools(ctx context.Context, messages []Message, tools []Tool, force string) (*Result, error)
}

type Client struct {
	cfg        config.AIConfig
	httpClient *http.Client
}

func NewClient(cfg config.AIConfig) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("AI API key is required")
	}
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("AI base URL is required")
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

// Complete sends a plain chat turn and returns the model's text.
func (c *Client) Complete(ctx context.Context, messages []Message) (*Result, error) {
	return c.call(ctx, &chatRequest{
		Model:       c.cfg.Model,
		Messages:    messages,
		MaxTokens:   c.cfg.MaxTokens,
		Temperature: c.cfg.Temperature,
	})
}

// CompleteWithTools sends a chat turn with function declarations. When
// force names one of the tools the model is required to call it.
func (c *Client) CompleteWithTools(ctx context.Context, messages []Message, tools []Tool, force string) (*Result, error) {
	req := &chatRequest{
		Model:       c.cfg.Model,
		Messages:    messages,
		MaxTokens:   c.cfg.MaxTokens,
		Temperature: c.cfg.Temperature,
		Tools:       tools,
	}
	if force != "" {
		tc := &ToolChoice{Type: "function"}
		tc.Function.Name = force
		req.ToolChoice = tc
	}
	return c.call(ctx, req)
}

func (c *Client) call(ctx context.Context, req *chatRequest) (*Result, error) {
	jsonData, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTP request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d: %s", ErrUpstream, resp.StatusCode, string(body))
	}

	var chatResp chatResponse
	if err := json.Unmarshal(body, &chatResp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}
	if chatResp.Error != nil {
		return nil, fmt.Errorf("%w: %s", ErrUpstream, chatResp.Error.Message)
	}
	if len(chatResp.Choices) == 0 {
		return nil, fmt.Errorf("%w: no choices returned", ErrUpstream)
	}

	choice := chatResp.Choices[0]
	return &Result{
		Content:   choice.Message.Content,
		ToolCalls: choice.Message.ToolCalls,
	}, nil
}

// FirstToolCall returns the first returned call to the named tool, or
// ErrNoToolCall.
func (r *Result) FirstToolCall(name string) (*ToolCall, error) {
	for i := range r.ToolCalls {
		if r.ToolCalls[i].Function.Name == name || name == "" {
			return &r.ToolCalls[i], nil
		}
	}
	return nil, ErrNoToolCall
}
