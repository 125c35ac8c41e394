// Package openai implements ports.Invoker against the OpenAI HTTP API.
//
// Two wire protocols are supported: the stateless chat completion call and
// the stateful assistant thread exchange. When an assistant id is
// configured the assistant protocol is primary and any failure (or an empty
// interpretation) falls back to the completion call once; without an
// assistant id the completion call is the only path.
package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/janosbartek-debug/aqua-astrae/internal/domain"
	"github.com/janosbartek-debug/aqua-astrae/internal/ports"
)

const (
	defaultPollInterval = 900 * time.Millisecond
	defaultRunTimeout   = 60 * time.Second
)

type Client struct {
	httpClient   *http.Client
	apiKey       string
	baseURL      string
	assistantID  string
	pollInterval time.Duration
	runTimeout   time.Duration
	logger       *slog.Logger
}

var _ ports.Invoker = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithAssistant enables the assistant protocol bound to the given
// pre-provisioned assistant configuration.
func WithAssistant(id string) Option {
	return func(c *Client) { c.assistantID = id }
}

// WithPolling overrides the assistant run poll interval and wall-clock
// timeout. Intended for tests.
func WithPolling(interval, timeout time.Duration) Option {
	return func(c *Client) {
		c.pollInterval = interval
		c.runTimeout = timeout
	}
}

func NewClient(httpClient *http.Client, apiKey, baseURL string, logger *slog.Logger, opts ...Option) *Client {
	c := &Client{
		httpClient:   httpClient,
		apiKey:       apiKey,
		baseURL:      strings.TrimRight(baseURL, "/"),
		pollInterval: defaultPollInterval,
		runTimeout:   defaultRunTimeout,
		logger:       logger,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Invoke calls the provider with prompt and the server-resolved model.
// The assistant protocol's failure is not surfaced while the completion
// fallback can still serve the request.
func (c *Client) Invoke(ctx context.Context, prompt ports.Prompt, model string) (ports.ProviderResult, error) {
	if c.apiKey == "" {
		return ports.ProviderResult{}, domain.ErrMissingCredential
	}

	if c.assistantID != "" {
		res, err := c.invokeAssistant(ctx, prompt, model)
		if err == nil && strings.TrimSpace(res.Text) != "" {
			return res, nil
		}
		if err == nil {
			err = domain.ErrEmptyInterpretation
		}
		if ctx.Err() != nil {
			return ports.ProviderResult{}, err
		}
		c.logger.WarnContext(ctx, "assistant protocol failed, falling back to completion",
			"model", model, "error", err)
	}

	return c.invokeCompletion(ctx, prompt, model)
}

// chat completion shapes mirror the OpenAI API.
type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Usage struct {
		TotalTokens int `json:"total_tokens"`
	} `json:"usage"`
}

func (c *Client) invokeCompletion(ctx context.Context, prompt ports.Prompt, model string) (ports.ProviderResult, error) {
	reqBody := chatRequest{
		Model: model,
		Messages: []chatMessage{
			{Role: "system", Content: prompt.System},
			{Role: "user", Content: prompt.User},
		},
	}

	var resp chatResponse
	if err := c.doJSON(ctx, http.MethodPost, "/chat/completions", reqBody, &resp); err != nil {
		return ports.ProviderResult{}, err
	}

	if len(resp.Choices) == 0 {
		return ports.ProviderResult{}, fmt.Errorf("no choices in completion response")
	}

	return ports.ProviderResult{
		Text:     strings.TrimSpace(resp.Choices[0].Message.Content),
		Tokens:   ports.TokenUsage{Total: resp.Usage.TotalTokens, Known: resp.Usage.TotalTokens > 0},
		Model:    model,
		Protocol: ports.ProtocolCompletion,
	}, nil
}

// errorBody is the provider's error envelope; Details prefers its message
// over the raw body.
type errorBody struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// doJSON performs one provider call. Non-2xx statuses become
// *domain.ProviderHTTPError so callers can surface upstream failures
// distinguishably.
func (c *Client) doJSON(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("OpenAI-Beta", "assistants=v2")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("http call: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		details := strings.TrimSpace(string(respBody))
		var eb errorBody
		if json.Unmarshal(respBody, &eb) == nil && eb.Error.Message != "" {
			details = eb.Error.Message
		}
		return &domain.ProviderHTTPError{Status: resp.StatusCode, Details: details}
	}

	if out != nil {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}
