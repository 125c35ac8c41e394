package openai

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/janosbartek-debug/aqua-astrae/internal/domain"
	"github.com/janosbartek-debug/aqua-astrae/internal/ports"
)

// Run statuses from the assistants API. completed is the only successful
// terminal state; failed, cancelled and expired are terminal failures, and
// everything else means the run is still in flight.
const (
	runCompleted = "completed"
	runFailed    = "failed"
	runCancelled = "cancelled"
	runExpired   = "expired"
)

func runTerminalFailure(status string) bool {
	switch status {
	case runFailed, runCancelled, runExpired:
		return true
	}
	return false
}

type threadResponse struct {
	ID string `json:"id"`
}

type messageRequest struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type runRequest struct {
	AssistantID  string `json:"assistant_id"`
	Model        string `json:"model,omitempty"`
	Instructions string `json:"instructions,omitempty"`
}

type runResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
	Model  string `json:"model"`
	Usage  struct {
		TotalTokens int `json:"total_tokens"`
	} `json:"usage"`
	LastError struct {
		Message string `json:"message"`
	} `json:"last_error"`
}

type messageListResponse struct {
	Data []struct {
		Role    string `json:"role"`
		Content []struct {
			Type string `json:"type"`
			Text struct {
				Value string `json:"value"`
			} `json:"text"`
		} `json:"content"`
	} `json:"data"`
}

// invokeAssistant runs the stateful protocol: create a thread, post the
// user content, start a run bound to the configured assistant (with the
// tier's model overriding the assistant's default), poll to a terminal
// state, then read back the newest message.
func (c *Client) invokeAssistant(ctx context.Context, prompt ports.Prompt, model string) (ports.ProviderResult, error) {
	var thread threadResponse
	if err := c.doJSON(ctx, http.MethodPost, "/threads", struct{}{}, &thread); err != nil {
		return ports.ProviderResult{}, fmt.Errorf("create thread: %w", err)
	}

	msg := messageRequest{Role: "user", Content: prompt.User}
	if err := c.doJSON(ctx, http.MethodPost, "/threads/"+thread.ID+"/messages", msg, nil); err != nil {
		return ports.ProviderResult{}, fmt.Errorf("post message: %w", err)
	}

	runReq := runRequest{
		AssistantID:  c.assistantID,
		Model:        model,
		Instructions: prompt.System,
	}
	var run runResponse
	if err := c.doJSON(ctx, http.MethodPost, "/threads/"+thread.ID+"/runs", runReq, &run); err != nil {
		return ports.ProviderResult{}, fmt.Errorf("create run: %w", err)
	}

	run, err := c.pollRun(ctx, thread.ID, run)
	if err != nil {
		return ports.ProviderResult{}, err
	}

	text, err := c.latestAssistantText(ctx, thread.ID)
	if err != nil {
		return ports.ProviderResult{}, err
	}

	usedModel := run.Model
	if usedModel == "" {
		usedModel = model
	}

	return ports.ProviderResult{
		Text:     strings.TrimSpace(text),
		Tokens:   ports.TokenUsage{Total: run.Usage.TotalTokens, Known: run.Usage.TotalTokens > 0},
		Model:    usedModel,
		Protocol: ports.ProtocolAssistant,
	}, nil
}

// pollRun polls the run on a fixed interval until it reaches a terminal
// state or the wall-clock timeout elapses. The loop aborts as soon as ctx
// is cancelled so a disconnected request leaves no background polling.
func (c *Client) pollRun(ctx context.Context, threadID string, run runResponse) (runResponse, error) {
	deadline := time.Now().Add(c.runTimeout)
	ticker := time.NewTicker(c.pollInterval)
	defer ticker.Stop()

	for {
		switch {
		case run.Status == runCompleted:
			return run, nil
		case runTerminalFailure(run.Status):
			return runResponse{}, fmt.Errorf("%w: status %s: %s",
				domain.ErrProviderRunFailed, run.Status, run.LastError.Message)
		case time.Now().After(deadline):
			return runResponse{}, fmt.Errorf("%w: after %s in status %s",
				domain.ErrProviderTimeout, c.runTimeout, run.Status)
		}

		select {
		case <-ctx.Done():
			return runResponse{}, ctx.Err()
		case <-ticker.C:
		}

		if err := c.doJSON(ctx, http.MethodGet, "/threads/"+threadID+"/runs/"+run.ID, nil, &run); err != nil {
			return runResponse{}, fmt.Errorf("poll run: %w", err)
		}
	}
}

// latestAssistantText fetches the newest message and concatenates its
// text-typed content fragments.
func (c *Client) latestAssistantText(ctx context.Context, threadID string) (string, error) {
	var list messageListResponse
	path := "/threads/" + threadID + "/messages?order=desc&limit=1"
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &list); err != nil {
		return "", fmt.Errorf("list messages: %w", err)
	}
	if len(list.Data) == 0 {
		return "", nil
	}

	var b strings.Builder
	for _, frag := range list.Data[0].Content {
		if frag.Type == "text" {
			b.WriteString(frag.Text.Value)
		}
	}
	return b.String(), nil
}
