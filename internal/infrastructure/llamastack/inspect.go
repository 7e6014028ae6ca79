package llamastack

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/sashabaranov/go-openai"

	"intelligent-cd/internal/domain/entity"
)

func (c *Client) Version(ctx context.Context) (string, error) {
	var resp struct {
		Version string `json:"version"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/v1/inspect/version", nil, &resp); err != nil {
		return "", fmt.Errorf("inspect version: %w", err)
	}
	return resp.Version, nil
}

func (c *Client) Health(ctx context.Context) (string, error) {
	var resp struct {
		Status string `json:"status"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/v1/health", nil, &resp); err != nil {
		return "", fmt.Errorf("health: %w", err)
	}
	return resp.Status, nil
}

func (c *Client) ListModels(ctx context.Context) ([]entity.Model, error) {
	var resp struct {
		Data []entity.Model `json:"data"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/v1/models", nil, &resp); err != nil {
		return nil, fmt.Errorf("list models: %w", err)
	}
	return resp.Data, nil
}

func (c *Client) ListToolGroups(ctx context.Context) ([]entity.ToolGroup, error) {
	var resp struct {
		Data []entity.ToolGroup `json:"data"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/v1/toolgroups", nil, &resp); err != nil {
		return nil, fmt.Errorf("list toolgroups: %w", err)
	}
	return resp.Data, nil
}

func (c *Client) ListTools(ctx context.Context, toolGroupID string) ([]entity.RuntimeTool, error) {
	path := "/v1/tools"
	if toolGroupID != "" {
		path += "?toolgroup_id=" + url.QueryEscape(toolGroupID)
	}

	var resp struct {
		Data []entity.RuntimeTool `json:"data"`
	}
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, fmt.Errorf("list tools: %w", err)
	}
	return resp.Data, nil
}

// CompletionProbe sends one small chat completion through the
// OpenAI-compatible surface to verify the inference path end to end.
func (c *Client) CompletionProbe(ctx context.Context, prompt string) (string, error) {
	resp, err := c.oai.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: 0.7,
		MaxTokens:   100,
	})
	if err != nil {
		return "", fmt.Errorf("chat completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no choices in response")
	}
	return resp.Choices[0].Message.Content, nil
}
