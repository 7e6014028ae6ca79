package llamastack

import (
	"context"
	"fmt"
	"net/http"

	"intelligent-cd/internal/domain/entity"
)

func (c *Client) CreateAgent(ctx context.Context, profile entity.AgentProfile) (string, error) {
	payload := map[string]interface{}{
		"agent_config": buildAgentConfig(profile),
	}

	var resp struct {
		AgentID string `json:"agent_id"`
	}
	if err := c.doJSON(ctx, http.MethodPost, "/v1/agents", payload, &resp); err != nil {
		return "", fmt.Errorf("create agent: %w", err)
	}
	if resp.AgentID == "" {
		return "", fmt.Errorf("create agent: empty agent_id in response")
	}
	return resp.AgentID, nil
}

func (c *Client) DeleteAgent(ctx context.Context, agentID string) error {
	if err := c.doJSON(ctx, http.MethodDelete, "/v1/agents/"+agentID, nil, nil); err != nil {
		return fmt.Errorf("delete agent %s: %w", agentID, err)
	}
	return nil
}

func (c *Client) CreateSession(ctx context.Context, agentID, sessionName string) (string, error) {
	payload := map[string]string{"session_name": sessionName}

	var resp struct {
		SessionID string `json:"session_id"`
	}
	path := "/v1/agents/" + agentID + "/session"
	if err := c.doJSON(ctx, http.MethodPost, path, payload, &resp); err != nil {
		return "", fmt.Errorf("create session: %w", err)
	}
	if resp.SessionID == "" {
		return "", fmt.Errorf("create session: empty session_id in response")
	}
	return resp.SessionID, nil
}

func (c *Client) CreateTurn(ctx context.Context, agentID, sessionID string, messages []entity.Message) (*entity.Turn, error) {
	payload := map[string]interface{}{
		"messages": messages,
		"stream":   false,
	}

	var turn entity.Turn
	path := "/v1/agents/" + agentID + "/session/" + sessionID + "/turn"
	if err := c.doJSON(ctx, http.MethodPost, path, payload, &turn); err != nil {
		return nil, fmt.Errorf("create turn: %w", err)
	}
	if err := turn.Validate(); err != nil {
		return nil, fmt.Errorf("create turn: %w", err)
	}
	return &turn, nil
}

// buildAgentConfig assembles the runtime agent_config payload. The response
// format pins the agent to the ReAct envelope schema on every turn.
func buildAgentConfig(p entity.AgentProfile) map[string]interface{} {
	cfg := map[string]interface{}{
		"model":           p.Model,
		"instructions":    p.Instructions,
		"toolgroups":      p.Tools,
		"tool_config":     map[string]interface{}{"tool_choice": "auto"},
		"max_infer_iters": p.MaxInferIters,
		"response_format": reactResponseFormat(),
	}
	if len(p.SamplingParams) > 0 {
		cfg["sampling_params"] = map[string]interface{}(p.SamplingParams)
	}
	return cfg
}

func reactResponseFormat() map[string]interface{} {
	paramSchema := map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"name":  map[string]interface{}{"type": "string"},
			"value": map[string]interface{}{},
		},
		"required": []string{"name", "value"},
	}
	actionSchema := map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"tool_name":   map[string]interface{}{"type": "string"},
			"tool_params": map[string]interface{}{"type": "array", "items": paramSchema},
		},
		"required": []string{"tool_name", "tool_params"},
	}

	return map[string]interface{}{
		"type": "json_schema",
		"json_schema": map[string]interface{}{
			"title": "ReActOutput",
			"type":  "object",
			"properties": map[string]interface{}{
				"thought": map[string]interface{}{"type": "string"},
				"action": map[string]interface{}{
					"anyOf": []interface{}{actionSchema, map[string]interface{}{"type": "null"}},
				},
				"answer": map[string]interface{}{
					"anyOf": []interface{}{
						map[string]interface{}{"type": "string"},
						map[string]interface{}{"type": "null"},
					},
				},
			},
			"required": []string{"thought", "action", "answer"},
		},
	}
}
