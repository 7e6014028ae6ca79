package entity

import (
	"encoding/json"
	"fmt"
	"strings"
)

type MessageRole string

const (
	RoleSystem    MessageRole = "system"
	RoleUser      MessageRole = "user"
	RoleAssistant MessageRole = "assistant"
)

type Message struct {
	Role    MessageRole `json:"role"`
	Content string      `json:"content"`
}

// Turn is one completed agent turn as reported by the runtime.
type Turn struct {
	TurnID        string      `json:"turn_id"`
	SessionID     string      `json:"session_id"`
	Steps         []TurnStep  `json:"steps"`
	OutputMessage TurnMessage `json:"output_message"`
	StartedAt     string      `json:"started_at"`
	CompletedAt   string      `json:"completed_at"`
}

type TurnStep struct {
	StepID   string `json:"step_id"`
	StepType string `json:"step_type"`
}

// TurnMessage carries the runtime's interleaved content flattened to text.
// The wire form of content is a plain string, a single text item, or a list
// of text items.
type TurnMessage struct {
	Role       string
	Content    string
	StopReason string
}

func (m *TurnMessage) UnmarshalJSON(data []byte) error {
	var raw struct {
		Role       string          `json:"role"`
		Content    json.RawMessage `json:"content"`
		StopReason string          `json:"stop_reason"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	m.Role = raw.Role
	m.StopReason = raw.StopReason
	m.Content = FlattenContent(raw.Content)
	return nil
}

// FlattenContent renders interleaved wire content to plain text.
func FlattenContent(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var item struct {
		Text string `json:"text"`
	}
	if err := json.Unmarshal(raw, &item); err == nil && item.Text != "" {
		return item.Text
	}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err == nil {
		var b strings.Builder
		for _, it := range items {
			b.WriteString(FlattenContent(it))
		}
		return b.String()
	}
	return string(raw)
}

func (t Turn) Validate() error {
	if t.OutputMessage.Content == "" {
		return fmt.Errorf("turn %s has no output content", t.TurnID)
	}
	return nil
}
