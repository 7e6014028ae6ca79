package entity

import (
	"encoding/json"
	"strings"
)

type ReActKind string

const (
	ReActKindFinal   ReActKind = "final"
	ReActKindAction  ReActKind = "action"
	ReActKindInvalid ReActKind = "invalid"
)

// ReActEnvelope is the JSON object the agent is instructed to emit on every
// turn: a thought, plus either an action (intermediate turn) or an answer
// (terminal turn).
type ReActEnvelope struct {
	Thought string     `json:"thought"`
	Action  *ReActCall `json:"action"`
	Answer  string     `json:"answer"`
}

type ReActCall struct {
	ToolName   string      `json:"tool_name"`
	ToolParams []ToolParam `json:"tool_params"`
}

type ToolParam struct {
	Name  string      `json:"name"`
	Value interface{} `json:"value"`
}

func (e ReActEnvelope) Kind() ReActKind {
	switch {
	case e.Answer != "":
		return ReActKindFinal
	case e.Action != nil && e.Action.ToolName != "":
		return ReActKindAction
	default:
		return ReActKindInvalid
	}
}

func ParseReAct(content string) (ReActEnvelope, error) {
	var env ReActEnvelope
	if err := json.Unmarshal([]byte(content), &env); err != nil {
		return ReActEnvelope{}, err
	}
	return env, nil
}

// FinalAnswer extracts the answer from a terminal envelope, falling back to
// the content itself when it is not an envelope or carries no answer. Literal
// \n sequences become real newlines either way.
func FinalAnswer(content string) string {
	if env, err := ParseReAct(content); err == nil && env.Kind() == ReActKindFinal {
		return NormalizeNewlines(env.Answer)
	}
	return NormalizeNewlines(content)
}

func NormalizeNewlines(s string) string {
	return strings.ReplaceAll(s, `\n`, "\n")
}
