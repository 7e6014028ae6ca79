package entity

import "testing"

func TestFinalAnswer_TerminalEnvelope(t *testing.T) {
	content := `{"thought": "done searching", "action": null, "answer": "apiVersion: v1\\nkind: Service"}`

	got := FinalAnswer(content)

	if got != "apiVersion: v1\nkind: Service" {
		t.Errorf("Expected extracted answer with real newline, got %q", got)
	}
}

func TestFinalAnswer_NonJSONContent(t *testing.T) {
	content := "The deployment looks healthy.\\nNo restarts in the last hour."

	got := FinalAnswer(content)

	if got != "The deployment looks healthy.\nNo restarts in the last hour." {
		t.Errorf("Expected raw content with normalized newlines, got %q", got)
	}
}

func TestFinalAnswer_EnvelopeWithoutAnswer(t *testing.T) {
	content := `{"thought": "need to look up pods", "action": {"tool_name": "mcp::openshift", "tool_params": []}, "answer": ""}`

	got := FinalAnswer(content)

	if got != content {
		t.Errorf("Expected full content when answer is empty, got %q", got)
	}
}

func TestReActEnvelope_Kind(t *testing.T) {
	final := ReActEnvelope{Thought: "t", Answer: "done"}
	if final.Kind() != ReActKindFinal {
		t.Errorf("Expected final kind, got %s", final.Kind())
	}

	action := ReActEnvelope{Thought: "t", Action: &ReActCall{ToolName: "builtin::rag"}}
	if action.Kind() != ReActKindAction {
		t.Errorf("Expected action kind, got %s", action.Kind())
	}

	empty := ReActEnvelope{Thought: "t"}
	if empty.Kind() != ReActKindInvalid {
		t.Errorf("Expected invalid kind, got %s", empty.Kind())
	}
}

func TestParseReAct_ActionParams(t *testing.T) {
	content := `{"thought": "query the docs", "action": {"tool_name": "knowledge_search", "tool_params": [{"name": "query", "value": "rollout strategy"}]}, "answer": null}`

	env, err := ParseReAct(content)
	if err != nil {
		t.Fatalf("ParseReAct failed: %v", err)
	}

	if env.Action == nil || env.Action.ToolName != "knowledge_search" {
		t.Fatalf("Expected knowledge_search action, got %+v", env.Action)
	}

	if len(env.Action.ToolParams) != 1 || env.Action.ToolParams[0].Name != "query" {
		t.Errorf("Expected one query param, got %+v", env.Action.ToolParams)
	}
}

func TestParseReAct_Malformed(t *testing.T) {
	if _, err := ParseReAct("not json at all"); err == nil {
		t.Error("Expected error for non-JSON content")
	}
}
