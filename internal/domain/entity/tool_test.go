package entity

import (
	"encoding/json"
	"testing"
)

func TestToolSpec_UnmarshalString(t *testing.T) {
	var spec ToolSpec
	if err := json.Unmarshal([]byte(`"mcp::openshift"`), &spec); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}

	if spec.Name != "mcp::openshift" {
		t.Errorf("Expected name mcp::openshift, got %s", spec.Name)
	}

	if spec.Args != nil {
		t.Errorf("Expected nil args, got %v", spec.Args)
	}
}

func TestToolSpec_UnmarshalObject(t *testing.T) {
	raw := `{"name": "builtin::rag", "args": {"vector_db_names": ["app-documentation"], "top_k": 5}}`

	var spec ToolSpec
	if err := json.Unmarshal([]byte(raw), &spec); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}

	if spec.Name != "builtin::rag" {
		t.Errorf("Expected name builtin::rag, got %s", spec.Name)
	}

	names, ok := spec.Args[ToolArgVectorDBNames].([]interface{})
	if !ok || len(names) != 1 {
		t.Errorf("Expected one vector_db_name, got %v", spec.Args[ToolArgVectorDBNames])
	}
}

func TestToolSpec_UnmarshalRejectsInvalid(t *testing.T) {
	var spec ToolSpec
	if err := json.Unmarshal([]byte(`{"args": {}}`), &spec); err == nil {
		t.Error("Expected error for object without name")
	}

	if err := json.Unmarshal([]byte(`42`), &spec); err == nil {
		t.Error("Expected error for numeric tool spec")
	}
}

func TestToolSpec_MarshalRoundTrip(t *testing.T) {
	bare := ToolSpec{Name: "mcp::github"}
	data, err := json.Marshal(bare)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if string(data) != `"mcp::github"` {
		t.Errorf("Expected bare string form, got %s", data)
	}

	structured := ToolSpec{Name: "builtin::rag", Args: map[string]interface{}{"top_k": 5}}
	data, err = json.Marshal(structured)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	var back ToolSpec
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal of marshaled spec failed: %v", err)
	}
	if back.Name != "builtin::rag" || back.Args["top_k"] == nil {
		t.Errorf("Round trip lost data: %+v", back)
	}
}

func TestTurnMessage_ContentForms(t *testing.T) {
	var plain TurnMessage
	if err := json.Unmarshal([]byte(`{"role": "assistant", "content": "hello"}`), &plain); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if plain.Content != "hello" {
		t.Errorf("Expected plain string content, got %q", plain.Content)
	}

	var items TurnMessage
	raw := `{"role": "assistant", "content": [{"type": "text", "text": "part one "}, {"type": "text", "text": "part two"}]}`
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if items.Content != "part one part two" {
		t.Errorf("Expected flattened items, got %q", items.Content)
	}
}
