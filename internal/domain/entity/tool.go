package entity

import (
	"encoding/json"
	"fmt"
)

// ToolSpec is one entry of a *_TOOLS list. The wire form is either a bare
// toolgroup identifier ("mcp::openshift") or an object {"name": ..., "args":
// {...}}. A spec without args marshals back to the bare string form.
type ToolSpec struct {
	Name string
	Args map[string]interface{}
}

const (
	ToolArgVectorDBNames = "vector_db_names"
	ToolArgVectorDBIDs   = "vector_db_ids"
)

func (t *ToolSpec) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		t.Name = name
		t.Args = nil
		return nil
	}
	var obj struct {
		Name string                 `json:"name"`
		Args map[string]interface{} `json:"args"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("tool spec must be a string or an object: %w", err)
	}
	if obj.Name == "" {
		return fmt.Errorf("tool spec object has no name")
	}
	t.Name = obj.Name
	t.Args = obj.Args
	return nil
}

func (t ToolSpec) MarshalJSON() ([]byte, error) {
	if len(t.Args) == 0 {
		return json.Marshal(t.Name)
	}
	return json.Marshal(struct {
		Name string                 `json:"name"`
		Args map[string]interface{} `json:"args"`
	}{t.Name, t.Args})
}

func (t ToolSpec) String() string {
	return t.Name
}

// ToolGroup is a registered toolgroup on the runtime (e.g. an MCP server).
type ToolGroup struct {
	Identifier string `json:"identifier"`
	ProviderID string `json:"provider_id"`
}

// RuntimeTool is one tool exposed by a toolgroup.
type RuntimeTool struct {
	Identifier  string `json:"identifier"`
	ToolGroupID string `json:"toolgroup_id"`
	Description string `json:"description"`
}
