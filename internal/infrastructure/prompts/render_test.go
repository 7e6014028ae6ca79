package prompts

import (
	"strings"
	"testing"

	"intelligent-cd/internal/domain/entity"
)

func TestRenderInstructions_SubstitutesToolGroups(t *testing.T) {
	template := "You can use these tool groups: {tool_groups}. Choose wisely."
	tools := []entity.ToolSpec{
		{Name: "mcp::openshift"},
		{Name: "builtin::rag", Args: map[string]interface{}{"vector_db_ids": []string{"vs_1"}}},
	}

	result, err := RenderInstructions(template, tools)
	if err != nil {
		t.Fatalf("RenderInstructions failed: %v", err)
	}

	if !strings.Contains(result, `"mcp::openshift"`) {
		t.Errorf("Result should contain the bare tool name, got: %s", result)
	}
	if !strings.Contains(result, `"builtin::rag"`) {
		t.Errorf("Result should contain the structured tool name, got: %s", result)
	}
	if strings.Contains(result, "{tool_groups}") {
		t.Error("Placeholder should be substituted")
	}
}

func TestRenderInstructions_NoPlaceholderPassThrough(t *testing.T) {
	template := "You are a helpful assistant."

	result, err := RenderInstructions(template, []entity.ToolSpec{{Name: "mcp::openshift"}})
	if err != nil {
		t.Fatalf("RenderInstructions failed: %v", err)
	}
	if result != template {
		t.Errorf("Expected template unchanged, got: %s", result)
	}
}

func TestRenderInstructions_EscapedBraces(t *testing.T) {
	template := `Groups: {tool_groups}. Reply as {{"answer": "..."}}.`

	result, err := RenderInstructions(template, nil)
	if err != nil {
		t.Fatalf("RenderInstructions failed: %v", err)
	}
	if !strings.Contains(result, `{"answer": "..."}`) {
		t.Errorf("Escaped braces should become literal, got: %s", result)
	}
}

func TestDefaultChatPrompt_RendersCleanly(t *testing.T) {
	tools := []entity.ToolSpec{{Name: "mcp::openshift"}, {Name: "builtin::rag"}}

	result, err := RenderInstructions(DefaultChatPrompt, tools)
	if err != nil {
		t.Fatalf("Default chat prompt failed to render: %v", err)
	}

	if !strings.Contains(result, "ReAct") {
		t.Error("Rendered prompt lost its body")
	}
	if !strings.Contains(result, `"tool_name": "tool_name_here"`) {
		t.Error("Format example braces did not unescape")
	}
	if strings.Contains(result, "{tool_groups}") {
		t.Error("Tool groups placeholder not substituted")
	}
}

func TestDefaultFor_CoversAllSurfaces(t *testing.T) {
	surfaces := []entity.Surface{
		entity.SurfaceChat,
		entity.SurfaceGenerateResources,
		entity.SurfaceGenerateHelm,
		entity.SurfacePushGitHub,
		entity.SurfaceGenerateArgoCD,
	}

	seen := make(map[string]bool)
	for _, s := range surfaces {
		p := DefaultFor(s)
		if p == "" {
			t.Errorf("Surface %s has empty default prompt", s)
		}
		seen[p] = true
	}
	if len(seen) != len(surfaces) {
		t.Errorf("Expected distinct defaults per surface, got %d", len(seen))
	}
}
