package prompts

import (
	"encoding/json"
	"fmt"
	"strings"

	lcprompts "github.com/tmc/langchaingo/prompts"

	"intelligent-cd/internal/domain/entity"
)

const toolGroupsVar = "tool_groups"

// RenderInstructions substitutes {tool_groups} with the JSON form of the
// surface's tool list, python str.format style (literal braces in the
// template are doubled). Templates without the placeholder pass through
// unchanged.
func RenderInstructions(template string, tools []entity.ToolSpec) (string, error) {
	if !strings.Contains(template, "{"+toolGroupsVar+"}") {
		return template, nil
	}

	toolsJSON, err := json.Marshal(tools)
	if err != nil {
		return "", fmt.Errorf("encode tools: %w", err)
	}

	tmpl := lcprompts.PromptTemplate{
		Template:       template,
		InputVariables: []string{toolGroupsVar},
		TemplateFormat: lcprompts.TemplateFormatFString,
	}
	rendered, err := tmpl.Format(map[string]any{
		toolGroupsVar: string(toolsJSON),
	})
	if err != nil {
		return "", fmt.Errorf("render instructions: %w", err)
	}
	return rendered, nil
}

// DefaultFor returns the embedded default instructions for a surface.
func DefaultFor(surface entity.Surface) string {
	switch surface {
	case entity.SurfaceGenerateResources:
		return DefaultGenerateResourcesPrompt
	case entity.SurfaceGenerateHelm:
		return DefaultGenerateHelmPrompt
	case entity.SurfacePushGitHub:
		return DefaultPushGitHubPrompt
	case entity.SurfaceGenerateArgoCD:
		return DefaultGenerateArgoCDPrompt
	default:
		return DefaultChatPrompt
	}
}
