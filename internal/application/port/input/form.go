package input

import (
	"context"

	"intelligent-cd/internal/domain/entity"
)

// FormExecutor drives the multi-step GitOps flow. Generation steps return the
// step's text output (or an "Error: ..." string); apply steps return the
// kubectl outcome.
type FormExecutor interface {
	GenerateResources(ctx context.Context, req entity.FormRequest) string
	GenerateHelm(ctx context.Context, chartName, manifests string) string
	PushGitHub(ctx context.Context, path, content, commitMessage string) string
	GenerateArgoCD(ctx context.Context, req entity.FormRequest) string

	ApplyYAML(ctx context.Context, namespace, manifests string, recreateNamespace bool) entity.ApplyResult
	ApplyArgoCD(ctx context.Context, manifest string) entity.ApplyResult
}
