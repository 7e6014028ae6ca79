package form

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"intelligent-cd/internal/application/port/input"
	"intelligent-cd/internal/application/port/output"
	"intelligent-cd/internal/domain/entity"
	"intelligent-cd/internal/infrastructure/kubeyaml"
)

var _ input.FormExecutor = (*UseCase)(nil)

// UseCase drives the four-step GitOps flow. Every generation step runs on a
// fresh remote agent so one step's conversation never leaks into the next;
// the appliers shell out to kubectl and involve no agent at all.
type UseCase struct {
	runtime    output.AgentRuntimePort
	registry   output.ProfileRegistry
	cluster    output.ClusterPort
	logger     output.LoggerPort
	gitopsRepo string
}

func New(
	runtime output.AgentRuntimePort,
	registry output.ProfileRegistry,
	cluster output.ClusterPort,
	logger output.LoggerPort,
	gitopsRepo string,
) *UseCase {
	return &UseCase{
		runtime:    runtime,
		registry:   registry,
		cluster:    cluster,
		logger:     logger,
		gitopsRepo: gitopsRepo,
	}
}

func (uc *UseCase) GenerateResources(ctx context.Context, req entity.FormRequest) string {
	uc.logger.Info("Form submission received",
		"namespace", req.Namespace,
		"helmChart", req.HelmChartName,
		"workloadType", req.WorkloadType,
		"supportingResources", req.SupportingResources,
	)

	message := fmt.Sprintf(
		"Get cleaned YAML for %s and any referenced %s in '%s' namespace. Format with '---' separators for oc apply.",
		req.WorkloadType, strings.Join(req.SupportingResources, ", "), req.Namespace)
	return uc.runStep(ctx, entity.SurfaceGenerateResources, message)
}

func (uc *UseCase) GenerateHelm(ctx context.Context, chartName, manifests string) string {
	message := fmt.Sprintf(
		"Restructure the following Kubernetes YAML into a Helm chart named '%s'. Show the chart layout (Chart.yaml, values.yaml, templates/) with the content of each file.\n\n%s",
		chartName, manifests)
	return uc.runStep(ctx, entity.SurfaceGenerateHelm, message)
}

func (uc *UseCase) PushGitHub(ctx context.Context, path, content, commitMessage string) string {
	message := fmt.Sprintf(
		"Commit a file named '%s' to the '%s' repository with commit message '%s'. File content:\n\n%s",
		path, uc.gitopsRepo, commitMessage, content)
	return uc.runStep(ctx, entity.SurfacePushGitHub, message)
}

func (uc *UseCase) GenerateArgoCD(ctx context.Context, req entity.FormRequest) string {
	message := fmt.Sprintf(
		"Generate an ArgoCD Application manifest for helm chart '%s' from the '%s' repository targeting the '%s' namespace. Return only the YAML manifest.",
		req.HelmChartName, uc.gitopsRepo, req.Namespace)
	return uc.runStep(ctx, entity.SurfaceGenerateArgoCD, message)
}

// runStep creates a throwaway agent and session, runs one blocking turn and
// extracts the answer. The agent is deleted best-effort afterwards.
func (uc *UseCase) runStep(ctx context.Context, surface entity.Surface, message string) string {
	profile, ok := uc.registry.Get(surface)
	if !ok {
		uc.logger.Error("No profile registered for form step", "surface", surface.String())
		return fmt.Sprintf("Error: no profile registered for step %s", surface)
	}

	agentID, err := uc.runtime.CreateAgent(ctx, profile)
	if err != nil {
		uc.logger.Error("Form agent creation failed", "surface", surface.String(), "error", err)
		return fmt.Sprintf("Error: %v", err)
	}
	defer func() {
		if err := uc.runtime.DeleteAgent(ctx, agentID); err != nil {
			uc.logger.Warn("Form agent cleanup failed", "agentId", agentID, "error", err)
		}
	}()

	sessionName := fmt.Sprintf("Form_%s_Session_%s", surface.String(), uuid.NewString())
	sessionID, err := uc.runtime.CreateSession(ctx, agentID, sessionName)
	if err != nil {
		uc.logger.Error("Form session creation failed", "surface", surface.String(), "error", err)
		return fmt.Sprintf("Error: %v", err)
	}

	turn, err := uc.runtime.CreateTurn(ctx, agentID, sessionID, []entity.Message{
		{Role: entity.RoleUser, Content: message},
	})
	if err != nil {
		uc.logger.Error("Form turn failed", "surface", surface.String(), "error", err)
		return fmt.Sprintf("Error: %v", err)
	}

	uc.logger.Debug("Form step complete", "surface", surface.String(), "turnId", turn.TurnID)
	return entity.FinalAnswer(turn.OutputMessage.Content)
}

func (uc *UseCase) ApplyYAML(ctx context.Context, namespace, manifests string, recreateNamespace bool) entity.ApplyResult {
	docs := kubeyaml.Split(manifests)
	if len(docs) == 0 {
		return entity.ApplyResult{OK: false, Output: "Error: no YAML documents to apply"}
	}
	for _, doc := range docs {
		if summary, err := kubeyaml.Inspect(doc); err == nil {
			uc.logger.Info("Applying manifest", "resource", summary.String(), "namespace", namespace)
		}
	}

	if recreateNamespace {
		if out, err := uc.cluster.DeleteNamespace(ctx, namespace); err != nil {
			uc.logger.Warn("Namespace delete failed, continuing",
				"namespace", namespace, "error", err, "output", out)
		}
		if out, err := uc.cluster.CreateNamespace(ctx, namespace); err != nil {
			uc.logger.Warn("Namespace create failed, continuing",
				"namespace", namespace, "error", err, "output", out)
		}
	}

	out, err := uc.cluster.Apply(ctx, namespace, manifests)
	if err != nil {
		return applyFailure(out, err)
	}
	return entity.ApplyResult{OK: true, Output: out}
}

func (uc *UseCase) ApplyArgoCD(ctx context.Context, manifest string) entity.ApplyResult {
	if len(kubeyaml.Split(manifest)) == 0 {
		return entity.ApplyResult{OK: false, Output: "Error: no YAML documents to apply"}
	}

	out, err := uc.cluster.ApplyClusterScoped(ctx, manifest)
	if err != nil {
		return applyFailure(out, err)
	}
	return entity.ApplyResult{OK: true, Output: out}
}

func applyFailure(out string, err error) entity.ApplyResult {
	msg := err.Error()
	if out != "" && !strings.Contains(msg, out) {
		msg = msg + "\n" + out
	}
	return entity.ApplyResult{OK: false, Output: msg}
}
