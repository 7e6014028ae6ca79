package entity

type Surface string

const (
	SurfaceChat              Surface = "chat"
	SurfaceGenerateResources Surface = "generate_resources"
	SurfaceGenerateHelm      Surface = "generate_helm"
	SurfacePushGitHub        Surface = "push_github"
	SurfaceGenerateArgoCD    Surface = "generate_argocd_app"
)

func (s Surface) String() string {
	return string(s)
}

type SamplingParams map[string]interface{}

// AgentProfile is the resolved per-surface agent configuration sent to the
// runtime when the surface's agent is created.
type AgentProfile struct {
	Model          string
	Instructions   string
	SamplingParams SamplingParams
	Tools          []ToolSpec
	MaxInferIters  int
}

type AgentHandle struct {
	AgentID   string
	SessionID string
}
