package output

import (
	"context"

	"intelligent-cd/internal/domain/entity"
)

// AgentRuntimePort drives the remote agent lifecycle on the llama-stack
// runtime. All execution happens server side; this process only creates
// agents, opens sessions and submits blocking turns.
type AgentRuntimePort interface {
	CreateAgent(ctx context.Context, profile entity.AgentProfile) (string, error)
	DeleteAgent(ctx context.Context, agentID string) error
	CreateSession(ctx context.Context, agentID, sessionName string) (string, error)
	CreateTurn(ctx context.Context, agentID, sessionID string, messages []entity.Message) (*entity.Turn, error)
}

// InspectPort covers the runtime's discovery and diagnostics surface.
type InspectPort interface {
	Version(ctx context.Context) (string, error)
	Health(ctx context.Context) (string, error)
	ListModels(ctx context.Context) ([]entity.Model, error)
	ListToolGroups(ctx context.Context) ([]entity.ToolGroup, error)
	ListTools(ctx context.Context, toolGroupID string) ([]entity.RuntimeTool, error)
	CompletionProbe(ctx context.Context, prompt string) (string, error)
}

type RAGToolPort interface {
	Query(ctx context.Context, query string, vectorDBIDs []string) (*entity.RAGQueryResult, error)
}
