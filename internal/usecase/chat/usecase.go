package chat

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"intelligent-cd/internal/application/port/input"
	"intelligent-cd/internal/application/port/output"
	"intelligent-cd/internal/domain/entity"
)

const (
	sessionName    = "OCP_Chat_Session"
	promptPreview  = 200
	cleanupTimeout = 10 * time.Second
)

var _ input.ChatExecutor = (*UseCase)(nil)

// UseCase owns the chat surface's remote agent. The agent and its session are
// created on the first message and reused until Reset.
type UseCase struct {
	runtime  output.AgentRuntimePort
	registry output.ProfileRegistry
	logger   output.LoggerPort
	baseURL  string

	mu     sync.Mutex
	handle *entity.AgentHandle
}

func New(runtime output.AgentRuntimePort, registry output.ProfileRegistry, logger output.LoggerPort, baseURL string) *UseCase {
	return &UseCase{
		runtime:  runtime,
		registry: registry,
		logger:   logger,
		baseURL:  baseURL,
	}
}

func (uc *UseCase) Send(ctx context.Context, message string) string {
	if strings.TrimSpace(message) == "" {
		return ""
	}

	handle, err := uc.ensureSession(ctx)
	if err != nil {
		uc.logger.Error("Chat session setup failed", "error", err)
		return fmt.Sprintf("Error: %v", err)
	}

	turn, err := uc.runtime.CreateTurn(ctx, handle.AgentID, handle.SessionID, []entity.Message{
		{Role: entity.RoleUser, Content: message},
	})
	if err != nil {
		uc.logger.Error("Chat turn failed", "error", err)
		return fmt.Sprintf("Error: %v", err)
	}

	uc.logger.Debug("Chat turn complete", "turnId", turn.TurnID, "steps", len(turn.Steps))
	return entity.FinalAnswer(turn.OutputMessage.Content)
}

func (uc *UseCase) ensureSession(ctx context.Context) (entity.AgentHandle, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	if uc.handle != nil {
		return *uc.handle, nil
	}

	profile, ok := uc.registry.Get(entity.SurfaceChat)
	if !ok {
		return entity.AgentHandle{}, fmt.Errorf("no profile registered for chat surface")
	}

	agentID, err := uc.runtime.CreateAgent(ctx, profile)
	if err != nil {
		return entity.AgentHandle{}, fmt.Errorf("creating agent: %w", err)
	}
	sessionID, err := uc.runtime.CreateSession(ctx, agentID, sessionName)
	if err != nil {
		return entity.AgentHandle{}, fmt.Errorf("creating session: %w", err)
	}

	uc.handle = &entity.AgentHandle{AgentID: agentID, SessionID: sessionID}
	uc.logger.Info("Chat agent ready", "agentId", agentID, "sessionId", sessionID)
	return *uc.handle, nil
}

// Config reports the resolved chat configuration for display.
func (uc *UseCase) Config() input.ChatConfigView {
	profile, ok := uc.registry.Get(entity.SurfaceChat)
	if !ok {
		return input.ChatConfigView{BaseURL: uc.baseURL}
	}

	tools := make([]string, 0, len(profile.Tools))
	for _, tool := range profile.Tools {
		tools = append(tools, tool.Name)
	}

	preview := profile.Instructions
	if len(preview) > promptPreview {
		preview = preview[:promptPreview] + "..."
	}

	return input.ChatConfigView{
		BaseURL:        uc.baseURL,
		Model:          profile.Model,
		Tools:          tools,
		SamplingParams: profile.SamplingParams,
		MaxInferIters:  profile.MaxInferIters,
		PromptPreview:  preview,
	}
}

// Reset drops the current session. The remote agent is deleted best-effort;
// the next message starts a fresh conversation either way.
func (uc *UseCase) Reset() {
	uc.mu.Lock()
	handle := uc.handle
	uc.handle = nil
	uc.mu.Unlock()

	if handle == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), cleanupTimeout)
	defer cancel()
	if err := uc.runtime.DeleteAgent(ctx, handle.AgentID); err != nil {
		uc.logger.Warn("Deleting chat agent failed", "agentId", handle.AgentID, "error", err)
		return
	}
	uc.logger.Info("Chat session reset", "agentId", handle.AgentID)
}
