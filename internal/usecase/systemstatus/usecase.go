package systemstatus

import (
	"context"
	"fmt"
	"strings"

	"intelligent-cd/internal/application/port/input"
	"intelligent-cd/internal/application/port/output"
)

var _ input.StatusReporter = (*UseCase)(nil)

var sectionBar = strings.Repeat("=", 60)

const probeMessage = "Hello, this is a test message."

type Config struct {
	BaseURL         string
	Model           string
	ConfiguredStore string
}

// UseCase assembles the combined health report across every external
// dependency: runtime, inference, vector stores, MCP tool servers. Each
// component is checked independently so one outage never hides another.
type UseCase struct {
	inspect output.InspectPort
	stores  output.VectorStorePort
	logger  output.LoggerPort
	cfg     Config
}

func New(inspect output.InspectPort, stores output.VectorStorePort, logger output.LoggerPort, cfg Config) *UseCase {
	if cfg.ConfiguredStore == "" {
		cfg.ConfiguredStore = "app-documentation"
	}
	return &UseCase{inspect: inspect, stores: stores, logger: logger, cfg: cfg}
}

func (uc *UseCase) Report(ctx context.Context) string {
	uc.logger.Info("Building system status report")

	sections := [][]string{
		{"✅ API Server: Running and accessible"},
		uc.serverStatus(ctx),
		uc.llmStatus(ctx),
		uc.ragStatus(ctx),
		uc.mcpStatus(ctx),
	}

	lines := []string{sectionBar, "🔍 SYSTEM STATUS REPORT", sectionBar}
	for _, section := range sections {
		lines = append(lines, "")
		lines = append(lines, section...)
	}
	lines = append(lines, "", sectionBar)
	return strings.Join(lines, "\n")
}

func (uc *UseCase) serverStatus(ctx context.Context) []string {
	lines := []string{
		"🚀 Llama Stack Server:",
		fmt.Sprintf("   • URL: %s", uc.cfg.BaseURL),
	}

	version, err := uc.inspect.Version(ctx)
	if err != nil {
		return append(lines,
			"   • Status: ❌ Failed to connect to Llama Stack server",
			fmt.Sprintf("   • Error: %v", err))
	}
	lines = append(lines, fmt.Sprintf("   • Version: ✅ %s", version))

	health, err := uc.inspect.Health(ctx)
	if err != nil {
		return append(lines,
			"   • Status: ❌ Failed to connect to Llama Stack server",
			fmt.Sprintf("   • Error: %v", err))
	}
	return append(lines, fmt.Sprintf("   • Health: ✅ %s", health))
}

func (uc *UseCase) llmStatus(ctx context.Context) []string {
	lines := []string{"🤖 LLM Service (Inference):"}

	reply, err := uc.inspect.CompletionProbe(ctx, probeMessage)
	if err != nil {
		return append(lines,
			"   • Status: ❌ LLM service not responding",
			fmt.Sprintf("   • Error: %v", err))
	}
	return append(lines,
		"   • Status: ✅ LLM service responding",
		fmt.Sprintf("   • Model: %s", uc.cfg.Model),
		fmt.Sprintf("   • Response: ✅ Received %d characters", len(reply)),
	)
}

func (uc *UseCase) ragStatus(ctx context.Context) []string {
	lines := []string{"📚 RAG Server:"}

	stores, err := uc.stores.ListVectorStores(ctx)
	if err != nil {
		return append(lines,
			"   • Connection: ❌ Failed to connect to RAG backend",
			fmt.Sprintf("   • Error: %v", err))
	}
	lines = append(lines, "   • Connection: ✅ RAG backend responding")

	found := false
	for _, store := range stores {
		if store.Name == uc.cfg.ConfiguredStore {
			found = true
			break
		}
	}
	if found {
		lines = append(lines, fmt.Sprintf("   • Target DB: ✅ Vector Store '%s' found in list", uc.cfg.ConfiguredStore))
	} else {
		lines = append(lines, fmt.Sprintf("   • Target DB: ❌ Vector Store '%s' not found in list", uc.cfg.ConfiguredStore))
	}

	if len(stores) == 0 {
		return append(lines, "   • Available DBs: No vector databases found")
	}
	lines = append(lines,
		fmt.Sprintf("   • Available DBs: Found %d vector database(s)", len(stores)),
		"   • DB Details:")
	for _, store := range stores {
		lines = append(lines,
			fmt.Sprintf("      - Name: %s", store.Name),
			fmt.Sprintf("        ID:   %s", store.ID))
	}
	return lines
}

func (uc *UseCase) mcpStatus(ctx context.Context) []string {
	lines := []string{"☸️ MCP Server:"}

	groups, err := uc.inspect.ListToolGroups(ctx)
	if err != nil {
		return append(lines,
			"   • Status: ❌ MCP server not responding",
			fmt.Sprintf("   • Error: %v", err))
	}
	lines = append(lines,
		"   • Status: ✅ MCP server responding",
		fmt.Sprintf("   • Toolgroups: ✅ Found %d toolgroup(s)", len(groups)))
	if len(groups) == 0 {
		return lines
	}

	lines = append(lines, "   • Toolgroup IDs:")
	for _, group := range groups {
		tools, err := uc.inspect.ListTools(ctx, group.Identifier)
		if err != nil {
			lines = append(lines, fmt.Sprintf("      - %s (tools unavailable: %v)", group.Identifier, err))
			continue
		}
		lines = append(lines, fmt.Sprintf("      - %s (%d tools)", group.Identifier, len(tools)))
	}
	return lines
}
