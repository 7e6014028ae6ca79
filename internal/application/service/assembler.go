package service

import (
	"context"

	"intelligent-cd/internal/application/port/output"
	"intelligent-cd/internal/domain/entity"
	"intelligent-cd/internal/infrastructure/prompts"
)

// ProfileAssembler produces the final per-surface agent profile: environment
// configuration, store-name resolution, instruction rendering. Assembly
// happens once at startup; the registry serves the results after that.
type ProfileAssembler struct {
	loader   *SurfaceConfigLoader
	resolver *ToolResolver
	logger   output.LoggerPort
}

func NewProfileAssembler(loader *SurfaceConfigLoader, resolver *ToolResolver, logger output.LoggerPort) *ProfileAssembler {
	return &ProfileAssembler{loader: loader, resolver: resolver, logger: logger}
}

func (a *ProfileAssembler) Assemble(ctx context.Context, surface entity.Surface) entity.AgentProfile {
	profile := a.loader.Load(surface, prompts.DefaultFor(surface))
	profile.Tools = a.resolver.Resolve(ctx, profile.Tools)

	rendered, err := prompts.RenderInstructions(profile.Instructions, profile.Tools)
	if err != nil {
		a.logger.Error("Instruction rendering failed, using raw template",
			"surface", surface.String(), "error", err)
	} else {
		profile.Instructions = rendered
	}
	return profile
}

// AssembleAll populates the registry for every surface.
func (a *ProfileAssembler) AssembleAll(ctx context.Context, registry output.ProfileRegistry) {
	surfaces := []entity.Surface{
		entity.SurfaceChat,
		entity.SurfaceGenerateResources,
		entity.SurfaceGenerateHelm,
		entity.SurfacePushGitHub,
		entity.SurfaceGenerateArgoCD,
	}
	for _, surface := range surfaces {
		registry.Register(surface, a.Assemble(ctx, surface))
	}
}
