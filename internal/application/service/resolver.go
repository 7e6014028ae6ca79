package service

import (
	"context"

	"intelligent-cd/internal/application/port/output"
	"intelligent-cd/internal/domain/entity"
)

// ToolResolver rewrites vector_db_names aliases in structured tool specs to
// the runtime's store IDs. Names with no matching store pass through
// unchanged with a warning so the runtime reports the real failure.
type ToolResolver struct {
	stores output.VectorStorePort
	logger output.LoggerPort
}

func NewToolResolver(stores output.VectorStorePort, logger output.LoggerPort) *ToolResolver {
	return &ToolResolver{stores: stores, logger: logger}
}

func (r *ToolResolver) Resolve(ctx context.Context, specs []entity.ToolSpec) []entity.ToolSpec {
	if !hasNameAliases(specs) {
		return specs
	}

	byName := r.storeIndex(ctx)

	resolved := make([]entity.ToolSpec, 0, len(specs))
	for _, spec := range specs {
		resolved = append(resolved, r.resolveSpec(spec, byName))
	}
	return resolved
}

func hasNameAliases(specs []entity.ToolSpec) bool {
	for _, spec := range specs {
		if _, ok := spec.Args[entity.ToolArgVectorDBNames]; ok {
			return true
		}
	}
	return false
}

func (r *ToolResolver) storeIndex(ctx context.Context) map[string]string {
	stores, err := r.stores.ListVectorStores(ctx)
	if err != nil {
		r.logger.Warn("Vector store listing failed, names pass through unresolved", "error", err)
		return nil
	}
	index := make(map[string]string, len(stores))
	for _, store := range stores {
		index[store.Name] = store.ID
	}
	return index
}

func (r *ToolResolver) resolveSpec(spec entity.ToolSpec, byName map[string]string) entity.ToolSpec {
	raw, ok := spec.Args[entity.ToolArgVectorDBNames]
	if !ok {
		return spec
	}

	names := toStringSlice(raw)
	ids := make([]string, 0, len(names))
	for _, name := range names {
		id, found := byName[name]
		if !found {
			r.logger.Warn("Vector store name not found, passing value through",
				"tool", spec.Name, "name", name)
			id = name
		}
		ids = append(ids, id)
	}

	args := make(map[string]interface{}, len(spec.Args))
	for k, v := range spec.Args {
		if k == entity.ToolArgVectorDBNames {
			continue
		}
		args[k] = v
	}
	args[entity.ToolArgVectorDBIDs] = ids

	return entity.ToolSpec{Name: spec.Name, Args: args}
}

func toStringSlice(v interface{}) []string {
	switch vals := v.(type) {
	case []string:
		return vals
	case []interface{}:
		out := make([]string, 0, len(vals))
		for _, item := range vals {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	case string:
		return []string{vals}
	}
	return nil
}
