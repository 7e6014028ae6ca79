package service

import (
	"encoding/json"
	"strconv"
	"strings"

	"intelligent-cd/internal/application/port/output"
	"intelligent-cd/internal/domain/entity"
)

const defaultMaxInferIters = 15

// SurfaceConfigLoader reads one surface's agent configuration from the
// environment. Form surfaces look up FORM_<STEP>_<KEY> first, then the
// shared FORM_<KEY>. Values are strict JSON; a malformed value is logged and
// replaced by its default, never raised.
type SurfaceConfigLoader struct {
	cfg    output.ConfigPort
	logger output.LoggerPort
	model  string
}

func NewSurfaceConfigLoader(cfg output.ConfigPort, logger output.LoggerPort, model string) *SurfaceConfigLoader {
	return &SurfaceConfigLoader{cfg: cfg, logger: logger, model: model}
}

func (l *SurfaceConfigLoader) Load(surface entity.Surface, defaultInstructions string) entity.AgentProfile {
	profile := entity.AgentProfile{
		Model:          l.model,
		Instructions:   l.text(surface, "PROMPT", defaultInstructions),
		SamplingParams: l.parseSamplingParams(surface),
		Tools:          l.parseTools(surface),
		MaxInferIters:  l.integer(surface, "MAX_INFER_ITERS", defaultMaxInferIters),
	}

	l.logger.Debug("Surface configuration loaded",
		"surface", surface.String(),
		"tools", len(profile.Tools),
		"maxInferIters", profile.MaxInferIters,
	)
	return profile
}

func envKeys(surface entity.Surface, key string) []string {
	if surface == entity.SurfaceChat {
		return []string{"CHAT_" + key}
	}
	step := strings.ToUpper(surface.String())
	return []string{
		"FORM_" + step + "_" + key,
		"FORM_" + key,
	}
}

func (l *SurfaceConfigLoader) text(surface entity.Surface, key, defaultValue string) string {
	for _, k := range envKeys(surface, key) {
		if v := l.cfg.Get(k); v != "" {
			return v
		}
	}
	return defaultValue
}

func (l *SurfaceConfigLoader) integer(surface entity.Surface, key string, defaultValue int) int {
	raw := l.text(surface, key, "")
	if raw == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		l.logger.Error("Malformed integer configuration, using default",
			"surface", surface.String(), "key", key, "value", raw)
		return defaultValue
	}
	return n
}

func (l *SurfaceConfigLoader) parseSamplingParams(surface entity.Surface) entity.SamplingParams {
	raw := l.text(surface, "SAMPLING_PARAMS", "")
	if raw == "" {
		return nil
	}
	var params entity.SamplingParams
	if err := json.Unmarshal([]byte(raw), &params); err != nil {
		l.logger.Error("Malformed sampling params, using defaults",
			"surface", surface.String(), "error", err)
		return nil
	}
	return params
}

func (l *SurfaceConfigLoader) parseTools(surface entity.Surface) []entity.ToolSpec {
	raw := l.text(surface, "TOOLS", "")
	if raw == "" {
		return nil
	}
	var specs []entity.ToolSpec
	if err := json.Unmarshal([]byte(raw), &specs); err != nil {
		l.logger.Error("Malformed tools configuration, using empty list",
			"surface", surface.String(), "error", err)
		return nil
	}
	return specs
}
