package input

import "context"

// ChatConfigView is the redacted chat configuration shown to the operator.
type ChatConfigView struct {
	BaseURL        string                 `json:"base_url"`
	Model          string                 `json:"model"`
	Tools          []string               `json:"tools"`
	SamplingParams map[string]interface{} `json:"sampling_params"`
	MaxInferIters  int                    `json:"max_infer_iters"`
	PromptPreview  string                 `json:"prompt_preview"`
}

// ChatExecutor runs operator messages through the chat surface's remote
// agent. Send never fails: execution errors come back as an "Error: ..."
// response string.
type ChatExecutor interface {
	Send(ctx context.Context, message string) string
	Config() ChatConfigView
	Reset()
}
